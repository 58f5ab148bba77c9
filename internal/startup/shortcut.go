package startup

import (
	"path/filepath"
	"strings"
)

// Shortcut describes the .lnk written into the Windows Startup folder.
type Shortcut struct {
	Link   string
	Target string
	Args   []string
}

// Script renders the PowerShell that creates the shortcut through
// WScript.Shell. Every value is a single-quoted literal, so paths with
// spaces, quotes or $ are taken verbatim.
func (s Shortcut) Script() string {
	var b strings.Builder
	b.WriteString("$ErrorActionPreference = 'Stop'; ")
	b.WriteString("$shell = New-Object -ComObject WScript.Shell; ")
	b.WriteString("$lnk = $shell.CreateShortcut(" + psQuote(s.Link) + "); ")
	b.WriteString("$lnk.TargetPath = " + psQuote(s.Target) + "; ")
	b.WriteString("$lnk.WorkingDirectory = " + psQuote(filepath.Dir(s.Target)) + "; ")
	if len(s.Args) > 0 {
		b.WriteString("$lnk.Arguments = " + psQuote(joinArgs(s.Args)) + "; ")
	}
	b.WriteString("$lnk.Description = " + psQuote(AppName) + "; ")
	b.WriteString("$lnk.Save()")
	return b.String()
}

// psQuote makes v a PowerShell single-quoted string.
func psQuote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

func joinArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if strings.ContainsAny(a, " \t\"") {
			a = `"` + strings.ReplaceAll(a, `"`, `\"`) + `"`
		}
		quoted[i] = a
	}
	return strings.Join(quoted, " ")
}
