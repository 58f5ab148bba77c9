//go:build windows

package startup

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

func EntryPath() string {
	return filepath.Join(os.Getenv("APPDATA"), "Microsoft", "Windows", "Start Menu", "Programs", "Startup", AppName+".lnk")
}

func IsEnabled() bool {
	_, err := os.Stat(EntryPath())
	return err == nil
}

// Enable points a Startup folder shortcut at the running executable.
func Enable() error {
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exePath); err == nil {
		exePath = resolved
	}

	sc := Shortcut{Link: EntryPath(), Target: exePath}
	cmd := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-ExecutionPolicy", "Bypass", "-Command", sc.Script())
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("create startup shortcut: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func Disable() error {
	err := os.Remove(EntryPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
