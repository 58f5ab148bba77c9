// Package desktop hands paths and URLs to the OS default handler.
package desktop

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Command returns the command that opens target with the default handler.
func Command(target string) *exec.Cmd {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("cmd", "/c", "start", "", target)
	case "darwin":
		return exec.Command("open", target)
	default:
		return exec.Command("xdg-open", target)
	}
}

// Open launches the default handler for a folder or URL without waiting for
// it to exit.
func Open(target string) error {
	cmd := Command(target)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	go cmd.Wait()
	return nil
}
