//go:build linux

package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EntryPath is the XDG autostart desktop entry.
func EntryPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(dir, "autostart", strings.ToLower(AppName)+".desktop")
}

func IsEnabled() bool {
	_, err := os.Stat(EntryPath())
	return err == nil
}

func Enable() error {
	exePath, err := os.Executable()
	if err != nil {
		return err
	}
	return writeEntry(EntryPath(), exePath)
}

func Disable() error {
	return os.Remove(EntryPath())
}

func writeEntry(path, exePath string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	entry := fmt.Sprintf("[Desktop Entry]\nType=Application\nName=%s\nExec=%q\nX-GNOME-Autostart-enabled=true\n", AppName, exePath)
	return os.WriteFile(path, []byte(entry), 0644)
}
