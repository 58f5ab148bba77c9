//go:build linux

package startup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnableDisableWritesDesktopEntry(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	want := filepath.Join(dir, "autostart", "autoshot.desktop")
	if EntryPath() != want {
		t.Fatalf("unexpected entry path %q", EntryPath())
	}
	if IsEnabled() {
		t.Fatalf("expected disabled before enable")
	}

	if err := Enable(); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if !IsEnabled() {
		t.Fatalf("expected enabled after enable")
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	if !strings.Contains(string(data), "Name=AutoShot") || !strings.Contains(string(data), "Exec=") {
		t.Fatalf("unexpected entry %q", data)
	}

	if err := Disable(); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if IsEnabled() {
		t.Fatalf("expected disabled after disable")
	}
}
