package desktop

import (
	"runtime"
	"testing"
)

func TestCommandPassesTarget(t *testing.T) {
	cmd := Command("http://127.0.0.1:8766")
	if got := cmd.Args[len(cmd.Args)-1]; got != "http://127.0.0.1:8766" {
		t.Fatalf("expected target as last argument, got %q", got)
	}
	if runtime.GOOS == "linux" && cmd.Args[0] != "xdg-open" {
		t.Fatalf("expected xdg-open on linux, got %q", cmd.Args[0])
	}
}
