//go:build unix

package instance

import (
	"errors"
	"os"
	"testing"
)

func TestAcquireIsExclusive(t *testing.T) {
	dir := t.TempDir()
	lockDir = func() string { return dir }
	t.Cleanup(func() { lockDir = os.TempDir })

	first, err := Acquire("autoshot-test")
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	if _, err := Acquire("autoshot-test"); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("second release: %v", err)
	}

	again, err := Acquire("autoshot-test")
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	defer again.Release()
	if again.Name() != "autoshot-test" {
		t.Fatalf("unexpected name %q", again.Name())
	}
}
