package cmdline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"

	"autoshot/internal/config"
)

func runFlags(t *testing.T, cfg *config.Config, args ...string) error {
	t.Helper()
	app := &cli.App{
		Name:   "autoshot",
		Flags:  Flags(),
		Action: func(c *cli.Context) error { return Apply(c, cfg) },
	}
	return app.Run(append([]string{"autoshot"}, args...))
}

func TestApplyOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()

	err := runFlags(t, cfg,
		"--folder", dir,
		"--interval", "0",
		"--format", "PNG",
		"--log-level", "debug",
		"--log-format", "json",
		"--log-addr", "",
	)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := config.Settings{Folder: dir, IntervalSeconds: 0, Format: config.FormatPNG}
	if cfg.Settings != want {
		t.Fatalf("unexpected settings %+v", cfg.Settings)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
	if cfg.LogView.Enabled {
		t.Fatalf("empty --log-addr should disable the log view")
	}
}

func TestApplyKeepsUnsetValues(t *testing.T) {
	cfg := config.Default()
	if err := runFlags(t, cfg, "--interval", "30"); err != nil {
		t.Fatalf("run: %v", err)
	}
	defaults := config.Default()
	if cfg.Settings.IntervalSeconds != 30 {
		t.Fatalf("interval not applied: %d", cfg.Settings.IntervalSeconds)
	}
	if cfg.Settings.Folder != defaults.Settings.Folder || cfg.Settings.Format != defaults.Settings.Format {
		t.Fatalf("unset flags changed settings: %+v", cfg.Settings)
	}
	if !cfg.LogView.Enabled || cfg.LogView.Addr != config.DefaultLogViewAddr {
		t.Fatalf("log view changed: %+v", cfg.LogView)
	}
}

func TestApplyRejectsUnknownFormat(t *testing.T) {
	cfg := config.Default()
	err := runFlags(t, cfg, "--format", "gif")
	if !errors.Is(err, config.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestLoadReadsConfigThenFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "settings:\n  folder: " + dir + "\n  interval_seconds: 60\n  format: bmp\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var cfg *config.Config
	app := &cli.App{
		Name:  "autoshot",
		Flags: Flags(),
		Action: func(c *cli.Context) error {
			var err error
			cfg, err = Load(c)
			return err
		},
	}
	if err := app.Run([]string{"autoshot", "--config", path, "--interval", "5"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := config.Settings{Folder: dir, IntervalSeconds: 5, Format: config.FormatBMP}
	if cfg.Settings != want {
		t.Fatalf("unexpected settings %+v", cfg.Settings)
	}
	if cfg.Source != path {
		t.Fatalf("unexpected source %q", cfg.Source)
	}
}

func TestApplyExpandsHomeInFolder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	cfg := config.Default()
	if err := runFlags(t, cfg, "--folder", "~/shots"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if want := filepath.Join(home, "shots"); cfg.Settings.Folder != want {
		t.Fatalf("expected %q, got %q", want, cfg.Settings.Folder)
	}
}
