// Package cmdline defines the command line of autoshot and folds the flags
// into a loaded config.
package cmdline

import (
	"github.com/urfave/cli/v2"

	"autoshot/internal/config"
)

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "config file (default: " + config.DefaultPath() + ")"},
		&cli.StringFlag{Name: "folder", Aliases: []string{"d"}, Usage: "folder screenshots are saved to"},
		&cli.IntFlag{Name: "interval", Aliases: []string{"i"}, Usage: "seconds between screenshots, 0 for a single one"},
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "image format: jpg|png|bmp"},
		&cli.StringFlag{Name: "log-level", Usage: "debug|info|warn|error"},
		&cli.StringFlag{Name: "log-format", Usage: "text|json"},
		&cli.StringFlag{Name: "log-addr", Usage: "address of the log view page, empty to disable"},
	}
}

// Load reads the config named by --config and applies the other flags on
// top of it. Only flags given on the command line override file values.
func Load(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if err := Apply(c, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Apply(c *cli.Context, cfg *config.Config) error {
	if c.IsSet("folder") {
		cfg.Settings.Folder = config.ExpandHome(c.String("folder"))
	}
	if c.IsSet("interval") {
		cfg.Settings.IntervalSeconds = c.Int("interval")
	}
	if c.IsSet("format") {
		format, err := config.ParseFormat(c.String("format"))
		if err != nil {
			return err
		}
		cfg.Settings.Format = format
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Logging.Format = c.String("log-format")
	}
	if c.IsSet("log-addr") {
		cfg.LogView.Addr = c.String("log-addr")
		cfg.LogView.Enabled = cfg.LogView.Addr != ""
	}
	return nil
}
