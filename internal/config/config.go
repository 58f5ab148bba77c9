package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultIntervalSeconds = 10
	DefaultLogViewAddr     = "127.0.0.1:8766"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Settings: Settings{
			Folder:          DefaultFolder(),
			IntervalSeconds: DefaultIntervalSeconds,
			Format:          FormatJPEG,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		LogView: LogViewConfig{Enabled: true, Addr: DefaultLogViewAddr},
		Labels:  DefaultLabels(),
		Source:  "defaults",
	}
}

func DefaultLabels() Labels {
	return Labels{
		Title:         "AutoShot",
		FileSuffix:    "_screen_shot",
		Formats:       append([]Format(nil), Formats...),
		StartButton:   "Start capture",
		StopButton:    "Stop",
		StoppedNotice: "Screenshots stopped. Check the save folder.",
		EmptyFolder:   "Save folder is not set.",
		ZeroInterval:  "Interval is 0: only one screenshot will be taken. Click Start again to confirm.",
		Finishing:     "Still saving the last screenshot. Try again in a moment.",
		ChooseFolder:  "Choose the folder screenshots are saved to",
	}
}

// Load reads the YAML config at path. An empty path means DefaultPath. A
// missing file is not an error; defaults are returned instead. Values absent
// from the file keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	cfg.Source = path
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	defaults := DefaultLabels()
	if c.Labels.FileSuffix == "" {
		c.Labels.FileSuffix = defaults.FileSuffix
	}
	if len(c.Labels.Formats) == 0 {
		c.Labels.Formats = defaults.Formats
	}
	if c.Labels.Title == "" {
		c.Labels.Title = defaults.Title
	}
	if c.Labels.StartButton == "" {
		c.Labels.StartButton = defaults.StartButton
	}
	if c.Labels.StopButton == "" {
		c.Labels.StopButton = defaults.StopButton
	}
	if c.Labels.Finishing == "" {
		c.Labels.Finishing = defaults.Finishing
	}
	if c.Labels.ChooseFolder == "" {
		c.Labels.ChooseFolder = defaults.ChooseFolder
	}
	if c.LogView.Addr == "" {
		c.LogView.Addr = DefaultLogViewAddr
	}
	c.Settings.Folder = ExpandHome(c.Settings.Folder)
}

func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(dir, "autoshot", "config.yaml")
}

func DefaultFolder() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, "Pictures", "AutoShot")
}

// EnsureFolder creates the settings folder if it does not exist yet. Only
// the default folder is created on the user's behalf.
func EnsureFolder(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// Validate checks the settings before a run starts. The zero interval is
// valid here; confirming it is the caller's job.
func (s Settings) Validate() error {
	if err := ValidateFolder(s.Folder); err != nil {
		return err
	}
	if s.IntervalSeconds < 0 || s.IntervalSeconds > MaxIntervalSeconds {
		return &ValidationError{Reason: ErrIntervalRange, Value: fmt.Sprint(s.IntervalSeconds)}
	}
	if !s.Format.Valid() {
		return &ValidationError{Reason: ErrUnknownFormat, Value: string(s.Format)}
	}
	return nil
}

// ValidateFolder checks that dir is set, exists, is a directory and can be
// written to.
func ValidateFolder(dir string) error {
	if dir == "" {
		return &ValidationError{Reason: ErrEmptyFolder}
	}
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return &ValidationError{Reason: ErrFolderMissing, Value: dir}
	}
	if err != nil {
		return &ValidationError{Reason: fmt.Errorf("stat folder: %w", err), Value: dir}
	}
	if !info.IsDir() {
		return &ValidationError{Reason: ErrNotDirectory, Value: dir}
	}
	if err := probeWritable(dir); err != nil {
		return &ValidationError{Reason: ErrNotWritable, Value: dir}
	}
	return nil
}

func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".autoshot-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
