package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MaxIntervalSeconds is the largest accepted capture interval (one day).
const MaxIntervalSeconds = 86400

type Config struct {
	Settings Settings      `yaml:"settings"`
	Logging  LoggingConfig `yaml:"logging"`
	LogView  LogViewConfig `yaml:"log_view"`
	Labels   Labels        `yaml:"labels"`

	// Source is the file the config was read from, or "defaults".
	Source string `yaml:"-"`
}

// Settings are the user-adjustable knobs of a capture run. A run works on a
// copy taken when it starts.
type Settings struct {
	Folder          string `yaml:"folder"`
	IntervalSeconds int    `yaml:"interval_seconds"`
	Format          Format `yaml:"format"`
}

// Interval returns the capture interval as a duration.
func (s Settings) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

// SingleShot reports whether the settings describe a one-capture run.
func (s Settings) SingleShot() bool {
	return s.IntervalSeconds == 0
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type LogViewConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Labels holds the fixed strings shown by the shell and used in file names.
type Labels struct {
	Title         string   `yaml:"title"`
	FileSuffix    string   `yaml:"file_suffix"`
	Formats       []Format `yaml:"formats"`
	StartButton   string   `yaml:"start_button"`
	StopButton    string   `yaml:"stop_button"`
	StoppedNotice string   `yaml:"stopped_notice"`
	EmptyFolder   string   `yaml:"empty_folder_warning"`
	ZeroInterval  string   `yaml:"zero_interval_warning"`
	Finishing     string   `yaml:"finishing_notice"`
	ChooseFolder  string   `yaml:"choose_folder"`
}

// Format is an output image format, written as its file extension.
type Format string

const (
	FormatJPEG Format = ".jpg"
	FormatPNG  Format = ".png"
	FormatBMP  Format = ".bmp"
)

// Formats lists the supported output formats in menu order.
var Formats = []Format{FormatJPEG, FormatPNG, FormatBMP}

// ParseFormat accepts an extension with or without the leading dot, in any
// case. "jpeg" is accepted as an alias of ".jpg".
func ParseFormat(s string) (Format, error) {
	ext := strings.ToLower(strings.TrimSpace(s))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if ext == ".jpeg" {
		ext = string(FormatJPEG)
	}
	for _, f := range Formats {
		if string(f) == ext {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) Valid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

func (f Format) String() string {
	return string(f)
}

// UnmarshalYAML lets config files spell formats loosely ("png", "JPEG").
func (f *Format) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseFormat(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
