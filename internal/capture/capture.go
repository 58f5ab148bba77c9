package capture

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"autoshot/internal/config"
	"autoshot/internal/logging"
)

// FileTimeLayout renders a capture time as 2006-01-02_1504.05.
const FileTimeLayout = "2006-01-02_1504.05"

// Grabber reads the current screen contents.
type Grabber interface {
	Grab() (image.Image, error)
}

// Record describes one screenshot written to disk.
type Record struct {
	RunID      string    `json:"run_id,omitempty"`
	Seq        int       `json:"seq"`
	FileName   string    `json:"file_name"`
	Folder     string    `json:"folder"`
	Path       string    `json:"path"`
	CapturedAt time.Time `json:"captured_at"`
}

type Options struct {
	Grabber     Grabber
	Suffix      string
	JPEGQuality int
	Clock       func() time.Time
	Logger      *slog.Logger
}

// Capturer grabs the screen, encodes it and writes it into a folder.
type Capturer struct {
	grabber Grabber
	suffix  string
	quality int
	clock   func() time.Time
	logger  *slog.Logger
}

func New(opts Options) *Capturer {
	grabber := opts.Grabber
	if grabber == nil {
		grabber = ScreenGrabber{}
	}
	suffix := opts.Suffix
	if suffix == "" {
		suffix = config.DefaultLabels().FileSuffix
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Capturer{
		grabber: grabber,
		suffix:  suffix,
		quality: opts.JPEGQuality,
		clock:   clock,
		logger:  logger,
	}
}

// FileName builds the name a capture taken at t is saved under.
func FileName(t time.Time, suffix string, format config.Format) string {
	return t.Format(FileTimeLayout) + suffix + string(format)
}

// Capture takes one screenshot and saves it in folder. The image is written
// to a temporary file first and renamed into place, so a failed capture
// never leaves a truncated screenshot behind.
func (c *Capturer) Capture(folder string, format config.Format) (Record, error) {
	if !format.Valid() {
		return Record{}, &Error{Op: "encode", Err: fmt.Errorf("%w: %q", config.ErrUnknownFormat, format)}
	}

	img, err := c.grabber.Grab()
	if err != nil {
		return Record{}, &Error{Op: "grab", Err: err}
	}
	capturedAt := c.clock()

	name := FileName(capturedAt, c.suffix, format)
	path := filepath.Join(folder, name)

	tmp, err := os.CreateTemp(folder, ".autoshot-*"+string(format))
	if err != nil {
		return Record{}, &Error{Op: "create", Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	if err := Encode(tmp, img, format, c.quality); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return Record{}, &Error{Op: "encode", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return Record{}, &Error{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return Record{}, &Error{Op: "rename", Path: path, Err: err}
	}

	c.logger.Debug("screenshot saved", "path", path)
	return Record{
		FileName:   name,
		Folder:     folder,
		Path:       path,
		CapturedAt: capturedAt,
	}, nil
}

// Error is the I/O failure of a single capture.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("capture %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("capture %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsCaptureError reports whether err came from a capture attempt.
func IsCaptureError(err error) bool {
	var cerr *Error
	return errors.As(err, &cerr)
}
