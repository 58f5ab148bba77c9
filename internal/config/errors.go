package config

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyFolder   = errors.New("destination folder is not set")
	ErrFolderMissing = errors.New("destination folder does not exist")
	ErrNotDirectory  = errors.New("destination is not a directory")
	ErrNotWritable   = errors.New("destination folder is not writable")
	ErrIntervalRange = fmt.Errorf("interval must be between 0 and %d seconds", MaxIntervalSeconds)
	ErrUnknownFormat = errors.New("unsupported output format")
	ErrZeroInterval  = errors.New("interval is 0: a single screenshot will be taken")
)

// ValidationError reports settings that cannot start a run. Reason is one of
// the Err* sentinels above so callers can match with errors.Is.
type ValidationError struct {
	Reason error
	Value  string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return "invalid settings: " + e.Reason.Error()
	}
	return fmt.Sprintf("invalid settings: %s (%s)", e.Reason, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}
