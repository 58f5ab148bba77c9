// Package instance keeps a second copy of the app from starting while one is
// already running for the same user.
package instance

import "errors"

var ErrAlreadyRunning = errors.New("another instance is already running")

// Lock is held for the lifetime of the process.
type Lock struct {
	name    string
	release func() error
}

// Acquire takes the named lock or fails with ErrAlreadyRunning.
func Acquire(name string) (*Lock, error) {
	release, err := acquire(name)
	if err != nil {
		return nil, err
	}
	return &Lock{name: name, release: release}, nil
}

func (l *Lock) Name() string {
	return l.name
}

// Release gives the lock up. Calling it more than once is harmless.
func (l *Lock) Release() error {
	if l == nil || l.release == nil {
		return nil
	}
	release := l.release
	l.release = nil
	return release()
}
