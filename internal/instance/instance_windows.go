//go:build windows

package instance

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/windows"
)

func acquire(name string) (func() error, error) {
	mutexName, err := syscall.UTF16PtrFromString("Global\\" + name + "-SingleInstance-Mutex")
	if err != nil {
		return nil, fmt.Errorf("create mutex name: %w", err)
	}

	handle, err := windows.CreateMutex(nil, false, mutexName)
	if err != nil {
		if err == windows.ERROR_ALREADY_EXISTS {
			if handle != 0 {
				windows.CloseHandle(handle)
			}
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("create mutex: %w", err)
	}

	return func() error {
		return windows.CloseHandle(handle)
	}, nil
}
