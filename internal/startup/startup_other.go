//go:build !windows && !linux

package startup

func EntryPath() string {
	return ""
}

func IsEnabled() bool {
	return false
}

func Enable() error {
	return ErrUnsupported
}

func Disable() error {
	return ErrUnsupported
}
