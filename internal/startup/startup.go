// Package startup registers the app to launch when the user logs in.
package startup

import "errors"

// AppName names the autostart entry.
const AppName = "AutoShot"

var ErrUnsupported = errors.New("start on login is not supported on this platform")
