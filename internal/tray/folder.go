package tray

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/ncruces/zenity"
)

// chooseFolder shows the native directory picker starting at start. A
// cancelled dialog returns an empty path and no error.
func chooseFolder(title, start string) (string, error) {
	opts := []zenity.Option{zenity.Directory(), zenity.Title(title)}
	if info, err := os.Stat(start); err == nil && info.IsDir() {
		opts = append(opts, zenity.Filename(start+string(filepath.Separator)))
	}
	dir, err := zenity.SelectFile(opts...)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return dir, err
}
