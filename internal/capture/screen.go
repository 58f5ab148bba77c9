package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

var ErrNoDisplay = errors.New("no active displays found")

// ScreenGrabber captures a single display, the primary one by default.
type ScreenGrabber struct {
	Display int
}

func (g ScreenGrabber) Grab() (image.Image, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, ErrNoDisplay
	}
	display := g.Display
	if display < 0 || display >= n {
		display = 0
	}

	bounds := screenshot.GetDisplayBounds(display)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("screenshot capture failed: %w", err)
	}
	return img, nil
}
