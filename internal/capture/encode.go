package capture

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"

	"autoshot/internal/config"
)

// Encode writes img to w in the given format. A quality outside 1-100 uses
// the JPEG default.
func Encode(w io.Writer, img image.Image, format config.Format, quality int) error {
	switch format {
	case config.FormatJPEG:
		if quality < 1 || quality > 100 {
			quality = jpeg.DefaultQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case config.FormatPNG:
		return png.Encode(w, img)
	case config.FormatBMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", config.ErrUnknownFormat, format)
	}
}
