// Package assets builds the images the tray shell shows.
package assets

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"runtime"
)

const iconSize = 32

// IconData draws the tray icon: a lens inside a rounded frame. Windows wants
// an ICO container; everything else takes the PNG as is.
func IconData() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	frame := color.RGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	lens := color.RGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}
	c := float64(iconSize-1) / 2
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			d := dx*dx + dy*dy
			switch {
			case d <= 7*7:
				img.SetRGBA(x, y, lens)
			case x >= 3 && x < iconSize-3 && y >= 6 && y < iconSize-4:
				img.SetRGBA(x, y, frame)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	if runtime.GOOS != "windows" {
		return buf.Bytes(), nil
	}
	return wrapICO(buf.Bytes(), iconSize), nil
}

// wrapICO embeds a PNG image in a single-entry ICO file.
func wrapICO(pngData []byte, size int) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1})
	buf.WriteByte(byte(size))
	buf.WriteByte(byte(size))
	buf.WriteByte(0)
	buf.WriteByte(0)
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(32))
	binary.Write(&buf, binary.LittleEndian, uint32(len(pngData)))
	binary.Write(&buf, binary.LittleEndian, uint32(22))
	buf.Write(pngData)
	return buf.Bytes()
}
