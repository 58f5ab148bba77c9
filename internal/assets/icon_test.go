package assets

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"runtime"
	"testing"
)

func TestIconData(t *testing.T) {
	data, err := IconData()
	if err != nil {
		t.Fatalf("icon: %v", err)
	}
	if runtime.GOOS == "windows" {
		return
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode icon: %v", err)
	}
	if img.Bounds().Dx() != iconSize {
		t.Fatalf("unexpected icon size %d", img.Bounds().Dx())
	}
}

func TestWrapICO(t *testing.T) {
	payload := []byte("png-bytes")
	ico := wrapICO(payload, 32)
	if len(ico) != 22+len(payload) {
		t.Fatalf("unexpected ico length %d", len(ico))
	}
	if binary.LittleEndian.Uint16(ico[2:4]) != 1 || binary.LittleEndian.Uint16(ico[4:6]) != 1 {
		t.Fatalf("bad ico header % x", ico[:6])
	}
	if ico[6] != 32 || binary.LittleEndian.Uint32(ico[14:18]) != uint32(len(payload)) || binary.LittleEndian.Uint32(ico[18:22]) != 22 {
		t.Fatalf("bad ico entry % x", ico[6:22])
	}
	if !bytes.Equal(ico[22:], payload) {
		t.Fatalf("payload not embedded")
	}
}
