package astrovideo

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"testing"
)

func TestWriteFramePNG(t *testing.T) {
	// 2x1 BGR frame: one blue pixel, one red pixel.
	v := &stubVideo{width: 2, height: 1, bpp: 1, depth: 8, bayer: BayerBGR,
		order:  binary.LittleEndian,
		frames: [][]byte{{0xff, 0x00, 0x00, 0x00, 0x00, 0xff}}}
	var buf bytes.Buffer
	if err := WriteFramePNG(v, 0, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 2 || bounds.Dy() != 1 {
		t.Fatalf("unexpected image size: %dx%d", bounds.Dx(), bounds.Dy())
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if r != 0 || g != 0 || b != 0xffff || a != 0xffff {
		t.Fatalf("expected opaque blue at (0,0), got %d %d %d %d", r, g, b, a)
	}
	r, _, b, _ = img.At(1, 0).RGBA()
	if r != 0xffff || b != 0 {
		t.Fatalf("expected red at (1,0), got r=%d b=%d", r, b)
	}
}

func TestWriteFramePNGMosaic(t *testing.T) {
	v := &stubVideo{width: 2, height: 2, bpp: 1, depth: 8, bayer: BayerRGGB,
		order:  binary.BigEndian,
		frames: [][]byte{{255, 0, 0, 0}}}
	var buf bytes.Buffer
	if err := WriteFramePNG(v, 0, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	if img.Bounds().Dx() != 1 || img.Bounds().Dy() != 1 {
		t.Fatalf("unexpected image size: %v", img.Bounds())
	}
	r, g, _, _ := img.At(0, 0).RGBA()
	if r == 0 || g != 0 {
		t.Fatalf("mosaic red sample lost: r=%d g=%d", r, g)
	}
}

func TestWriteFramePNGBadIndex(t *testing.T) {
	v := &stubVideo{width: 2, height: 1, bpp: 1, depth: 8, bayer: BayerBGR,
		order: binary.LittleEndian}
	var buf bytes.Buffer
	if err := WriteFramePNG(v, 0, &buf); err == nil {
		t.Fatal("expected an error for an empty source")
	}
}
