package astrovideo

import (
	"fmt"
	"math"
)

// Codec decodes one frame of a Video into an 8-bit BGRA buffer. Decoding
// is a pure function of (source, index): nothing is cached and the
// returned buffer is owned by the caller.
type Codec interface {
	Decode(v Video, index int) (width, height uint32, pixels []byte, err error)
}

// CodecFor picks the decode strategy from the source's color coding.
func CodecFor(v Video) Codec {
	if v.Bayer().Mosaic() {
		return MosaicCodec{}
	}
	return PackedCodec{}
}

// PackedCodec repacks already-full-color frames with three 8-bit channels
// per pixel. BGR sources pass through byte-for-byte; RGB sources have
// their channels swapped so the output is always BGRA. Sources with wider
// samples are refused rather than mis-read.
type PackedCodec struct{}

func (PackedCodec) Decode(v Video, index int) (uint32, uint32, []byte, error) {
	if v.BytesPerPixel() != 1 {
		return 0, 0, nil, fmt.Errorf("%w: %d-bit packed samples, only 8-bit channels are decodable", ErrUnsupportedPixelFormat, v.PixelDepthBits())
	}
	frame, err := v.Frame(index)
	if err != nil {
		return 0, 0, nil, err
	}
	width := int(v.ImageWidth())
	height := int(v.ImageHeight())
	if need := width * height * 3; len(frame) < need {
		return 0, 0, nil, fmt.Errorf("%w: %dx%d packed frame needs %d bytes, got %d", ErrCorruptFrameData, width, height, need, len(frame))
	}

	// Per-pixel channel positions of blue and red in the source bytes.
	blue, red := 0, 2
	if v.Bayer() == BayerRGB {
		blue, red = 2, 0
	}

	pixels := make([]byte, 0, width*height*4)
	stride := width * 3
	for y := 0; y < height; y++ {
		row := frame[y*stride : y*stride+stride]
		for x := 0; x < width; x++ {
			offset := x * 3
			pixels = append(pixels, row[offset+blue], row[offset+1], row[offset+red], 0xff)
		}
	}
	return v.ImageWidth(), v.ImageHeight(), pixels, nil
}

// MosaicCodec reconstructs color from single-plane sensor frames by
// sampling non-overlapping 2x2 blocks: top-left as red, top-right as
// green, bottom-right as blue. The bottom-left sample is not used and no
// neighbor interpolation happens, so this is raw block sampling rather
// than real demosaicing. Output dimensions are floor(w/2) x floor(h/2);
// an odd trailing row or column is dropped.
type MosaicCodec struct{}

func (MosaicCodec) Decode(v Video, index int) (uint32, uint32, []byte, error) {
	frame, err := v.Frame(index)
	if err != nil {
		return 0, 0, nil, err
	}
	width := int(v.ImageWidth())
	height := int(v.ImageHeight())
	bpp := v.BytesPerPixel()
	stride := width * bpp
	if need := height * stride; len(frame) < need {
		return 0, 0, nil, fmt.Errorf("%w: %dx%d mosaic frame needs %d bytes, got %d", ErrCorruptFrameData, width, height, need, len(frame))
	}

	order := v.ByteOrder()
	maxValue := float64(uint32(1) << v.PixelDepthBits())
	outWidth := width / 2
	outHeight := height / 2
	pixels := make([]byte, 0, outWidth*outHeight*4)

	sample := func(offset int) uint16 {
		if bpp == 2 {
			return order.Uint16(frame[offset : offset+2])
		}
		return uint16(frame[offset])
	}
	scale := func(value uint16) byte {
		return byte(math.Round(float64(value) / maxValue * 255))
	}

	for y := 0; y+1 < height; y += 2 {
		rowOffset := y * stride
		nextRowOffset := rowOffset + stride
		for x := 0; x+1 < width; x += 2 {
			xOffset := x * bpp
			r := sample(rowOffset + xOffset)
			g := sample(rowOffset + xOffset + bpp)
			_ = sample(nextRowOffset + xOffset) // bottom-left, read but unused
			b := sample(nextRowOffset + xOffset + bpp)
			pixels = append(pixels, scale(b), scale(g), scale(r), 0xff)
		}
	}
	return uint32(outWidth), uint32(outHeight), pixels, nil
}
