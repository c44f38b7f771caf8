package astrovideo

import (
	"encoding/binary"
	"fmt"
)

// Bayer names the sample arrangement of a frame source: either a packed
// full-color layout (no mosaic) or the 2x2 sensor pattern.
type Bayer int

const (
	BayerNone Bayer = iota
	BayerRGGB
	BayerGRBG
	BayerGBRG
	BayerBGGR
	BayerRGB
	BayerBGR
)

func (b Bayer) String() string {
	switch b {
	case BayerNone:
		return "None"
	case BayerRGGB:
		return "RGGB"
	case BayerGRBG:
		return "GRBG"
	case BayerGBRG:
		return "GBRG"
	case BayerBGGR:
		return "BGGR"
	case BayerRGB:
		return "RGB"
	case BayerBGR:
		return "BGR"
	default:
		return fmt.Sprintf("Bayer(%d)", int(b))
	}
}

// Mosaic reports whether the source carries single-plane sensor data that
// needs mosaic sampling rather than a packed repack.
func (b Bayer) Mosaic() bool {
	switch b {
	case BayerNone, BayerRGB, BayerBGR:
		return false
	default:
		return true
	}
}

// Video is the uniform frame-source capability set shared by both
// container families. Frame returns the raw bytes of one frame with no
// decoding applied and fails with ErrFrameIndexOutOfRange past the end.
type Video interface {
	ImageWidth() uint32
	ImageHeight() uint32
	FrameCount() int
	BytesPerPixel() int
	PixelDepthBits() uint32
	Bayer() Bayer
	ByteOrder() binary.ByteOrder
	Frame(index int) ([]byte, error)
}

type aviVideo struct {
	avi *AVIFile
}

// NewAVIVideo wraps an opened AVI as a frame source. Pixel metadata is
// threaded from the decoded stream format: the supported 24-bit packed BGR
// layout carries three 8-bit planes per pixel, sampled one byte at a time.
func NewAVIVideo(avi *AVIFile) Video {
	return &aviVideo{avi: avi}
}

func (v *aviVideo) ImageWidth() uint32 {
	return v.avi.MainHeader().Width
}

func (v *aviVideo) ImageHeight() uint32 {
	return v.avi.MainHeader().Height
}

func (v *aviVideo) FrameCount() int {
	return v.avi.FrameCount()
}

func (v *aviVideo) BytesPerPixel() int {
	return 1
}

func (v *aviVideo) PixelDepthBits() uint32 {
	// Bits per plane, not per pixel: 24-bit packed BGR is 3x8.
	return uint32(v.avi.Format().BitCount) / 3
}

func (v *aviVideo) Bayer() Bayer {
	return BayerBGR
}

func (v *aviVideo) ByteOrder() binary.ByteOrder {
	return binary.LittleEndian
}

func (v *aviVideo) Frame(index int) ([]byte, error) {
	return v.avi.Frame(index)
}

type serVideo struct {
	ser *SERFile
}

// NewSERVideo wraps an opened SER as a frame source.
func NewSERVideo(ser *SERFile) Video {
	return &serVideo{ser: ser}
}

func (v *serVideo) ImageWidth() uint32 {
	return v.ser.ImageWidth()
}

func (v *serVideo) ImageHeight() uint32 {
	return v.ser.ImageHeight()
}

func (v *serVideo) FrameCount() int {
	return v.ser.FrameCount()
}

func (v *serVideo) BytesPerPixel() int {
	return v.ser.BytesPerPixel()
}

func (v *serVideo) PixelDepthBits() uint32 {
	return v.ser.Header().PixelDepthPerPlane
}

func (v *serVideo) Bayer() Bayer {
	switch v.ser.Header().ColorID {
	case SERColorBayerRGGB:
		return BayerRGGB
	case SERColorBayerGRBG:
		return BayerGRBG
	case SERColorBayerGBRG:
		return BayerGBRG
	case SERColorBayerBGGR:
		return BayerBGGR
	case SERColorRGB:
		return BayerRGB
	case SERColorBGR:
		return BayerBGR
	default:
		return BayerNone
	}
}

func (v *serVideo) ByteOrder() binary.ByteOrder {
	return v.ser.ByteOrder()
}

func (v *serVideo) Frame(index int) ([]byte, error) {
	return v.ser.Frame(index)
}
