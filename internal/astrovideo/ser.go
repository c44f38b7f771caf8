package astrovideo

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"time"
)

// SER is the raw-sensor frame-sequence format written by planetary capture
// tools (FireCapture, SharpCap, ...): a 178-byte header followed by
// back-to-back uncompressed frames of identical size.

const (
	serMagic      = "LUCAM-RECORDER"
	serHeaderSize = 178
)

// SERColorID values from the SER specification.
const (
	SERColorMono      = 0
	SERColorBayerRGGB = 8
	SERColorBayerGRBG = 9
	SERColorBayerGBRG = 10
	SERColorBayerBGGR = 11
	SERColorBayerCYYM = 16
	SERColorBayerYCMY = 17
	SERColorBayerYMCY = 18
	SERColorBayerMYYC = 19
	SERColorRGB       = 100
	SERColorBGR       = 101
)

// SERHeader is the decoded fixed-layout file header.
type SERHeader struct {
	LuID               int32
	ColorID            int32
	LittleEndian       int32
	ImageWidth         uint32
	ImageHeight        uint32
	PixelDepthPerPlane uint32
	FrameCount         uint32
	Observer           string
	Instrument         string
	Telescope          string
	DateTime           int64
	DateTimeUTC        int64
}

// SERFile is an opened SER container.
type SERFile struct {
	data      []byte
	header    SERHeader
	frameSize int64
}

func OpenSER(path string) (*SERFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSER(data)
}

func ParseSER(data []byte) (*SERFile, error) {
	if len(data) < serHeaderSize {
		return nil, fmt.Errorf("%w: file shorter than SER header", ErrMalformedContainer)
	}
	if string(data[0:len(serMagic)]) != serMagic {
		return nil, fmt.Errorf("%w: no %q signature", ErrMalformedContainer, serMagic)
	}
	header := SERHeader{
		LuID:               int32(binary.LittleEndian.Uint32(data[14:18])),
		ColorID:            int32(binary.LittleEndian.Uint32(data[18:22])),
		LittleEndian:       int32(binary.LittleEndian.Uint32(data[22:26])),
		ImageWidth:         binary.LittleEndian.Uint32(data[26:30]),
		ImageHeight:        binary.LittleEndian.Uint32(data[30:34]),
		PixelDepthPerPlane: binary.LittleEndian.Uint32(data[34:38]),
		FrameCount:         binary.LittleEndian.Uint32(data[38:42]),
		Observer:           trimSERString(data[42:82]),
		Instrument:         trimSERString(data[82:122]),
		Telescope:          trimSERString(data[122:162]),
		DateTime:           int64(binary.LittleEndian.Uint64(data[162:170])),
		DateTimeUTC:        int64(binary.LittleEndian.Uint64(data[170:178])),
	}
	if header.ImageWidth == 0 || header.ImageHeight == 0 {
		return nil, fmt.Errorf("%w: zero image dimensions %dx%d", ErrMalformedContainer, header.ImageWidth, header.ImageHeight)
	}
	if header.PixelDepthPerPlane == 0 || header.PixelDepthPerPlane > 16 {
		return nil, fmt.Errorf("%w: pixel depth %d bits per plane", ErrMalformedContainer, header.PixelDepthPerPlane)
	}

	bytesPerSample := 1
	if header.PixelDepthPerPlane > 8 {
		bytesPerSample = 2
	}
	frameSize := int64(header.ImageWidth) * int64(header.ImageHeight) * int64(bytesPerSample) * int64(serPlanes(header.ColorID))
	needed := serHeaderSize + frameSize*int64(header.FrameCount)
	if needed > int64(len(data)) {
		return nil, fmt.Errorf("%w: %d frames of %d bytes need %d bytes, file holds %d", ErrMalformedContainer, header.FrameCount, frameSize, needed, len(data))
	}

	return &SERFile{data: data, header: header, frameSize: frameSize}, nil
}

func serPlanes(colorID int32) int {
	switch colorID {
	case SERColorRGB, SERColorBGR:
		return 3
	default:
		return 1
	}
}

func trimSERString(data []byte) string {
	if i := bytes.IndexByte(data, 0x00); i >= 0 {
		data = data[:i]
	}
	return string(bytes.TrimRight(data, " "))
}

func (f *SERFile) Header() SERHeader {
	return f.header
}

func (f *SERFile) ImageWidth() uint32 {
	return f.header.ImageWidth
}

func (f *SERFile) ImageHeight() uint32 {
	return f.header.ImageHeight
}

func (f *SERFile) FrameCount() int {
	return int(f.header.FrameCount)
}

func (f *SERFile) FrameSize() int64 {
	return f.frameSize
}

func (f *SERFile) BytesPerPixel() int {
	if f.header.PixelDepthPerPlane > 8 {
		return 2
	}
	return 1
}

// ByteOrder interprets the header's endianness flag: zero means big-endian
// sample words, anything else little-endian.
func (f *SERFile) ByteOrder() binary.ByteOrder {
	if f.header.LittleEndian == 0 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

const (
	serTicksPerSecond = 10_000_000
	// Ticks between the .NET epoch (0001-01-01) and the Unix epoch.
	serUnixEpochTicks = 621_355_968_000_000_000
)

// Timestamp converts the header's DateTimeUTC ticks (100 ns units since
// 0001-01-01 UTC) to a time.Time. Zero means not recorded. The span since
// year 1 overflows time.Duration, so the conversion goes through the Unix
// epoch instead.
func (f *SERFile) Timestamp() (time.Time, bool) {
	ticks := f.header.DateTimeUTC
	if ticks == 0 {
		return time.Time{}, false
	}
	unixTicks := ticks - serUnixEpochTicks
	return time.Unix(unixTicks/serTicksPerSecond, (unixTicks%serTicksPerSecond)*100).UTC(), true
}

// Frame returns the raw sample bytes of one frame, undecoded.
func (f *SERFile) Frame(index int) ([]byte, error) {
	if index < 0 || index >= f.FrameCount() {
		return nil, fmt.Errorf("%w: frame %d of %d", ErrFrameIndexOutOfRange, index, f.FrameCount())
	}
	start := serHeaderSize + f.frameSize*int64(index)
	return f.data[start : start+f.frameSize], nil
}
