package astrovideo

import (
	"encoding/binary"
	"fmt"
)

var (
	fourccAVI  = fourCC("AVI ")
	fourccHDRL = fourCC("hdrl")
	fourccAVIH = fourCC("avih")
	fourccSTRL = fourCC("strl")
	fourccSTRH = fourCC("strh")
	fourccSTRF = fourCC("strf")
	fourccMOVI = fourCC("movi")
	fourccVIDS = fourCC("vids")

	// "00db": uncompressed video frame payload for stream 0.
	fourccFrame = FourCC{0x30, 0x30, 0x64, 0x62}
)

// AVIMainHeader is the decoded avih record.
type AVIMainHeader struct {
	MicroSecPerFrame    uint32
	MaxBytesPerSec      uint32
	PaddingGranularity  uint32
	Flags               uint32
	TotalFrames         uint32
	InitialFrames       uint32
	Streams             uint32
	SuggestedBufferSize uint32
	Width               uint32
	Height              uint32
}

// AVIStreamHeader is the decoded strh record of the first stream.
type AVIStreamHeader struct {
	FCCType             FourCC
	FCCHandler          FourCC
	Flags               uint32
	Priority            uint16
	Language            uint16
	InitialFrames       uint32
	Scale               uint32
	Rate                uint32
	Start               uint32
	Length              uint32
	SuggestedBufferSize uint32
	Quality             uint32
	SampleSize          uint32
	Left                uint16
	Top                 uint16
	Right               uint16
	Bottom              uint16
}

// BitmapInfoHeader is the decoded strf record (on-disk BITMAPINFOHEADER
// layout, 40 bytes). A negative Height means top-down row order.
type BitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

const (
	aviMainHeaderMinSize   = 44 // 40 decoded fields + 4 reserved bytes
	aviStreamHeaderMinSize = 56
	bitmapInfoMinSize      = 40
)

// FrameDescriptor is the byte range of one decodable video frame. The
// ordered descriptor slice built at open time is the frame index and is
// never mutated afterwards.
type FrameDescriptor struct {
	Offset int64
	Size   int64
}

// AVIFile is an opened AVI container restricted to a single uncompressed
// 24-bit video stream.
type AVIFile struct {
	riff         *RIFFFile
	mainHeader   AVIMainHeader
	streamHeader AVIStreamHeader
	format       BitmapInfoHeader
	frames       []FrameDescriptor
}

func OpenAVI(path string) (*AVIFile, error) {
	riff, err := OpenRIFF(path)
	if err != nil {
		return nil, err
	}
	return parseAVI(riff)
}

func ParseAVI(data []byte) (*AVIFile, error) {
	riff, err := NewRIFFReader(data)
	if err != nil {
		return nil, err
	}
	return parseAVI(riff)
}

func parseAVI(riff *RIFFFile) (*AVIFile, error) {
	if riff.FormType() != fourccAVI {
		return nil, fmt.Errorf("%w: RIFF form type '%s' is not 'AVI '", ErrMalformedContainer, riff.FormType())
	}
	entries, err := riff.ReadEntries()
	if err != nil {
		return nil, err
	}

	hdrl, err := findMandatoryList(entries, fourccAVI, fourccHDRL)
	if err != nil {
		return nil, err
	}
	avih, err := findMandatoryChunk(hdrl, fourccAVIH)
	if err != nil {
		return nil, err
	}
	mainHeader, err := decodeMainHeader(riff, avih)
	if err != nil {
		return nil, err
	}

	// Only the first stream description is honored; multi-stream files are
	// read as single-stream.
	strl, err := findMandatoryListIn(hdrl, fourccSTRL)
	if err != nil {
		return nil, err
	}
	strh, err := findMandatoryChunk(strl, fourccSTRH)
	if err != nil {
		return nil, err
	}
	strf, err := findMandatoryChunk(strl, fourccSTRF)
	if err != nil {
		return nil, err
	}
	streamHeader, err := decodeStreamHeader(riff, strh)
	if err != nil {
		return nil, err
	}
	format, err := decodeBitmapInfo(riff, strf)
	if err != nil {
		return nil, err
	}
	if err := checkPixelFormat(format); err != nil {
		return nil, err
	}

	movi, err := findMandatoryList(entries, fourccAVI, fourccMOVI)
	if err != nil {
		return nil, err
	}

	// Frame index: keep exactly the "00db" chunks, in file order. Padding
	// and index chunks interleaved under movi are skipped, so the index
	// length is the authoritative frame count even when it disagrees with
	// the avih TotalFrames field.
	frames := []FrameDescriptor{}
	for _, entry := range movi.Children {
		chunk, ok := entry.(*ChunkMeta)
		if !ok || chunk.ChunkID != fourccFrame {
			continue
		}
		frames = append(frames, FrameDescriptor{Offset: chunk.DataOffset, Size: chunk.DataSize})
	}

	return &AVIFile{
		riff:         riff,
		mainHeader:   mainHeader,
		streamHeader: streamHeader,
		format:       format,
		frames:       frames,
	}, nil
}

func (f *AVIFile) MainHeader() AVIMainHeader {
	return f.mainHeader
}

func (f *AVIFile) StreamHeader() AVIStreamHeader {
	return f.streamHeader
}

func (f *AVIFile) Format() BitmapInfoHeader {
	return f.format
}

func (f *AVIFile) FrameCount() int {
	return len(f.frames)
}

func (f *AVIFile) FrameDescriptors() []FrameDescriptor {
	return f.frames
}

// Frame returns the raw payload bytes of one frame, undecoded.
func (f *AVIFile) Frame(index int) ([]byte, error) {
	if index < 0 || index >= len(f.frames) {
		return nil, fmt.Errorf("%w: frame %d of %d", ErrFrameIndexOutOfRange, index, len(f.frames))
	}
	desc := f.frames[index]
	return f.riff.Bytes(desc.Offset, desc.Size), nil
}

func findMandatoryList(entries []Entry, parent, listType FourCC) (*ListMeta, error) {
	for _, entry := range entries {
		if list, ok := entry.(*ListMeta); ok && list.ListType == listType {
			return list, nil
		}
	}
	return nil, fmt.Errorf("%w: '%s' has no list '%s'", ErrMissingMandatoryList, parent, listType)
}

func findMandatoryListIn(parent *ListMeta, listType FourCC) (*ListMeta, error) {
	return findMandatoryList(parent.Children, parent.ListType, listType)
}

func findMandatoryChunk(parent *ListMeta, chunkID FourCC) (*ChunkMeta, error) {
	for _, entry := range parent.Children {
		if chunk, ok := entry.(*ChunkMeta); ok && chunk.ChunkID == chunkID {
			return chunk, nil
		}
	}
	return nil, fmt.Errorf("%w: list '%s' has no chunk '%s'", ErrMissingMandatoryChunk, parent.ListType, chunkID)
}

func chunkPayload(riff *RIFFFile, chunk *ChunkMeta, minSize int64) ([]byte, error) {
	if chunk.DataSize < minSize {
		return nil, fmt.Errorf("%w: chunk '%s' holds %d bytes, need %d", ErrMalformedContainer, chunk.ChunkID, chunk.DataSize, minSize)
	}
	return riff.Bytes(chunk.DataOffset, chunk.DataSize), nil
}

func decodeMainHeader(riff *RIFFFile, chunk *ChunkMeta) (AVIMainHeader, error) {
	payload, err := chunkPayload(riff, chunk, aviMainHeaderMinSize)
	if err != nil {
		return AVIMainHeader{}, err
	}
	return AVIMainHeader{
		MicroSecPerFrame:    binary.LittleEndian.Uint32(payload[0:4]),
		MaxBytesPerSec:      binary.LittleEndian.Uint32(payload[4:8]),
		PaddingGranularity:  binary.LittleEndian.Uint32(payload[8:12]),
		Flags:               binary.LittleEndian.Uint32(payload[12:16]),
		TotalFrames:         binary.LittleEndian.Uint32(payload[16:20]),
		InitialFrames:       binary.LittleEndian.Uint32(payload[20:24]),
		Streams:             binary.LittleEndian.Uint32(payload[24:28]),
		SuggestedBufferSize: binary.LittleEndian.Uint32(payload[28:32]),
		Width:               binary.LittleEndian.Uint32(payload[32:36]),
		Height:              binary.LittleEndian.Uint32(payload[36:40]),
	}, nil
}

func decodeStreamHeader(riff *RIFFFile, chunk *ChunkMeta) (AVIStreamHeader, error) {
	payload, err := chunkPayload(riff, chunk, aviStreamHeaderMinSize)
	if err != nil {
		return AVIStreamHeader{}, err
	}
	header := AVIStreamHeader{
		Flags:               binary.LittleEndian.Uint32(payload[8:12]),
		Priority:            binary.LittleEndian.Uint16(payload[12:14]),
		Language:            binary.LittleEndian.Uint16(payload[14:16]),
		InitialFrames:       binary.LittleEndian.Uint32(payload[16:20]),
		Scale:               binary.LittleEndian.Uint32(payload[20:24]),
		Rate:                binary.LittleEndian.Uint32(payload[24:28]),
		Start:               binary.LittleEndian.Uint32(payload[28:32]),
		Length:              binary.LittleEndian.Uint32(payload[32:36]),
		SuggestedBufferSize: binary.LittleEndian.Uint32(payload[36:40]),
		Quality:             binary.LittleEndian.Uint32(payload[40:44]),
		SampleSize:          binary.LittleEndian.Uint32(payload[44:48]),
		Left:                binary.LittleEndian.Uint16(payload[48:50]),
		Top:                 binary.LittleEndian.Uint16(payload[50:52]),
		Right:               binary.LittleEndian.Uint16(payload[52:54]),
		Bottom:              binary.LittleEndian.Uint16(payload[54:56]),
	}
	copy(header.FCCType[:], payload[0:4])
	copy(header.FCCHandler[:], payload[4:8])
	return header, nil
}

func decodeBitmapInfo(riff *RIFFFile, chunk *ChunkMeta) (BitmapInfoHeader, error) {
	payload, err := chunkPayload(riff, chunk, bitmapInfoMinSize)
	if err != nil {
		return BitmapInfoHeader{}, err
	}
	return BitmapInfoHeader{
		Size:          binary.LittleEndian.Uint32(payload[0:4]),
		Width:         int32(binary.LittleEndian.Uint32(payload[4:8])),
		Height:        int32(binary.LittleEndian.Uint32(payload[8:12])),
		Planes:        binary.LittleEndian.Uint16(payload[12:14]),
		BitCount:      binary.LittleEndian.Uint16(payload[14:16]),
		Compression:   binary.LittleEndian.Uint32(payload[16:20]),
		SizeImage:     binary.LittleEndian.Uint32(payload[20:24]),
		XPelsPerMeter: int32(binary.LittleEndian.Uint32(payload[24:28])),
		YPelsPerMeter: int32(binary.LittleEndian.Uint32(payload[28:32])),
		ClrUsed:       binary.LittleEndian.Uint32(payload[32:36]),
		ClrImportant:  binary.LittleEndian.Uint32(payload[36:40]),
	}, nil
}

// checkPixelFormat enforces the 24-bit uncompressed support boundary.
// Recognized-but-undecoded bit depths are rejected with the convention
// they belong to; unknown values are invalid outright.
func checkPixelFormat(format BitmapInfoHeader) error {
	if format.Compression != 0 {
		return fmt.Errorf("%w: compression code %d (only uncompressed is supported)", ErrUnsupportedPixelFormat, format.Compression)
	}
	switch format.BitCount {
	case 24:
		return nil
	case 0:
		return fmt.Errorf("%w: bit depth implied by compression (JPEG/PNG)", ErrUnsupportedPixelFormat)
	case 1:
		return fmt.Errorf("%w: 1-bit monochrome", ErrUnsupportedPixelFormat)
	case 4:
		return fmt.Errorf("%w: 4-bit palette (16 colors)", ErrUnsupportedPixelFormat)
	case 8:
		return fmt.Errorf("%w: 8-bit palette (256 colors)", ErrUnsupportedPixelFormat)
	case 16:
		return fmt.Errorf("%w: 16-bit packed/bitfields", ErrUnsupportedPixelFormat)
	case 32:
		return fmt.Errorf("%w: 32-bit packed/bitfields", ErrUnsupportedPixelFormat)
	default:
		return fmt.Errorf("%w: bit depth %d", ErrInvalidPixelFormat, format.BitCount)
	}
}
