package astrovideo

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

type serSpec struct {
	colorID      int32
	littleEndian int32
	width        uint32
	height       uint32
	depth        uint32
	observer     string
	instrument   string
	telescope    string
	dateTimeUTC  int64
	frames       [][]byte
	truncate     int // bytes to chop off the end
}

func buildSER(spec serSpec) []byte {
	header := make([]byte, serHeaderSize)
	copy(header[0:14], serMagic)
	binary.LittleEndian.PutUint32(header[18:22], uint32(spec.colorID))
	binary.LittleEndian.PutUint32(header[22:26], uint32(spec.littleEndian))
	binary.LittleEndian.PutUint32(header[26:30], spec.width)
	binary.LittleEndian.PutUint32(header[30:34], spec.height)
	binary.LittleEndian.PutUint32(header[34:38], spec.depth)
	binary.LittleEndian.PutUint32(header[38:42], uint32(len(spec.frames)))
	copy(header[42:82], padSERString(spec.observer))
	copy(header[82:122], padSERString(spec.instrument))
	copy(header[122:162], padSERString(spec.telescope))
	binary.LittleEndian.PutUint64(header[170:178], uint64(spec.dateTimeUTC))

	data := header
	for _, frame := range spec.frames {
		data = append(data, frame...)
	}
	if spec.truncate > 0 {
		data = data[:len(data)-spec.truncate]
	}
	return data
}

func padSERString(value string) []byte {
	buf := make([]byte, 40)
	for i := range buf {
		buf[i] = ' '
	}
	copy(buf, value)
	return buf
}

func TestParseSERHeader(t *testing.T) {
	frame := make([]byte, 4*2*2) // 4x2, 16-bit mono plane
	spec := serSpec{
		colorID:     SERColorBayerRGGB,
		width:       4,
		height:      2,
		depth:       16,
		observer:    "observer",
		instrument:  "camera",
		telescope:   "scope",
		dateTimeUTC: 630822816000000000, // 2000-01-01T00:00:00Z in .NET ticks
		frames:      [][]byte{frame, frame, frame},
	}
	ser, err := ParseSER(buildSER(spec))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	header := ser.Header()
	if header.ColorID != SERColorBayerRGGB {
		t.Fatalf("unexpected color ID: %d", header.ColorID)
	}
	if ser.ImageWidth() != 4 || ser.ImageHeight() != 2 {
		t.Fatalf("unexpected dimensions: %dx%d", ser.ImageWidth(), ser.ImageHeight())
	}
	if ser.FrameCount() != 3 {
		t.Fatalf("unexpected frame count: %d", ser.FrameCount())
	}
	if ser.BytesPerPixel() != 2 {
		t.Fatalf("unexpected bytes per pixel: %d", ser.BytesPerPixel())
	}
	if ser.FrameSize() != 16 {
		t.Fatalf("unexpected frame size: %d", ser.FrameSize())
	}
	if header.Observer != "observer" || header.Instrument != "camera" || header.Telescope != "scope" {
		t.Fatalf("unexpected strings: %q %q %q", header.Observer, header.Instrument, header.Telescope)
	}
	when, ok := ser.Timestamp()
	if !ok {
		t.Fatal("expected a recorded timestamp")
	}
	want := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !when.Equal(want) {
		t.Fatalf("unexpected timestamp: %s", when)
	}
}

func TestSERStringTrimming(t *testing.T) {
	// Strings may be NUL-terminated or space-padded to their 40 bytes.
	raw := padSERString("abc")
	raw[3] = 0
	raw[4] = 'x'
	if got := trimSERString(raw); got != "abc" {
		t.Fatalf("NUL not honored: %q", got)
	}
	if got := trimSERString(padSERString("def")); got != "def" {
		t.Fatalf("padding not trimmed: %q", got)
	}
}

func TestSERByteOrderFlag(t *testing.T) {
	frame := make([]byte, 2*2*2)
	spec := serSpec{colorID: SERColorMono, width: 2, height: 2, depth: 12,
		frames: [][]byte{frame}}
	ser, err := ParseSER(buildSER(spec))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ser.ByteOrder() != binary.BigEndian {
		t.Fatal("flag 0 must mean big-endian")
	}
	spec.littleEndian = 1
	ser, err = ParseSER(buildSER(spec))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ser.ByteOrder() != binary.LittleEndian {
		t.Fatal("nonzero flag must mean little-endian")
	}
}

func TestSERFrameBytes(t *testing.T) {
	first := []byte{1, 1, 1, 1}
	second := []byte{2, 2, 2, 2}
	spec := serSpec{colorID: SERColorMono, width: 2, height: 2, depth: 8,
		frames: [][]byte{first, second}}
	ser, err := ParseSER(buildSER(spec))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	frame, err := ser.Frame(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frame) != 4 || frame[0] != 2 {
		t.Fatalf("unexpected frame payload: %v", frame)
	}
	if _, err := ser.Frame(2); !errors.Is(err, ErrFrameIndexOutOfRange) {
		t.Fatalf("expected ErrFrameIndexOutOfRange, got %v", err)
	}
}

func TestSERRGBFrameSize(t *testing.T) {
	frame := make([]byte, 2*2*3) // 3 planes, 8-bit
	spec := serSpec{colorID: SERColorRGB, width: 2, height: 2, depth: 8,
		frames: [][]byte{frame}}
	ser, err := ParseSER(buildSER(spec))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ser.FrameSize() != 12 {
		t.Fatalf("unexpected frame size: %d", ser.FrameSize())
	}
}

func TestSERTruncatedFrames(t *testing.T) {
	frame := make([]byte, 2*2)
	spec := serSpec{colorID: SERColorMono, width: 2, height: 2, depth: 8,
		frames: [][]byte{frame, frame}, truncate: 3}
	if _, err := ParseSER(buildSER(spec)); !errors.Is(err, ErrMalformedContainer) {
		t.Fatalf("expected ErrMalformedContainer, got %v", err)
	}
}

func TestSERBadMagic(t *testing.T) {
	data := buildSER(serSpec{colorID: SERColorMono, width: 2, height: 2, depth: 8,
		frames: [][]byte{make([]byte, 4)}})
	copy(data[0:5], "WRONG")
	if _, err := ParseSER(data); !errors.Is(err, ErrMalformedContainer) {
		t.Fatalf("expected ErrMalformedContainer, got %v", err)
	}
}

func TestSERShortHeader(t *testing.T) {
	if _, err := ParseSER([]byte(serMagic)); !errors.Is(err, ErrMalformedContainer) {
		t.Fatalf("expected ErrMalformedContainer, got %v", err)
	}
}

func TestSERBadPixelDepth(t *testing.T) {
	for _, depth := range []uint32{0, 17, 32} {
		spec := serSpec{colorID: SERColorMono, width: 2, height: 2, depth: depth,
			frames: [][]byte{make([]byte, 2 * 2 * 2)}}
		if _, err := ParseSER(buildSER(spec)); !errors.Is(err, ErrMalformedContainer) {
			t.Fatalf("depth %d: expected ErrMalformedContainer, got %v", depth, err)
		}
	}
}

func TestSERTimestampMissing(t *testing.T) {
	spec := serSpec{colorID: SERColorMono, width: 2, height: 2, depth: 8,
		frames: [][]byte{make([]byte, 4)}}
	ser, err := ParseSER(buildSER(spec))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := ser.Timestamp(); ok {
		t.Fatal("zero ticks must report no timestamp")
	}
}
