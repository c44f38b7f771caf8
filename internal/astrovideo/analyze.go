package astrovideo

import (
	"fmt"
	"os"
	"strconv"
)

// Open sniffs the container family and returns a frame source for it. All
// structural failures abort the open; no partial source is ever returned.
func Open(path string) (Video, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	sniff := data
	if len(sniff) > maxSniffBytes {
		sniff = sniff[:maxSniffBytes]
	}
	format := DetectFormat(sniff)
	switch format {
	case "AVI":
		avi, err := ParseAVI(data)
		if err != nil {
			return nil, format, err
		}
		return NewAVIVideo(avi), format, nil
	case "SER":
		ser, err := ParseSER(data)
		if err != nil {
			return nil, format, err
		}
		return NewSERVideo(ser), format, nil
	default:
		return nil, format, fmt.Errorf("%w: unrecognized container signature", ErrMalformedContainer)
	}
}

// AnalyzeFile opens a capture file and builds a metadata report.
func AnalyzeFile(path string) (Report, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return Report{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, err
	}
	sniff := data
	if len(sniff) > maxSniffBytes {
		sniff = sniff[:maxSniffBytes]
	}

	general := Stream{Kind: StreamGeneral}
	general.Fields = append(general.Fields,
		Field{Name: "Complete name", Value: path},
		Field{Name: "File size", Value: formatBytes(stat.Size())},
	)

	switch DetectFormat(sniff) {
	case "AVI":
		avi, err := ParseAVI(data)
		if err != nil {
			return Report{}, fmt.Errorf("%s: %w", path, err)
		}
		return buildAVIReport(path, general, avi), nil
	case "SER":
		ser, err := ParseSER(data)
		if err != nil {
			return Report{}, fmt.Errorf("%s: %w", path, err)
		}
		return buildSERReport(path, general, ser), nil
	default:
		return Report{}, fmt.Errorf("%s: %w: unrecognized container signature", path, ErrMalformedContainer)
	}
}

func AnalyzeFiles(paths []string) ([]Report, error) {
	reports := make([]Report, 0, len(paths))
	for _, path := range paths {
		report, err := AnalyzeFile(path)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func buildAVIReport(path string, general Stream, avi *AVIFile) Report {
	main := avi.MainHeader()
	stream := avi.StreamHeader()
	format := avi.Format()

	general.Fields = insertFormat(general.Fields, "AVI", "Audio Video Interleave")
	if main.MicroSecPerFrame > 0 {
		duration := float64(main.MicroSecPerFrame) * float64(avi.FrameCount()) / 1e6
		general.Fields = appendField(general.Fields, "Duration", formatDuration(duration))
	}

	fields := []Field{}
	fields = appendField(fields, "Codec ID", stream.FCCHandler.String())
	fields = appendField(fields, "Width", formatPixels(uint64(main.Width)))
	fields = appendField(fields, "Height", formatPixels(uint64(main.Height)))
	fields = appendField(fields, "Bit depth", formatBitDepth(uint32(format.BitCount)/3))
	fields = appendField(fields, "Color coding", "Packed BGR")
	// Frame count comes from the built index; the avih TotalFrames field can
	// legitimately disagree when padding or index chunks are interleaved.
	fields = appendField(fields, "Frame count", strconv.Itoa(avi.FrameCount()))
	if stream.Scale > 0 {
		fields = appendField(fields, "Frame rate", formatFrameRate(float64(stream.Rate)/float64(stream.Scale)))
	}
	return Report{
		Ref:     path,
		General: general,
		Streams: []Stream{{Kind: StreamVideo, Fields: fields}},
	}
}

func buildSERReport(path string, general Stream, ser *SERFile) Report {
	header := ser.Header()
	video := NewSERVideo(ser)

	general.Fields = insertFormat(general.Fields, "SER", "Lucam frame sequence")
	general.Fields = appendField(general.Fields, "Observer", header.Observer)
	general.Fields = appendField(general.Fields, "Instrument", header.Instrument)
	general.Fields = appendField(general.Fields, "Telescope", header.Telescope)
	if timestamp, ok := ser.Timestamp(); ok {
		general.Fields = appendField(general.Fields, "Recorded date", timestamp.Format("2006-01-02 15:04:05 UTC"))
	}

	byteOrder := "Little-endian"
	if header.LittleEndian == 0 {
		byteOrder = "Big-endian"
	}
	fields := []Field{}
	fields = appendField(fields, "Width", formatPixels(uint64(header.ImageWidth)))
	fields = appendField(fields, "Height", formatPixels(uint64(header.ImageHeight)))
	fields = appendField(fields, "Bit depth", formatBitDepth(header.PixelDepthPerPlane))
	fields = appendField(fields, "Color coding", video.Bayer().String())
	if video.BytesPerPixel() == 2 {
		fields = appendField(fields, "Byte order", byteOrder)
	}
	fields = appendField(fields, "Frame count", strconv.Itoa(ser.FrameCount()))
	return Report{
		Ref:     path,
		General: general,
		Streams: []Stream{{Kind: StreamVideo, Fields: fields}},
	}
}

// insertFormat places Format/Format info right after Complete name so every
// report leads with the container identity.
func insertFormat(fields []Field, format, info string) []Field {
	out := make([]Field, 0, len(fields)+2)
	out = append(out, fields[0], Field{Name: "Format", Value: format}, Field{Name: "Format/Info", Value: info})
	return append(out, fields[1:]...)
}
