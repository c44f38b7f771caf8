package astrovideo

import (
	"bytes"
	"strconv"
)

// RenderJSON mirrors RenderText's content as a stable, field-ordered JSON
// document: a creatingLibrary block plus one media object per report.
func RenderJSON(reports []Report) string {
	var buf bytes.Buffer
	if len(reports) == 1 {
		writeJSONReport(&buf, reports[0])
		return buf.String() + "\n"
	}
	buf.WriteString("[")
	for i, report := range reports {
		if i > 0 {
			buf.WriteString(",")
		}
		writeJSONReport(&buf, report)
	}
	buf.WriteString("]")
	return buf.String() + "\n"
}

func writeJSONReport(buf *bytes.Buffer, report Report) {
	buf.WriteString("{\"creatingLibrary\":{")
	writeJSONField(buf, "name", AppName, false)
	writeJSONField(buf, "version", FormatVersion(AppVersion), true)
	writeJSONField(buf, "url", AppURL, true)
	buf.WriteString("},\"media\":{")
	writeJSONField(buf, "@ref", report.Ref, false)
	buf.WriteString(",\"track\":[")
	writeJSONTrack(buf, report.General)
	for _, stream := range report.Streams {
		buf.WriteString(",")
		writeJSONTrack(buf, stream)
	}
	buf.WriteString("]}}")
}

func writeJSONTrack(buf *bytes.Buffer, stream Stream) {
	buf.WriteString("{")
	writeJSONField(buf, "@type", string(stream.Kind), false)
	for _, field := range stream.Fields {
		writeJSONField(buf, jsonFieldName(field.Name), field.Value, true)
	}
	buf.WriteString("}")
}

func writeJSONField(buf *bytes.Buffer, name, value string, comma bool) {
	if comma {
		buf.WriteString(",")
	}
	buf.WriteString(strconv.Quote(name))
	buf.WriteString(":")
	buf.WriteString(strconv.Quote(value))
}

func jsonFieldName(name string) string {
	switch name {
	case "Complete name":
		return "CompleteName"
	case "Format/Info":
		return "Format_Info"
	case "File size":
		return "FileSize"
	case "Frame count":
		return "FrameCount"
	case "Frame rate":
		return "FrameRate"
	case "Bit depth":
		return "BitDepth"
	case "Color coding":
		return "ColorCoding"
	case "Byte order":
		return "ByteOrder"
	case "Codec ID":
		return "CodecID"
	case "Recorded date":
		return "Recorded_Date"
	default:
		return name
	}
}
