package astrovideo

type StreamKind string

const (
	StreamGeneral StreamKind = "General"
	StreamVideo   StreamKind = "Video"
)

type Field struct {
	Name  string
	Value string
}

type Stream struct {
	Kind   StreamKind
	Fields []Field
}

type Report struct {
	Ref     string
	General Stream
	Streams []Stream
}

func findField(fields []Field, name string) string {
	for _, field := range fields {
		if field.Name == name {
			return field.Value
		}
	}
	return ""
}

func appendField(fields []Field, name, value string) []Field {
	if value == "" {
		return fields
	}
	return append(fields, Field{Name: name, Value: value})
}
