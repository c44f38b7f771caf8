package astrovideo

import (
	"encoding/binary"
	"fmt"
	"os"
)

// FourCC is a four-character chunk or list identifier.
type FourCC [4]byte

func fourCC(s string) FourCC {
	var id FourCC
	copy(id[:], s)
	return id
}

func (id FourCC) String() string {
	for _, b := range id {
		if b < 0x20 || b > 0x7e {
			return fmt.Sprintf("%x", id[:])
		}
	}
	return string(id[:])
}

// Entry is one node of the chunk tree: either a list with children or a
// chunk pointing at its payload byte range.
type Entry interface {
	isEntry()
}

// ListMeta is a LIST (or the top-level RIFF form) with a type tag and its
// children in file order.
type ListMeta struct {
	ListType FourCC
	Children []Entry
}

// ChunkMeta is a leaf chunk. DataOffset/DataSize locate the payload within
// the file; ChunkSize is the declared size before padding.
type ChunkMeta struct {
	ChunkID    FourCC
	ChunkSize  int64
	DataOffset int64
	DataSize   int64
}

func (*ListMeta) isEntry()  {}
func (*ChunkMeta) isEntry() {}

// RIFFFile holds the raw bytes of a RIFF container. Entries and frame
// descriptors index into it and must not outlive it.
type RIFFFile struct {
	data     []byte
	formType FourCC
}

const riffHeaderSize = 12

var fourccLIST = fourCC("LIST")

func OpenRIFF(path string) (*RIFFFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewRIFFReader(data)
}

func NewRIFFReader(data []byte) (*RIFFFile, error) {
	if len(data) < riffHeaderSize {
		return nil, fmt.Errorf("%w: file shorter than RIFF header", ErrMalformedContainer)
	}
	if string(data[0:4]) != "RIFF" {
		return nil, fmt.Errorf("%w: no RIFF signature", ErrMalformedContainer)
	}
	declared := int64(binary.LittleEndian.Uint32(data[4:8]))
	if declared+8 > int64(len(data)) {
		return nil, fmt.Errorf("%w: declared RIFF size %d exceeds file size %d", ErrMalformedContainer, declared+8, len(data))
	}
	var form FourCC
	copy(form[:], data[8:12])
	return &RIFFFile{data: data, formType: form}, nil
}

func (r *RIFFFile) FormType() FourCC {
	return r.formType
}

func (r *RIFFFile) Size() int64 {
	return int64(len(r.data))
}

// Bytes returns the payload range [offset, offset+size). The caller must
// stay within a range handed out via a ChunkMeta.
func (r *RIFFFile) Bytes(offset, size int64) []byte {
	return r.data[offset : offset+size]
}

// ReadEntries parses the top-level entries of the container into a tree.
func (r *RIFFFile) ReadEntries() ([]Entry, error) {
	end := riffHeaderSize + int64(binary.LittleEndian.Uint32(r.data[4:8])) - 4
	return r.readEntries(riffHeaderSize, end)
}

// readEntries walks siblings in [offset, end). Odd-sized chunks are
// followed by one pad byte which counts toward the next sibling's offset
// but not toward the chunk's own size.
func (r *RIFFFile) readEntries(offset, end int64) ([]Entry, error) {
	entries := []Entry{}
	for offset < end {
		if offset+8 > end {
			return nil, fmt.Errorf("%w: truncated chunk header at offset %d", ErrMalformedContainer, offset)
		}
		var id FourCC
		copy(id[:], r.data[offset:offset+4])
		size := int64(binary.LittleEndian.Uint32(r.data[offset+4 : offset+8]))
		dataStart := offset + 8
		dataEnd := dataStart + size
		if dataEnd > end {
			return nil, fmt.Errorf("%w: chunk '%s' at offset %d declares %d bytes past end of container", ErrMalformedContainer, id, offset, size)
		}
		if id == fourccLIST {
			if size < 4 {
				return nil, fmt.Errorf("%w: list at offset %d too small for a type tag", ErrMalformedContainer, offset)
			}
			var listType FourCC
			copy(listType[:], r.data[dataStart:dataStart+4])
			children, err := r.readEntries(dataStart+4, dataEnd)
			if err != nil {
				return nil, err
			}
			entries = append(entries, &ListMeta{ListType: listType, Children: children})
		} else {
			entries = append(entries, &ChunkMeta{
				ChunkID:    id,
				ChunkSize:  size,
				DataOffset: dataStart,
				DataSize:   size,
			})
		}
		offset = dataEnd + size%2
	}
	return entries, nil
}
