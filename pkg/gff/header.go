package gff

import (
	"encoding/binary"
	"slices"
)

// Section identifies one of the six header-addressed regions.
type Section int

const (
	SectionStructs Section = iota
	SectionFields
	SectionLabels
	SectionFieldData
	SectionFieldIndices
	SectionListIndices

	sectionCount
)

func (s Section) String() string {
	switch s {
	case SectionStructs:
		return "structs"
	case SectionFields:
		return "fields"
	case SectionLabels:
		return "labels"
	case SectionFieldData:
		return "field-data"
	case SectionFieldIndices:
		return "field-indices"
	case SectionListIndices:
		return "list-indices"
	default:
		return "section(?)"
	}
}

// SectionRef is one (offset, count) pair of the header.
type SectionRef struct {
	Offset uint32
	Count  uint32
}

// Header is the fixed 56-byte file header.
//
// Counts are element counts, except the field-data count which is a byte
// count. Offsets are absolute from the start of the buffer.
type Header struct {
	Type     [4]byte
	Version  [4]byte
	Sections [sectionCount]SectionRef
}

// Valid reports whether the header carries a recognised version tag and a
// printable content tag.
func (h *Header) Valid() bool {
	return validTypeTag(h.Type) && slices.Contains(Versions, string(h.Version[:]))
}

func validTypeTag(tag [4]byte) bool {
	for _, c := range tag {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

// ValidContentType reports whether s can be written as a content tag: at
// most 4 printable ASCII characters.
func ValidContentType(s string) bool {
	return len(s) <= 4 && validTypeTag(typeTag(s))
}

// ContentType returns the content tag with its space padding intact.
func (h *Header) ContentType() string { return string(h.Type[:]) }

// VersionTag returns the 4-byte version string.
func (h *Header) VersionTag() string { return string(h.Version[:]) }

func (h *Header) Section(s Section) SectionRef { return h.Sections[s] }

// elemSize is the byte width of one counted element in each section.
func elemSize(s Section) uint64 {
	switch s {
	case SectionStructs:
		return structEntrySize
	case SectionFields:
		return fieldEntrySize
	case SectionLabels:
		return labelSize
	case SectionFieldData:
		return 1
	default:
		return 4
	}
}

func encodeHeader(dst []byte, h Header) bool {
	if len(dst) < HeaderSize {
		return false
	}
	copy(dst[0:4], h.Type[:])
	copy(dst[4:8], h.Version[:])
	for i, s := range h.Sections {
		off := 8 + i*8
		binary.LittleEndian.PutUint32(dst[off:], s.Offset)
		binary.LittleEndian.PutUint32(dst[off+4:], s.Count)
	}
	return true
}

func decodeHeader(src []byte) (Header, bool) {
	var h Header
	if len(src) < HeaderSize {
		return h, false
	}
	copy(h.Type[:], src[0:4])
	copy(h.Version[:], src[4:8])
	for i := range h.Sections {
		off := 8 + i*8
		h.Sections[i] = SectionRef{
			Offset: binary.LittleEndian.Uint32(src[off:]),
			Count:  binary.LittleEndian.Uint32(src[off+4:]),
		}
	}
	return h, true
}

// ParseHeader decodes and validates the header at the start of data without
// materialising the tree.
func ParseHeader(data []byte) (Header, error) {
	h, ok := decodeHeader(data)
	if !ok {
		return h, decodeErr(ErrMalformedHeader, 0, "buffer holds %d bytes, header needs %d", len(data), HeaderSize)
	}
	if !h.Valid() {
		return h, decodeErr(ErrMalformedHeader, 0, "type %q version %q", h.Type[:], h.Version[:])
	}
	return h, nil
}

// typeTag pads or truncates a content type to its 4-byte tag.
func typeTag(s string) [4]byte {
	tag := [4]byte{' ', ' ', ' ', ' '}
	copy(tag[:], s)
	return tag
}

// SectionStat describes the resolved byte extent of one section.
type SectionStat struct {
	Section Section
	Offset  uint32
	Count   uint32
	Bytes   uint64
}

// Stats resolves the byte extent of each section named by h. It does not
// check the extents against a buffer.
func (h *Header) Stats() []SectionStat {
	out := make([]SectionStat, 0, sectionCount)
	for s := SectionStructs; s < sectionCount; s++ {
		ref := h.Sections[s]
		out = append(out, SectionStat{
			Section: s,
			Offset:  ref.Offset,
			Count:   ref.Count,
			Bytes:   uint64(ref.Count) * elemSize(s),
		})
	}
	return out
}
