package gff

import (
	"encoding/binary"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Decode parses a complete GFF buffer. Any inconsistency is terminal: the
// caller gets a *DecodeError and no partial tree.
//
// Every struct index must be reached exactly once from the root. A struct
// referenced by two fields or list entries, including a cycle, is rejected
// as ErrCorruptOffset, which bounds decode work by the struct count.
func Decode(data []byte) (*Document, error) {
	d, err := newDecoder(data)
	if err != nil {
		return nil, err
	}
	root, err := d.decodeStruct(0, 0)
	if err != nil {
		return nil, err
	}
	return &Document{
		Type:    d.hdr.ContentType(),
		Version: d.hdr.VersionTag(),
		Root:    root,
	}, nil
}

// Open maps a GFF file read-only and decodes it. If mmap is unavailable it
// falls back to reading the file. The mapping is released before returning;
// the decoded tree owns copies of every value.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := st.Size()
	if size64 > int64(int(^uint(0)>>1)) {
		return nil, decodeErr(ErrMalformedHeader, 0, "file too large to index: %d bytes", size64)
	}
	size := int(size64)
	if size < HeaderSize {
		return nil, decodeErr(ErrMalformedHeader, 0, "file holds %d bytes, header needs %d", size, HeaderSize)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		doc, derr := Decode(data)
		if uerr := unix.Munmap(data); derr == nil && uerr != nil {
			return nil, uerr
		}
		return doc, derr
	}

	return OpenReaderAt(f, size64)
}

// OpenReaderAt loads and decodes a GFF buffer from a random-access reader.
func OpenReaderAt(r io.ReaderAt, size int64) (*Document, error) {
	if size < 0 || size > int64(int(^uint(0)>>1)) {
		return nil, decodeErr(ErrMalformedHeader, 0, "invalid size %d", size)
	}
	data := make([]byte, size)
	n, err := r.ReadAt(data, 0)
	if err != nil && !(err == io.EOF && int64(n) == size) {
		return nil, err
	}
	return Decode(data)
}

type decoder struct {
	data []byte
	hdr  Header

	sections [sectionCount][]byte
	bases    [sectionCount]uint64

	labels  []string
	visited []bool
}

func newDecoder(data []byte) (*decoder, error) {
	hdr, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	d := &decoder{data: data, hdr: hdr}
	for s := SectionStructs; s < sectionCount; s++ {
		if err := d.resolveSection(s); err != nil {
			return nil, err
		}
	}
	if hdr.Sections[SectionStructs].Count == 0 {
		return nil, decodeErr(ErrMalformedHeader, 8+8*uint64(SectionStructs)+4, "document has no root struct")
	}

	d.labels = make([]string, hdr.Sections[SectionLabels].Count)
	for i := range d.labels {
		d.labels[i] = decodeLabel(d.sections[SectionLabels][i*labelSize : (i+1)*labelSize])
	}
	d.visited = make([]bool, hdr.Sections[SectionStructs].Count)
	return d, nil
}

// resolveSection bounds one header section against the buffer. A section
// with a zero count is absent and its offset is never dereferenced.
func (d *decoder) resolveSection(s Section) error {
	ref := d.hdr.Sections[s]
	if ref.Count == 0 {
		return nil
	}
	field := 8 + 8*uint64(s)
	start := uint64(ref.Offset)
	if start < HeaderSize {
		return decodeErr(ErrCorruptOffset, field, "%s section starts inside the header (%d)", s, start)
	}
	size := uint64(ref.Count) * elemSize(s)
	end := start + size
	if end > uint64(len(d.data)) && (s == SectionFieldIndices || s == SectionListIndices) {
		// Some producers record the index arenas in bytes rather than entries.
		size = uint64(ref.Count)
		end = start + size
	}
	if end > uint64(len(d.data)) {
		return decodeErr(ErrTruncatedBuffer, field,
			"%s section [%d, %d) exceeds %d-byte buffer", s, start, end, len(d.data))
	}
	d.sections[s] = d.data[start:end]
	d.bases[s] = start
	return nil
}

func (d *decoder) u32(s Section, off uint64) (uint32, error) {
	sec := d.sections[s]
	if off+4 < off || off+4 > uint64(len(sec)) {
		return 0, decodeErr(ErrCorruptOffset, d.bases[s]+off,
			"read past end of %s section (%d bytes)", s, len(sec))
	}
	return binary.LittleEndian.Uint32(sec[off:]), nil
}

func (d *decoder) decodeStruct(idx uint32, from uint64) (*Struct, error) {
	if uint64(idx) >= uint64(len(d.visited)) {
		return nil, decodeErr(ErrCorruptOffset, from, "struct index %d out of range (%d structs)", idx, len(d.visited))
	}
	if d.visited[idx] {
		return nil, decodeErr(ErrCorruptOffset, from, "struct %d referenced more than once", idx)
	}
	d.visited[idx] = true

	entry := uint64(idx) * structEntrySize
	sec := d.sections[SectionStructs][entry : entry+structEntrySize]
	id := int32(binary.LittleEndian.Uint32(sec[0:]))
	dataOrOffset := binary.LittleEndian.Uint32(sec[4:])
	count := binary.LittleEndian.Uint32(sec[8:])

	s := NewStruct(id)
	switch {
	case count == 0:
		return s, nil
	case count == 1:
		f, err := d.decodeField(dataOrOffset, d.bases[SectionStructs]+entry+4)
		if err != nil {
			return nil, err
		}
		s.append(f)
		return s, nil
	}

	start := uint64(dataOrOffset)
	size := uint64(count) * 4
	if start+size > uint64(len(d.sections[SectionFieldIndices])) {
		return nil, decodeErr(ErrCorruptOffset, d.bases[SectionStructs]+entry+4,
			"struct %d field indices [%d, %d) outside field-indices section (%d bytes)",
			idx, start, start+size, len(d.sections[SectionFieldIndices]))
	}
	s.fields = make([]Field, 0, count)
	for i := range uint64(count) {
		pos := start + 4*i
		fi, err := d.u32(SectionFieldIndices, pos)
		if err != nil {
			return nil, err
		}
		f, err := d.decodeField(fi, d.bases[SectionFieldIndices]+pos)
		if err != nil {
			return nil, err
		}
		s.append(f)
	}
	return s, nil
}

func (d *decoder) decodeField(idx uint32, from uint64) (Field, error) {
	nFields := uint64(d.hdr.Sections[SectionFields].Count)
	if uint64(idx) >= nFields {
		return Field{}, decodeErr(ErrCorruptOffset, from, "field index %d out of range (%d fields)", idx, nFields)
	}
	entry := uint64(idx) * fieldEntrySize
	at := d.bases[SectionFields] + entry
	sec := d.sections[SectionFields][entry : entry+fieldEntrySize]
	t := FieldType(binary.LittleEndian.Uint32(sec[0:]))
	labelIdx := binary.LittleEndian.Uint32(sec[4:])
	dataOrOffset := binary.LittleEndian.Uint32(sec[8:])

	if !t.Valid() {
		return Field{}, decodeErr(ErrUnknownFieldType, at, "field %d has type %d", idx, uint32(t))
	}
	if uint64(labelIdx) >= uint64(len(d.labels)) {
		return Field{}, decodeErr(ErrCorruptOffset, at+4, "label index %d out of range (%d labels)", labelIdx, len(d.labels))
	}
	f := Field{Label: d.labels[labelIdx], Type: t}

	switch {
	case t.IsSimple():
		f.Value = decodeSimple(t, dataOrOffset)
	case t.IsComplex():
		p := payload{data: d.sections[SectionFieldData], base: d.bases[SectionFieldData]}
		v, err := decodeComplex(t, p, uint64(dataOrOffset))
		if err != nil {
			return Field{}, err
		}
		f.Value = v
	case t == TypeStruct:
		child, err := d.decodeStruct(dataOrOffset, at+8)
		if err != nil {
			return Field{}, err
		}
		f.Value = child
	case t == TypeList:
		l, err := d.decodeList(dataOrOffset, at+8)
		if err != nil {
			return Field{}, err
		}
		f.Value = l
	}
	return f, nil
}

// decodeList reads a count-prefixed block of struct indices at off, relative
// to the list-indices section.
func (d *decoder) decodeList(off uint32, from uint64) (*List, error) {
	start := uint64(off)
	sec := d.sections[SectionListIndices]
	if start+4 > uint64(len(sec)) {
		return nil, decodeErr(ErrCorruptOffset, from, "list offset %d outside list-indices section (%d bytes)", off, len(sec))
	}
	count, _ := d.u32(SectionListIndices, start)
	if start+4+uint64(count)*4 > uint64(len(sec)) {
		return nil, decodeErr(ErrCorruptOffset, d.bases[SectionListIndices]+start,
			"list of %d structs overruns list-indices section (%d bytes)", count, len(sec))
	}
	l := &List{}
	if count > 0 {
		l.structs = make([]*Struct, 0, count)
	}
	for i := range uint64(count) {
		pos := start + 4 + 4*i
		si, err := d.u32(SectionListIndices, pos)
		if err != nil {
			return nil, err
		}
		child, err := d.decodeStruct(si, d.bases[SectionListIndices]+pos)
		if err != nil {
			return nil, err
		}
		l.structs = append(l.structs, child)
	}
	return l, nil
}
