package gff

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
)

// encoder walks a tree once, depth first, appending into one arena per
// section. Struct and field indices are assigned in emission order, so a
// parent always knows the index its next child will take.
type encoder struct {
	structs      arena
	fields       arena
	fieldData    arena
	fieldIndices arena
	listIndices  arena
	labels       *labelTable
	active       map[*Struct]struct{}

	structCount uint32
	fieldCount  uint32
}

// Encode serialises doc into a new buffer. Encoding stops at the first field
// whose value does not match its declared type; no partial buffer is returned.
func Encode(doc *Document) ([]byte, error) {
	if doc == nil || doc.Root == nil {
		return nil, errors.New("gff: nil document")
	}
	version := doc.Version
	if version == "" {
		version = DefaultVersion
	}
	if !slices.Contains(Versions, version) {
		return nil, fmt.Errorf("%w: unsupported version %q", ErrMalformedHeader, version)
	}
	if !ValidContentType(doc.Type) {
		return nil, fmt.Errorf("%w: content type %q is not 4 printable ASCII bytes", ErrMalformedHeader, doc.Type)
	}

	e := &encoder{labels: newLabelTable(), active: make(map[*Struct]struct{})}
	if err := e.encodeStruct(doc.Root, ""); err != nil {
		return nil, err
	}

	var h Header
	h.Type = typeTag(doc.Type)
	copy(h.Version[:], version)

	labels := e.labels.bytes()
	parts := [sectionCount][]byte{
		SectionStructs:      e.structs.bytes(),
		SectionFields:       e.fields.bytes(),
		SectionLabels:       labels,
		SectionFieldData:    e.fieldData.bytes(),
		SectionFieldIndices: e.fieldIndices.bytes(),
		SectionListIndices:  e.listIndices.bytes(),
	}

	total := uint64(HeaderSize)
	for s := SectionStructs; s < sectionCount; s++ {
		if total > math.MaxUint32 {
			return nil, fmt.Errorf("gff: encoded document exceeds 4 GiB")
		}
		h.Sections[s] = SectionRef{
			Offset: uint32(total),
			Count:  uint32(uint64(len(parts[s])) / elemSize(s)),
		}
		total += uint64(len(parts[s]))
	}
	if total > math.MaxUint32 {
		return nil, fmt.Errorf("gff: encoded document exceeds 4 GiB")
	}

	out := make([]byte, HeaderSize, total)
	if !encodeHeader(out, h) {
		return nil, errors.New("gff: encode header failed")
	}
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

// WriteTo encodes doc and writes it to w.
func WriteTo(w io.Writer, doc *Document) (int64, error) {
	data, err := Encode(doc)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// WriteFile encodes doc and replaces path with it. The buffer is written to a
// temporary file in the same directory and renamed into place, so readers
// never observe a half-written document.
func WriteFile(path string, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (e *encoder) encodeStruct(s *Struct, path string) error {
	if e.structCount == math.MaxUint32 {
		return fmt.Errorf("gff: %s: too many structs", pathOrRoot(path))
	}
	if _, ok := e.active[s]; ok {
		return fmt.Errorf("gff: %s: struct contains itself", pathOrRoot(path))
	}
	e.active[s] = struct{}{}
	defer delete(e.active, s)
	e.structCount++

	e.structs.u32(uint32(s.ID))
	switch n := len(s.fields); n {
	case 0:
		e.structs.u32(noneU32)
		e.structs.u32(0)
		return nil
	case 1:
		e.structs.u32(e.fieldCount)
		e.structs.u32(1)
		return e.encodeField(s.fields[0], path)
	default:
		block := e.fieldIndices.reserveU32(n)
		e.structs.u32(block)
		e.structs.u32(uint32(n))
		for i, f := range s.fields {
			e.fieldIndices.patchU32(block, i, e.fieldCount)
			if err := e.encodeField(f, path); err != nil {
				return err
			}
		}
		return nil
	}
}

func (e *encoder) encodeField(f Field, parent string) error {
	path := parent + "/" + f.Label
	if e.fieldCount == math.MaxUint32 {
		return fmt.Errorf("gff: %s: too many fields", path)
	}
	e.fieldCount++

	label, err := e.labels.intern(f.Label)
	if err != nil {
		return fmt.Errorf("gff: %s: %w", path, err)
	}
	if !f.Type.Valid() {
		return fmt.Errorf("gff: %s: %w: %d", path, ErrUnknownFieldType, uint32(f.Type))
	}
	e.fields.u32(uint32(f.Type))
	e.fields.u32(label)

	switch {
	case f.Type.IsSimple():
		slot, err := encodeSimple(f.Type, f.Value)
		if err != nil {
			return fmt.Errorf("gff: %s: %w", path, err)
		}
		e.fields.u32(slot)
		return nil

	case f.Type.IsComplex():
		off, err := encodeComplex(f.Type, f.Value, &e.fieldData)
		if err != nil {
			return fmt.Errorf("gff: %s: %w", path, err)
		}
		e.fields.u32(off)
		return nil

	case f.Type == TypeStruct:
		if err := checkValue(f.Type, f.Value); err != nil {
			return fmt.Errorf("gff: %s: %w", path, err)
		}
		// The child takes the next struct index when encodeStruct runs.
		e.fields.u32(e.structCount)
		return e.encodeStruct(f.Value.(*Struct), path)

	default:
		if err := checkValue(f.Type, f.Value); err != nil {
			return fmt.Errorf("gff: %s: %w", path, err)
		}
		l := f.Value.(*List)
		n := len(l.structs)
		e.fields.u32(e.listIndices.offset())
		e.listIndices.u32(uint32(n))
		block := e.listIndices.reserveU32(n)
		for i, child := range l.structs {
			if child == nil {
				return fmt.Errorf("gff: %s[%d]: %w: nil struct", path, i, ErrTypeMismatch)
			}
			e.listIndices.patchU32(block, i, e.structCount)
			if err := e.encodeStruct(child, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil
	}
}

func pathOrRoot(path string) string {
	if path == "" {
		return "root"
	}
	return path
}
