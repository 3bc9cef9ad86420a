package gff

import (
	"encoding/binary"
	"fmt"
	"math"
)

// encodeSimple packs a simple value into the 4-byte data slot of its field
// entry. Signed types are sign-extended, so -1 becomes 0xFFFFFFFF.
func encodeSimple(t FieldType, v any) (uint32, error) {
	if err := checkValue(t, v); err != nil {
		return 0, err
	}
	switch t {
	case TypeUInt8:
		return uint32(v.(uint8)), nil
	case TypeInt8:
		return uint32(int32(v.(int8))), nil
	case TypeUInt16:
		return uint32(v.(uint16)), nil
	case TypeInt16:
		return uint32(int32(v.(int16))), nil
	case TypeUInt32:
		return v.(uint32), nil
	case TypeInt32:
		return uint32(v.(int32)), nil
	case TypeSingle:
		return math.Float32bits(v.(float32)), nil
	default:
		return 0, fmt.Errorf("%w: %s is not a simple type", ErrTypeMismatch, t)
	}
}

// decodeSimple unpacks a data slot. Narrow types keep the low bits, so a slot
// written as the all-ones -1 convention (0xFFFFFFFF) restores to the same
// value as the zero-extended form.
func decodeSimple(t FieldType, slot uint32) any {
	switch t {
	case TypeUInt8:
		return uint8(slot)
	case TypeInt8:
		return int8(slot)
	case TypeUInt16:
		return uint16(slot)
	case TypeInt16:
		return int16(slot)
	case TypeUInt32:
		return slot
	case TypeInt32:
		return int32(slot)
	case TypeSingle:
		return math.Float32frombits(slot)
	}
	return nil
}

// encodeComplex appends the payload of a complex value to the field-data
// arena and returns the arena offset it starts at.
func encodeComplex(t FieldType, v any, a *arena) (uint32, error) {
	if err := checkValue(t, v); err != nil {
		return 0, err
	}
	size := complexSize(t, v)
	if !a.fits(size) {
		return 0, fmt.Errorf("gff: field data exceeds 4 GiB")
	}
	off := a.offset()
	switch t {
	case TypeUInt64:
		a.u64(v.(uint64))
	case TypeInt64:
		a.u64(uint64(v.(int64)))
	case TypeDouble:
		a.u64(math.Float64bits(v.(float64)))
	case TypeString:
		s := v.(string)
		a.u32(uint32(len(s)))
		a.raw([]byte(s))
	case TypeBinary:
		b := v.([]byte)
		a.u32(uint32(len(b)))
		a.raw(b)
	case TypeResRef:
		r := v.(ResRef)
		a.u8(uint8(len(r)))
		a.raw([]byte(r))
	case TypeLocString:
		l := v.(LocString)
		a.u32(uint32(size - 4))
		a.u32(uint32(l.StringRef))
		a.u32(uint32(len(l.Substrings)))
		for _, s := range l.Substrings {
			a.u32(s.ID())
			a.u32(uint32(len(s.Text)))
			a.raw([]byte(s.Text))
		}
	case TypeVector4:
		vec := v.(Vector4)
		a.f32(vec.X)
		a.f32(vec.Y)
		a.f32(vec.Z)
		a.f32(vec.W)
	case TypeVector3:
		vec := v.(Vector3)
		a.f32(vec.X)
		a.f32(vec.Y)
		a.f32(vec.Z)
	default:
		return 0, fmt.Errorf("%w: %s is not a complex type", ErrTypeMismatch, t)
	}
	return off, nil
}

// complexSize is the encoded payload size of a value already checked
// against t.
func complexSize(t FieldType, v any) int {
	switch t {
	case TypeUInt64, TypeInt64, TypeDouble:
		return 8
	case TypeString:
		return 4 + len(v.(string))
	case TypeBinary:
		return 4 + len(v.([]byte))
	case TypeResRef:
		return 1 + len(v.(ResRef))
	case TypeLocString:
		n := 12
		for _, s := range v.(LocString).Substrings {
			n += 8 + len(s.Text)
		}
		return n
	case TypeVector4:
		return 16
	case TypeVector3:
		return 12
	}
	return 0
}

// payload is a bounds-checked view of the field-data section. base is the
// section's absolute offset, used only for error reporting.
type payload struct {
	data []byte
	base uint64
}

func (p payload) slice(off uint64, n uint64) ([]byte, error) {
	end := off + n
	if end < off || end > uint64(len(p.data)) {
		return nil, decodeErr(ErrCorruptOffset, p.base+off,
			"%d-byte read overruns field data (%d bytes)", n, len(p.data))
	}
	return p.data[off:end], nil
}

func (p payload) u32(off uint64) (uint32, error) {
	b, err := p.slice(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (p payload) u64(off uint64) (uint64, error) {
	b, err := p.slice(off, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (p payload) f32s(off uint64, n int) ([]float32, error) {
	b, err := p.slice(off, uint64(4*n))
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return out, nil
}

// decodeComplex reads the payload of a complex field starting at off,
// relative to the field-data section.
func decodeComplex(t FieldType, p payload, off uint64) (any, error) {
	switch t {
	case TypeUInt64:
		return p.u64(off)
	case TypeInt64:
		v, err := p.u64(off)
		return int64(v), err
	case TypeDouble:
		v, err := p.u64(off)
		return math.Float64frombits(v), err
	case TypeString:
		n, err := p.u32(off)
		if err != nil {
			return nil, err
		}
		b, err := p.slice(off+4, uint64(n))
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case TypeBinary:
		n, err := p.u32(off)
		if err != nil {
			return nil, err
		}
		b, err := p.slice(off+4, uint64(n))
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), b...), nil
	case TypeResRef:
		nb, err := p.slice(off, 1)
		if err != nil {
			return nil, err
		}
		b, err := p.slice(off+1, uint64(nb[0]))
		if err != nil {
			return nil, err
		}
		return ResRef(b), nil
	case TypeLocString:
		return decodeLocString(p, off)
	case TypeVector4:
		f, err := p.f32s(off, 4)
		if err != nil {
			return nil, err
		}
		return Vector4{X: f[0], Y: f[1], Z: f[2], W: f[3]}, nil
	case TypeVector3:
		f, err := p.f32s(off, 3)
		if err != nil {
			return nil, err
		}
		return Vector3{X: f[0], Y: f[1], Z: f[2]}, nil
	}
	return nil, decodeErr(ErrUnknownFieldType, p.base+off, "%s has no field-data payload", t)
}

func decodeLocString(p payload, off uint64) (LocString, error) {
	total, err := p.u32(off)
	if err != nil {
		return LocString{}, err
	}
	// Substrings must stay inside the declared total size.
	body, err := p.slice(off+4, uint64(total))
	if err != nil {
		return LocString{}, err
	}
	inner := payload{data: body, base: p.base + off + 4}

	ref, err := inner.u32(0)
	if err != nil {
		return LocString{}, err
	}
	count, err := inner.u32(4)
	if err != nil {
		return LocString{}, err
	}
	// Each substring needs at least 8 bytes; reject counts the body cannot hold
	// before allocating.
	if uint64(count)*8 > uint64(len(body)) {
		return LocString{}, decodeErr(ErrCorruptOffset, inner.base+4,
			"%d substrings do not fit in %d bytes", count, len(body))
	}

	l := LocString{StringRef: int32(ref)}
	if count == 0 {
		return l, nil
	}
	l.Substrings = make([]Substring, 0, count)
	pos := uint64(8)
	for range count {
		id, err := inner.u32(pos)
		if err != nil {
			return LocString{}, err
		}
		if id>>16 != 0 {
			return LocString{}, decodeErr(ErrCorruptOffset, inner.base+pos,
				"substring id %#x has bits above language and gender", id)
		}
		n, err := inner.u32(pos + 4)
		if err != nil {
			return LocString{}, err
		}
		text, err := inner.slice(pos+8, uint64(n))
		if err != nil {
			return LocString{}, err
		}
		l.Substrings = append(l.Substrings, substringFromID(id, string(text)))
		pos += 8 + uint64(n)
	}
	return l, nil
}
