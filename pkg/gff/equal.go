package gff

import (
	"bytes"
	"math"
)

// Equal reports whether two trees hold the same struct ids, labels, types and
// values in the same order. Floats compare by bit pattern so NaN payloads
// survive a round trip check.
func Equal(a, b *Struct) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ID != b.ID || len(a.fields) != len(b.fields) {
		return false
	}
	for i := range a.fields {
		fa, fb := a.fields[i], b.fields[i]
		if fa.Label != fb.Label || fa.Type != fb.Type {
			return false
		}
		if !valueEqual(fa.Type, fa.Value, fb.Value) {
			return false
		}
	}
	return true
}

func valueEqual(t FieldType, a, b any) bool {
	switch t {
	case TypeSingle:
		x, ok1 := a.(float32)
		y, ok2 := b.(float32)
		return ok1 && ok2 && math.Float32bits(x) == math.Float32bits(y)
	case TypeDouble:
		x, ok1 := a.(float64)
		y, ok2 := b.(float64)
		return ok1 && ok2 && math.Float64bits(x) == math.Float64bits(y)
	case TypeBinary:
		x, ok1 := a.([]byte)
		y, ok2 := b.([]byte)
		return ok1 && ok2 && bytes.Equal(x, y)
	case TypeLocString:
		x, ok1 := a.(LocString)
		y, ok2 := b.(LocString)
		return ok1 && ok2 && x.Equal(y)
	case TypeStruct:
		x, ok1 := a.(*Struct)
		y, ok2 := b.(*Struct)
		return ok1 && ok2 && Equal(x, y)
	case TypeList:
		x, ok1 := a.(*List)
		y, ok2 := b.(*List)
		if !ok1 || !ok2 || x.Len() != y.Len() {
			return false
		}
		for i := range x.Len() {
			if !Equal(x.At(i), y.At(i)) {
				return false
			}
		}
		return true
	case TypeVector3:
		x, ok1 := a.(Vector3)
		y, ok2 := b.(Vector3)
		return ok1 && ok2 && vecBits(x.X, x.Y, x.Z) == vecBits(y.X, y.Y, y.Z)
	case TypeVector4:
		x, ok1 := a.(Vector4)
		y, ok2 := b.(Vector4)
		return ok1 && ok2 && vecBits(x.X, x.Y, x.Z, x.W) == vecBits(y.X, y.Y, y.Z, y.W)
	default:
		return a == b
	}
}

func vecBits(f ...float32) [4]uint32 {
	var out [4]uint32
	for i, v := range f {
		out[i] = math.Float32bits(v)
	}
	return out
}
