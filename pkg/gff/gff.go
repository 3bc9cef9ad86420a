// Package gff implements the Generic File Format container.
//
// A GFF buffer stores a tree of typed structs, lists and scalar fields in six
// offset-linked sections behind a fixed 56-byte header. The tree is decoded
// into memory as a whole and re-encoded from scratch after any edit; there is
// no in-place patching of an encoded buffer.
package gff

import "fmt"

// GFF global constants must never change.
const (
	// HeaderSize is the fixed size of the file header.
	HeaderSize = 56

	structEntrySize = 12
	fieldEntrySize  = 12
	labelSize       = 16

	// MaxLabelLen is the longest label that fits a label array slot.
	MaxLabelLen = labelSize
	// MaxResRefLen is the longest resource name a ResRef field may carry.
	MaxResRefLen = 16

	// GenericStructID marks an untyped struct. It is encoded as 0xFFFFFFFF.
	GenericStructID int32 = -1

	// DefaultVersion is written when a document does not name one.
	DefaultVersion = "V3.2"

	noneU32 uint32 = 0xFFFFFFFF
)

// Versions lists every version tag the decoder accepts. Only V3.2 has its own
// layout; the later tags only change header semantics outside this package.
var Versions = []string{"V3.2", "V3.3", "V4.0", "V4.1"}

// FieldType is the on-disk type tag of a field entry.
type FieldType uint32

const (
	TypeUInt8     FieldType = 0
	TypeInt8      FieldType = 1
	TypeUInt16    FieldType = 2
	TypeInt16     FieldType = 3
	TypeUInt32    FieldType = 4
	TypeInt32     FieldType = 5
	TypeUInt64    FieldType = 6
	TypeInt64     FieldType = 7
	TypeSingle    FieldType = 8
	TypeDouble    FieldType = 9
	TypeString    FieldType = 10
	TypeResRef    FieldType = 11
	TypeLocString FieldType = 12
	TypeBinary    FieldType = 13
	TypeStruct    FieldType = 14
	TypeList      FieldType = 15
	TypeVector4   FieldType = 16
	TypeVector3   FieldType = 17
)

func (t FieldType) String() string {
	switch t {
	case TypeUInt8:
		return "UInt8"
	case TypeInt8:
		return "Int8"
	case TypeUInt16:
		return "UInt16"
	case TypeInt16:
		return "Int16"
	case TypeUInt32:
		return "UInt32"
	case TypeInt32:
		return "Int32"
	case TypeUInt64:
		return "UInt64"
	case TypeInt64:
		return "Int64"
	case TypeSingle:
		return "Single"
	case TypeDouble:
		return "Double"
	case TypeString:
		return "String"
	case TypeResRef:
		return "ResRef"
	case TypeLocString:
		return "LocString"
	case TypeBinary:
		return "Binary"
	case TypeStruct:
		return "Struct"
	case TypeList:
		return "List"
	case TypeVector4:
		return "Vector4"
	case TypeVector3:
		return "Vector3"
	default:
		return fmt.Sprintf("type(%d)", uint32(t))
	}
}

// Valid reports whether t is one of the 18 defined field types.
func (t FieldType) Valid() bool {
	return t <= TypeVector3
}

// IsSimple reports whether values of type t live inline in the field entry.
func (t FieldType) IsSimple() bool {
	switch t {
	case TypeUInt8, TypeInt8, TypeUInt16, TypeInt16, TypeUInt32, TypeInt32, TypeSingle:
		return true
	}
	return false
}

// IsComplex reports whether values of type t live in the field-data arena.
func (t FieldType) IsComplex() bool {
	switch t {
	case TypeUInt64, TypeInt64, TypeDouble, TypeString, TypeResRef,
		TypeLocString, TypeBinary, TypeVector4, TypeVector3:
		return true
	}
	return false
}

// ParseFieldType resolves a type name as returned by FieldType.String.
func ParseFieldType(name string) (FieldType, bool) {
	for t := TypeUInt8; t <= TypeVector3; t++ {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}
