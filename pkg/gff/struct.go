package gff

import (
	"fmt"
	"iter"
	"slices"
)

// Field is one (label, type, value) triple owned by a struct.
type Field struct {
	Label string
	Type  FieldType
	Value any
}

// Struct is an ordered mapping from label to typed value.
//
// Labels are expected to be unique inside one struct; lookups treat the first
// match as authoritative.
type Struct struct {
	ID     int32
	fields []Field
}

// NewStruct returns an empty struct with the given struct id.
func NewStruct(id int32) *Struct {
	return &Struct{ID: id}
}

func (s *Struct) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

func (s *Struct) index(label string) int {
	if s == nil {
		return -1
	}
	for i := range s.fields {
		if s.fields[i].Label == label {
			return i
		}
	}
	return -1
}

// Get returns the first field with the given label.
func (s *Struct) Get(label string) (Field, bool) {
	i := s.index(label)
	if i < 0 {
		return Field{}, false
	}
	return s.fields[i], true
}

func (s *Struct) Exists(label string) bool {
	return s.index(label) >= 0
}

// Set inserts or replaces a field. A replaced field keeps its position.
func (s *Struct) Set(label string, t FieldType, v any) error {
	if err := checkLabel(label); err != nil {
		return err
	}
	if err := checkValue(t, v); err != nil {
		return fmt.Errorf("gff: field %q: %w", label, err)
	}
	s.set(label, t, v)
	return nil
}

func (s *Struct) set(label string, t FieldType, v any) {
	if i := s.index(label); i >= 0 {
		s.fields[i] = Field{Label: label, Type: t, Value: v}
		return
	}
	s.fields = append(s.fields, Field{Label: label, Type: t, Value: v})
}

// append adds a field without looking for an existing label. The decoder uses
// it so duplicate labels in a buffer survive as written.
func (s *Struct) append(f Field) {
	s.fields = append(s.fields, f)
}

func (s *Struct) Remove(label string) bool {
	i := s.index(label)
	if i < 0 {
		return false
	}
	s.fields = slices.Delete(s.fields, i, i+1)
	return true
}

// Fields returns the fields in order. The slice is a copy; values are shared.
func (s *Struct) Fields() []Field {
	if s == nil {
		return nil
	}
	return slices.Clone(s.fields)
}

// All yields the fields in order.
func (s *Struct) All() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		if s == nil {
			return
		}
		for _, f := range s.fields {
			if !yield(f) {
				return
			}
		}
	}
}

// Lookup returns the value of label only when it is stored as type t. It keeps
// "absent" and "present with another type" apart, which the Get* accessors
// deliberately do not.
func (s *Struct) Lookup(label string, t FieldType) (any, error) {
	f, ok := s.Get(label)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, label)
	}
	if f.Type != t {
		return nil, fmt.Errorf("%w: %q is %s, want %s", ErrTypeMismatch, label, f.Type, t)
	}
	return f.Value, nil
}

func acquire[T any](s *Struct, label string, t FieldType, def T) T {
	f, ok := s.Get(label)
	if !ok || f.Type != t {
		return def
	}
	v, ok := f.Value.(T)
	if !ok {
		return def
	}
	return v
}

// The Get* accessors return def when the label is absent or stored with a
// different type.

func (s *Struct) GetUInt8(label string, def uint8) uint8 {
	return acquire(s, label, TypeUInt8, def)
}

func (s *Struct) GetInt8(label string, def int8) int8 {
	return acquire(s, label, TypeInt8, def)
}

func (s *Struct) GetUInt16(label string, def uint16) uint16 {
	return acquire(s, label, TypeUInt16, def)
}

func (s *Struct) GetInt16(label string, def int16) int16 {
	return acquire(s, label, TypeInt16, def)
}

func (s *Struct) GetUInt32(label string, def uint32) uint32 {
	return acquire(s, label, TypeUInt32, def)
}

func (s *Struct) GetInt32(label string, def int32) int32 {
	return acquire(s, label, TypeInt32, def)
}

func (s *Struct) GetUInt64(label string, def uint64) uint64 {
	return acquire(s, label, TypeUInt64, def)
}

func (s *Struct) GetInt64(label string, def int64) int64 {
	return acquire(s, label, TypeInt64, def)
}

func (s *Struct) GetSingle(label string, def float32) float32 {
	return acquire(s, label, TypeSingle, def)
}

func (s *Struct) GetDouble(label string, def float64) float64 {
	return acquire(s, label, TypeDouble, def)
}

func (s *Struct) GetString(label string, def string) string {
	return acquire(s, label, TypeString, def)
}

func (s *Struct) GetResRef(label string, def ResRef) ResRef {
	return acquire(s, label, TypeResRef, def)
}

func (s *Struct) GetLocString(label string, def LocString) LocString {
	return acquire(s, label, TypeLocString, def)
}

func (s *Struct) GetBinary(label string, def []byte) []byte {
	return acquire(s, label, TypeBinary, def)
}

func (s *Struct) GetVector3(label string, def Vector3) Vector3 {
	return acquire(s, label, TypeVector3, def)
}

func (s *Struct) GetVector4(label string, def Vector4) Vector4 {
	return acquire(s, label, TypeVector4, def)
}

// GetStruct returns the nested struct, or a new empty generic struct when the
// label is absent or not a struct.
func (s *Struct) GetStruct(label string) *Struct {
	return acquire(s, label, TypeStruct, NewStruct(GenericStructID))
}

// GetList returns the nested list, or a new empty list.
func (s *Struct) GetList(label string) *List {
	return acquire(s, label, TypeList, &List{})
}

// GetBool reads a UInt8 flag, the convention record schemas use for booleans.
func (s *Struct) GetBool(label string, def bool) bool {
	var d uint8
	if def {
		d = 1
	}
	return s.GetUInt8(label, d) != 0
}

func (s *Struct) SetUInt8(label string, v uint8) error {
	return s.Set(label, TypeUInt8, v)
}

func (s *Struct) SetInt8(label string, v int8) error {
	return s.Set(label, TypeInt8, v)
}

func (s *Struct) SetUInt16(label string, v uint16) error {
	return s.Set(label, TypeUInt16, v)
}

func (s *Struct) SetInt16(label string, v int16) error {
	return s.Set(label, TypeInt16, v)
}

func (s *Struct) SetUInt32(label string, v uint32) error {
	return s.Set(label, TypeUInt32, v)
}

func (s *Struct) SetInt32(label string, v int32) error {
	return s.Set(label, TypeInt32, v)
}

func (s *Struct) SetUInt64(label string, v uint64) error {
	return s.Set(label, TypeUInt64, v)
}

func (s *Struct) SetInt64(label string, v int64) error {
	return s.Set(label, TypeInt64, v)
}

func (s *Struct) SetSingle(label string, v float32) error {
	return s.Set(label, TypeSingle, v)
}

func (s *Struct) SetDouble(label string, v float64) error {
	return s.Set(label, TypeDouble, v)
}

func (s *Struct) SetString(label string, v string) error {
	return s.Set(label, TypeString, v)
}

func (s *Struct) SetResRef(label string, v ResRef) error {
	return s.Set(label, TypeResRef, v)
}

func (s *Struct) SetLocString(label string, v LocString) error {
	return s.Set(label, TypeLocString, v)
}

func (s *Struct) SetBinary(label string, v []byte) error {
	return s.Set(label, TypeBinary, v)
}

func (s *Struct) SetVector3(label string, v Vector3) error {
	return s.Set(label, TypeVector3, v)
}

func (s *Struct) SetVector4(label string, v Vector4) error {
	return s.Set(label, TypeVector4, v)
}

func (s *Struct) SetStruct(label string, v *Struct) error {
	return s.Set(label, TypeStruct, v)
}

func (s *Struct) SetList(label string, v *List) error {
	return s.Set(label, TypeList, v)
}

func (s *Struct) SetBool(label string, v bool) error {
	var b uint8
	if v {
		b = 1
	}
	return s.SetUInt8(label, b)
}
