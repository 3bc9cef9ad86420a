package gff

import (
	"iter"
	"slices"
)

// List is an ordered sequence of sibling structs.
type List struct {
	structs []*Struct
}

// NewList returns a list holding the given structs in order.
func NewList(structs ...*Struct) *List {
	return &List{structs: slices.Clone(structs)}
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.structs)
}

// Append adds s at the end of the list and returns it for chaining.
func (l *List) Append(s *Struct) *Struct {
	if s == nil {
		s = NewStruct(GenericStructID)
	}
	l.structs = append(l.structs, s)
	return s
}

// At returns the struct at index i, or nil when i is out of range.
func (l *List) At(i int) *Struct {
	if l == nil || i < 0 || i >= len(l.structs) {
		return nil
	}
	return l.structs[i]
}

func (l *List) Remove(i int) bool {
	if l == nil || i < 0 || i >= len(l.structs) {
		return false
	}
	l.structs = slices.Delete(l.structs, i, i+1)
	return true
}

// All yields each child struct with its index.
func (l *List) All() iter.Seq2[int, *Struct] {
	return func(yield func(int, *Struct) bool) {
		if l == nil {
			return
		}
		for i, s := range l.structs {
			if !yield(i, s) {
				return
			}
		}
	}
}
