// Package dump renders decoded GFF trees for people and tools: an ordered
// JSON-ready mirror, an indented text tree, and a structural diff.
//
// The mirror is one-way. Nothing in this package reads it back into a
// document.
package dump

import (
	"math"
	"strconv"

	"github.com/samcharles93/gff/pkg/gff"
)

// Document mirrors gff.Document.
type Document struct {
	Type    string `json:"type"`
	Version string `json:"version"`
	Root    *Node  `json:"root"`
}

// Node mirrors one struct. Fields keep their stored order.
type Node struct {
	ID     int32       `json:"id"`
	Fields []FieldNode `json:"fields"`
}

// FieldNode mirrors one field. Exactly one of Value, Struct and List is set.
type FieldNode struct {
	Label  string `json:"label"`
	Type   string `json:"type"`
	Value  any    `json:"value,omitempty"`
	Struct *Node  `json:"struct,omitempty"`
	List   []Node `json:"list,omitempty"`
}

type LocString struct {
	StringRef  int32       `json:"string_ref"`
	Substrings []Substring `json:"substrings,omitempty"`
}

type Substring struct {
	Language string `json:"language"`
	Gender   string `json:"gender"`
	Text     string `json:"text"`
}

// FromDocument builds the mirror of doc. A nil document or root yields an
// empty root node.
func FromDocument(doc *gff.Document) Document {
	if doc == nil {
		return Document{Root: &Node{ID: gff.GenericStructID}}
	}
	return Document{
		Type:    doc.ContentType(),
		Version: doc.Version,
		Root:    fromStruct(doc.Root),
	}
}

func fromStruct(s *gff.Struct) *Node {
	if s == nil {
		return &Node{ID: gff.GenericStructID}
	}
	n := &Node{ID: s.ID, Fields: make([]FieldNode, 0, s.Len())}
	for f := range s.All() {
		n.Fields = append(n.Fields, fromField(f))
	}
	return n
}

func fromField(f gff.Field) FieldNode {
	fn := FieldNode{Label: f.Label, Type: f.Type.String()}
	switch v := f.Value.(type) {
	case *gff.Struct:
		fn.Struct = fromStruct(v)
	case *gff.List:
		fn.List = make([]Node, 0, v.Len())
		for _, s := range v.All() {
			fn.List = append(fn.List, *fromStruct(s))
		}
	case gff.LocString:
		ls := LocString{StringRef: v.StringRef}
		for _, sub := range v.Substrings {
			ls.Substrings = append(ls.Substrings, Substring{
				Language: sub.Language.String(),
				Gender:   sub.Gender.String(),
				Text:     sub.Text,
			})
		}
		fn.Value = ls
	case gff.ResRef:
		fn.Value = string(v)
	case float32:
		fn.Value = float(float64(v), 32)
	case float64:
		fn.Value = float(v, 64)
	case gff.Vector3:
		fn.Value = []any{float(float64(v.X), 32), float(float64(v.Y), 32), float(float64(v.Z), 32)}
	case gff.Vector4:
		fn.Value = []any{float(float64(v.X), 32), float(float64(v.Y), 32), float(float64(v.Z), 32), float(float64(v.W), 32)}
	default:
		fn.Value = v
	}
	return fn
}

// float keeps finite values numeric and spells out NaN and the infinities,
// which JSON cannot carry.
func float(v float64, bits int) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, bits)
	}
	if bits == 32 {
		return float32(v)
	}
	return v
}
