package gff

import "strings"

// Document is a decoded GFF tree together with its header tags.
type Document struct {
	// Type is the 4-character content tag, eg "UTC " or "DLG ".
	Type string
	// Version is one of Versions. Empty means DefaultVersion.
	Version string
	Root    *Struct
}

// New returns an empty document whose root is a generic struct.
func New(contentType string) *Document {
	return &Document{
		Type:    contentType,
		Version: DefaultVersion,
		Root:    NewStruct(GenericStructID),
	}
}

// ContentType returns the content tag without its space padding.
func (d *Document) ContentType() string {
	return strings.TrimRight(d.Type, " ")
}
