package dump

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/samcharles93/gff/pkg/gff"
)

// JSON writes the mirror of doc to w. A non-empty indent pretty-prints.
func JSON(w io.Writer, doc *gff.Document, indent string) error {
	enc := json.NewEncoder(w)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(FromDocument(doc))
}

// Marshal returns the compact JSON mirror of doc.
func Marshal(doc *gff.Document) ([]byte, error) {
	return json.Marshal(FromDocument(doc))
}
