package dump

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/samcharles93/gff/pkg/gff"
)

// Text writes doc as an indented tree, one field per line:
//
//	UTC V3.2
//	struct id=-1 fields=2
//	  Tag String = "nw_door"
//	  ItemList List len=1
//	    [0] struct id=0 fields=0
func Text(w io.Writer, doc *gff.Document) error {
	bw := bufio.NewWriter(w)
	m := FromDocument(doc)
	fmt.Fprintf(bw, "%s %s\n", m.Type, m.Version)
	writeNode(bw, m.Root, "struct", 0)
	return bw.Flush()
}

func writeNode(w *bufio.Writer, n *Node, head string, depth int) {
	pad := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s id=%d fields=%d\n", pad, head, n.ID, len(n.Fields))
	for _, f := range n.Fields {
		writeField(w, f, depth+1)
	}
}

func writeField(w *bufio.Writer, f FieldNode, depth int) {
	pad := strings.Repeat("  ", depth)
	switch {
	case f.Struct != nil:
		writeNode(w, f.Struct, f.Label+" Struct", depth)
	case f.Type == gff.TypeList.String():
		fmt.Fprintf(w, "%s%s List len=%d\n", pad, f.Label, len(f.List))
		for i := range f.List {
			writeNode(w, &f.List[i], fmt.Sprintf("[%d] struct", i), depth+1)
		}
	default:
		fmt.Fprintf(w, "%s%s %s = %s\n", pad, f.Label, f.Type, formatValue(f.Value))
	}
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case []byte:
		if len(v) > 16 {
			return fmt.Sprintf("<%d bytes> % x ...", len(v), v[:16])
		}
		return fmt.Sprintf("<%d bytes> % x", len(v), v)
	case LocString:
		var b strings.Builder
		fmt.Fprintf(&b, "ref=%d", v.StringRef)
		for _, s := range v.Substrings {
			fmt.Fprintf(&b, " %s/%s:%q", s.Language, s.Gender, s.Text)
		}
		return b.String()
	default:
		return fmt.Sprint(v)
	}
}
