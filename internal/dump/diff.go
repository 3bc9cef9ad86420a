package dump

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/samcharles93/gff/pkg/gff"
)

// Diff reports the structural differences between two documents as a
// (-a +b) listing. It is empty when the trees are equal.
func Diff(a, b *gff.Document) string {
	return cmp.Diff(FromDocument(a), FromDocument(b), cmpopts.EquateEmpty())
}
