// Package resource loads GFF documents on behalf of higher layers and turns
// low-level decode diagnostics into resource-level failures.
package resource

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/samcharles93/gff/internal/logger"
	"github.com/samcharles93/gff/pkg/gff"
)

var (
	ErrCorruptResource     = errors.New("corrupt resource")
	ErrUnsupportedResource = errors.New("unsupported resource")
)

// Error is returned for a resource that could not be used. It matches
// ErrCorruptResource or ErrUnsupportedResource with errors.Is, and the
// underlying *gff.DecodeError, when there is one, with errors.As.
type Error struct {
	Name string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	return e.Name + ": " + e.Kind.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Loader decodes GFF resources.
type Loader struct {
	// Expect is the content tag every loaded document must carry, eg "UTC".
	// Empty accepts any tag.
	Expect string
	Logger logger.Logger
}

func (l *Loader) log() logger.Logger {
	if l.Logger == nil {
		return logger.Discard()
	}
	return l.Logger
}

// Load opens and decodes the file at path.
func (l *Loader) Load(ctx context.Context, path string) (*gff.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := gff.Open(path)
	if err != nil {
		return nil, l.fail(path, err)
	}
	return l.accept(path, doc)
}

// LoadBytes decodes an in-memory resource. name is used only for errors
// and logs.
func (l *Loader) LoadBytes(ctx context.Context, name string, data []byte) (*gff.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := gff.Decode(data)
	if err != nil {
		return nil, l.fail(name, err)
	}
	return l.accept(name, doc)
}

// Result is the outcome of loading one path in LoadAll.
type Result struct {
	Path string
	Doc  *gff.Document
	Err  error
}

// LoadAll loads paths with at most workers decodes in flight. Per-file
// failures are reported in the matching Result; the returned error is set
// only when ctx is cancelled.
func (l *Loader) LoadAll(ctx context.Context, paths []string, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = 1
	}
	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range paths {
		results[i].Path = p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := l.Load(gctx, p)
			results[i].Doc = doc
			results[i].Err = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func (l *Loader) accept(name string, doc *gff.Document) (*gff.Document, error) {
	if l.Expect != "" && !strings.EqualFold(doc.ContentType(), strings.TrimRight(l.Expect, " ")) {
		l.log().Warn("unexpected content type",
			"resource", filepath.Base(name),
			"got", doc.ContentType(),
			"want", l.Expect,
		)
		return nil, &Error{
			Name: name,
			Kind: ErrUnsupportedResource,
			Err:  fmt.Errorf("content type %q, want %q", doc.ContentType(), l.Expect),
		}
	}
	l.log().Debug("loaded resource", "resource", filepath.Base(name), "type", doc.ContentType(), "version", doc.Version)
	return doc, nil
}

// fail classifies a decode error. Errors that are not decode errors, such
// as a missing file, pass through wrapped.
func (l *Loader) fail(name string, err error) error {
	var de *gff.DecodeError
	if !errors.As(err, &de) {
		return fmt.Errorf("load %s: %w", name, err)
	}

	kind := ErrCorruptResource
	if errors.Is(de.Kind, gff.ErrMalformedHeader) {
		kind = ErrUnsupportedResource
	}
	l.log().Warn("resource rejected",
		"resource", filepath.Base(name),
		"kind", de.Kind.Error(),
		"offset", de.Offset,
		"detail", de.Detail,
	)
	return &Error{Name: name, Kind: kind, Err: err}
}
