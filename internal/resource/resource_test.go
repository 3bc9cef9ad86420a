package resource

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samcharles93/gff/internal/logger"
	"github.com/samcharles93/gff/pkg/gff"
)

func encodeDoc(t *testing.T, contentType string) []byte {
	t.Helper()
	doc := gff.New(contentType)
	if err := doc.Root.SetString("Tag", "nw_door"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	data, err := gff.Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return data
}

func TestLoadBytes(t *testing.T) {
	t.Parallel()

	l := &Loader{Expect: "UTD"}
	doc, err := l.LoadBytes(context.Background(), "door.utd", encodeDoc(t, "UTD "))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	if got := doc.Root.GetString("Tag", ""); got != "nw_door" {
		t.Fatalf("Tag: got %q want nw_door", got)
	}
}

func TestLoadBytesCorrupt(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	l := &Loader{Logger: logger.JSON(&logs, slog.LevelWarn)}

	data := encodeDoc(t, "UTD ")
	// Point the struct section past the end of the buffer.
	binary.LittleEndian.PutUint32(data[8:], uint32(len(data)))

	_, err := l.LoadBytes(context.Background(), "door.utd", data)
	if !errors.Is(err, ErrCorruptResource) {
		t.Fatalf("want ErrCorruptResource, got %v", err)
	}
	var de *gff.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("decode error not reachable from %v", err)
	}
	if strings.Contains(err.Error(), "byte") {
		t.Fatalf("user-facing message leaks offsets: %q", err.Error())
	}
	if !strings.Contains(logs.String(), `"offset":`) || !strings.Contains(logs.String(), `"kind":`) {
		t.Fatalf("rejection not logged with kind and offset: %s", logs.String())
	}
}

func TestLoadBytesUnsupported(t *testing.T) {
	t.Parallel()

	l := &Loader{}
	data := encodeDoc(t, "UTD ")
	copy(data[4:8], "V9.9")
	if _, err := l.LoadBytes(context.Background(), "door.utd", data); !errors.Is(err, ErrUnsupportedResource) {
		t.Fatalf("bad version: want ErrUnsupportedResource, got %v", err)
	}

	l.Expect = "UTC"
	_, err := l.LoadBytes(context.Background(), "door.utd", encodeDoc(t, "UTD "))
	if !errors.Is(err, ErrUnsupportedResource) {
		t.Fatalf("content mismatch: want ErrUnsupportedResource, got %v", err)
	}
	var de *gff.DecodeError
	if errors.As(err, &de) {
		t.Fatalf("content mismatch should not carry a decode error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	l := &Loader{}
	_, err := l.Load(context.Background(), filepath.Join(t.TempDir(), "absent.utc"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want os.ErrNotExist, got %v", err)
	}
	if errors.Is(err, ErrCorruptResource) || errors.Is(err, ErrUnsupportedResource) {
		t.Fatalf("missing file classified as a resource failure: %v", err)
	}
}

func TestLoadAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := encodeDoc(t, "UTC ")
	bad := append([]byte(nil), good...)
	binary.LittleEndian.PutUint32(bad[8:], 4)

	var paths []string
	for i, data := range [][]byte{good, bad, good, good, bad} {
		p := filepath.Join(dir, string(rune('a'+i))+".utc")
		if err := os.WriteFile(p, data, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		paths = append(paths, p)
	}

	l := &Loader{Expect: "UTC"}
	results, err := l.LoadAll(context.Background(), paths, 2)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("results: got %d want %d", len(results), len(paths))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Fatalf("result %d out of order: %s", i, r.Path)
		}
		wantErr := i == 1 || i == 4
		if wantErr != (r.Err != nil) {
			t.Fatalf("result %d: err %v", i, r.Err)
		}
		if wantErr && !errors.Is(r.Err, ErrCorruptResource) {
			t.Fatalf("result %d: want ErrCorruptResource, got %v", i, r.Err)
		}
		if !wantErr && r.Doc == nil {
			t.Fatalf("result %d: nil document", i)
		}
	}
}

func TestLoadAllCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := &Loader{}
	if _, err := l.LoadAll(ctx, []string{"x.utc", "y.utc"}, 4); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
