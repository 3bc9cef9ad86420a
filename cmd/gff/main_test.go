package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samcharles93/gff/pkg/gff"
)

// runApp runs the CLI in-process. Commands share package-level flag
// destinations, so these tests do not run in parallel.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	noConfig := filepath.Join(t.TempDir(), "none.yaml")
	err := app.Run(context.Background(), append([]string{"gff", "--config", noConfig}, args...))
	return out.String(), err
}

func writeGFF(t *testing.T, dir, name string, mutate func(*gff.Document)) string {
	t.Helper()
	doc := gff.New("UTC ")
	if err := doc.Root.SetString("Tag", "bandit"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	if mutate != nil {
		mutate(doc)
	}
	path := filepath.Join(dir, name)
	if err := gff.WriteFile(path, doc); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeGFF(t, dir, "good.utc", nil)
	bad := writeGFF(t, dir, "bad.utc", nil)
	data, err := os.ReadFile(bad)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	binary.LittleEndian.PutUint32(data[8:], 12)
	if err := os.WriteFile(bad, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := runApp(t, "validate", "--workers", "2", good)
	if err != nil {
		t.Fatalf("validate good: %v", err)
	}
	if !strings.Contains(out, "ok   "+good+" (UTC V3.2)") {
		t.Fatalf("unexpected output: %q", out)
	}

	out, err = runApp(t, "validate", good, bad)
	if !errors.Is(err, errValidationFailed) {
		t.Fatalf("want errValidationFailed, got %v", err)
	}
	if !strings.Contains(out, "FAIL "+bad+": corrupt resource") {
		t.Fatalf("failure not reported: %q", out)
	}
}

func TestRewriteCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeGFF(t, dir, "in.utc", nil)
	out := filepath.Join(dir, "out.utc")

	if _, err := runApp(t, "rewrite", "--version", "V4.0", "--type", "BIC", in, out); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	doc, err := gff.Open(out)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if doc.Version != "V4.0" || doc.ContentType() != "BIC" {
		t.Fatalf("overrides not applied: %q %q", doc.Type, doc.Version)
	}
	if doc.Root.GetString("Tag", "") != "bandit" {
		t.Fatalf("tree not preserved")
	}

	if _, err := runApp(t, "rewrite", "--version", "V1.0", in, out); err == nil {
		t.Fatalf("expected error for unknown version")
	}
}

func TestDiffCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeGFF(t, dir, "a.utc", nil)
	b := writeGFF(t, dir, "b.utc", nil)
	c := writeGFF(t, dir, "c.utc", func(d *gff.Document) {
		_ = d.Root.SetInt32("Str", 16)
	})

	if out, err := runApp(t, "diff", a, b); err != nil || out != "" {
		t.Fatalf("identical files: %q %v", out, err)
	}
	out, err := runApp(t, "diff", a, c)
	if !errors.Is(err, errDocumentsDiffer) {
		t.Fatalf("want errDocumentsDiffer, got %v", err)
	}
	if !strings.Contains(out, "Str") {
		t.Fatalf("diff does not mention the added field: %q", out)
	}
}

func TestInspectAndDumpCommands(t *testing.T) {
	path := writeGFF(t, t.TempDir(), "x.utc", nil)

	out, err := runApp(t, "inspect", path)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"type:    UTC ", "version: V3.2", "SECTION", "structs", `Tag String = "bandit"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("inspect output missing %q:\n%s", want, out)
		}
	}

	out, err = runApp(t, "dump", "--indent", "", path)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(out, `"label":"Tag"`) || !strings.Contains(out, `"value":"bandit"`) {
		t.Fatalf("unexpected dump: %s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	for _, want := range []string{"version:    ", "formats:    [V3.2 V3.3 V4.0 V4.1]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("version output missing %q:\n%s", want, out)
		}
	}
}

func TestRewriteRejectsUnprintableType(t *testing.T) {
	dir := t.TempDir()
	in := writeGFF(t, dir, "in.utc", nil)
	out := filepath.Join(dir, "out.utc")
	if _, err := runApp(t, "rewrite", "--type", "é", in, out); err == nil {
		t.Fatalf("expected error for non-ASCII content type")
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("output written despite rejected type: %v", err)
	}
}
