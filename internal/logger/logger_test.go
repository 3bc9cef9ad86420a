package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestJSONLevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelWarn)
	log.Info("decoded", "path", "door.utd")
	if buf.Len() > 0 {
		t.Fatalf("expected no output for info at warn level, got: %s", buf.String())
	}

	log.Warn("corrupt resource", "kind", "gff: corrupt offset", "offset", 56)
	output := buf.String()
	if !strings.Contains(output, `"offset":56`) {
		t.Fatalf("expected offset in JSON output, got: %s", output)
	}
	if !strings.Contains(output, `"level":"WARN"`) {
		t.Fatalf("expected level WARN in output, got: %s", output)
	}
}

func TestPrettyAttrsAndGroups(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelInfo).With("file", "creature.utc").WithGroup("stats")
	log.Info("decoded", "structs", 4, "label", "First Name")

	output := buf.String()
	for _, want := range []string{"decoded", "file=creature.utc", "stats.structs=4", `stats.label="First Name"`} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got: %s", want, output)
		}
	}
	if strings.Count(output, "\n") != 1 {
		t.Fatalf("expected a single line, got: %q", output)
	}
}

func TestPrettyDebugFiltered(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelInfo)
	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered at info level, got: %s", buf.String())
	}
}

func TestFromFlags(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := FromFlags(&buf, "json", "debug")
	if err != nil {
		t.Fatalf("FromFlags: %v", err)
	}
	log.Debug("visible")
	if !strings.Contains(buf.String(), `"msg":"visible"`) {
		t.Fatalf("expected JSON debug record, got: %s", buf.String())
	}

	buf.Reset()
	log, err = FromFlags(&buf, "text", "error")
	if err != nil {
		t.Fatalf("FromFlags: %v", err)
	}
	log.Warn("dropped")
	log.Error("kept")
	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), "msg=kept") {
		t.Fatalf("unexpected text output: %s", buf.String())
	}

	if _, err := FromFlags(&buf, "xml", "info"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q): got %v want %v", in, got, want)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()
	log := Discard()
	ctx := WithContext(context.Background(), log)
	if FromContext(ctx) != log {
		t.Fatalf("FromContext did not return the attached logger")
	}
	if FromContext(context.Background()) == nil {
		t.Fatalf("FromContext without a logger returned nil")
	}
}
