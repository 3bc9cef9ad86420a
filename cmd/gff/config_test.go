package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
log_level: debug
log_format: json
server_address: 0.0.0.0:9000
workers: 3
default_version: V3.3
`)
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.LogLevel != "debug" || got.LogFormat != "json" || got.ServerAddress != "0.0.0.0:9000" {
		t.Fatalf("unexpected config: %+v", got)
	}
	if got.Workers == nil || *got.Workers != 3 || got.DefaultVersion != "V3.3" {
		t.Fatalf("unexpected config: %+v", got)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	t.Parallel()

	got, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing config should not fail: %v", err)
	}
	if got != (Config{}) {
		t.Fatalf("missing config should be zero, got %+v", got)
	}
	if got, err := LoadConfig(""); err != nil || got != (Config{}) {
		t.Fatalf("empty path: got %+v %v", got, err)
	}
}

func TestLoadConfigRejects(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"malformed": "workers: [1, 2\n",
		"version":   "default_version: V9.9\n",
		"workers":   "workers: 0\n",
	}
	for name, body := range cases {
		if _, err := LoadConfig(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		} else if !strings.Contains(err.Error(), "config") {
			t.Fatalf("%s: error does not name the config: %v", name, err)
		}
	}
}
