package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/gff/pkg/gff"
)

// Config represents the gff configuration file (~/.config/gff/config.yaml).
// Workers is a pointer so we can distinguish "not set" from zero.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`

	// Workers bounds concurrent decodes in validate.
	Workers *int64 `yaml:"workers"`

	// DefaultVersion is written by rewrite when --version is not given.
	// Empty keeps each document's own version.
	DefaultVersion string `yaml:"default_version"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gff", "config.yaml")
}

// LoadConfig reads the config file at path. A missing file yields a zero
// Config; a malformed one is an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.DefaultVersion != "" && !slices.Contains(gff.Versions, cfg.DefaultVersion) {
		return Config{}, fmt.Errorf("config %s: default_version %q is not one of %v", path, cfg.DefaultVersion, gff.Versions)
	}
	if cfg.Workers != nil && *cfg.Workers < 1 {
		return Config{}, fmt.Errorf("config %s: workers must be at least 1", path)
	}
	return cfg, nil
}

// applyLoggingConfig applies config file defaults to the logging flags
// when the corresponding CLI flag was not explicitly set.
func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

func applyValidateConfig(c *cli.Command, cfg Config, workers *int64) {
	if cfg.Workers != nil && !c.IsSet("workers") {
		*workers = *cfg.Workers
	}
}

func applyRewriteConfig(c *cli.Command, cfg Config, version *string) {
	if cfg.DefaultVersion != "" && !c.IsSet("version") {
		*version = cfg.DefaultVersion
	}
}

func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}
