// Package config loads the reflow YAML configuration file.
//
// Every section is optional; omitted sections and fields keep the values from
// Default:
//
//	documentai:
//	  project_id: "your-gcp-project-id"
//	  location: "us"
//	  processor_id: "your-processor-id"
//	layout:
//	  min_tolerance: 8
//	  paragraph_gap_factor: 1.4
//	normalize:
//	  unicode_form: NFC
//	pdf:
//	  page_size: Letter
//	log_level: info
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gardar/reflow/pkg/gdocai"
	"github.com/gardar/reflow/pkg/layout"
	"github.com/gardar/reflow/pkg/normalize"
	"github.com/gardar/reflow/pkg/pdfout"
	"github.com/gardar/reflow/pkg/transcript"
)

// Config is the complete reflow configuration.
type Config struct {
	DocumentAI gdocai.Config     `yaml:"documentai"`
	Layout     layout.Config     `yaml:"layout"`
	Normalize  normalize.Options `yaml:"normalize"`
	PDF        pdfout.Config     `yaml:"pdf"`
	LogLevel   string            `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Layout:    layout.DefaultConfig(),
		Normalize: normalize.DefaultOptions(),
		PDF:       pdfout.DefaultConfig(),
		LogLevel:  "info",
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section except documentai, which is only required
// when Document AI is called.
func (c Config) Validate() error {
	if err := c.Transcript().Validate(); err != nil {
		return err
	}
	if err := c.PDF.Validate(); err != nil {
		return fmt.Errorf("invalid pdf config: %w", err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Transcript returns pipeline options built from the layout and normalize sections.
func (c Config) Transcript() transcript.Options {
	return transcript.Options{
		Layout:    c.Layout,
		Normalize: c.Normalize,
	}
}

// ParseLevel converts a level name such as "debug" or "WARN" to a slog level.
// The empty string means info.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(name) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}
