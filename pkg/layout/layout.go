// Package layout rebuilds reading-order text from word detections that carry
// page coordinates but no useful ordering.
//
// The package works in two stages:
//
// - Cluster: groups WordBoxes into Lines by vertical-center proximity, using a
// tolerance band that adapts to the height of the words already in the line
// - Render: orders each Line left to right, converts horizontal gaps into
// proportional spacing, attaches punctuation and separates paragraphs where the
// vertical gap between lines is abnormally large
//
// Key Types:
//
// - WordBox: a recognized word with its rectangle
// - Line: the running aggregate of the words assigned to one text line
// - RenderedLine: the text form of a finished Line
// - Config: the tolerances and gap factors used by both stages
//
// Main Functions:
//
// - Cluster: partitions words into Lines sorted top to bottom
// - Render: turns Lines into a single LF-separated transcript
// - Transcribe: Cluster followed by Render
//
// All functions are pure. Empty input produces empty output, never an error.
package layout

import "fmt"

// Config holds the tuning constants for clustering and rendering.
type Config struct {
	TieBand            float64 `yaml:"tie_band"`             // centerY difference treated as a tie when seeding
	MinTolerance       float64 `yaml:"min_tolerance"`        // lower bound of the line tolerance band
	MaxTolerance       float64 `yaml:"max_tolerance"`        // upper bound of the line tolerance band
	ToleranceFactor    float64 `yaml:"tolerance_factor"`     // fraction of the line's average height
	WideGapFactor      float64 `yaml:"wide_gap_factor"`      // gaps above acw*factor render as four spaces
	MediumGapFactor    float64 `yaml:"medium_gap_factor"`    // gaps above acw*factor render as two spaces
	ParagraphGapFactor float64 `yaml:"paragraph_gap_factor"` // vertical gaps above avgHeight*factor insert a blank line
}

// DefaultConfig returns the tolerances used for typical scanned pages.
func DefaultConfig() Config {
	return Config{
		TieBand:            2,
		MinTolerance:       8,
		MaxTolerance:       18,
		ToleranceFactor:    0.72,
		WideGapFactor:      5.2,
		MediumGapFactor:    2.4,
		ParagraphGapFactor: 1.4,
	}
}

// Validate rejects tolerances and factors that would break clustering or rendering.
func (c Config) Validate() error {
	if c.TieBand < 0 {
		return fmt.Errorf("tie band must not be negative, got %v", c.TieBand)
	}
	if c.MinTolerance <= 0 || c.MaxTolerance < c.MinTolerance {
		return fmt.Errorf("invalid tolerance band [%v, %v]", c.MinTolerance, c.MaxTolerance)
	}
	factors := []struct {
		name  string
		value float64
	}{
		{"tolerance factor", c.ToleranceFactor},
		{"wide gap factor", c.WideGapFactor},
		{"medium gap factor", c.MediumGapFactor},
		{"paragraph gap factor", c.ParagraphGapFactor},
	}
	for _, f := range factors {
		if f.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", f.name, f.value)
		}
	}
	if c.MediumGapFactor > c.WideGapFactor {
		return fmt.Errorf("medium gap factor %v exceeds wide gap factor %v", c.MediumGapFactor, c.WideGapFactor)
	}
	return nil
}

// Transcribe clusters and renders words with the default configuration.
func Transcribe(words []WordBox) string {
	return DefaultConfig().Transcribe(words)
}

// Transcribe clusters and renders words.
func (c Config) Transcribe(words []WordBox) string {
	return c.Render(c.Cluster(words))
}
