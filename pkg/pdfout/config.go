package pdfout

import "fmt"

// Config holds user options for PDF output
type Config struct {
	PageSize   string     `yaml:"page_size"`   // fpdf page size name ("A4", "Letter", ...)
	Margin     float64    `yaml:"margin"`      // Page margin in points
	LineHeight float64    `yaml:"line_height"` // Line height as a multiple of the font size
	ListIndent float64    `yaml:"list_indent"` // Width of the list marker column in points
	Title      string     `yaml:"title"`       // Document title metadata
	LayerName  string     `yaml:"layer_name"`  // Base name of the positioned text layer (page number will be appended)
	Debug      bool       `yaml:"debug"`       // Outline word boxes in positioned output
	Font       FontConfig `yaml:"font"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		PageSize:   "A4",
		Margin:     56,
		LineHeight: 1.35,
		ListIndent: 24,
		Title:      "Reconstructed text",
		LayerName:  "Text",
		Font:       DefaultFont,
	}
}

// Validate rejects sizes that cannot produce a page.
func (c Config) Validate() error {
	if c.Margin < 0 {
		return fmt.Errorf("margin must not be negative, got %v", c.Margin)
	}
	if c.LineHeight <= 0 {
		return fmt.Errorf("line height must be positive, got %v", c.LineHeight)
	}
	if c.Font.Size <= 0 || c.Font.HeadingSize <= 0 {
		return fmt.Errorf("font sizes must be positive")
	}
	return nil
}

// FontConfig contains font settings for text rendering
type FontConfig struct {
	Name        string  `yaml:"name"`         // Core font name (e.g., "Helvetica")
	Size        float64 `yaml:"size"`         // Body font size
	HeadingSize float64 `yaml:"heading_size"` // Heading font size
	AscentRatio float64 `yaml:"ascent_ratio"` // Vertical positioning ratio for positioned words
}

// DefaultFont sets the default font to Helvetica, a core font that needs no embedding
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Size:        11,
	HeadingSize: 15,
	AscentRatio: 0.718,
}
