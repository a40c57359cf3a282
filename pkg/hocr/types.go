package hocr

import (
	"fmt"
	"math"
	"strings"
)

// HOCR represents the entire hOCR document structure
type HOCR struct {
	Title    string            // Document title
	Language string            // Document language
	Metadata map[string]string // ocr-system, ocr-capabilities and similar meta tags
	Pages    []Page            // Pages in the document
}

// Page is one page of recognized text
// Corresponds to hOCR element with class: 'ocr_page'
type Page struct {
	ID         string      // Unique identifier
	PageNumber int         // Page number in document
	ImageName  string      // Source image filename
	Lang       string      // Language code for this page
	BBox       BoundingBox // Page coordinates
	Areas      []Area      // Content areas (columns)
	Paragraphs []Paragraph // Paragraphs directly under page
	Lines      []Line      // Lines directly under page (no parent)
}

// Class assign 'ocr_page' to 'Page' struct
func (Page) Class() string { return "ocr_page" }

// Title builds the hOCR title attribute of the page.
func (p Page) Title() string {
	parts := make([]string, 0, 3)
	if p.ImageName != "" {
		parts = append(parts, fmt.Sprintf("image %q", p.ImageName))
	}
	parts = append(parts, p.BBox.String(), fmt.Sprintf("ppageno %d", p.PageNumber))
	return strings.Join(parts, "; ")
}

// Area represents a content area (column or region)
// Corresponds to hOCR element with class: 'ocr_carea'
type Area struct {
	ID         string      // Unique identifier
	BBox       BoundingBox // Area coordinates
	Paragraphs []Paragraph // Paragraphs in this area
	Lines      []Line      // Text lines directly under area
	Words      []Word      // Words directly under area (no line parent)
}

// Class assign 'ocr_carea' to 'Area' struct
func (Area) Class() string { return "ocr_carea" }

// Paragraph represents a paragraph within an area or page
// Corresponds to hOCR element with class: 'ocr_par'
type Paragraph struct {
	ID    string      // Unique identifier
	BBox  BoundingBox // Paragraph coordinates
	Lines []Line      // Text lines in this paragraph
	Words []Word      // Words directly under paragraph (no line parent)
}

// Class assign 'ocr_par' to 'Paragraph' struct
func (Paragraph) Class() string { return "ocr_par" }

// Line represents a line of text
// Corresponds to hOCR element with class: 'ocr_line'
type Line struct {
	ID    string      // Unique identifier
	BBox  BoundingBox // Line coordinates
	Words []Word      // Words in this line
}

// Class assign 'ocr_line' to 'Line' struct
func (Line) Class() string { return "ocr_line" }

// Word is a recognized word with bounding box
// Corresponds to hOCR element with class: 'ocrx_word'
type Word struct {
	ID         string      // Unique identifier
	Text       string      // The actual text content
	BBox       BoundingBox // Word coordinates
	Confidence float64     // Recognition confidence (0-100), 0 when unknown
}

// Class assign 'ocrx_word' to 'Word' struct
func (Word) Class() string { return "ocrx_word" }

// Title builds the hOCR title attribute of the word.
func (w Word) Title() string {
	if w.Confidence > 0 {
		return fmt.Sprintf("%s; x_wconf %d", w.BBox, int(math.Round(w.Confidence)))
	}
	return w.BBox.String()
}

// BoundingBox represents a rectangle in the document
// Used to store hOCR 'bbox' property values
type BoundingBox struct {
	X1 float64 // Left coordinate
	Y1 float64 // Top coordinate
	X2 float64 // Right coordinate
	Y2 float64 // Bottom coordinate
}

// NewBoundingBox creates a bounding box from the x1, y1 (top-left) and
// x2, y2 (bottom-right) coordinates found in hOCR 'bbox' properties.
func NewBoundingBox(x1, y1, x2, y2 float64) BoundingBox {
	return BoundingBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// String formats the box as an hOCR bbox property with integer coordinates.
func (b BoundingBox) String() string {
	return fmt.Sprintf("bbox %d %d %d %d",
		int(math.Round(b.X1)), int(math.Round(b.Y1)),
		int(math.Round(b.X2)), int(math.Round(b.Y2)))
}

// Union returns the smallest box enclosing b and o. The zero box is treated as empty.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	if b == (BoundingBox{}) {
		return o
	}
	if o == (BoundingBox{}) {
		return b
	}
	return BoundingBox{
		X1: min(b.X1, o.X1),
		Y1: min(b.Y1, o.Y1),
		X2: max(b.X2, o.X2),
		Y2: max(b.Y2, o.Y2),
	}
}
