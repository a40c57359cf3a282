// Package pdfout renders reconstructed text as PDF documents.
//
// Two renditions are supported:
//
// - Render: flows normalized blocks (headings, paragraphs, list items) onto
// regular pages, headings in bold and list items with a hanging marker
// - RenderPages: places every word of hOCR pages at its bounding box on a
// named layer, reproducing the spatial layout of the recognized page
//
// Text is written with the PDF core fonts and therefore encoded as
// Windows-1252. Runes outside that charset are replaced, and an error wrapping
// ErrEncoding is returned when more than a tenth of the text runs needed
// replacement.
package pdfout

import (
	"bytes"
	"fmt"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gardar/reflow/pkg/normalize"
)

// Render lays out normalized blocks on pages and returns the PDF bytes.
// An empty block list still produces a valid single-page document.
func Render(blocks []normalize.TextBlock, cfg Config) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pdf config: %w", err)
	}

	pdf := fpdf.New("P", "pt", cfg.PageSize, "")
	pdf.SetTitle(cfg.Title, true)
	pdf.SetCreator("reflow", true)
	pdf.SetMargins(cfg.Margin, cfg.Margin, cfg.Margin)
	pdf.SetAutoPageBreak(true, cfg.Margin)
	pdf.AddPage()

	enc := newEncoder()
	bodyLine := cfg.Font.Size * cfg.LineHeight

	for _, b := range blocks {
		switch b.Kind {
		case normalize.Blank:
			pdf.Ln(bodyLine * 0.6)
		case normalize.Heading:
			pdf.SetFont(cfg.Font.Name, "B", cfg.Font.HeadingSize)
			pdf.MultiCell(0, cfg.Font.HeadingSize*cfg.LineHeight, enc.encode(b.Text), "", "L", false)
		case normalize.BulletItem, normalize.NumberedItem:
			marker, rest := splitMarker(b.Text)
			pdf.SetFont(cfg.Font.Name, "", cfg.Font.Size)
			pdf.CellFormat(cfg.ListIndent, bodyLine, enc.encode(marker), "", 0, "L", false, 0, "")
			pdf.MultiCell(0, bodyLine, enc.encode(rest), "", "L", false)
		default:
			pdf.SetFont(cfg.Font.Name, "", cfg.Font.Size)
			pdf.MultiCell(0, bodyLine, enc.encode(b.Text), "", "L", false)
		}
	}

	if err := enc.err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// splitMarker separates a list marker such as "-", "3." or "b)" from the item text.
func splitMarker(text string) (marker, rest string) {
	marker, rest, found := strings.Cut(text, " ")
	if !found {
		return "", text
	}
	return marker, strings.TrimSpace(rest)
}
