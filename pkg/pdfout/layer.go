package pdfout

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gardar/reflow/pkg/hocr"
)

// RenderPages creates a PDF with one page per hOCR page, sized to the page
// bounding box, and draws each word at its position on a per-page layer.
func RenderPages(pages []hocr.Page, cfg Config) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to render")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pdf config: %w", err)
	}

	pdf := fpdf.New("P", "pt", cfg.PageSize, "")
	pdf.SetTitle(cfg.Title, true)
	pdf.SetCreator("reflow", true)
	pdf.SetAutoPageBreak(false, 0)

	enc := newEncoder()
	for i, page := range pages {
		w, h := page.BBox.X2, page.BBox.Y2
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("page %d has no size", i+1)
		}
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
		drawLayer(pdf, page, i+1, cfg, enc)
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

// drawLayer draws the words of a page onto a layer named after the page number.
func drawLayer(pdf *fpdf.Fpdf, page hocr.Page, pageNum int, cfg Config, enc *encoder) {
	layer := pdf.AddLayer(fmt.Sprintf("%s (Page %d)", cfg.LayerName, pageNum), true)
	pdf.BeginLayer(layer)
	pdf.SetFont(cfg.Font.Name, "", cfg.Font.Size)
	if cfg.Debug {
		pdf.SetDrawColor(255, 0, 0)
	}

	for _, word := range pageWords(page) {
		drawWord(pdf, word, cfg, enc)
	}

	pdf.EndLayer()
}

// pageWords lists the words of a page in hOCR order.
func pageWords(page hocr.Page) []hocr.Word {
	var words []hocr.Word
	addLines := func(lines []hocr.Line) {
		for _, line := range lines {
			words = append(words, line.Words...)
		}
	}
	addParagraphs := func(paras []hocr.Paragraph) {
		for _, para := range paras {
			addLines(para.Lines)
			words = append(words, para.Words...)
		}
	}

	for _, area := range page.Areas {
		addParagraphs(area.Paragraphs)
		addLines(area.Lines)
		words = append(words, area.Words...)
	}
	addParagraphs(page.Paragraphs)
	addLines(page.Lines)
	return words
}

// drawWord renders a single word, scaling the font so the text spans the box width.
func drawWord(pdf *fpdf.Fpdf, word hocr.Word, cfg Config, enc *encoder) {
	if word.Text == "" {
		return
	}
	x, y := word.BBox.X1, word.BBox.Y1
	width := word.BBox.X2 - word.BBox.X1
	text := enc.encode(word.Text)

	if strWidth := pdf.GetStringWidth(text); strWidth > 0 && width > 0 {
		pdf.SetFontSize(cfg.Font.Size * width / strWidth)
	}
	fontSize, _ := pdf.GetFontSize()

	pdf.Text(x, y+fontSize*cfg.Font.AscentRatio, text)
	pdf.SetFontSize(cfg.Font.Size)

	if cfg.Debug {
		pdf.Rect(x, y, width, word.BBox.Y2-word.BBox.Y1, "D")
	}
}
