package hocr

import (
	"strings"

	"github.com/gardar/reflow/pkg/vision"
)

// Annotation converts the document into a vision.Annotation.
// Areas become blocks and paragraphs keep their words in document order;
// lines and words outside any paragraph are gathered into extra paragraphs
// so no ocrx_word is lost. Text holds the plain document text.
func (h HOCR) Annotation() *vision.Annotation {
	ann := &vision.Annotation{Text: h.Text()}

	for _, page := range h.Pages {
		vp := vision.Page{Width: page.BBox.X2, Height: page.BBox.Y2}

		for _, area := range page.Areas {
			block := vision.Block{BoundingBox: polygon(area.BBox)}
			for _, para := range area.Paragraphs {
				block.Paragraphs = appendParagraph(block.Paragraphs, para.BBox, para.Lines, para.Words)
			}
			block.Paragraphs = appendParagraph(block.Paragraphs, area.BBox, area.Lines, area.Words)
			vp.Blocks = append(vp.Blocks, block)
		}

		var loose vision.Block
		for _, para := range page.Paragraphs {
			loose.Paragraphs = appendParagraph(loose.Paragraphs, para.BBox, para.Lines, para.Words)
		}
		loose.Paragraphs = appendParagraph(loose.Paragraphs, BoundingBox{}, page.Lines, nil)
		if len(loose.Paragraphs) > 0 {
			vp.Blocks = append(vp.Blocks, loose)
		}

		ann.Pages = append(ann.Pages, vp)
	}

	return ann
}

// appendParagraph adds a paragraph holding the words of lines followed by the
// loose words, skipping it when there are none.
func appendParagraph(paras []vision.Paragraph, bbox BoundingBox, lines []Line, words []Word) []vision.Paragraph {
	p := vision.Paragraph{BoundingBox: polygon(bbox)}
	for _, line := range lines {
		for _, w := range line.Words {
			p.Words = append(p.Words, visionWord(w))
		}
	}
	for _, w := range words {
		p.Words = append(p.Words, visionWord(w))
	}
	if len(p.Words) == 0 {
		return paras
	}
	return append(paras, p)
}

func visionWord(w Word) vision.Word {
	return vision.Word{
		BoundingBox: polygon(w.BBox),
		Symbols:     []vision.Symbol{{Text: w.Text}},
	}
}

func polygon(b BoundingBox) vision.BoundingPoly {
	return vision.Rect(b.X1, b.Y1, b.X2, b.Y2)
}

// Text extracts all text from the document in hOCR order: one line per
// ocr_line, with pages separated by a blank line.
func (h HOCR) Text() string {
	var pages []string
	for _, page := range h.Pages {
		var lines []string
		for _, area := range page.Areas {
			for _, para := range area.Paragraphs {
				lines = appendLines(lines, para.Lines, para.Words)
			}
			lines = appendLines(lines, area.Lines, area.Words)
		}
		for _, para := range page.Paragraphs {
			lines = appendLines(lines, para.Lines, para.Words)
		}
		lines = appendLines(lines, page.Lines, nil)
		if len(lines) > 0 {
			pages = append(pages, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(pages, "\n\n")
}

func appendLines(out []string, lines []Line, words []Word) []string {
	for _, line := range lines {
		if text := joinWords(line.Words); text != "" {
			out = append(out, text)
		}
	}
	if text := joinWords(words); text != "" {
		out = append(out, text)
	}
	return out
}

func joinWords(words []Word) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		if t := strings.TrimSpace(w.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
