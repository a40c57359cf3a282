package gdocai

import (
	"slices"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/reflow/pkg/vision"
)

// ToAnnotation converts a Document AI response into the word detection
// hierarchy used by the reconstruction pipeline.
//
// Tokens are grouped into paragraphs and paragraphs into blocks by text
// anchor containment. Tokens that no block or paragraph contains are
// collected into a trailing block per page, so every non-empty token
// becomes a word. The document text is kept as the fallback transcript.
func ToAnnotation(doc *documentaipb.Document) *vision.Annotation {
	if doc == nil {
		return &vision.Annotation{}
	}

	runes := []rune(doc.GetText())
	pages := slices.Clone(doc.GetPages())
	if len(pages) > 1 && pages[0].GetPageNumber() > 0 {
		slices.SortStableFunc(pages, func(a, b *documentaipb.Document_Page) int {
			return int(a.GetPageNumber()) - int(b.GetPageNumber())
		})
	}

	ann := &vision.Annotation{Text: doc.GetText()}
	for _, page := range pages {
		ann.Pages = append(ann.Pages, convertPage(page, runes))
	}
	return ann
}

func convertPage(page *documentaipb.Document_Page, runes []rune) vision.Page {
	dim := page.GetDimension()
	out := vision.Page{
		Width:  float64(dim.GetWidth()),
		Height: float64(dim.GetHeight()),
	}

	tokens := page.GetTokens()
	assigned := make([]bool, len(tokens))

	for _, block := range page.GetBlocks() {
		vb := vision.Block{BoundingBox: boundingPoly(block.GetLayout(), dim)}

		for _, para := range page.GetParagraphs() {
			if !contains(block.GetLayout(), para.GetLayout()) {
				continue
			}
			vp := vision.Paragraph{BoundingBox: boundingPoly(para.GetLayout(), dim)}
			for i, token := range tokens {
				if assigned[i] || !contains(para.GetLayout(), token.GetLayout()) {
					continue
				}
				assigned[i] = true
				vp.Words = append(vp.Words, convertToken(token, dim, runes))
			}
			if len(vp.Words) > 0 {
				vb.Paragraphs = append(vb.Paragraphs, vp)
			}
		}

		if len(vb.Paragraphs) > 0 {
			out.Blocks = append(out.Blocks, vb)
		}
	}

	// Tokens outside every block/paragraph pair.
	var leftover vision.Paragraph
	for i, token := range tokens {
		if assigned[i] {
			continue
		}
		leftover.Words = append(leftover.Words, convertToken(token, dim, runes))
	}
	if len(leftover.Words) > 0 {
		out.Blocks = append(out.Blocks, vision.Block{Paragraphs: []vision.Paragraph{leftover}})
	}

	return out
}

func convertToken(token *documentaipb.Document_Page_Token, dim *documentaipb.Document_Page_Dimension, runes []rune) vision.Word {
	return vision.Word{
		BoundingBox: boundingPoly(token.GetLayout(), dim),
		Symbols:     []vision.Symbol{{Text: tokenText(token, runes)}},
	}
}

// boundingPoly prefers pixel vertices and falls back to normalized vertices
// scaled by the page dimension.
func boundingPoly(layout *documentaipb.Document_Page_Layout, dim *documentaipb.Document_Page_Dimension) vision.BoundingPoly {
	poly := layout.GetBoundingPoly()
	var out vision.BoundingPoly

	if vs := poly.GetVertices(); len(vs) > 0 {
		for _, v := range vs {
			out.Vertices = append(out.Vertices, vision.Vertex{X: float64(v.GetX()), Y: float64(v.GetY())})
		}
		return out
	}

	w, h := float64(dim.GetWidth()), float64(dim.GetHeight())
	for _, v := range poly.GetNormalizedVertices() {
		out.Vertices = append(out.Vertices, vision.Vertex{X: float64(v.GetX()) * w, Y: float64(v.GetY()) * h})
	}
	return out
}

// DocumentLanguage finds the most common language in the document by
// counting language detections on pages and tokens.
// Ties resolve to the alphabetically first code.
func DocumentLanguage(doc *documentaipb.Document) string {
	langCount := make(map[string]int)

	for _, page := range doc.GetPages() {
		for _, lang := range page.GetDetectedLanguages() {
			langCount[lang.GetLanguageCode()]++
		}
		for _, token := range page.GetTokens() {
			for _, lang := range token.GetDetectedLanguages() {
				langCount[lang.GetLanguageCode()]++
			}
		}
	}

	var mostCommon string
	var highest int
	for lang, count := range langCount {
		if lang == "" {
			continue
		}
		if count > highest || (count == highest && lang < mostCommon) {
			highest = count
			mostCommon = lang
		}
	}
	return mostCommon
}
