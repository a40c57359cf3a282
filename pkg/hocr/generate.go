package hocr

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/gardar/reflow/pkg/layout"
)

//go:embed templates/hocr.tmpl
var templateFS embed.FS

var hocrTemplate = template.Must(template.New("hocr.tmpl").Funcs(template.FuncMap{
	"trim": strings.TrimSpace,
	"esc":  template.HTMLEscapeString,
}).ParseFS(templateFS, "templates/hocr.tmpl"))

// Generate creates an hOCR HTML document from the HOCR struct
// using the embedded template.
func Generate(doc HOCR) (string, error) {
	var buf bytes.Buffer
	if err := hocrTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("error rendering hOCR template: %w", err)
	}
	return buf.String(), nil
}

// NewDocument creates an HOCR document holding the given pages.
func NewDocument(lang string, pages ...Page) HOCR {
	if lang == "" {
		lang = "unknown"
	}
	return HOCR{
		Title:    "Reconstructed text",
		Language: lang,
		Metadata: map[string]string{
			"ocr-system":          "reflow",
			"ocr-number-of-pages": strconv.Itoa(len(pages)),
			"ocr-capabilities":    "ocr_page ocr_carea ocr_par ocr_line ocrx_word",
			"ocr-langs":           lang,
		},
		Pages: pages,
	}
}

// FromLines builds an hOCR page from clustered layout lines.
// Lines are grouped into paragraphs at the same vertical gaps where the
// layout renderer inserts blank lines; all paragraphs share one content area.
func FromLines(cfg layout.Config, lines []layout.Line, pageNumber int) Page {
	page := Page{
		ID:         fmt.Sprintf("page_%d", pageNumber),
		PageNumber: pageNumber,
	}
	if len(lines) == 0 {
		return page
	}

	area := Area{ID: fmt.Sprintf("block_%d_1", pageNumber)}
	for pidx, group := range cfg.Paragraphs(lines) {
		para := Paragraph{ID: fmt.Sprintf("par_%d_%d", pageNumber, pidx+1)}

		for lidx, l := range group {
			line := Line{ID: fmt.Sprintf("line_%d_%d_%d", pageNumber, pidx+1, lidx+1)}
			for widx, w := range l.Words {
				bbox := NewBoundingBox(w.Left, w.Top, w.Right, w.Bottom)
				line.Words = append(line.Words, Word{
					ID:   fmt.Sprintf("word_%d_%d_%d_%d", pageNumber, pidx+1, lidx+1, widx+1),
					Text: w.Text,
					BBox: bbox,
				})
				line.BBox = line.BBox.Union(bbox)
			}
			para.Lines = append(para.Lines, line)
			para.BBox = para.BBox.Union(line.BBox)
		}

		area.Paragraphs = append(area.Paragraphs, para)
		area.BBox = area.BBox.Union(para.BBox)
	}

	page.Areas = []Area{area}
	page.BBox = NewBoundingBox(0, 0, area.BBox.X2, area.BBox.Y2)
	return page
}
