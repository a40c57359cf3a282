// Package vision models hierarchical word detections (pages, blocks,
// paragraphs, words and glyphs with bounding polygons) and flattens them into
// layout.WordBox records.
//
// The schema follows the Cloud Vision fullTextAnnotation JSON and is also the
// common target of the other recognizer adapters in this module (Document AI
// and hOCR), so the reconstruction pipeline only ever sees one shape.
//
// Main Functions:
//
// - ParseAnnotation: decodes a bare annotation, a {"fullTextAnnotation": ...}
// object or a {"responses": [...]} batch
// - ExtractWordBoxes: flattens an annotation into WordBoxes
package vision

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gardar/reflow/pkg/layout"
)

// envelope accepts every JSON shape ParseAnnotation understands.
type envelope struct {
	Responses []struct {
		FullTextAnnotation *Annotation `json:"fullTextAnnotation"`
	} `json:"responses"`
	FullTextAnnotation *Annotation `json:"fullTextAnnotation"`
	Pages              []Page      `json:"pages"`
	Text               string      `json:"text"`
}

// ParseAnnotation decodes recognizer JSON into an Annotation.
// Batched responses are merged: pages are concatenated and texts joined by a newline.
// Documents without any annotation decode to an empty Annotation.
func ParseAnnotation(data []byte) (*Annotation, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return &Annotation{}, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode annotation: %w", err)
	}

	switch {
	case len(env.Responses) > 0:
		merged := &Annotation{}
		var texts []string
		for _, r := range env.Responses {
			if r.FullTextAnnotation == nil {
				continue
			}
			merged.Pages = append(merged.Pages, r.FullTextAnnotation.Pages...)
			if t := r.FullTextAnnotation.Text; t != "" {
				texts = append(texts, strings.TrimRight(t, "\n"))
			}
		}
		merged.Text = strings.Join(texts, "\n")
		return merged, nil
	case env.FullTextAnnotation != nil:
		return env.FullTextAnnotation, nil
	default:
		return &Annotation{Pages: env.Pages, Text: env.Text}, nil
	}
}

// ExtractWordBoxes flattens every non-empty word of the annotation into a WordBox.
// The result carries no ordering guarantee.
func ExtractWordBoxes(a *Annotation) []layout.WordBox {
	if a == nil {
		return nil
	}

	var boxes []layout.WordBox
	for _, page := range a.Pages {
		for _, block := range page.Blocks {
			for _, para := range block.Paragraphs {
				for _, word := range para.Words {
					text := strings.TrimSpace(word.Text())
					if text == "" {
						continue
					}
					left, top, right, bottom := word.BoundingBox.Rect()
					boxes = append(boxes, layout.NewWordBox(text, left, top, right, bottom))
				}
			}
		}
	}

	return boxes
}

// WordBoxes is a convenience wrapper around ExtractWordBoxes.
func (a *Annotation) WordBoxes() []layout.WordBox {
	return ExtractWordBoxes(a)
}
