// Package gdocai integrates Google Document AI as a source of word detections
// for text reconstruction.
//
// Document AI returns a flat list of tokens per page plus blocks, paragraphs
// and lines that reference the document text through text anchors. This
// package regroups the tokens by text anchor containment, resolves their
// bounding boxes to page coordinates and hands the result over as a
// vision.Annotation, keeping the document text as the fallback transcript.
//
// Main Functions:
//
// - ProcessDocument: Sends a document to Google Document AI for processing
// - DocumentFromJSON: Decodes a saved Document AI response
// - ToAnnotation: Converts a Document AI response to a vision.Annotation
// - DocumentAnnotation: Processes a document and converts the response in one call
// - DocumentLanguage: Finds the dominant detected language
//
// Usage Requirements:
//
// - Google Cloud project with Document AI API enabled
// - Document AI processor configured for OCR
// - Authentication via GOOGLE_APPLICATION_CREDENTIALS environment variable
package gdocai

import (
	"context"
	"fmt"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/reflow/pkg/vision"
)

// DocumentAnnotation processes a document with Document AI and converts the
// response. It returns the annotation together with the raw response.
func DocumentAnnotation(ctx context.Context, content []byte, mimeType string, cfg *Config) (*vision.Annotation, *documentaipb.Document, error) {
	doc, err := ProcessDocument(ctx, content, mimeType, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to process document: %w", err)
	}

	return ToAnnotation(doc), doc, nil
}
