// Package hocr reads and writes hOCR, the HTML-based standard format for
// representing OCR results, as a source and sink of word detections.
//
// The package implements the hierarchical structure defined in the hOCR format:
// Document → Pages → Areas → Paragraphs → Lines → Words.
//
// Key Types:
//
// - HOCR: Top-level structure representing an entire hOCR document
// - Page: Represents a single page with class 'ocr_page'
// - Area: Represents a content area with class 'ocr_carea'
// - Paragraph: Represents a paragraph with class 'ocr_par'
// - Line: Represents a line of text with class 'ocr_line'
// - Word: Represents a single word with class 'ocrx_word'
// - BoundingBox: Represents a rectangle with coordinates for positioning elements
//
// Main Functions:
//
// - Parse: Parses hOCR data from HTML into the object model
// - (HOCR).Annotation: Converts parsed hOCR into a vision.Annotation
// - FromLines: Builds an hOCR page from reconstructed layout lines
// - Generate: Generates valid hOCR HTML from the object model
package hocr
