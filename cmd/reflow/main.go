// reflow reconstructs readable, structured text from OCR word detections,
// Document AI responses, hOCR files, plain text and HTML.
//
// Usage:
//
//	reflow vision annotation.json
//	reflow docai response.json --hocr page.hocr
//	reflow process scan.pdf --config config.yml --pdf scan_text.pdf
//	reflow hocr page.hocr --layout-only
//	reflow text extracted.txt -o clean.txt
//	reflow html article.html
//
// Authentication for the process command uses the GOOGLE_APPLICATION_CREDENTIALS
// environment variable, as with any Google Cloud client.
package main

import "github.com/gardar/reflow/cmd/reflow/cmd"

func main() {
	cmd.Execute()
}
