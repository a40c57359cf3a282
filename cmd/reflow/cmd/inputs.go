package cmd

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gardar/reflow/pkg/gdocai"
	"github.com/gardar/reflow/pkg/hocr"
	"github.com/gardar/reflow/pkg/transcript"
	"github.com/gardar/reflow/pkg/vision"
)

// run is the outcome of reading and reconstructing one input.
type run struct {
	result   transcript.Result
	spatial  bool   // result.Lines came from word boxes
	language string // language for hOCR output, if known
}

func newVisionCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "vision <annotation.json>",
		Short: "Reconstruct text from a Cloud Vision style annotation",
		Long: `Reconstruct text from recognizer output shaped like the Cloud Vision
fullTextAnnotation: pages, blocks, paragraphs and words with bounding polygons.
A bare annotation, a {"fullTextAnnotation": ...} object and a {"responses": [...]}
batch are all accepted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}
			ann, err := vision.ParseAnnotation(data)
			if err != nil {
				return err
			}
			opts.logger.Debug("parsed annotation", "file", args[0], "pages", len(ann.Pages), "words", ann.WordCount())
			return opts.write(cmd, run{result: transcript.FromAnnotation(ann, opts.transcript()), spatial: true})
		},
	}
}

func newDocAICommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "docai <response.json>",
		Short: "Reconstruct text from a saved Document AI response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}
			doc, err := gdocai.DocumentFromJSON(data)
			if err != nil {
				return err
			}
			ann := gdocai.ToAnnotation(doc)
			opts.logger.Debug("converted document", "file", args[0], "pages", len(ann.Pages), "words", ann.WordCount())
			return opts.write(cmd, run{
				result:   transcript.FromAnnotation(ann, opts.transcript()),
				spatial:  true,
				language: gdocai.DocumentLanguage(doc),
			})
		},
	}
}

func newProcessCommand(opts *options) *cobra.Command {
	var saveDoc, mimeType string

	cmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Send a PDF or image to Document AI and reconstruct its text",
		Long: `Send a PDF or image to a Google Document AI OCR processor and reconstruct
the text from the returned tokens. The processor is read from the documentai
section of the configuration file and authentication uses
GOOGLE_APPLICATION_CREDENTIALS.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}
			if mimeType == "" {
				mimeType = detectMimeType(args[0])
			}

			opts.logger.Info("processing document", "file", args[0], "mime_type", mimeType, "processor", opts.cfg.DocumentAI.ProcessorID)
			ann, doc, err := gdocai.DocumentAnnotation(cmd.Context(), data, mimeType, &opts.cfg.DocumentAI)
			if err != nil {
				return err
			}

			if saveDoc != "" {
				js, err := gdocai.ToJSON(doc)
				if err != nil {
					return fmt.Errorf("failed to encode document: %w", err)
				}
				if err := writeFile(saveDoc, []byte(js)); err != nil {
					return err
				}
			}

			return opts.write(cmd, run{
				result:   transcript.FromAnnotation(ann, opts.transcript()),
				spatial:  true,
				language: gdocai.DocumentLanguage(doc),
			})
		},
	}

	cmd.Flags().StringVar(&saveDoc, "save-doc", "", "save the Document AI response as JSON for later use with the docai command")
	cmd.Flags().StringVar(&mimeType, "mime-type", "", "MIME type of the input (default: detected from the file extension)")
	return cmd
}

func newHOCRCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "hocr <file.hocr>",
		Short: "Reconstruct text from an hOCR file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}
			doc, err := hocr.Parse(data)
			if err != nil {
				return fmt.Errorf("failed to parse hOCR: %w", err)
			}
			opts.logger.Debug("parsed hOCR", "file", args[0], "pages", len(doc.Pages))
			return opts.write(cmd, run{
				result:   transcript.FromHOCR(doc, opts.transcript()),
				spatial:  true,
				language: doc.Language,
			})
		},
	}
}

func newTextCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "text <file.txt>",
		Short: "Restructure plain text extracted from a PDF or document converter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}
			return opts.write(cmd, run{result: transcript.FromText(string(data), opts.transcript())})
		},
	}
}

func newHTMLCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "html <file.html>",
		Short: "Flatten HTML, lists included, into structured text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}
			res, err := transcript.FromHTML(string(data), opts.transcript())
			if err != nil {
				return err
			}
			return opts.write(cmd, run{result: res})
		},
	}
}

// transcript returns the pipeline options for the loaded configuration.
func (o *options) transcript() transcript.Options {
	t := o.cfg.Transcript()
	t.Logger = o.logger
	t.LayoutOnly = o.layoutOnly
	return t
}

// detectMimeType maps a file extension to a MIME type Document AI accepts.
func detectMimeType(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		return "application/pdf"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return strings.TrimSpace(strings.Split(t, ";")[0])
		}
		return "application/pdf"
	}
}
