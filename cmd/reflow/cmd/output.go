package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gardar/reflow/pkg/hocr"
	"github.com/gardar/reflow/pkg/pdfout"
)

// write emits the reconstructed text and every requested rendition.
func (o *options) write(cmd *cobra.Command, r run) error {
	res := r.result
	o.logger.Info("reconstructed text", "source", res.Source.String(), "lines", len(res.Lines), "chars", len(res.Text))

	if !r.spatial && (o.hocrPath != "" || o.layoutPDFPath != "") {
		return fmt.Errorf("--hocr and --layout-pdf need an input with word boxes")
	}

	if o.output != "" {
		if err := writeFile(o.output, []byte(res.Text+"\n")); err != nil {
			return err
		}
	} else if res.Text != "" {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), res.Text); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if o.pdfPath != "" {
		blocks := res.Blocks
		if blocks == nil {
			blocks = o.cfg.Normalize.Parse(res.Text)
		}
		data, err := pdfout.Render(blocks, o.cfg.PDF)
		if err != nil {
			return fmt.Errorf("failed to render PDF: %w", err)
		}
		if err := writeFile(o.pdfPath, data); err != nil {
			return err
		}
	}

	if o.hocrPath == "" && o.layoutPDFPath == "" {
		return nil
	}

	page := hocr.FromLines(o.cfg.Layout, res.Lines, 1)

	if o.hocrPath != "" {
		out, err := hocr.Generate(hocr.NewDocument(r.language, page))
		if err != nil {
			return fmt.Errorf("failed to generate hOCR: %w", err)
		}
		if err := writeFile(o.hocrPath, []byte(out)); err != nil {
			return err
		}
	}

	if o.layoutPDFPath != "" {
		if len(res.Lines) == 0 {
			return fmt.Errorf("no word boxes to place in %s", o.layoutPDFPath)
		}
		data, err := pdfout.RenderPages([]hocr.Page{page}, o.cfg.PDF)
		if err != nil {
			return fmt.Errorf("failed to render layout PDF: %w", err)
		}
		if err := writeFile(o.layoutPDFPath, data); err != nil {
			return err
		}
	}

	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
