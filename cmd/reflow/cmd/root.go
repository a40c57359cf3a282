// Package cmd implements the reflow command line interface.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gardar/reflow/internal/config"
)

var version = "dev"

// options holds the persistent flags and the configuration loaded from them.
type options struct {
	configPath    string
	logLevel      string
	verbose       bool
	output        string
	pdfPath       string
	layoutPDFPath string
	hocrPath      string
	layoutOnly    bool

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCommand builds the reflow command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "reflow",
		Short: "Reconstruct structured text from OCR output and extracted documents",
		Long: `Reflow turns unordered word detections and raw extracted text into
readable text with reading order, paragraphs, headings and list items.

Inputs:
- Cloud Vision style annotations (JSON)
- Google Document AI responses, saved or processed live
- hOCR files
- plain text from PDF or document converters
- HTML, with lists flattened to numbered or bulleted lines

Examples:
  reflow vision annotation.json
  reflow process scan.pdf --config config.yml --pdf clean.pdf
  reflow hocr page.hocr --layout-only -o page.txt`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to the YAML configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	flags.StringVarP(&opts.output, "output", "o", "", "write the reconstructed text to this file (default: stdout)")
	flags.StringVar(&opts.pdfPath, "pdf", "", "write a PDF rendition of the reconstructed text")
	flags.StringVar(&opts.layoutPDFPath, "layout-pdf", "", "write a PDF with every word at its position (word box inputs only)")
	flags.StringVar(&opts.hocrPath, "hocr", "", "write the reconstructed lines as hOCR (word box inputs only)")
	flags.BoolVar(&opts.layoutOnly, "layout-only", false, "skip normalization and output the layout transcript")

	rootCmd.AddCommand(
		newVisionCommand(opts),
		newDocAICommand(opts),
		newProcessCommand(opts),
		newHOCRCommand(opts),
		newTextCommand(opts),
		newHTMLCommand(opts),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// init loads the configuration and installs the JSON logger.
func (o *options) init(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if o.verbose {
		level = slog.LevelDebug
	}

	o.cfg = cfg
	o.logger = newLogger(cmd.ErrOrStderr(), level)
	slog.SetDefault(o.logger)
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// readInput reads the single file argument of a subcommand.
func readInput(args []string) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected exactly one input file, got %d", len(args))
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}
