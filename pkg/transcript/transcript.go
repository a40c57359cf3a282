// Package transcript wires the reconstruction stages into one pipeline.
//
// Spatial inputs (recognizer annotations, hOCR, raw word boxes) are clustered
// into lines and rendered to a layout transcript. When that transcript is
// empty the collaborator's flattened text is used instead. Every transcript,
// spatial or not, is then passed through the normalizer.
//
// Key Types:
//
// - Options: layout and normalization settings plus an optional logger
// - Result: the normalized text together with the intermediate stages
// - Source: which input produced the text
//
// Main Functions:
//
// - FromAnnotation, FromHOCR, FromWords: spatial inputs
// - FromText, FromHTML: plain text and rich markup
package transcript

import (
	"fmt"
	"log/slog"

	"github.com/gardar/reflow/pkg/hocr"
	"github.com/gardar/reflow/pkg/layout"
	"github.com/gardar/reflow/pkg/listflat"
	"github.com/gardar/reflow/pkg/normalize"
	"github.com/gardar/reflow/pkg/vision"
)

// Source identifies the input that produced a transcript.
type Source int

const (
	SourceLayout   Source = iota // rendered from word boxes
	SourceFallback               // collaborator supplied flattened text
	SourcePlain                  // plain text input
	SourceMarkup                 // HTML input flattened to text
)

func (s Source) String() string {
	switch s {
	case SourceLayout:
		return "layout"
	case SourceFallback:
		return "fallback"
	case SourcePlain:
		return "plain"
	case SourceMarkup:
		return "markup"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Options configures the pipeline.
type Options struct {
	Layout     layout.Config
	Normalize  normalize.Options
	Logger     *slog.Logger
	LayoutOnly bool // skip normalization and return the layout transcript as is
}

// DefaultOptions returns the default layout and normalization settings.
func DefaultOptions() Options {
	return Options{
		Layout:    layout.DefaultConfig(),
		Normalize: normalize.DefaultOptions(),
	}
}

// Validate checks the layout and normalization settings.
func (o Options) Validate() error {
	if err := o.Layout.Validate(); err != nil {
		return fmt.Errorf("invalid layout config: %w", err)
	}
	if err := o.Normalize.Validate(); err != nil {
		return fmt.Errorf("invalid normalize options: %w", err)
	}
	return nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Result is the output of a pipeline run.
type Result struct {
	Text       string                // final text handed to consumers
	LayoutText string                // transcript before normalization
	Lines      []layout.Line         // clustered lines, spatial inputs only
	Blocks     []normalize.TextBlock // normalized blocks, nil with LayoutOnly
	Source     Source
}

// FromAnnotation reconstructs text from a recognizer annotation, falling back
// to the annotation's flattened text when no word carries text.
func FromAnnotation(ann *vision.Annotation, opts Options) Result {
	var fallback string
	if ann != nil {
		fallback = ann.Text
	}
	return fromBoxes(vision.ExtractWordBoxes(ann), fallback, opts)
}

// FromHOCR reconstructs text from a parsed hOCR document.
func FromHOCR(doc hocr.HOCR, opts Options) Result {
	return fromBoxes(doc.Annotation().WordBoxes(), doc.Text(), opts)
}

// FromWords reconstructs text from word boxes alone.
func FromWords(words []layout.WordBox, opts Options) Result {
	return fromBoxes(words, "", opts)
}

// FromText normalizes plain text, such as the output of a PDF text extractor.
func FromText(text string, opts Options) Result {
	opts.logger().Debug("normalizing plain text", "chars", len(text))
	return opts.finish(Result{LayoutText: text, Source: SourcePlain})
}

// FromHTML flattens markup to text, lists included, and normalizes the result.
func FromHTML(markup string, opts Options) (Result, error) {
	text, err := listflat.ToText(markup)
	if err != nil {
		return Result{}, fmt.Errorf("failed to flatten markup: %w", err)
	}
	opts.logger().Debug("flattened markup", "markup_chars", len(markup), "text_chars", len(text))
	return opts.finish(Result{LayoutText: text, Source: SourceMarkup}), nil
}

func fromBoxes(words []layout.WordBox, fallback string, opts Options) Result {
	log := opts.logger()

	lines := opts.Layout.Cluster(words)
	res := Result{
		LayoutText: opts.Layout.Render(lines),
		Lines:      lines,
		Source:     SourceLayout,
	}
	log.Debug("clustered word boxes", "words", len(words), "lines", len(lines))

	if res.LayoutText == "" && fallback != "" {
		log.Debug("layout transcript empty, using flattened text", "chars", len(fallback))
		res.LayoutText = fallback
		res.Source = SourceFallback
	}

	return opts.finish(res)
}

func (o Options) finish(res Result) Result {
	if o.LayoutOnly {
		res.Text = res.LayoutText
		return res
	}
	res.Blocks = o.Normalize.Parse(res.LayoutText)
	res.Text = normalize.Render(res.Blocks)
	o.logger().Debug("normalized transcript", "source", res.Source.String(), "blocks", len(res.Blocks))
	return res
}
