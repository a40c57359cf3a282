package transcript

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/reflow/pkg/hocr"
	"github.com/gardar/reflow/pkg/layout"
	"github.com/gardar/reflow/pkg/normalize"
	"github.com/gardar/reflow/pkg/vision"
)

// reportWords is a small page: a heading, a two-line paragraph and a tight list.
func reportWords() []layout.WordBox {
	return []layout.WordBox{
		layout.NewWordBox("second", 14, 106, 62, 118),
		layout.NewWordBox("report", 38, 40, 86, 52),
		layout.NewWordBox("SUMMARY", 0, 0, 70, 12),
		layout.NewWordBox("-", 0, 90, 8, 102),
		layout.NewWordBox("everything.", 0, 56, 88, 68),
		layout.NewWordBox("The", 0, 40, 30, 52),
		layout.NewWordBox("first", 14, 90, 54, 102),
		layout.NewWordBox("-", 0, 106, 8, 118),
	}
}

func annotationOf(words []layout.WordBox) *vision.Annotation {
	para := vision.Paragraph{}
	for _, w := range words {
		para.Words = append(para.Words, vision.Word{
			BoundingBox: vision.Rect(w.Left, w.Top, w.Right, w.Bottom),
			Symbols:     []vision.Symbol{{Text: w.Text}},
		})
	}
	return &vision.Annotation{Pages: []vision.Page{{Blocks: []vision.Block{{Paragraphs: []vision.Paragraph{para}}}}}}
}

func TestFromWords(t *testing.T) {
	res := FromWords(reportWords(), DefaultOptions())

	assert.Equal(t, SourceLayout, res.Source)
	assert.Equal(t, "SUMMARY\n\nThe report\neverything.\n\n- first\n- second", res.LayoutText)
	assert.Equal(t, "SUMMARY\n\nThe report everything.\n\n- first\n- second", res.Text)
	assert.Len(t, res.Lines, 5)
	require.NotEmpty(t, res.Blocks)
	assert.Equal(t, normalize.Heading, res.Blocks[0].Kind)
}

func TestFromWords_LayoutOnly(t *testing.T) {
	opts := DefaultOptions()
	opts.LayoutOnly = true

	res := FromWords(reportWords(), opts)

	assert.Equal(t, res.LayoutText, res.Text)
	assert.Nil(t, res.Blocks)
}

func TestFromAnnotation(t *testing.T) {
	ann := annotationOf(reportWords())
	ann.Text = "ignored while words carry text"

	res := FromAnnotation(ann, DefaultOptions())

	assert.Equal(t, SourceLayout, res.Source)
	assert.Equal(t, FromWords(reportWords(), DefaultOptions()).Text, res.Text)
}

func TestFromAnnotation_Fallback(t *testing.T) {
	ann := &vision.Annotation{Text: "HEADER\nline one\nline two"}

	res := FromAnnotation(ann, DefaultOptions())

	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, "HEADER\n\nline one line two", res.Text)
	assert.Empty(t, res.Lines)
}

func TestFromAnnotation_Nil(t *testing.T) {
	res := FromAnnotation(nil, DefaultOptions())

	assert.Equal(t, SourceLayout, res.Source)
	assert.Equal(t, "", res.Text)
}

func TestFromHOCR(t *testing.T) {
	cfg := layout.DefaultConfig()
	page := hocr.FromLines(cfg, cfg.Cluster(reportWords()), 1)

	res := FromHOCR(hocr.NewDocument("en", page), DefaultOptions())

	assert.Equal(t, SourceLayout, res.Source)
	assert.Equal(t, FromWords(reportWords(), DefaultOptions()).Text, res.Text)
}

func TestFromText(t *testing.T) {
	res := FromText("Intro\r\n\r\n\r\n\r\nbody text\ncontinues", DefaultOptions())

	assert.Equal(t, SourcePlain, res.Source)
	assert.Equal(t, "Intro\n\nbody text continues", res.Text)
}

func TestFromHTML(t *testing.T) {
	markup := `<h1>Getting Started</h1><p>Install the tool and run it.</p><ol><li>download</li><li>run</li></ol>`

	res, err := FromHTML(markup, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, SourceMarkup, res.Source)
	assert.Equal(t, "Getting Started\n\nInstall the tool and run it.\n\n1. download\n2. run", res.Text)
}

func TestOptions_Logger(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	FromAnnotation(&vision.Annotation{Text: "fallback"}, opts)

	assert.Contains(t, buf.String(), "layout transcript empty")
	assert.Contains(t, buf.String(), "source=fallback")
}

func TestOptions_Validate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())

	opts := DefaultOptions()
	opts.Normalize.UnicodeForm = "NFX"
	assert.Error(t, opts.Validate())

	opts = DefaultOptions()
	opts.Layout.MinTolerance = 0
	assert.Error(t, opts.Validate())
}

func TestSource_String(t *testing.T) {
	assert.Equal(t, "layout", SourceLayout.String())
	assert.Equal(t, "markup", SourceMarkup.String())
	assert.Equal(t, "Source(9)", Source(9).String())
}
