package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const annotationJSON = `{"fullTextAnnotation":{"pages":[{"width":200,"height":100,"blocks":[{"paragraphs":[{"words":[
{"boundingBox":{"vertices":[{"x":140,"y":10},{"x":180,"y":10},{"x":180,"y":22},{"x":140,"y":22}]},"symbols":[{"text":"World"}]},
{"boundingBox":{"vertices":[{"x":0,"y":10},{"x":40,"y":10},{"x":40,"y":22},{"x":0,"y":22}]},"symbols":[{"text":"Hel"},{"text":"lo"}]}
]}]}]}]}}`

const documentJSON = `{"document":{"text":"Hello World\n","pages":[{"pageNumber":1,
"dimension":{"width":200,"height":100,"unit":"pixels"},
"tokens":[
{"layout":{"textAnchor":{"textSegments":[{"startIndex":"0","endIndex":"6"}]},"boundingPoly":{"vertices":[{"x":0,"y":10},{"x":40,"y":10},{"x":40,"y":22},{"x":0,"y":22}]}}},
{"layout":{"textAnchor":{"textSegments":[{"startIndex":"6","endIndex":"12"}]},"boundingPoly":{"vertices":[{"x":140,"y":10},{"x":180,"y":10},{"x":180,"y":22},{"x":140,"y":22}]}}}
]}]}}`

// execute runs the command tree with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := execute(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Available Commands:")
	for _, name := range []string{"vision", "docai", "process", "hocr", "text", "html"} {
		assert.Contains(t, stdout, name)
	}
}

func TestRootCommand_Version(t *testing.T) {
	stdout, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev")
}

func TestTextCommand(t *testing.T) {
	input := writeTemp(t, "in.txt", "CHAPTER ONE\nThis is body text.\n")

	stdout, _, err := execute(t, "text", input)
	require.NoError(t, err)
	assert.Equal(t, "CHAPTER ONE\n\nThis is body text.\n", stdout)
}

func TestTextCommand_OutputFileAndPDF(t *testing.T) {
	dir := t.TempDir()
	input := writeTemp(t, "in.txt", "1. First item\nStill part of first item\n2. Second item")
	outPath := filepath.Join(dir, "out.txt")
	pdfPath := filepath.Join(dir, "out.pdf")

	stdout, _, err := execute(t, "text", input, "-o", outPath, "--pdf", pdfPath)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	text, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "1. First item Still part of first item\n2. Second item\n", string(text))

	pdf, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestTextCommand_RejectsSpatialOutputs(t *testing.T) {
	input := writeTemp(t, "in.txt", "text")

	_, _, err := execute(t, "text", input, "--hocr", filepath.Join(t.TempDir(), "x.hocr"))
	assert.ErrorContains(t, err, "word boxes")
}

func TestVisionCommand(t *testing.T) {
	input := writeTemp(t, "ann.json", annotationJSON)

	stdout, _, err := execute(t, "vision", input)
	require.NoError(t, err)
	assert.Equal(t, "Hello World\n", stdout)

	stdout, _, err = execute(t, "vision", input, "--layout-only")
	require.NoError(t, err)
	assert.Equal(t, "Hello    World\n", stdout)
}

func TestVisionCommand_HOCRAndLayoutPDF(t *testing.T) {
	dir := t.TempDir()
	input := writeTemp(t, "ann.json", annotationJSON)
	hocrPath := filepath.Join(dir, "out.hocr")
	pdfPath := filepath.Join(dir, "layout.pdf")

	_, stderr, err := execute(t, "vision", input, "--hocr", hocrPath, "--layout-pdf", pdfPath, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"level":"DEBUG"`)

	out, err := os.ReadFile(hocrPath)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(out), `class="ocrx_word"`))
	assert.Contains(t, string(out), `lang="unknown"`)

	pdf, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestDocAICommand(t *testing.T) {
	input := writeTemp(t, "doc.json", documentJSON)

	stdout, _, err := execute(t, "docai", input)
	require.NoError(t, err)
	assert.Equal(t, "Hello World\n", stdout)
}

func TestHOCRCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeTemp(t, "ann.json", annotationJSON)
	hocrPath := filepath.Join(dir, "out.hocr")
	_, _, err := execute(t, "vision", input, "--hocr", hocrPath)
	require.NoError(t, err)

	stdout, _, err := execute(t, "hocr", hocrPath, "--layout-only")
	require.NoError(t, err)
	assert.Equal(t, "Hello    World\n", stdout)
}

func TestHTMLCommand(t *testing.T) {
	input := writeTemp(t, "in.html", `<p>Shopping</p><ul><li>milk</li><li>eggs</li></ul>`)

	stdout, _, err := execute(t, "html", input)
	require.NoError(t, err)
	assert.Equal(t, "Shopping\n\n- milk\n- eggs\n", stdout)
}

func TestProcessCommand_RequiresProcessorConfig(t *testing.T) {
	input := writeTemp(t, "scan.pdf", "%PDF-1.4")

	_, _, err := execute(t, "process", input)
	assert.ErrorContains(t, err, "failed to process document")
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	input := writeTemp(t, "in.txt", "text")

	_, _, err := execute(t, "text", input, "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestRootCommand_ConfigFile(t *testing.T) {
	cfgPath := writeTemp(t, "config.yml", "normalize:\n  max_heading_words: 2\n")
	input := writeTemp(t, "in.txt", "Three Word Title\nbody")

	stdout, _, err := execute(t, "text", input, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "Three Word Title body\n", stdout)
}

func TestRootCommand_MissingInput(t *testing.T) {
	_, _, err := execute(t, "text", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "failed to read input")
}

func TestDetectMimeType(t *testing.T) {
	assert.Equal(t, "application/pdf", detectMimeType("a.PDF"))
	assert.Equal(t, "image/tiff", detectMimeType("scan.tif"))
	assert.Equal(t, "image/jpeg", detectMimeType("photo.jpeg"))
	assert.Equal(t, "image/png", detectMimeType("page.png"))
	assert.Equal(t, "application/pdf", detectMimeType("noext"))
}
