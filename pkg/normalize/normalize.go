// Package normalize reconstructs paragraph, heading and list structure from
// freeform multi-line text such as a layout transcript, PDF text extraction
// output or a flattened recognizer transcript.
//
// Every line is classified by an ordered chain of predicates (blank, heading,
// list item, paragraph; first match wins) and the lines are then re-flowed into
// TextBlocks: paragraphs are joined into one line, list items absorb their
// continuation lines, and blocks are separated by a single blank line except
// where a list item directly follows another item or a heading.
//
// Key Types:
//
// - Options: heading limits and Unicode normalization form
// - TextBlock: a classified block of output text
// - Kind: the structural role of a block
//
// Main Functions:
//
// - Normalize: text in, normalized text out
// - Parse: text in, blocks out
// - Render: blocks back to text
// - Classify, IsHeading, IsListItem: the individual line predicates
package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Options controls classification and preprocessing.
type Options struct {
	// UnicodeForm is one of NFC, NFD, NFKC, NFKD or "none". Empty means NFC.
	UnicodeForm      string `yaml:"unicode_form"`
	MaxHeadingLength int    `yaml:"max_heading_length"`
	MaxHeadingWords  int    `yaml:"max_heading_words"`
}

// DefaultOptions returns the standard heading limits with NFC normalization.
func DefaultOptions() Options {
	return Options{
		UnicodeForm:      "NFC",
		MaxHeadingLength: 80,
		MaxHeadingWords:  7,
	}
}

// Validate checks that the options can be used.
func (o Options) Validate() error {
	if _, _, err := unicodeForm(o.UnicodeForm); err != nil {
		return err
	}
	if o.MaxHeadingLength <= 0 {
		return fmt.Errorf("max heading length must be positive, got %d", o.MaxHeadingLength)
	}
	if o.MaxHeadingWords < 2 {
		return fmt.Errorf("max heading words must be at least 2, got %d", o.MaxHeadingWords)
	}
	return nil
}

func unicodeForm(name string) (norm.Form, bool, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NFC", "":
		return norm.NFC, true, nil
	case "NFD":
		return norm.NFD, true, nil
	case "NFKC":
		return norm.NFKC, true, nil
	case "NFKD":
		return norm.NFKD, true, nil
	case "NONE":
		return norm.NFC, false, nil
	}
	return norm.NFC, false, fmt.Errorf("unknown unicode form %q", name)
}

// TextBlock is one unit of normalized output.
type TextBlock struct {
	Kind Kind
	Text string
}

var (
	blankRuns      = regexp.MustCompile(`\n{3,}`)
	horizontalRuns = regexp.MustCompile(`[^\S\n]{2,}`)
)

// Normalize restructures text using the default options.
func Normalize(text string) string {
	return DefaultOptions().Normalize(text)
}

// Normalize restructures text into headings, paragraphs and list items.
// Empty or whitespace-only input yields the empty string.
func (o Options) Normalize(text string) string {
	return Render(o.Parse(text))
}

// Parse splits text into blocks using the default options.
func Parse(text string) []TextBlock {
	return DefaultOptions().Parse(text)
}

// Parse splits text into classified blocks in document order.
// The result never starts or ends with a Blank block and never holds two Blank blocks in a row.
func (o Options) Parse(text string) []TextBlock {
	lines := o.preprocess(text)

	var (
		blocks    []TextBlock
		paragraph []string
		sawBlank  bool
	)

	emit := func(b TextBlock) {
		if n := len(blocks); n > 0 {
			prev := blocks[n-1].Kind
			tight := b.Kind.IsItem() && (prev.IsItem() || prev == Heading)
			if sawBlank || !tight {
				blocks = append(blocks, TextBlock{Kind: Blank})
			}
		}
		blocks = append(blocks, b)
		sawBlank = false
	}
	flush := func() {
		if len(paragraph) == 0 {
			return
		}
		emit(TextBlock{Kind: Paragraph, Text: strings.Join(paragraph, " ")})
		paragraph = nil
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch kind := o.Classify(line); kind {
		case Blank:
			flush()
			sawBlank = true
		case Heading:
			flush()
			emit(TextBlock{Kind: Heading, Text: line})
		case BulletItem, NumberedItem:
			flush()
			item := []string{line}
			for i+1 < len(lines) && o.Classify(lines[i+1]) == Paragraph {
				i++
				item = append(item, lines[i])
			}
			emit(TextBlock{Kind: kind, Text: strings.Join(item, " ")})
		default:
			paragraph = append(paragraph, line)
		}
	}
	flush()

	return blocks
}

// Render joins blocks with newlines, writing Blank blocks as empty lines,
// and applies the final whitespace cleanup.
func Render(blocks []TextBlock) string {
	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if b.Kind != Blank {
			sb.WriteString(b.Text)
		}
	}
	return postprocess(sb.String())
}

func postprocess(s string) string {
	s = blankRuns.ReplaceAllString(s, "\n\n")
	s = horizontalRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// preprocess unifies line endings, applies Unicode normalization, collapses
// whitespace within each line and repairs words hyphenated across line breaks.
func (o Options) preprocess(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if form, ok, err := unicodeForm(o.UnicodeForm); err == nil && ok {
		text = form.String(text)
	}

	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for i, r := range raw {
		line := strings.Join(strings.Fields(r), " ")
		if n := len(lines); n > 0 && joinsHyphenated(raw[i-1], r) {
			lines[n-1] = lines[n-1][:len(lines[n-1])-1] + line
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// joinsHyphenated reports whether the raw line prev ends in letter+hyphen and
// the raw line next continues the word with a letter, with no whitespace on
// either side of the break, without starting a list item.
func joinsHyphenated(prev, next string) bool {
	if !strings.HasSuffix(prev, "-") || next == "" {
		return false
	}
	before, _ := utf8.DecodeLastRuneInString(prev[:len(prev)-1])
	after, _ := utf8.DecodeRuneInString(next)
	return unicode.IsLetter(before) && unicode.IsLetter(after) && !IsListItem(next)
}
