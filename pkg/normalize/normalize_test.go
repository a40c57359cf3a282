package normalize

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "heading isolation",
			input: "CHAPTER ONE\nThis is body text.",
			want:  "CHAPTER ONE\n\nThis is body text.",
		},
		{
			name:  "bullet continuation",
			input: "1. First item\nStill part of first item\n2. Second item",
			want:  "1. First item Still part of first item\n2. Second item",
		},
		{
			name:  "paragraph lines are joined",
			input: "the first line\nthe second line",
			want:  "the first line the second line",
		},
		{
			name:  "crlf line endings",
			input: "first line\r\nsecond line\rthird line",
			want:  "first line second line third line",
		},
		{
			name:  "hyphenation repaired",
			input: "the recon-\nstruction works",
			want:  "the reconstruction works",
		},
		{
			name:  "hyphen before list item is kept",
			input: "the end of a-\nb) next item",
			want:  "the end of a-\n\nb) next item",
		},
		{
			name:  "blank runs collapse",
			input: "para one\n\n\n\n\npara two",
			want:  "para one\n\npara two",
		},
		{
			name:  "whitespace runs collapse",
			input: "  a   lot\tof    space  ",
			want:  "a lot of space",
		},
		{
			name:  "loose list keeps its blank lines",
			input: "- a\n\n- b",
			want:  "- a\n\n- b",
		},
		{
			name:  "paragraph before list",
			input: "what to buy:\n- apples\n- pears\nfrom the market",
			want:  "what to buy:\n\n- apples\n- pears from the market",
		},
		{
			name:  "heading after list",
			input: "- apples\nSHOPPING LIST",
			want:  "- apples\n\nSHOPPING LIST",
		},
		{
			name:  "heading directly followed by a list stays tight",
			input: "CONTENTS\n- one\n- two",
			want:  "CONTENTS\n- one\n- two",
		},
		{
			name:  "heading followed by a numbered item",
			input: "Shopping List\n1. eggs",
			want:  "Shopping List\n1. eggs",
		},
		{
			name:  "blank between heading and list is kept",
			input: "CONTENTS\n\n- one",
			want:  "CONTENTS\n\n- one",
		},
		{
			name:  "hyphen with trailing space is not repaired",
			input: "the recon-   \n   struction works",
			want:  "the recon- struction works",
		},
		{
			name:  "consecutive headings",
			input: "PART ONE\nCHAPTER ONE",
			want:  "PART ONE\n\nCHAPTER ONE",
		},
		{
			name:  "heading between paragraphs",
			input: "before the break\nINTERLUDE\nafter the break",
			want:  "before the break\n\nINTERLUDE\n\nafter the break",
		},
		{
			name:  "leading and trailing blanks dropped",
			input: "\n\n  \nonly text\n\n",
			want:  "only text",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: " \n\t\n ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_UnicodeForm(t *testing.T) {
	decomposed := "cafe\u0301 au lait"

	assert.Equal(t, "caf\u00e9 au lait", Normalize(decomposed))

	opts := DefaultOptions()
	opts.UnicodeForm = "none"
	assert.Equal(t, decomposed, opts.Normalize(decomposed))
}

func TestParse_Blocks(t *testing.T) {
	blocks := Parse("CHAPTER ONE\nThis is body text.\n1. a b\n2. c")

	require.Len(t, blocks, 6)
	assert.Equal(t, []Kind{Heading, Blank, Paragraph, Blank, NumberedItem, NumberedItem}, kinds(blocks))
	assert.Equal(t, "1. a b", blocks[4].Text)
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("\n\n\n"))
}

func TestRender_Blocks(t *testing.T) {
	blocks := []TextBlock{
		{Kind: Heading, Text: "TITLE"},
		{Kind: Blank},
		{Kind: BulletItem, Text: "- one"},
		{Kind: BulletItem, Text: "- two"},
	}

	assert.Equal(t, "TITLE\n\n- one\n- two", Render(blocks))
	assert.Equal(t, "", Render(nil))
}

func TestOptions_Validate(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())

	bad := DefaultOptions()
	bad.UnicodeForm = "NFX"
	assert.Error(t, bad.Validate())

	bad = DefaultOptions()
	bad.MaxHeadingLength = 0
	assert.Error(t, bad.Validate())

	bad = DefaultOptions()
	bad.MaxHeadingWords = 1
	assert.Error(t, bad.Validate())

	lower := DefaultOptions()
	lower.UnicodeForm = "nfkc"
	assert.NoError(t, lower.Validate())
}

func kinds(blocks []TextBlock) []Kind {
	out := make([]Kind, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.Kind)
	}
	return out
}

// fragments mixes line breaks, whitespace and every line kind.
var fragments = []string{
	"\n", "\n", "\r\n", "\r", " ", "\t", "  ",
	"CHAPTER ONE", "Table Of Contents", "body text", "ends here.",
	"- ", "* ", "1. ", "a) ", "word-", "-", "x", " ",
}

func joinFragments(indices []int) string {
	var sb strings.Builder
	for _, i := range indices {
		sb.WriteString(fragments[i])
	}
	return sb.String()
}

func TestNormalize_NeverThreeBlankLines(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("no run of three newlines in output", prop.ForAll(
		func(indices []int) bool {
			return !strings.Contains(Normalize(joinFragments(indices)), "\n\n\n")
		},
		gen.SliceOf(gen.IntRange(0, len(fragments)-1)),
	))

	properties.Property("arbitrary strings never produce three newlines", prop.ForAll(
		func(s string) bool {
			return !strings.Contains(Normalize(s), "\n\n\n")
		},
		gen.AnyString(),
	))

	properties.Property("output is trimmed", prop.ForAll(
		func(indices []int) bool {
			out := Normalize(joinFragments(indices))
			return out == strings.TrimSpace(out)
		},
		gen.SliceOf(gen.IntRange(0, len(fragments)-1)),
	))

	properties.TestingRun(t)
}

// documentLines are whole lines whose classification cannot change when
// they are re-flowed, used to check idempotence.
var documentLines = []string{
	"",
	"CHAPTER ONE",
	"INTRODUCTION",
	"Table Of Contents",
	"this is body text.",
	"more words follow here",
	"and then it ends.",
	"- apples",
	"- pears",
	"1. first step",
	"2. second step",
}

func TestNormalize_Idempotent(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("normalizing twice equals normalizing once", prop.ForAll(
		func(indices []int) bool {
			lines := make([]string, 0, len(indices))
			for _, i := range indices {
				lines = append(lines, documentLines[i])
			}
			once := Normalize(strings.Join(lines, "\n"))
			return Normalize(once) == once
		},
		gen.SliceOf(gen.IntRange(0, len(documentLines)-1)),
	))

	properties.TestingRun(t)
}
