package layout

import (
	"strings"
)

// RenderedLine is the text form of a finished Line plus the geometry needed
// to decide paragraph breaks.
type RenderedLine struct {
	Text      string
	Top       float64
	Bottom    float64
	AvgHeight float64
}

// attachedPunctuation lists glyphs that join the previous word without a space.
var attachedPunctuation = map[string]bool{
	",": true, ".": true, ";": true, ":": true, "!": true, "?": true,
	"%": true, ")": true, "]": true, "}": true,
}

// RenderLine renders a line with the default configuration.
func RenderLine(l Line) RenderedLine {
	return DefaultConfig().RenderLine(l)
}

// RenderLine joins the words of l left to right. Horizontal gaps are scaled by
// the line's average character width into one, two or four spaces.
func (c Config) RenderLine(l Line) RenderedLine {
	out := RenderedLine{Top: l.Top, Bottom: l.Bottom, AvgHeight: l.AvgHeight}
	if len(l.Words) == 0 {
		return out
	}

	acw := averageCharWidth(l.Words)

	var b strings.Builder
	b.WriteString(l.Words[0].Text)
	for i := 1; i < len(l.Words); i++ {
		prev, w := l.Words[i-1], l.Words[i]
		if !attachedPunctuation[w.Text] {
			b.WriteString(c.spacing(w.Left-prev.Right, acw))
		}
		b.WriteString(w.Text)
	}

	out.Text = strings.TrimRight(b.String(), " \t")
	return out
}

// spacing converts a horizontal gap into a run of spaces.
func (c Config) spacing(gap, acw float64) string {
	if gap < 0 {
		gap = 0
	}
	switch {
	case gap > acw*c.WideGapFactor:
		return "    "
	case gap > acw*c.MediumGapFactor:
		return "  "
	default:
		return " "
	}
}

// averageCharWidth is the mean per-character width across words.
// Width and rune count are both floored at 1 so the result is always finite.
func averageCharWidth(words []WordBox) float64 {
	if len(words) == 0 {
		return 1
	}
	total := 0.0
	for _, w := range words {
		total += w.charWidth()
	}
	return total / float64(len(words))
}

// Render renders lines with the default configuration.
func Render(lines []Line) string {
	return DefaultConfig().Render(lines)
}

// Render converts ordered lines into a LF-separated transcript. A blank line is
// inserted where the gap to the previous line exceeds ParagraphGapFactor times
// the previous line's average height.
func (c Config) Render(lines []Line) string {
	var out []string
	var prev *RenderedLine

	for _, l := range lines {
		rl := c.RenderLine(l)
		if prev != nil && c.breaksParagraph(prev.Bottom, prev.AvgHeight, rl.Top) && len(out) > 0 && out[len(out)-1] != "" {
			out = append(out, "")
		}
		out = append(out, rl.Text)
		prev = &rl
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}

// Paragraphs splits ordered lines at the same vertical gaps where Render
// inserts blank lines.
func (c Config) Paragraphs(lines []Line) [][]Line {
	var groups [][]Line
	for i, l := range lines {
		if i == 0 || c.breaksParagraph(lines[i-1].Bottom, lines[i-1].AvgHeight, l.Top) {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], l)
	}
	return groups
}

func (c Config) breaksParagraph(prevBottom, prevAvgHeight, curTop float64) bool {
	return curTop-prevBottom > prevAvgHeight*c.ParagraphGapFactor
}
