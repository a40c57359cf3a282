package gdocai

import (
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// textFromLayout extracts text from a layout's text anchor segments.
// Segment indices are rune offsets into the document text and are clamped to it.
func textFromLayout(layout *documentaipb.Document_Page_Layout, runes []rune) string {
	if layout == nil || layout.TextAnchor == nil {
		return ""
	}
	result := strings.Builder{}
	total := len(runes)

	for _, seg := range layout.TextAnchor.TextSegments {
		start := int(seg.StartIndex)
		end := int(seg.EndIndex)
		if start < 0 {
			start = 0
		}
		if end > total {
			end = total
		}
		if start > end {
			start = end
		}
		result.WriteString(string(runes[start:end]))
	}
	return result.String()
}

// tokenText returns the token text without the break whitespace Document AI
// appends to it, with any embedded line breaks turned into spaces.
func tokenText(token *documentaipb.Document_Page_Token, runes []rune) string {
	text := textFromLayout(token.GetLayout(), runes)
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSpace(text)
}

// textRange returns the first text segment of a layout.
func textRange(layout *documentaipb.Document_Page_Layout) (start, end int64, ok bool) {
	segs := layout.GetTextAnchor().GetTextSegments()
	if len(segs) == 0 {
		return 0, 0, false
	}
	return segs[0].StartIndex, segs[0].EndIndex, true
}

// contains reports whether the child's text range lies within the parent's.
func contains(parent, child *documentaipb.Document_Page_Layout) bool {
	ps, pe, ok := textRange(parent)
	if !ok {
		return false
	}
	cs, ce, ok := textRange(child)
	if !ok {
		return false
	}
	return cs >= ps && ce <= pe
}
