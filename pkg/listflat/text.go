package listflat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// markupPolicy keeps the structure ToText understands and drops everything else.
	markupPolicy = newMarkupPolicy()
	strictPolicy = bluemonday.StrictPolicy()

	blankRuns      = regexp.MustCompile(`\n{3,}`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	signedInteger  = regexp.MustCompile(`^-?[0-9]+$`)
)

func newMarkupPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "div", "span", "section", "article",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li",
		"strong", "em", "b", "i", "u", "sub", "sup", "code",
		"blockquote", "pre",
		"table", "thead", "tbody", "tfoot", "tr", "td", "th",
	)
	p.AllowAttrs("start").Matching(signedInteger).OnElements("ol")
	return p
}

var skipContent = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
}

// paragraphAtoms are separated from their surroundings by a blank line.
var paragraphAtoms = map[atom.Atom]bool{
	atom.P: true, atom.Blockquote: true, atom.Pre: true, atom.Table: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
}

// lineAtoms start and end on their own line.
var lineAtoms = map[atom.Atom]bool{
	atom.Div: true, atom.Section: true, atom.Article: true,
	atom.Tr: true, atom.Li: true, atom.Ul: true, atom.Ol: true,
	atom.Thead: true, atom.Tbody: true, atom.Tfoot: true, atom.Br: true,
}

func isBlock(a atom.Atom) bool {
	return paragraphAtoms[a] || lineAtoms[a]
}

// ToText sanitizes a rich-markup fragment and converts it to plain text.
// Every list is replaced by its flattened form and block elements become
// line breaks; all other markup is stripped.
func ToText(markup string) (string, error) {
	if strings.TrimSpace(markup) == "" {
		return "", nil
	}

	doc, err := html.Parse(strings.NewReader(markupPolicy.Sanitize(markup)))
	if err != nil {
		return "", fmt.Errorf("failed to parse markup: %w", err)
	}

	var sb strings.Builder
	newline := func() {
		s := sb.String()
		if s != "" && !strings.HasSuffix(s, "\n") {
			sb.WriteByte('\n')
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(whitespaceRuns.ReplaceAllString(n.Data, " "))
			return
		case html.ElementNode:
			if skipContent[n.DataAtom] {
				return
			}
			if list, ok := FromHTML(n); ok {
				newline()
				sb.WriteString(strings.TrimPrefix(Flatten(list), "\n"))
				return
			}
			switch {
			case n.DataAtom == atom.Br:
				sb.WriteByte('\n')
				return
			case paragraphAtoms[n.DataAtom]:
				newline()
				sb.WriteByte('\n')
				defer sb.WriteString("\n\n")
			case lineAtoms[n.DataAtom]:
				newline()
				defer newline()
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	lines := strings.Split(sb.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text := blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text), nil
}
