// Package listflat converts ordered and unordered list markup into plain
// numbered or bulleted text lines, so rich-text content can be merged into a
// plain transcript before normalization.
//
// Nested lists are flattened inline into the text of their parent item rather
// than indented. Items whose markup holds no text are left out and do not
// use up an ordinal.
package listflat

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ListNode is a list extracted from rich-text content.
type ListNode struct {
	Ordered bool
	Start   string   // Raw start attribute; empty or non-numeric means 1
	Items   []string // Inner markup of each item in document order
}

// ListItem is one flattened item.
type ListItem struct {
	Ordered bool
	Ordinal int // Meaningful only for ordered items; may be zero or negative
	Text    string
}

// StartOrdinal returns the numeric start value of the list.
func (n ListNode) StartOrdinal() int {
	start, err := strconv.Atoi(strings.TrimSpace(n.Start))
	if err != nil {
		return 1
	}
	return start
}

// ListItems strips the markup of every item and assigns ordinals.
// Items without text are skipped and do not consume an ordinal.
func (n ListNode) ListItems() []ListItem {
	var items []ListItem
	ordinal := n.StartOrdinal()
	for _, markup := range n.Items {
		text := StripMarkup(markup)
		if text == "" {
			continue
		}
		item := ListItem{Ordered: n.Ordered, Text: text}
		if n.Ordered {
			item.Ordinal = ordinal
			ordinal++
		}
		items = append(items, item)
	}
	return items
}

// Prefix returns the marker written before the item text.
func (i ListItem) Prefix() string {
	if !i.Ordered {
		return "- "
	}
	return strconv.Itoa(i.Ordinal) + ". "
}

// Flatten renders the list as one line per item, wrapped in a leading and
// trailing line break. A list without items yields the empty string.
func Flatten(n ListNode) string {
	items := n.ListItems()
	if len(items) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteByte('\n')
	for i, item := range items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(item.Prefix())
		sb.WriteString(item.Text)
	}
	sb.WriteByte('\n')
	return sb.String()
}

// FromHTML builds a ListNode from an <ol> or <ul> element.
// It returns false for any other node.
func FromHTML(n *html.Node) (ListNode, bool) {
	if n == nil || n.Type != html.ElementNode || (n.DataAtom != atom.Ol && n.DataAtom != atom.Ul) {
		return ListNode{}, false
	}

	list := ListNode{Ordered: n.DataAtom == atom.Ol, Start: attr(n, "start")}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Li {
			continue
		}
		var buf bytes.Buffer
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			if err := html.Render(&buf, gc); err != nil {
				continue
			}
		}
		list.Items = append(list.Items, buf.String())
	}
	return list, true
}

// StripMarkup returns the visible text of a markup fragment with whitespace
// collapsed. Block boundaries, including nested lists, become single spaces.
func StripMarkup(markup string) string {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return strings.Join(strings.Fields(html.UnescapeString(strictPolicy.Sanitize(markup))), " ")
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			if skipContent[n.DataAtom] {
				return
			}
			if isBlock(n.DataAtom) {
				sb.WriteByte(' ')
				defer sb.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}

	return strings.Join(strings.Fields(sb.String()), " ")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
