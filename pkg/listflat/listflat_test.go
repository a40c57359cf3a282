package listflat

import (
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func TestFlatten_OrderedWithStart(t *testing.T) {
	tests := []struct {
		start string
		want  string
	}{
		{"5", "\n5. a\n6. b\n7. c\n"},
		{"0", "\n0. a\n1. b\n2. c\n"},
		{"-1", "\n-1. a\n0. b\n1. c\n"},
	}
	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			n := ListNode{Ordered: true, Start: tt.start, Items: []string{"a", "b", "c"}}
			assert.Equal(t, tt.want, Flatten(n))
		})
	}
}

func TestFlatten_OrderedDefaultsToOne(t *testing.T) {
	for _, start := range []string{"", "abc", " "} {
		t.Run(strconv.Quote(start), func(t *testing.T) {
			n := ListNode{Ordered: true, Start: start, Items: []string{"a", "b"}}
			assert.Equal(t, "\n1. a\n2. b\n", Flatten(n))
		})
	}
}

func TestFlatten_Unordered(t *testing.T) {
	n := ListNode{Items: []string{"<b>bold</b> item", "  spaced\n  out  "}}

	assert.Equal(t, "\n- bold item\n- spaced out\n", Flatten(n))
}

func TestFlatten_Empty(t *testing.T) {
	assert.Equal(t, "", Flatten(ListNode{}))
	assert.Equal(t, "", Flatten(ListNode{Ordered: true, Items: []string{"", "<br>"}}))
}

func TestFlatten_NestedListsInline(t *testing.T) {
	n := ListNode{Items: []string{"outer<ul><li>inner one</li><li>inner two</li></ul>", "next"}}

	assert.Equal(t, "\n- outer inner one inner two\n- next\n", Flatten(n))
}

func TestListItems_SkipsEmptyWithoutConsumingOrdinal(t *testing.T) {
	n := ListNode{Ordered: true, Start: "3", Items: []string{"x", "   ", "y"}}

	assert.Equal(t, []ListItem{{Ordered: true, Ordinal: 3, Text: "x"}, {Ordered: true, Ordinal: 4, Text: "y"}}, n.ListItems())
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		markup string
		want   string
	}{
		{"plain", "plain"},
		{"<em>Hel</em>lo world", "Hello world"},
		{"<p>one</p><p>two</p>", "one two"},
		{"Fish &amp; Chips", "Fish & Chips"},
		{"<script>alert(1)</script>visible", "visible"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.markup, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarkup(tt.markup))
		})
	}
}

func TestFromHTML(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<ol start="5"><li>a</li><li><i>b</i></li><li>c</li></ol>`))
	require.NoError(t, err)

	list, ok := FromHTML(findAtom(doc, atom.Ol))
	require.True(t, ok)

	assert.True(t, list.Ordered)
	assert.Equal(t, "5", list.Start)
	assert.Equal(t, []string{"a", "<i>b</i>", "c"}, list.Items)
	assert.Equal(t, "\n5. a\n6. b\n7. c\n", Flatten(list))
}

func TestFromHTML_RejectsOtherNodes(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<p>text</p>`))
	require.NoError(t, err)

	_, ok := FromHTML(findAtom(doc, atom.P))
	assert.False(t, ok)

	_, ok = FromHTML(nil)
	assert.False(t, ok)
}

func TestToText(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			name:   "ordered list with start",
			markup: `<p>Intro</p><ol start="5"><li>a</li><li><b>b</b></li><li>c</li></ol><p>Outro</p>`,
			want:   "Intro\n\n5. a\n6. b\n7. c\n\nOutro",
		},
		{
			name:   "ordered list with negative start",
			markup: `<ol start="-2"><li>a</li><li>b</li><li>c</li></ol>`,
			want:   "-2. a\n-1. b\n0. c",
		},
		{
			name:   "ordered list with invalid start",
			markup: `<ol start="2x"><li>a</li><li>b</li></ol>`,
			want:   "1. a\n2. b",
		},
		{
			name:   "unordered list",
			markup: `<ul><li>a</li><li>b</li></ul>`,
			want:   "- a\n- b",
		},
		{
			name:   "ordered list default start",
			markup: `<ol><li>a</li><li>b</li></ol>`,
			want:   "1. a\n2. b",
		},
		{
			name:   "line breaks and headings",
			markup: `<h1>Title</h1>first<br>second<div>third</div>`,
			want:   "Title\n\nfirst\nsecond\nthird",
		},
		{
			name:   "scripts and unknown tags dropped",
			markup: `<script>bad()</script><custom>kept text</custom> <a href="x">link</a>`,
			want:   "kept text link",
		},
		{
			name:   "nested list flattened inline",
			markup: `<ul><li>x<ul><li>y</li></ul></li><li>z</li></ul>`,
			want:   "- x y\n- z",
		},
		{
			name:   "empty",
			markup: "   ",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToText(tt.markup)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlatten_OrdinalsIncreaseByOne(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("ordinals start at Start and step by exactly one", prop.ForAll(
		func(start int, count int) bool {
			n := ListNode{Ordered: true, Start: strconv.Itoa(start)}
			for i := range count {
				n.Items = append(n.Items, "item "+strconv.Itoa(i))
			}

			items := n.ListItems()
			if len(items) != count {
				return false
			}
			for i, item := range items {
				if item.Ordinal != start+i || item.Prefix() != strconv.Itoa(start+i)+". " {
					return false
				}
			}
			return true
		},
		gen.IntRange(-50, 1000),
		gen.IntRange(0, 30),
	))

	properties.TestingRun(t)
}

func findAtom(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findAtom(c, a); found != nil {
			return found
		}
	}
	return nil
}
