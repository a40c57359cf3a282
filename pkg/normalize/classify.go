package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind is the structural role of a line or block.
type Kind int

const (
	Blank Kind = iota
	Heading
	BulletItem
	NumberedItem
	Paragraph
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Heading:
		return "heading"
	case BulletItem:
		return "bullet-item"
	case NumberedItem:
		return "numbered-item"
	case Paragraph:
		return "paragraph"
	}
	return "unknown"
}

// IsItem reports whether k is one of the list item kinds.
func (k Kind) IsItem() bool {
	return k == BulletItem || k == NumberedItem
}

var (
	bulletMarker   = regexp.MustCompile(`^(?:[-*\x{2022}\x{2023}\x{2043}\x{25AA}\x{25CF}\x{25CB}\x{25E6}\x{25A0}\x{25A1}\x{00B7}])\s`)
	numberedMarker = regexp.MustCompile(`^(?:\d+|[A-Za-z])[.)]\s`)
)

// Punctuation allowed in an all-caps heading besides letters, digits and spaces.
const headingPunctuation = `.,:;!?'"-&()/#+`

// rule is one classification predicate. Rules are evaluated in order and the
// first one that matches decides the kind.
type rule struct {
	name  string
	match func(o Options, line string) (Kind, bool)
}

func (o Options) rules() []rule {
	return []rule{
		{"blank", func(_ Options, line string) (Kind, bool) {
			return Blank, strings.TrimSpace(line) == ""
		}},
		{"heading", func(o Options, line string) (Kind, bool) {
			return Heading, o.IsHeading(line)
		}},
		{"list-item", func(_ Options, line string) (Kind, bool) {
			return listKind(line)
		}},
	}
}

// Classify returns the kind of a single line using the default options.
func Classify(line string) Kind {
	return DefaultOptions().Classify(line)
}

// Classify returns the kind of a single line. Lines matching no rule are paragraph text.
func (o Options) Classify(line string) Kind {
	line = strings.TrimSpace(line)
	for _, r := range o.rules() {
		if kind, ok := r.match(o, line); ok {
			return kind
		}
	}
	return Paragraph
}

// IsHeading reports whether line looks like a heading using the default options.
func IsHeading(line string) bool {
	return DefaultOptions().IsHeading(line)
}

// IsHeading reports whether line is short and either all caps or Title Case.
func (o Options) IsHeading(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || utf8.RuneCountInString(line) > o.MaxHeadingLength {
		return false
	}
	return isAllCapsHeading(line) || o.isTitleCaseHeading(line)
}

// IsListItem reports whether line starts with a bullet or ordinal marker.
func IsListItem(line string) bool {
	_, ok := listKind(strings.TrimSpace(line))
	return ok
}

func listKind(line string) (Kind, bool) {
	switch {
	case numberedMarker.MatchString(line):
		return NumberedItem, true
	case bulletMarker.MatchString(line):
		return BulletItem, true
	}
	return Paragraph, false
}

func isAllCapsHeading(line string) bool {
	if utf8.RuneCountInString(line) < 4 {
		return false
	}

	letters := 0
	for _, r := range line {
		switch {
		case unicode.IsLetter(r):
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		case unicode.IsDigit(r), r == ' ':
		case strings.ContainsRune(headingPunctuation, r):
		default:
			return false
		}
	}
	return letters > 0
}

func (o Options) isTitleCaseHeading(line string) bool {
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > o.MaxHeadingWords {
		return false
	}

	last, _ := utf8.DecodeLastRuneInString(line)
	if last == '.' || last == '!' || last == '?' {
		return false
	}

	first, _ := utf8.DecodeRuneInString(words[0])
	if !unicode.IsUpper(first) {
		return false
	}

	for _, w := range words[1:] {
		r, _ := utf8.DecodeRuneInString(w)
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
