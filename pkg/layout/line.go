package layout

import (
	"cmp"
	"math"
	"slices"
)

// Line accumulates the words judged to sit on one horizontal text line.
// CenterY and AvgHeight are means over the words appended so far; Top and
// Bottom are the running minimum and maximum.
type Line struct {
	Words     []WordBox
	CenterY   float64
	AvgHeight float64
	Top       float64
	Bottom    float64
}

// NewLine starts a line containing a single word.
func NewLine(w WordBox) Line {
	return Line{
		Words:     []WordBox{w},
		CenterY:   w.CenterY(),
		AvgHeight: w.Height(),
		Top:       w.Top,
		Bottom:    w.Bottom,
	}
}

// Append returns the line with w added and its aggregates updated.
// The receiver, including its Words backing array, is left untouched.
func (l Line) Append(w WordBox) Line {
	if len(l.Words) == 0 {
		return NewLine(w)
	}

	words := make([]WordBox, len(l.Words), len(l.Words)+1)
	copy(words, l.Words)
	words = append(words, w)
	n := float64(len(words))

	return Line{
		Words:     words,
		CenterY:   l.CenterY + (w.CenterY()-l.CenterY)/n,
		AvgHeight: l.AvgHeight + (w.Height()-l.AvgHeight)/n,
		Top:       math.Min(l.Top, w.Top),
		Bottom:    math.Max(l.Bottom, w.Bottom),
	}
}

// tolerance is the maximum centerY distance at which a word still joins the line.
func (l Line) tolerance(c Config) float64 {
	return math.Max(c.MinTolerance, math.Min(c.MaxTolerance, l.AvgHeight*c.ToleranceFactor))
}

// sortWords orders the line's words left to right.
func (l *Line) sortWords() {
	slices.SortStableFunc(l.Words, func(a, b WordBox) int {
		return cmp.Compare(a.Left, b.Left)
	})
}

// Text renders the line with the default configuration.
func (l Line) Text() string {
	return DefaultConfig().RenderLine(l).Text
}
