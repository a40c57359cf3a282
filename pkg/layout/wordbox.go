package layout

import "math"

// WordBox is a recognized word with a rectangular bounding box in page coordinates.
// It is a value type and is never modified once built.
type WordBox struct {
	Text   string
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// NewWordBox builds a WordBox from two opposite corners.
// Negative coordinates are clamped to 0 and the corners are ordered so that
// Right >= Left and Bottom >= Top.
func NewWordBox(text string, x1, y1, x2, y2 float64) WordBox {
	x1, y1 = math.Max(0, x1), math.Max(0, y1)
	x2, y2 = math.Max(0, x2), math.Max(0, y2)
	return WordBox{
		Text:   text,
		Left:   math.Min(x1, x2),
		Top:    math.Min(y1, y2),
		Right:  math.Max(x1, x2),
		Bottom: math.Max(y1, y2),
	}
}

// Width is the horizontal extent, floored at 1.
func (w WordBox) Width() float64 {
	return math.Max(1, w.Right-w.Left)
}

// Height is the vertical extent, floored at 1.
func (w WordBox) Height() float64 {
	return math.Max(1, w.Bottom-w.Top)
}

// CenterY is the vertical midpoint of the box.
func (w WordBox) CenterY() float64 {
	return (w.Top + w.Bottom) / 2
}

// charWidth is the width of one character of the word, assuming a uniform font.
func (w WordBox) charWidth() float64 {
	n := len([]rune(w.Text))
	if n < 1 {
		n = 1
	}
	return w.Width() / float64(n)
}
