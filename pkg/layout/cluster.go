package layout

import (
	"cmp"
	"math"
	"slices"
)

// Cluster groups words into lines with the default configuration.
func Cluster(words []WordBox) []Line {
	return DefaultConfig().Cluster(words)
}

// Cluster partitions words into Lines in reading order.
//
// Words are visited in a seeding order (centerY, with near ties broken by Left)
// and each one joins the existing line whose centerY is closest, provided the
// distance is within that line's tolerance. Ties go to the line created first.
// The returned lines are sorted by Top and their words by Left.
func (c Config) Cluster(words []WordBox) []Line {
	if len(words) == 0 {
		return nil
	}

	seeded := slices.Clone(words)
	slices.SortStableFunc(seeded, func(a, b WordBox) int {
		if math.Abs(a.CenterY()-b.CenterY()) <= c.TieBand {
			return cmp.Compare(a.Left, b.Left)
		}
		return cmp.Compare(a.CenterY(), b.CenterY())
	})

	var lines []Line
	for _, w := range seeded {
		if i := c.closestLine(lines, w); i >= 0 {
			lines[i] = lines[i].Append(w)
			continue
		}
		lines = append(lines, NewLine(w))
	}

	// Seeding order only drives assignment; Top is the reading order.
	slices.SortStableFunc(lines, func(a, b Line) int {
		return cmp.Compare(a.Top, b.Top)
	})
	for i := range lines {
		lines[i].sortWords()
	}

	return lines
}

// closestLine returns the index of the best candidate line for w, or -1.
func (c Config) closestLine(lines []Line, w WordBox) int {
	best := -1
	bestDist := math.Inf(1)
	cy := w.CenterY()

	for i, line := range lines {
		dist := math.Abs(cy - line.CenterY)
		if dist > line.tolerance(c) {
			continue
		}
		if dist < bestDist {
			best = i
			bestDist = dist
		}
	}

	return best
}
