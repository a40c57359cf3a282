package vision

// Annotation is the hierarchical word detection result of a recognizer,
// shaped like the Cloud Vision fullTextAnnotation.
// Every level is optional: absent slices decode as empty, absent coordinates as 0.
type Annotation struct {
	Pages []Page `json:"pages"`
	Text  string `json:"text"` // Flattened transcript supplied by the recognizer
}

// Page is one recognized page or image.
type Page struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Blocks []Block `json:"blocks"`
}

// Block is a layout region on a page.
type Block struct {
	BoundingBox BoundingPoly `json:"boundingBox"`
	Paragraphs  []Paragraph  `json:"paragraphs"`
	BlockType   string       `json:"blockType,omitempty"`
}

// Paragraph is a run of words inside a block.
type Paragraph struct {
	BoundingBox BoundingPoly `json:"boundingBox"`
	Words       []Word       `json:"words"`
}

// Word is a recognized word made of glyph pieces.
type Word struct {
	BoundingBox BoundingPoly `json:"boundingBox"`
	Symbols     []Symbol     `json:"symbols"`
}

// Symbol is a single recognized glyph.
type Symbol struct {
	Text string `json:"text"`
}

// BoundingPoly is the polygon around a detected element.
type BoundingPoly struct {
	Vertices []Vertex `json:"vertices"`
}

// Vertex is a polygon corner in page coordinates.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect returns the axis-aligned rectangle enclosing all vertices.
// A polygon without vertices yields the zero rectangle.
func (p BoundingPoly) Rect() (left, top, right, bottom float64) {
	for i, v := range p.Vertices {
		if i == 0 {
			left, right, top, bottom = v.X, v.X, v.Y, v.Y
			continue
		}
		left = min(left, v.X)
		right = max(right, v.X)
		top = min(top, v.Y)
		bottom = max(bottom, v.Y)
	}
	return left, top, right, bottom
}

// Text concatenates the glyph texts of the word.
func (w Word) Text() string {
	switch len(w.Symbols) {
	case 0:
		return ""
	case 1:
		return w.Symbols[0].Text
	}
	n := 0
	for _, s := range w.Symbols {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range w.Symbols {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}

// WordCount returns the number of words across all pages, including empty ones.
func (a *Annotation) WordCount() int {
	if a == nil {
		return 0
	}
	n := 0
	for _, page := range a.Pages {
		for _, block := range page.Blocks {
			for _, para := range block.Paragraphs {
				n += len(para.Words)
			}
		}
	}
	return n
}

// Rect builds a four-vertex polygon from two opposite corners.
func Rect(x1, y1, x2, y2 float64) BoundingPoly {
	return BoundingPoly{Vertices: []Vertex{
		{X: x1, Y: y1},
		{X: x2, Y: y1},
		{X: x2, Y: y2},
		{X: x1, Y: y2},
	}}
}
