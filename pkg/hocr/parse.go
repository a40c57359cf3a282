package hocr

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// ErrNoPages is returned when the data holds no ocr_page element.
var ErrNoPages = errors.New("no ocr_page elements found in hOCR data")

var charsetPattern = regexp.MustCompile(`(?i)charset\s*=\s*["']?([\w.:-]+)`)

// Parse converts raw hOCR data into a structured HOCR object.
// Legacy charsets declared in the document are decoded to UTF-8; unknown
// charsets are read as ISO-8859-1.
func Parse(data []byte) (HOCR, error) {
	result := HOCR{Metadata: make(map[string]string)}

	decoded, err := decode(data)
	if err != nil {
		return result, err
	}

	doc, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return result, fmt.Errorf("failed to parse hOCR html: %w", err)
	}

	extractDocumentMeta(&result, doc)

	for _, n := range descendants(doc, "ocr_page")["ocr_page"] {
		result.Pages = append(result.Pages, parsePage(n))
	}

	if len(result.Pages) == 0 {
		return result, ErrNoPages
	}
	return result, nil
}

// decode converts data to UTF-8 according to its declared charset.
func decode(data []byte) ([]byte, error) {
	m := charsetPattern.FindSubmatch(data)
	if m == nil {
		return data, nil
	}
	name := strings.ToLower(string(m[1]))
	if name == "utf-8" || name == "utf8" {
		return data, nil
	}

	var enc encoding.Encoding = charmap.ISO8859_1
	if found, err := htmlindex.Get(name); err == nil {
		enc = found
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return decoded, nil
}

// ParseTitle breaks down an hOCR title attribute into its components
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

// ParseBoundingBoxFromTitle extracts a bounding box from a title string
// Returns nil if the title has no complete bbox property
func ParseBoundingBoxFromTitle(title string) *BoundingBox {
	bbox, ok := ParseTitle(title)["bbox"]
	if !ok || len(bbox) < 4 {
		return nil
	}
	var coords [4]float64
	for i := range coords {
		v, err := strconv.ParseFloat(bbox[i], 64)
		if err != nil {
			return nil
		}
		coords[i] = v
	}
	result := NewBoundingBox(coords[0], coords[1], coords[2], coords[3])
	return &result
}

// extractDocumentMeta reads the language, title and ocr-* meta tags.
func extractDocumentMeta(result *HOCR, doc *html.Node) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "html":
				if lang := getAttrVal(n, "lang"); lang != "" {
					result.Language = lang
				} else if lang := getAttrVal(n, "xml:lang"); lang != "" {
					result.Language = lang
				}
			case "title":
				if n.FirstChild != nil && result.Title == "" {
					result.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				name, content := getAttrVal(n, "name"), getAttrVal(n, "content")
				switch {
				case name == "" || content == "":
				case strings.HasPrefix(name, "ocr-"):
					result.Metadata[name] = content
				case name == "dc.language":
					result.Language = content
				}
			case "body":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
}

func parsePage(n *html.Node) Page {
	page := Page{
		ID:   getAttrVal(n, "id"),
		Lang: getAttrVal(n, "lang"),
	}
	title := getAttrVal(n, "title")
	if bbox := ParseBoundingBoxFromTitle(title); bbox != nil {
		page.BBox = *bbox
	}
	props := ParseTitle(title)
	if image, ok := props["image"]; ok && len(image) > 0 {
		page.ImageName = strings.Trim(image[0], `"`)
	}
	if ppageno, ok := props["ppageno"]; ok && len(ppageno) > 0 {
		page.PageNumber, _ = strconv.Atoi(ppageno[0])
	}

	found := descendants(n, "ocr_carea", "ocr_par", "ocr_line")
	for _, a := range found["ocr_carea"] {
		page.Areas = append(page.Areas, parseArea(a))
	}
	for _, p := range found["ocr_par"] {
		page.Paragraphs = append(page.Paragraphs, parseParagraph(p))
	}
	for _, l := range found["ocr_line"] {
		page.Lines = append(page.Lines, parseLine(l))
	}
	return page
}

func parseArea(n *html.Node) Area {
	area := Area{ID: getAttrVal(n, "id"), BBox: bboxOf(n)}

	found := descendants(n, "ocr_par", "ocr_line", "ocrx_word")
	for _, p := range found["ocr_par"] {
		area.Paragraphs = append(area.Paragraphs, parseParagraph(p))
	}
	for _, l := range found["ocr_line"] {
		area.Lines = append(area.Lines, parseLine(l))
	}
	for _, w := range found["ocrx_word"] {
		area.Words = append(area.Words, parseWord(w))
	}
	return area
}

func parseParagraph(n *html.Node) Paragraph {
	para := Paragraph{ID: getAttrVal(n, "id"), BBox: bboxOf(n)}

	found := descendants(n, "ocr_line", "ocrx_word")
	for _, l := range found["ocr_line"] {
		para.Lines = append(para.Lines, parseLine(l))
	}
	for _, w := range found["ocrx_word"] {
		para.Words = append(para.Words, parseWord(w))
	}
	return para
}

func parseLine(n *html.Node) Line {
	line := Line{ID: getAttrVal(n, "id"), BBox: bboxOf(n)}
	for _, w := range descendants(n, "ocrx_word")["ocrx_word"] {
		line.Words = append(line.Words, parseWord(w))
	}
	return line
}

func parseWord(n *html.Node) Word {
	word := Word{
		ID:   getAttrVal(n, "id"),
		BBox: bboxOf(n),
		Text: textContent(n),
	}
	if conf, ok := ParseTitle(getAttrVal(n, "title"))["x_wconf"]; ok && len(conf) > 0 {
		word.Confidence, _ = strconv.ParseFloat(conf[0], 64)
	}
	return word
}

// lineClasses are all the hOCR classes that describe a text line.
var lineClasses = []string{"ocr_line", "ocr_header", "ocr_caption", "ocr_textfloat"}

// descendants returns the nearest descendants of n that carry one of the
// classes, grouped by class. The search does not descend into a match.
// Header, caption and floating text lines are reported as ocr_line.
func descendants(n *html.Node, classes ...string) map[string][]*html.Node {
	found := make(map[string][]*html.Node)
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			for _, class := range classes {
				if hasClass(node, class) || (class == "ocr_line" && hasAnyClass(node, lineClasses)) {
					found[class] = append(found[class], node)
					return
				}
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return found
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func hasAnyClass(n *html.Node, classes []string) bool {
	for _, class := range classes {
		if hasClass(n, class) {
			return true
		}
	}
	return false
}

func bboxOf(n *html.Node) BoundingBox {
	if bbox := ParseBoundingBoxFromTitle(getAttrVal(n, "title")); bbox != nil {
		return *bbox
	}
	return BoundingBox{}
}

// textContent gets all text from a node and its children with whitespace collapsed.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Get the value of a specific attribute from a node
func getAttrVal(n *html.Node, attrName string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrName {
			return attr.Val
		}
	}
	return ""
}
