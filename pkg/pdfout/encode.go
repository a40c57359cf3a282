package pdfout

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ErrEncoding is returned when too much of the text cannot be represented
// in the Windows-1252 encoding used by the PDF core fonts.
var ErrEncoding = errors.New("character encoding issues")

// encoder converts UTF-8 text to Windows-1252 and counts the strings that
// needed replacement characters.
type encoder struct {
	strict   *encoding.Encoder
	lenient  *encoding.Encoder
	total    int
	failures int
}

func newEncoder() *encoder {
	return &encoder{
		strict:  charmap.Windows1252.NewEncoder(),
		lenient: encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()),
	}
}

// encode returns s in Windows-1252. Unsupported runes become '?'.
func (e *encoder) encode(s string) string {
	e.total++
	out, err := e.strict.String(s)
	if err == nil {
		return out
	}
	e.failures++
	out, err = e.lenient.String(s)
	if err != nil {
		return s
	}
	return out
}

// err reports an error when more than a tenth of the strings failed to encode.
func (e *encoder) err() error {
	if e.total > 0 && e.failures > 0 && e.failures > e.total/10 {
		return fmt.Errorf("%w in %d of %d text runs", ErrEncoding, e.failures, e.total)
	}
	return nil
}
