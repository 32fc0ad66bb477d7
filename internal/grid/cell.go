package grid

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind tags the value held by a Cell.
type Kind uint8

const (
	KindMissing Kind = iota
	KindText
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "missing"
	}
}

//
// Cell is one raw spreadsheet value: missing, text or a number.
// The zero value is a missing cell.
//
type Cell struct {
	kind Kind
	text string
	num  float64
}

// Missing returns the missing marker.
func Missing() Cell { return Cell{} }

// Text returns a text cell.
func Text(s string) Cell { return Cell{kind: KindText, text: s} }

// Number returns a numeric cell.
func Number(f float64) Cell { return Cell{kind: KindNumber, num: f} }

func (c Cell) Kind() Kind { return c.kind }

func (c Cell) IsMissing() bool { return c.kind == KindMissing }

//
// String renders the cell as text. Numbers are formatted without a
// trailing fraction when integral, missing cells render as "".
//
func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	default:
		return ""
	}
}

//
// Float coerces the cell to a real number. Text is accepted when the
// trimmed value parses as a finite float; everything else reports false.
//
func (c Cell) Float() (float64, bool) {
	switch c.kind {
	case KindNumber:
		return c.num, true
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(c.text), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Equal reports whether both cells hold the same kind and value.
func (c Cell) Equal(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindText:
		return c.text == o.text
	case KindNumber:
		return c.num == o.num
	default:
		return true
	}
}

// MarshalJSON writes null, a string or a number.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindText:
		return json.Marshal(c.text)
	case KindNumber:
		return json.Marshal(c.num)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, a string or a number.
func (c *Cell) UnmarshalJSON(b []byte) error {
	*c = decodeCell(b)
	return nil
}
