package grid

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ErrEmpty is returned when a grid has no usable cells.
var ErrEmpty = errors.New("grid is empty")

// Grid is an ordered list of rows of cells. Column 0 holds row labels
// and, in the data region, student identifiers.
type Grid [][]Cell

// Rows returns the number of rows.
func (g Grid) Rows() int { return len(g) }

// Cols returns the width of the widest row.
func (g Grid) Cols() int {
	w := 0
	for _, r := range g {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// At returns the cell at (row, col), or a missing cell when out of range.
func (g Grid) At(row, col int) Cell {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return Missing()
	}
	return g[row][col]
}

// Equal reports whether both grids hold the same cells in the same shape.
func (g Grid) Equal(o Grid) bool {
	if len(g) != len(o) {
		return false
	}
	for i := range g {
		if len(g[i]) != len(o[i]) {
			return false
		}
		for j := range g[i] {
			if !g[i][j].Equal(o[i][j]) {
				return false
			}
		}
	}
	return true
}

// FromStrings builds a grid from plain strings; "" becomes missing.
func FromStrings(rows [][]string) Grid {
	g := make(Grid, len(rows))
	for i, r := range rows {
		g[i] = make([]Cell, len(r))
		for j, s := range r {
			if s != "" {
				g[i][j] = Text(s)
			}
		}
	}
	return g
}

//
// Decode reads a JSON array of rows, each an array of cells holding a
// string, a number, a bool or null. Anything else in a cell position
// is kept as its raw JSON text.
//
func Decode(data []byte) (Grid, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("grid payload is not valid json")
	}
	return FromResult(gjson.ParseBytes(data))
}

// FromResult converts an already parsed gjson array into a grid.
func FromResult(res gjson.Result) (Grid, error) {
	if !res.IsArray() {
		return nil, errors.New("grid must be an array of rows")
	}
	var (
		g   Grid
		err error
	)
	res.ForEach(func(i, row gjson.Result) bool {
		if !row.IsArray() {
			err = errors.Errorf("row %d is not an array", i.Int())
			return false
		}
		cells := []Cell{}
		row.ForEach(func(_, v gjson.Result) bool {
			cells = append(cells, fromResult(v))
			return true
		})
		g = append(g, cells)
		return true
	})
	if err != nil {
		return nil, err
	}
	if g.Cols() == 0 {
		return nil, ErrEmpty
	}
	return g, nil
}

func decodeCell(b []byte) Cell {
	return fromResult(gjson.ParseBytes(b))
}

func fromResult(v gjson.Result) Cell {
	switch v.Type {
	case gjson.Null:
		return Missing()
	case gjson.Number:
		return Number(v.Float())
	case gjson.String:
		return Text(v.Str)
	case gjson.True, gjson.False:
		return Text(v.String())
	default:
		return Text(v.Raw)
	}
}
