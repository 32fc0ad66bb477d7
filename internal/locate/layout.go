//
// Package locate recovers the structured blocks of an assessment sheet
// from a cleaned grid: the module/CLO-mapping/max-score header rows,
// the CLO definitions with their PLO mappings, and the student rows.
//
package locate

import (
	"regexp"

	"github.com/pkg/errors"

	"github.com/HammadMal/STRP-1/internal/grid"
)

var (
	// ErrAnchorNotFound means no column-0 label names the module row.
	ErrAnchorNotFound = errors.New("no \"Modules\" anchor row found in column 0")
	// ErrLayoutTruncated means the sheet ends before the header block does.
	ErrLayoutTruncated = errors.New("sheet ends before the CLO-mapping and max-score rows")
)

var anchorPattern = regexp.MustCompile(`(?i)\bmodules?\b`)

// NoFallback disables the fixed anchor row used when no anchor is found.
const NoFallback = -1

// Options controls anchor discovery.
type Options struct {
	// FallbackAnchorRow is the module row used when no anchor label is
	// found. NoFallback turns a missing anchor into ErrAnchorNotFound.
	FallbackAnchorRow int
}

// DefaultOptions treats a missing anchor as an error.
func DefaultOptions() Options {
	return Options{FallbackAnchorRow: NoFallback}
}

//
// Layout is the position of the header block in a cleaned grid. All
// values are 0-based row indexes.
//
type Layout struct {
	ModuleRow       int  `json:"module_row"`
	MappingRow      int  `json:"mapping_row"`
	MaxScoreRow     int  `json:"max_score_row"`
	FirstStudentRow int  `json:"first_student_row"`
	Fallback        bool `json:"fallback,omitempty"`
}

func layoutAt(row int) Layout {
	return Layout{
		ModuleRow:       row,
		MappingRow:      row + 1,
		MaxScoreRow:     row + 2,
		FirstStudentRow: row + 3,
	}
}

// StudentRows returns the number of rows after the header block.
func (l Layout) StudentRows(g grid.Grid) int {
	if n := g.Rows() - l.FirstStudentRow; n > 0 {
		return n
	}
	return 0
}

func (l Layout) validate(g grid.Grid) error {
	if l.ModuleRow < 0 || l.MaxScoreRow >= g.Rows() {
		return errors.Wrapf(ErrLayoutTruncated, "module row %d of %d rows", l.ModuleRow, g.Rows())
	}
	return nil
}

//
// Discover finds the module-name row: the first row whose column-0
// text contains the word "module" or "modules". The next two rows are
// the CLO-mapping and max-score rows; student rows follow.
//
func Discover(g grid.Grid, opts Options) (Layout, error) {
	if g.Rows() == 0 {
		return Layout{}, grid.ErrEmpty
	}
	for i := range g {
		c := g.At(i, 0)
		if c.Kind() != grid.KindText {
			continue
		}
		if anchorPattern.MatchString(c.String()) {
			l := layoutAt(i)
			return l, l.validate(g)
		}
	}
	if opts.FallbackAnchorRow < 0 {
		return Layout{}, ErrAnchorNotFound
	}
	l := layoutAt(opts.FallbackAnchorRow)
	l.Fallback = true
	return l, l.validate(g)
}
