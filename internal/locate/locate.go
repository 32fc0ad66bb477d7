package locate

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/HammadMal/STRP-1/internal/grid"
	"github.com/HammadMal/STRP-1/internal/outcome"
)

const (
	descriptionCol = 1
	levelCol       = 2
	ploMappingCol  = 3

	// minDescriptionLen filters mapping rows whose label also starts with "CLO".
	minDescriptionLen = 10
)

var cloLabel = regexp.MustCompile(`^CLO\s*[-_:#.]?\s*(\d+)`)

// Extraction is the raw structure recovered from one sheet.
type Extraction struct {
	Layout      Layout
	CLOs        []outcome.CLO
	Assessments []outcome.Assessment
	Students    []outcome.StudentRecord
	Warnings    []outcome.Warning
}

func (x *Extraction) warn(row, col int, c grid.Cell, reason string) {
	x.Warnings = append(x.Warnings, outcome.Warning{
		Row:    row,
		Col:    col,
		Value:  c.String(),
		Reason: reason,
	})
}

//
// Locate runs discovery and extracts every block from the cleaned grid.
// Malformed entries are skipped and reported as warnings; only a
// missing or truncated header block fails the extraction.
//
func Locate(g grid.Grid, opts Options) (*Extraction, error) {
	layout, err := Discover(g, opts)
	if err != nil {
		return nil, err
	}

	x := &Extraction{Layout: layout}
	if layout.Fallback {
		x.warn(layout.ModuleRow, 0, g.At(layout.ModuleRow, 0),
			"no module anchor found, using configured fallback row")
	}

	defRows := x.findCLOs(g)
	x.findAssessments(g)
	x.findStudents(g, defRows)
	return x, nil
}

//
// ParsePair reads an "<index>;<weight>" mapping cell.
//
func ParsePair(s string) (int, float64, error) {
	parts := strings.Split(s, ";")
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("expected <index>;<weight>, found %d parts", len(parts))
	}
	idx, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, errors.Errorf("index %q is not an integer", strings.TrimSpace(parts[0]))
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, 0, errors.Errorf("weight %q is not a number", strings.TrimSpace(parts[1]))
	}
	if w < 0 {
		return 0, 0, errors.Errorf("weight %v is negative", w)
	}
	return idx, w, nil
}

func isPair(c grid.Cell) bool {
	return c.Kind() == grid.KindText && strings.Contains(c.String(), ";")
}

// findCLOs returns the set of rows accepted as CLO definitions.
func (x *Extraction) findCLOs(g grid.Grid) map[int]bool {
	rows := make(map[int]bool)
	seen := make(map[string]bool)
	for i := range g {
		label := g.At(i, 0)
		if label.Kind() != grid.KindText || !strings.HasPrefix(label.String(), "CLO") {
			continue
		}
		desc := strings.TrimSpace(g.At(i, descriptionCol).String())
		if len(desc) <= minDescriptionLen {
			continue
		}
		m := cloLabel.FindStringSubmatch(label.String())
		if m == nil {
			x.warn(i, 0, label, "outcome label has no number")
			continue
		}
		n, _ := strconv.Atoi(m[1])
		id := outcome.CLOID(n)
		rows[i] = true
		if seen[id] {
			x.warn(i, 0, label, "duplicate definition of "+id+" ignored")
			continue
		}
		seen[id] = true

		clo := outcome.CLO{
			ID:          id,
			Description: desc,
			Level:       strings.TrimSpace(g.At(i, levelCol).String()),
		}
		if pm := g.At(i, ploMappingCol); isPair(pm) {
			plo, w, err := ParsePair(pm.String())
			if err != nil {
				x.warn(i, ploMappingCol, pm, "bad PLO mapping: "+err.Error())
			} else {
				clo.PLO = &outcome.PLOMapping{PLO: outcome.PLOID(plo), Weight: w}
			}
		}
		x.CLOs = append(x.CLOs, clo)
	}
	return rows
}

func (x *Extraction) findAssessments(g grid.Grid) {
	l := x.Layout
	for j := 1; j < g.Cols(); j++ {
		mapping := g.At(l.MappingRow, j)
		if !isPair(mapping) {
			continue
		}
		clo, w, err := ParsePair(mapping.String())
		if err != nil {
			x.warn(l.MappingRow, j, mapping, "bad CLO mapping: "+err.Error())
			continue
		}
		name := g.At(l.ModuleRow, j)
		if name.IsMissing() {
			x.warn(l.ModuleRow, j, mapping, "CLO mapping has no module name")
			continue
		}
		maxCell := g.At(l.MaxScoreRow, j)
		maxScore, ok := maxCell.Float()
		if !ok {
			x.warn(l.MaxScoreRow, j, maxCell, "max score is not a number")
			continue
		}
		if maxScore < 0 {
			x.warn(l.MaxScoreRow, j, maxCell, "max score is negative")
			continue
		}
		x.Assessments = append(x.Assessments, outcome.Assessment{
			Module:   name.String(),
			CLO:      outcome.CLOID(clo),
			MaxScore: maxScore,
			Weight:   w,
		})
	}
}

func (x *Extraction) findStudents(g grid.Grid, skip map[int]bool) {
	l := x.Layout
	for i := l.FirstStudentRow; i < g.Rows(); i++ {
		id := g.At(i, 0)
		if id.IsMissing() || skip[i] {
			continue
		}
		scores := make(outcome.Scores)
		for j := 1; j < g.Cols(); j++ {
			name, c := g.At(l.ModuleRow, j), g.At(i, j)
			if name.IsMissing() || c.IsMissing() {
				continue
			}
			scores[name.String()] = outcome.NewScore(c)
		}
		x.Students = append(x.Students, outcome.StudentRecord{
			ID:     id.String(),
			Row:    i,
			Scores: scores,
		})
	}
}
