//
// Package outcome holds the entities recovered from an assessment
// sheet (course learning outcomes, their programme mappings, module
// assessments and student scores) and assembles them into the single
// serialisable result handed to report writers.
//
package outcome

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/HammadMal/STRP-1/internal/grid"
)

// CLO is a course learning outcome, identified as "CLO <n>".
type CLO struct {
	ID          string
	Description string
	Level       string
	// PLO is nil when the outcome rolls up into no programme outcome.
	PLO *PLOMapping
}

// PLOMapping links one CLO to its single parent PLO.
type PLOMapping struct {
	PLO    string  `json:"PLO"`
	Weight float64 `json:"weight"`
}

// Assessment is one module column contributing to exactly one CLO.
type Assessment struct {
	Module   string  `json:"module"`
	CLO      string  `json:"-"`
	MaxScore float64 `json:"max_score"`
	Weight   float64 `json:"weight"`
}

//
// Score is a raw sheet value together with its numeric reading.
// Numeric is false for text that is not a number; such scores count
// as zero when aggregated.
//
type Score struct {
	Raw     grid.Cell
	Value   float64
	Numeric bool
}

// NewScore coerces a raw cell once.
func NewScore(c grid.Cell) Score {
	v, ok := c.Float()
	return Score{Raw: c, Value: v, Numeric: ok}
}

// MarshalJSON writes the raw value as it appeared in the sheet.
func (s Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Raw)
}

// UnmarshalJSON reads a raw value and coerces it.
func (s *Score) UnmarshalJSON(b []byte) error {
	var c grid.Cell
	if err := json.Unmarshal(b, &c); err != nil {
		return err
	}
	*s = NewScore(c)
	return nil
}

// Scores maps a module name to the score a student earned on it.
type Scores map[string]Score

// StudentRecord is one data row of the sheet.
type StudentRecord struct {
	// ID is the raw identifier until normalised, canonical afterwards.
	ID     string
	Row    int
	Scores Scores
}

// CLOID formats a course outcome index as "CLO <n>".
func CLOID(index int) string { return "CLO " + strconv.Itoa(index) }

// PLOID formats a programme outcome index as "PLO <n>".
func PLOID(index int) string { return "PLO " + strconv.Itoa(index) }

//
// SortIDs orders outcome ids ("CLO 2", "CLO 10", "PLO 1") by their
// numeric suffix, falling back to plain string order.
//
func SortIDs(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, aok := idNumber(ids[i])
		b, bok := idNumber(ids[j])
		switch {
		case aok && bok && a != b:
			return a < b
		case aok != bok:
			return aok
		default:
			return ids[i] < ids[j]
		}
	})
}

func idNumber(id string) (int, bool) {
	f := strings.Fields(id)
	if len(f) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(f[len(f)-1])
	return n, err == nil
}
