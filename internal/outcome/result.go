package outcome

import "fmt"

// Warning records one sheet entry that was skipped during extraction.
type Warning struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("row %d col %d (%q): %s", w.Row, w.Col, w.Value, w.Reason)
}

// CLOEntry is the rendered form of a CLO; PLO and Weight are set only
// when the outcome has a programme mapping.
type CLOEntry struct {
	Description string   `json:"description"`
	Level       string   `json:"level"`
	PLO         string   `json:"PLO,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
}

//
// Result is everything extracted from one sheet, keyed for report
// writers. CLOs is the definitive outcome list, including outcomes that
// have no assessments.
//
type Result struct {
	CLOs           map[string]CLOEntry     `json:"clos"`
	CLOToPLO       map[string]PLOMapping   `json:"clo_to_plo"`
	CLOAssessments map[string][]Assessment `json:"clo_assessments"`
	StudentScores  map[string]Scores       `json:"student_scores"`
	Warnings       []Warning               `json:"warnings,omitempty"`
}

//
// Assemble packages extracted entities into a Result. Assessments that
// reference an undefined CLO create that CLO with an empty description.
// Assessment order within a CLO follows the order given, which is the
// column order of the sheet.
//
func Assemble(clos []CLO, assessments []Assessment, students map[string]StudentRecord, warnings []Warning) *Result {
	res := &Result{
		CLOs:           make(map[string]CLOEntry, len(clos)),
		CLOToPLO:       make(map[string]PLOMapping),
		CLOAssessments: make(map[string][]Assessment),
		StudentScores:  make(map[string]Scores, len(students)),
		Warnings:       warnings,
	}

	for _, c := range clos {
		entry := CLOEntry{Description: c.Description, Level: c.Level}
		if c.PLO != nil {
			w := c.PLO.Weight
			entry.PLO = c.PLO.PLO
			entry.Weight = &w
			res.CLOToPLO[c.ID] = *c.PLO
		}
		res.CLOs[c.ID] = entry
	}

	for _, a := range assessments {
		if _, ok := res.CLOs[a.CLO]; !ok {
			res.CLOs[a.CLO] = CLOEntry{}
		}
		res.CLOAssessments[a.CLO] = append(res.CLOAssessments[a.CLO], a)
	}

	for id, rec := range students {
		res.StudentScores[id] = rec.Scores
	}
	return res
}

// CLOIDs lists every CLO in numeric order.
func (r *Result) CLOIDs() []string {
	ids := make([]string, 0, len(r.CLOs))
	for id := range r.CLOs {
		ids = append(ids, id)
	}
	SortIDs(ids)
	return ids
}

// StudentIDs lists every student id in sorted order.
func (r *Result) StudentIDs() []string {
	ids := make([]string, 0, len(r.StudentScores))
	for id := range r.StudentScores {
		ids = append(ids, id)
	}
	SortIDs(ids)
	return ids
}

// Assessments flattens every CLO's assessments, CLOs in numeric order.
func (r *Result) Assessments() []Assessment {
	var all []Assessment
	for _, id := range r.CLOIDs() {
		all = append(all, r.CLOAssessments[id]...)
	}
	return all
}
