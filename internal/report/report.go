//
// Package report runs the scoring engine over an assembled outcome
// result and packages the per-student scores, grades and per-outcome
// summaries handed to exporters and the console.
//
package report

import (
	"github.com/HammadMal/STRP-1/internal/outcome"
	"github.com/HammadMal/STRP-1/internal/scoring"
)

// Grade is a student's overall course percentage and letter.
type Grade struct {
	Percentage float64 `json:"percentage"`
	Letter     string  `json:"letter"`
}

//
// Report is one sheet's extracted result plus every derived score.
//
type Report struct {
	*outcome.Result

	CLOScores      scoring.ByStudent  `json:"clo_scores"`
	PLOScores      scoring.ByStudent  `json:"plo_scores"`
	Overall        map[string]Grade   `json:"overall"`
	TotalCLOWeight map[string]float64 `json:"total_clo_weight"`
	Summary        Summary            `json:"summary"`
}

// Build scores every student in res.
func Build(res *outcome.Result) *Report {
	students := res.StudentScores
	clos := res.CLOIDs()

	cloScores := scoring.CLOScores(clos, res.CLOAssessments, students)
	ploScores := scoring.PLOScores(cloScores, res.CLOToPLO)

	overall := make(map[string]Grade, len(students))
	for id, pct := range scoring.OverallGrades(res.Assessments(), students) {
		overall[id] = Grade{Percentage: pct, Letter: scoring.LetterGrade(pct)}
	}

	weights := scoring.TotalCLOWeights(res.CLOAssessments)
	for _, id := range clos {
		if _, ok := weights[id]; !ok {
			weights[id] = 0
		}
	}

	return &Report{
		Result:         res,
		CLOScores:      cloScores,
		PLOScores:      ploScores,
		Overall:        overall,
		TotalCLOWeight: weights,
		Summary:        Summarize(clos, cloScores, ploScores),
	}
}

// PLOIDs lists every PLO that any student has a score for, in order.
func (r *Report) PLOIDs() []string {
	ids := make([]string, len(r.Summary.PLOs))
	for i, o := range r.Summary.PLOs {
		ids[i] = o.ID
	}
	return ids
}
