//
// Package scoring aggregates module scores into CLO scores, CLO scores
// into PLO scores, and module scores into an overall course grade.
//
// Every function is pure: inputs are read, never modified, and the
// result is rebuilt on each call. Sums over assessments always follow
// the order of the assessment slices, which is sheet column order.
//
package scoring

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/HammadMal/STRP-1/internal/outcome"
)

//
// Round2 rounds to two decimal places, half away from zero, working on
// the shortest decimal form of f (so 2.675 rounds to 2.68).
//
func Round2(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

// ByStudent maps a student id to outcome id (or module) to a percentage.
type ByStudent map[string]map[string]float64

// earned sums (score / max) * weight over items; a missing or
// non-numeric score, or a zero max score, earns nothing.
func earned(items []outcome.Assessment, scores outcome.Scores) float64 {
	sum := 0.0
	for _, a := range items {
		if a.MaxScore == 0 {
			continue
		}
		s, ok := scores[a.Module]
		if !ok || !s.Numeric {
			continue
		}
		sum += s.Value / a.MaxScore * a.Weight
	}
	return sum
}

func totalWeight(items []outcome.Assessment) float64 {
	total := 0.0
	for _, a := range items {
		total += a.Weight
	}
	return total
}

func percentage(items []outcome.Assessment, total float64, scores outcome.Scores) float64 {
	if total == 0 {
		return 0
	}
	return Round2(earned(items, scores) / total * 100)
}

//
// CLOScores computes, for every student and every listed CLO, the
// weighted percentage earned on that CLO's assessments. A CLO with no
// assessments, or whose weights sum to zero, scores 0.
//
func CLOScores(clos []string, byCLO map[string][]outcome.Assessment, students map[string]outcome.Scores) ByStudent {
	out := make(ByStudent, len(students))
	totals := make(map[string]float64, len(clos))
	for _, id := range clos {
		totals[id] = totalWeight(byCLO[id])
	}
	for student, scores := range students {
		row := make(map[string]float64, len(clos))
		for _, id := range clos {
			row[id] = percentage(byCLO[id], totals[id], scores)
		}
		out[student] = row
	}
	return out
}

//
// PLOScores rolls each student's CLO scores up into the PLOs they map
// to, as the weight-averaged CLO score. PLOs fed by no CLO are absent.
//
func PLOScores(cloScores ByStudent, cloToPLO map[string]outcome.PLOMapping) ByStudent {
	type acc struct{ sum, weight float64 }

	out := make(ByStudent, len(cloScores))
	for student, clos := range cloScores {
		ids := make([]string, 0, len(clos))
		for id := range clos {
			ids = append(ids, id)
		}
		outcome.SortIDs(ids)

		plos := make(map[string]*acc)
		for _, id := range ids {
			m, ok := cloToPLO[id]
			if !ok {
				continue
			}
			a := plos[m.PLO]
			if a == nil {
				a = &acc{}
				plos[m.PLO] = a
			}
			a.sum += clos[id] * m.Weight
			a.weight += m.Weight
		}

		row := make(map[string]float64, len(plos))
		for plo, a := range plos {
			if a.weight == 0 {
				row[plo] = 0
				continue
			}
			row[plo] = Round2(a.sum / a.weight)
		}
		out[student] = row
	}
	return out
}

//
// OverallGrades treats every assessment as one flat pool regardless
// of CLO and returns each student's earned share of the total weight
// as a percentage, or 0 when the total weight is zero.
//
func OverallGrades(assessments []outcome.Assessment, students map[string]outcome.Scores) map[string]float64 {
	total := totalWeight(assessments)
	out := make(map[string]float64, len(students))
	for student, scores := range students {
		out[student] = percentage(assessments, total, scores)
	}
	return out
}

// TotalCLOWeights returns each CLO's rounded sum of assessment weights.
func TotalCLOWeights(byCLO map[string][]outcome.Assessment) map[string]float64 {
	out := make(map[string]float64, len(byCLO))
	for id, items := range byCLO {
		out[id] = Round2(totalWeight(items))
	}
	return out
}
