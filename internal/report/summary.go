package report

import (
	"github.com/HammadMal/STRP-1/internal/outcome"
	"github.com/HammadMal/STRP-1/internal/scoring"
)

const (
	strongScore = 80
	weakScore   = 60
)

// OutcomeSummary describes how the class did on one CLO or PLO.
type OutcomeSummary struct {
	ID       string  `json:"id"`
	Average  float64 `json:"average"`
	Students int     `json:"students"`
	Above80  int     `json:"above_80"`
	Below60  int     `json:"below_60"`
}

// Summary holds class-level figures per outcome, in outcome order.
type Summary struct {
	CLOs []OutcomeSummary `json:"clos"`
	PLOs []OutcomeSummary `json:"plos"`
}

//
// Summarize averages each outcome over the class. Every CLO counts
// every student; a PLO counts only the students who have a score for it.
//
func Summarize(clos []string, cloScores, ploScores scoring.ByStudent) Summary {
	s := Summary{}
	for _, id := range clos {
		s.CLOs = append(s.CLOs, summarize(id, cloScores))
	}

	seen := map[string]bool{}
	plos := []string{}
	for _, row := range ploScores {
		for id := range row {
			if !seen[id] {
				seen[id] = true
				plos = append(plos, id)
			}
		}
	}
	outcome.SortIDs(plos)
	for _, id := range plos {
		s.PLOs = append(s.PLOs, summarize(id, ploScores))
	}
	return s
}

func summarize(id string, byStudent scoring.ByStudent) OutcomeSummary {
	o := OutcomeSummary{ID: id}
	students := make([]string, 0, len(byStudent))
	for student := range byStudent {
		students = append(students, student)
	}
	outcome.SortIDs(students)

	sum := 0.0
	for _, student := range students {
		v, ok := byStudent[student][id]
		if !ok {
			continue
		}
		o.Students++
		sum += v
		if v >= strongScore {
			o.Above80++
		}
		if v < weakScore {
			o.Below60++
		}
	}
	if o.Students > 0 {
		o.Average = scoring.Round2(sum / float64(o.Students))
	}
	return o
}
