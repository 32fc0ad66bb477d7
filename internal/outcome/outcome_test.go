package outcome

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HammadMal/STRP-1/internal/grid"
)

func TestSortIDs(t *testing.T) {
	ids := []string{"CLO 10", "CLO 2", "Bonus", "CLO 1", "ab12345@x"}
	SortIDs(ids)
	assert.Equal(t, []string{"CLO 1", "CLO 2", "CLO 10", "Bonus", "ab12345@x"}, ids)
}

func TestScoreJSON(t *testing.T) {
	s := NewScore(grid.Text(" 12.5"))
	assert.True(t, s.Numeric)
	assert.Equal(t, 12.5, s.Value)

	b, err := json.Marshal(Scores{"Q1": s, "Q2": NewScore(grid.Text("absent"))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Q1": " 12.5", "Q2": "absent"}`, string(b))

	var back Scores
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back["Q1"].Numeric)
	assert.False(t, back["Q2"].Numeric)
}

func TestAssemble(t *testing.T) {
	clos := []CLO{
		{ID: "CLO 1", Description: "Analyse circuits", Level: "C3", PLO: &PLOMapping{PLO: "PLO 2", Weight: 0.5}},
		{ID: "CLO 2", Description: "Work in a team", Level: "A2"},
	}
	assessments := []Assessment{
		{Module: "Q1", CLO: "CLO 1", MaxScore: 10, Weight: 5},
		{Module: "Q3", CLO: "CLO 4", MaxScore: 10, Weight: 5},
		{Module: "Q2", CLO: "CLO 1", MaxScore: 20, Weight: 10},
	}
	students := map[string]StudentRecord{
		"aa00001@x": {ID: "aa00001@x", Scores: Scores{"Q1": NewScore(grid.Number(7))}},
	}
	warnings := []Warning{{Row: 3, Col: 2, Value: "1;x", Reason: "bad"}}

	res := Assemble(clos, assessments, students, warnings)

	assert.Equal(t, []string{"CLO 1", "CLO 2", "CLO 4"}, res.CLOIDs())
	assert.Equal(t, CLOEntry{}, res.CLOs["CLO 4"])
	assert.Equal(t, map[string]PLOMapping{"CLO 1": {PLO: "PLO 2", Weight: 0.5}}, res.CLOToPLO)

	require.Len(t, res.CLOAssessments["CLO 1"], 2)
	assert.Equal(t, "Q1", res.CLOAssessments["CLO 1"][0].Module)
	assert.Equal(t, "Q2", res.CLOAssessments["CLO 1"][1].Module)
	_, ok := res.CLOAssessments["CLO 2"]
	assert.False(t, ok)

	modules := []string{}
	for _, a := range res.Assessments() {
		modules = append(modules, a.Module)
	}
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, modules)

	assert.Equal(t, []string{"aa00001@x"}, res.StudentIDs())
	assert.Equal(t, warnings, res.Warnings)
	assert.Equal(t, "row 3 col 2 (\"1;x\"): bad", warnings[0].String())
}
