package locate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HammadMal/STRP-1/internal/grid"
	"github.com/HammadMal/STRP-1/internal/outcome"
)

var (
	txt  = grid.Text
	num  = grid.Number
	miss = grid.Missing
)

func sheet() grid.Grid {
	return grid.Grid{
		{txt("EE 437 Assessment Sheet"), miss(), miss(), miss(), miss()},
		{txt("CLO 1"), txt("Analyze linear circuits using nodal methods"), txt("C3"), txt("1;0.4"), miss()},
		{txt("CLO 2"), txt("Design a simple amplifier stage"), txt("C5"), txt("1;0.6"), miss()},
		{txt("CLO 3"), txt("Communicate results in a lab report"), txt("A2"), miss(), miss()},
		{txt("Modules"), txt("Q1"), txt("Q2"), txt("Mid"), txt("Notes")},
		{txt("CLO"), txt("1;15"), txt("2;10"), txt("3;bad"), miss()},
		{txt("Max"), num(20), num(10), num(50), miss()},
		{txt("hm08298"), num(18), num(7.5), num(40), txt("late")},
		{txt("ab12345"), txt("absent"), miss(), num(25), miss()},
		{miss(), num(1), num(1), num(1), miss()},
	}
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		label string
		found bool
	}{
		{"Modules", true},
		{"module", true},
		{"Assessment MODULES:", true},
		{"Module name", true},
		{"submodule", false},
		{"Modulestuff", false},
		{"Students", false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			g := grid.Grid{
				{txt("title row")},
				{txt(tt.label)},
				{txt("map")},
				{txt("max")},
			}
			l, err := Discover(g, DefaultOptions())
			if !tt.found {
				assert.ErrorIs(t, err, ErrAnchorNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Layout{ModuleRow: 1, MappingRow: 2, MaxScoreRow: 3, FirstStudentRow: 4}, l)
			assert.Equal(t, 0, l.StudentRows(g))
		})
	}
}

func TestDiscoverFallback(t *testing.T) {
	g := grid.Grid{
		{txt("Assessments")},
		{txt("map")},
		{txt("max")},
		{txt("aa00001")},
	}
	_, err := Discover(g, DefaultOptions())
	require.ErrorIs(t, err, ErrAnchorNotFound)

	l, err := Discover(g, Options{FallbackAnchorRow: 0})
	require.NoError(t, err)
	assert.True(t, l.Fallback)
	assert.Equal(t, 3, l.FirstStudentRow)

	_, err = Discover(g, Options{FallbackAnchorRow: 2})
	assert.ErrorIs(t, err, ErrLayoutTruncated)
}

func TestDiscoverTruncated(t *testing.T) {
	g := grid.Grid{
		{txt("title")},
		{txt("Modules")},
		{txt("1;10")},
	}
	_, err := Discover(g, DefaultOptions())
	assert.ErrorIs(t, err, ErrLayoutTruncated)
}

func TestDiscoverEmpty(t *testing.T) {
	_, err := Discover(nil, DefaultOptions())
	assert.ErrorIs(t, err, grid.ErrEmpty)
}

func TestParsePair(t *testing.T) {
	tests := []struct {
		in     string
		idx    int
		weight float64
		ok     bool
	}{
		{"1;15", 1, 15, true},
		{" 2 ; 0.5 ", 2, 0.5, true},
		{"3;0", 3, 0, true},
		{"1;2;3", 0, 0, false},
		{"x;10", 0, 0, false},
		{"1;ten", 0, 0, false},
		{"1;-5", 0, 0, false},
		{"1;NaN", 0, 0, false},
		{";", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			idx, w, err := ParsePair(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.idx, idx)
			assert.Equal(t, tt.weight, w)
		})
	}
}

func TestLocate(t *testing.T) {
	x, err := Locate(sheet(), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 4, x.Layout.ModuleRow)
	assert.False(t, x.Layout.Fallback)

	require.Len(t, x.CLOs, 3)
	assert.Equal(t, "CLO 1", x.CLOs[0].ID)
	assert.Equal(t, "C3", x.CLOs[0].Level)
	assert.Equal(t, &outcome.PLOMapping{PLO: "PLO 1", Weight: 0.4}, x.CLOs[0].PLO)
	assert.Equal(t, &outcome.PLOMapping{PLO: "PLO 1", Weight: 0.6}, x.CLOs[1].PLO)
	assert.Equal(t, "Communicate results in a lab report", x.CLOs[2].Description)
	assert.Nil(t, x.CLOs[2].PLO)

	assert.Equal(t, []outcome.Assessment{
		{Module: "Q1", CLO: "CLO 1", MaxScore: 20, Weight: 15},
		{Module: "Q2", CLO: "CLO 2", MaxScore: 10, Weight: 10},
	}, x.Assessments)

	require.Len(t, x.Warnings, 1)
	assert.Equal(t, 5, x.Warnings[0].Row)
	assert.Equal(t, 3, x.Warnings[0].Col)
	assert.Equal(t, "3;bad", x.Warnings[0].Value)
	assert.Contains(t, x.Warnings[0].Reason, "bad CLO mapping")

	require.Len(t, x.Students, 2)
	first := x.Students[0]
	assert.Equal(t, "hm08298", first.ID)
	assert.Equal(t, 7, first.Row)
	assert.Len(t, first.Scores, 4)
	assert.Equal(t, 7.5, first.Scores["Q2"].Value)
	assert.False(t, first.Scores["Notes"].Numeric)

	second := x.Students[1]
	assert.Equal(t, "ab12345", second.ID)
	assert.Len(t, second.Scores, 2)
	assert.False(t, second.Scores["Q1"].Numeric)
	_, ok := second.Scores["Q2"]
	assert.False(t, ok)
}

func TestLocateSkipsBadEntries(t *testing.T) {
	g := grid.Grid{
		{txt("CLO 1"), txt("Short"), miss(), miss()},
		{txt("CLO two"), txt("A description without a number"), miss(), miss()},
		{txt("CLO-4"), txt("Evaluate the stability of control loops"), txt("C6"), txt("2;x")},
		{txt("CLO 4"), txt("Repeat definition of the same outcome"), miss(), miss()},
		{txt("Module"), txt("Q1"), miss(), txt("Lab")},
		{txt("Mapping"), txt("4;10"), txt("4;5"), txt("4;20")},
		{txt("Max"), txt("n/a"), num(10), num(-1)},
		{txt("CLO 9"), txt("Outcome defined after the header block"), miss(), miss()},
		{txt("aa00001"), num(5), num(5), num(5)},
	}
	x, err := Locate(g, DefaultOptions())
	require.NoError(t, err)

	ids := []string{}
	for _, c := range x.CLOs {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"CLO 4", "CLO 9"}, ids)
	assert.Nil(t, x.CLOs[0].PLO)

	assert.Empty(t, x.Assessments)

	reasons := []string{}
	for _, w := range x.Warnings {
		reasons = append(reasons, w.Reason)
	}
	assert.Len(t, reasons, 6)
	assert.Contains(t, reasons, "outcome label has no number")
	assert.Contains(t, reasons, "duplicate definition of CLO 4 ignored")
	assert.Contains(t, reasons, "CLO mapping has no module name")
	assert.Contains(t, reasons, "max score is not a number")
	assert.Contains(t, reasons, "max score is negative")

	require.Len(t, x.Students, 1)
	assert.Equal(t, "aa00001", x.Students[0].ID)
}

func TestLocateFallbackWarns(t *testing.T) {
	g := grid.Grid{
		{txt("Items"), txt("Q1")},
		{txt("map"), txt("1;10")},
		{txt("max"), num(10)},
		{txt("aa00001"), num(10)},
	}
	x, err := Locate(g, Options{FallbackAnchorRow: 0})
	require.NoError(t, err)
	require.Len(t, x.Warnings, 1)
	assert.True(t, x.Layout.Fallback)
	require.Len(t, x.Assessments, 1)
	assert.Equal(t, "CLO 1", x.Assessments[0].CLO)
}
