package grid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellString(t *testing.T) {
	assert.Equal(t, "", Missing().String())
	assert.Equal(t, "abc", Text("abc").String())
	assert.Equal(t, "18", Number(18).String())
	assert.Equal(t, "17.5", Number(17.5).String())
}

func TestCellFloat(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want float64
		ok   bool
	}{
		{"number", Number(12.5), 12.5, true},
		{"numeric text", Text(" 20 "), 20, true},
		{"word", Text("absent"), 0, false},
		{"missing", Missing(), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cell.Float()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode(t *testing.T) {
	g, err := Decode([]byte(`[["Modules", "Q1", null], [1, 2.5, true]]`))
	require.NoError(t, err)
	require.Equal(t, 2, g.Rows())

	assert.Equal(t, KindText, g.At(0, 0).Kind())
	assert.True(t, g.At(0, 2).IsMissing())
	assert.Equal(t, KindNumber, g.At(1, 0).Kind())
	assert.Equal(t, "2.5", g.At(1, 1).String())
	assert.Equal(t, "true", g.At(1, 2).String())
	assert.True(t, g.At(9, 9).IsMissing())
}

func TestDecodeRejects(t *testing.T) {
	_, err := Decode([]byte(`[]`))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Decode([]byte(`[[], []]`))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Decode([]byte(`{"a": 1}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`[[1], 2]`))
	assert.Error(t, err)

	_, err = Decode([]byte(`[[1`))
	assert.Error(t, err)
}

func TestCellJSON(t *testing.T) {
	b, err := json.Marshal([]Cell{Missing(), Text("x"), Number(3)})
	require.NoError(t, err)
	assert.JSONEq(t, `[null, "x", 3]`, string(b))

	var cells []Cell
	require.NoError(t, json.Unmarshal(b, &cells))
	require.Len(t, cells, 3)
	assert.True(t, cells[0].IsMissing())
	assert.True(t, cells[1].Equal(Text("x")))
	assert.True(t, cells[2].Equal(Number(3)))
}

func TestCleanText(t *testing.T) {
	raw := Grid{
		{Text("  Modu\u200bles\u00a0 "), Text("Q1\r\n\tpart"), Text("caf\u00e9")},
		{Text("aa00001"), Number(10), Text("x")},
	}
	g := Clean(raw, DefaultCleanOptions())
	require.Equal(t, 2, g.Rows())
	assert.Equal(t, "Modules", g.At(0, 0).String())
	assert.Equal(t, "Q1 part", g.At(0, 1).String())
	assert.Equal(t, "caf", g.At(0, 2).String())
	assert.True(t, g.At(1, 1).Equal(Number(10)))
}

func TestCleanDropsEmptyAndShortRows(t *testing.T) {
	raw := Grid{
		{Text("Modules"), Text("Q1"), Text("Q2")},
		{Missing(), Missing(), Missing()},
		{Text("-"), Missing(), Text("-")},
		{Text("\u00a0"), Missing(), Missing()},
		{Text("aa00001"), Number(5), Number(6)},
	}
	g := Clean(raw, DefaultCleanOptions())
	require.Equal(t, 2, g.Rows())
	assert.Equal(t, "Modules", g.At(0, 0).String())
	assert.Equal(t, "aa00001", g.At(1, 0).String())
}

func TestCleanDropsEmptyAndSparseColumns(t *testing.T) {
	raw := Grid{
		{Text("Modules"), Missing(), Text("Q1"), Text("note")},
		{Text("row two"), Missing(), Number(1), Missing()},
		{Text("row three"), Missing(), Number(2), Missing()},
		{Text("row four"), Missing(), Number(3), Missing()},
	}
	g := Clean(raw, DefaultCleanOptions())
	assert.Equal(t, 2, g.Cols())
	assert.Equal(t, "Q1", g.At(0, 1).String())
}

func TestCleanKeepsColumnAtSparseLimit(t *testing.T) {
	// 7 of 10 missing is exactly 0.7 and survives.
	raw := Grid{}
	for i := 0; i < 10; i++ {
		c := Missing()
		if i < 3 {
			c = Number(float64(i))
		}
		raw = append(raw, []Cell{Text("label"), c})
	}
	g := Clean(raw, DefaultCleanOptions())
	assert.Equal(t, 2, g.Cols())
}

func TestCleanPadsRaggedRows(t *testing.T) {
	raw := Grid{
		{Text("Modules"), Text("Q1")},
		{Text("aa00001")},
		{Text("bb00002"), Number(4)},
	}
	g := Clean(raw, CleanOptions{ShortRowLimit: 2, SparseColumnLimit: 0.7})
	require.Equal(t, 3, g.Rows())
	assert.Len(t, g[1], 2)
	assert.True(t, g.At(1, 1).IsMissing())
}

func TestCleanIsIdempotent(t *testing.T) {
	raw := Grid{
		{Text("Modules"), Text("Q1"), Text("Q2")},
		{Text("CLO Mapping"), Text("1;15"), Text("2;10")},
		{Text("Max"), Number(20), Number(10)},
		{Text("hm08298"), Number(18), Number(7.5)},
	}
	once := Clean(raw, DefaultCleanOptions())
	assert.True(t, raw.Equal(once))
	assert.True(t, once.Equal(Clean(once, DefaultCleanOptions())))
}

func TestCleanDoesNotMutateInput(t *testing.T) {
	raw := Grid{
		{Text(" Modules "), Text("Q1")},
		{Missing(), Missing()},
	}
	_ = Clean(raw, DefaultCleanOptions())
	assert.Equal(t, " Modules ", raw.At(0, 0).String())
	assert.Equal(t, 2, raw.Rows())
}

func TestCleanEmpty(t *testing.T) {
	assert.Equal(t, 0, Clean(nil, DefaultCleanOptions()).Rows())
}
