package grid

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	// DefaultShortRowLimit drops stray separator rows of two characters or less.
	DefaultShortRowLimit = 2
	// DefaultSparseColumnLimit drops columns that are more than 70% missing.
	DefaultSparseColumnLimit = 0.7
)

// CleanOptions tunes row and column pruning.
type CleanOptions struct {
	ShortRowLimit     int
	SparseColumnLimit float64
}

// DefaultCleanOptions returns the pruning thresholds used by the tool.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		ShortRowLimit:     DefaultShortRowLimit,
		SparseColumnLimit: DefaultSparseColumnLimit,
	}
}

var controlRun = regexp.MustCompile(`[\r\n\t]+`)

func isZeroWidth(r rune) bool {
	switch r {
	case '\u200b', '\u200c', '\u200d', '\u2060', '\ufeff':
		return true
	}
	return false
}

func newTextCleaner() transform.Transformer {
	return transform.Chain(
		runes.Remove(runes.Predicate(isZeroWidth)),
		runes.Map(func(r rune) rune {
			if r == '\u00a0' {
				return ' '
			}
			return r
		}),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
}

func cleanText(t transform.Transformer, s string) string {
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = controlRun.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

//
// Clean normalises every cell and prunes degenerate rows and columns.
// The input grid is left untouched.
//
// Order of work: cell normalisation, all-missing rows and columns,
// short rows, then sparse columns.
//
func Clean(raw Grid, opts CleanOptions) Grid {
	width := raw.Cols()
	t := newTextCleaner()

	g := make(Grid, 0, len(raw))
	for _, row := range raw {
		out := make([]Cell, width)
		for j, c := range row {
			out[j] = normalizeCell(t, c)
		}
		g = append(g, out)
	}

	g = dropMissingRows(g)
	g = dropColumns(g, func(missing, total int) bool { return missing == total })
	g = dropShortRows(g, opts.ShortRowLimit)
	g = dropColumns(g, func(missing, total int) bool {
		return float64(missing)/float64(total) > opts.SparseColumnLimit
	})
	return g
}

func normalizeCell(t transform.Transformer, c Cell) Cell {
	if c.kind != KindText {
		return c
	}
	s := cleanText(t, c.text)
	if s == "" {
		return Missing()
	}
	return Text(s)
}

func dropMissingRows(g Grid) Grid {
	out := g[:0:0]
	for _, row := range g {
		for _, c := range row {
			if !c.IsMissing() {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

func rowChars(row []Cell) int {
	n := 0
	for _, c := range row {
		if c.IsMissing() {
			continue
		}
		n += len(strings.TrimSpace(c.String()))
	}
	return n
}

func dropShortRows(g Grid, limit int) Grid {
	out := g[:0:0]
	for _, row := range g {
		if rowChars(row) > limit {
			out = append(out, row)
		}
	}
	return out
}

// dropColumns removes every column for which drop(missing, rows) is true.
func dropColumns(g Grid, drop func(missing, total int) bool) Grid {
	if len(g) == 0 {
		return g
	}
	width := g.Cols()
	keep := make([]int, 0, width)
	for j := 0; j < width; j++ {
		missing := 0
		for i := range g {
			if g.At(i, j).IsMissing() {
				missing++
			}
		}
		if !drop(missing, len(g)) {
			keep = append(keep, j)
		}
	}
	if len(keep) == width {
		return g
	}
	out := make(Grid, len(g))
	for i := range g {
		row := make([]Cell, len(keep))
		for k, j := range keep {
			row[k] = g.At(i, j)
		}
		out[i] = row
	}
	return out
}
