//
// Package xlsx loads the outcome sheet of a course workbook into a
// grid.Grid.
//
package xlsx

import (
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/HammadMal/STRP-1/internal/grid"
)

// DataSheet is read when present, otherwise the first sheet.
const DataSheet = "Data"

// ErrLegacyFormat is returned for .xls workbooks, which cannot be read.
var ErrLegacyFormat = errors.New("legacy .xls workbooks are not supported, save as .xlsx")

// ReadFile opens the workbook at path and returns its outcome sheet.
func ReadFile(path string) (grid.Grid, error) {
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		return nil, errors.Wrap(ErrLegacyFormat, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open workbook %s", path)
	}
	defer f.Close()

	g, err := sheet(f)
	return g, errors.Wrap(err, path)
}

// Read is ReadFile for an in-memory workbook.
func Read(r io.Reader) (grid.Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open workbook")
	}
	defer f.Close()
	return sheet(f)
}

// SheetName picks the sheet Read would load.
func SheetName(f *excelize.File) (string, error) {
	names := f.GetSheetList()
	if len(names) == 0 {
		return "", errors.New("workbook has no sheets")
	}
	for _, n := range names {
		if n == DataSheet {
			return n, nil
		}
	}
	return names[0], nil
}

func sheet(f *excelize.File) (grid.Grid, error) {
	name, err := SheetName(f)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read sheet %q", name)
	}

	g := make(grid.Grid, len(rows))
	for r, row := range rows {
		g[r] = make([]grid.Cell, len(row))
		for c, v := range row {
			g[r][c] = cell(v)
		}
	}
	return g, nil
}

//
// cell types a raw value: blank is missing, anything that parses as a
// finite number is numeric, the rest is text.
//
func cell(v string) grid.Cell {
	s := strings.TrimSpace(v)
	if s == "" {
		return grid.Missing()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return grid.Number(f)
	}
	return grid.Text(v)
}
