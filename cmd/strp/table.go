package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/HammadMal/STRP-1/internal/report"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(title string, headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if title != "" {
		tw.SetTitle(title)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func pct(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// studentAligns is one left column for the id and right for the rest.
func studentAligns(n int) []columnAlignment {
	aligns := make([]columnAlignment, n+1)
	for i := 1; i <= n; i++ {
		aligns[i] = alignRight
	}
	return aligns
}

func scoreTable(title string, outcomes, students []string, scores map[string]map[string]float64) string {
	headers := append([]string{"Student"}, outcomes...)
	rows := make([][]string, 0, len(students))
	for _, id := range students {
		row := []string{id}
		for _, o := range outcomes {
			v, ok := scores[id][o]
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, pct(v))
		}
		rows = append(rows, row)
	}
	return renderTable(title, headers, rows, studentAligns(len(outcomes)))
}

//
// printRun writes the console view of one scored workbook: CLO and PLO
// attainment per student, final grades, CLO weights and the class
// summary.
//
func printRun(w io.Writer, res fileResult) {
	run := res.Run
	heading := run.Source
	if res.Course != nil {
		heading = res.Course.DisplayName()
	}
	fmt.Fprintf(w, "\n%s\n", heading)

	students := run.StudentIDs()
	clos := run.CLOIDs()
	plos := run.PLOIDs()

	fmt.Fprintln(w, scoreTable("CLO scores (%)", clos, students, run.CLOScores))
	if len(plos) > 0 {
		fmt.Fprintln(w, scoreTable("PLO scores (%)", plos, students, run.PLOScores))
	}

	grades := make([][]string, 0, len(students))
	for _, id := range students {
		g := run.Overall[id]
		grades = append(grades, []string{id, pct(g.Percentage), g.Letter})
	}
	fmt.Fprintln(w, renderTable("Final grades", []string{"Student", "Percentage", "Grade"}, grades,
		[]columnAlignment{alignLeft, alignRight, alignLeft}))

	weights := make([][]string, 0, len(clos))
	for _, id := range clos {
		weights = append(weights, []string{id, pct(run.TotalCLOWeight[id])})
	}
	fmt.Fprintln(w, renderTable("Total CLO weights", []string{"CLO", "Weight"}, weights,
		[]columnAlignment{alignLeft, alignRight}))

	outcomes := make([]report.OutcomeSummary, 0, len(run.Summary.CLOs)+len(run.Summary.PLOs))
	outcomes = append(outcomes, run.Summary.CLOs...)
	outcomes = append(outcomes, run.Summary.PLOs...)
	summary := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		summary = append(summary, []string{
			o.ID,
			pct(o.Average),
			strconv.Itoa(o.Students),
			strconv.Itoa(o.Above80),
			strconv.Itoa(o.Below60),
		})
	}
	fmt.Fprintln(w, renderTable("Outcome summary", []string{"Outcome", "Average", "Students", ">= 80", "< 60"}, summary,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight}))

	if n := len(run.Warnings); n > 0 {
		fmt.Fprintf(w, "%d cell(s) skipped, see log\n", n)
	}
}

// printResults writes every successful run and a closing tally.
func printResults(w io.Writer, results []fileResult) {
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		printRun(w, r)
	}
	fmt.Fprintf(w, "\nprocessed %d file(s), %d failed\n", len(results), failures(results))
}
