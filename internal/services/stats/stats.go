// Package stats summarizes a sweep return matrix: how often the index beats
// each constituent, and how bad a mistimed entry could have been.
package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ColumnSummary aggregates all sweep rows for one matrix column.
type ColumnSummary struct {
	Name          string
	WorstReturn   float64
	WorstDate     string
	AverageReturn float64
	// ProbNegative is the share of entry dates with a negative return.
	ProbNegative float64
	// ProbIndexBeats is the share of entry dates where the asset returned
	// less than the index. Zero for the index column itself.
	ProbIndexBeats float64
	Samples        int
}

// Report is the computed summary for every matrix column.
type Report struct {
	Columns []ColumnSummary
}

// Compute reads a return-matrix CSV (as written by the sweep) and summarizes
// each column. Non-numeric cells (the exclusion marker) are skipped per
// column; rows where either side is excluded do not count toward the
// index-vs-asset comparison.
func Compute(r io.Reader) (*Report, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read return matrix")
	}
	if len(rows) < 2 {
		return nil, errors.New("return matrix has no data rows")
	}
	header := rows[0]
	if len(header) < 2 {
		return nil, errors.New("return matrix needs an entry-date column and at least one asset column")
	}

	report := &Report{}
	for col := 1; col < len(header); col++ {
		summary := ColumnSummary{Name: header[col]}
		var sum float64
		var negative int
		var beaten, compared int
		for _, row := range rows[1:] {
			value, ok := cell(row, col)
			if !ok {
				continue
			}
			if summary.Samples == 0 || value < summary.WorstReturn {
				summary.WorstReturn = value
				summary.WorstDate = row[0]
			}
			sum += value
			if value < 0 {
				negative++
			}
			summary.Samples++

			if col > 1 {
				if index, ok := cell(row, 1); ok {
					compared++
					if value < index {
						beaten++
					}
				}
			}
		}
		if summary.Samples == 0 {
			report.Columns = append(report.Columns, summary)
			continue
		}
		summary.AverageReturn = sum / float64(summary.Samples)
		summary.ProbNegative = float64(negative) / float64(summary.Samples)
		if compared > 0 {
			summary.ProbIndexBeats = float64(beaten) / float64(compared)
		}
		report.Columns = append(report.Columns, summary)
	}
	return report, nil
}

func cell(row []string, col int) (float64, bool) {
	if col >= len(row) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// WriteMarkdown renders the report as a Markdown table.
func WriteMarkdown(w io.Writer, report *Report) error {
	var b strings.Builder
	b.WriteString("# Index vs constituents\n\n")
	b.WriteString("| Asset | Worst return, % | Average return, % | Index beats asset, % | Negative return, % |\n")
	b.WriteString("|-------|-----------------|-------------------|----------------------|--------------------|\n")
	for _, col := range report.Columns {
		if col.Samples == 0 {
			fmt.Fprintf(&b, "| %s | - | - | - | - |\n", col.Name)
			continue
		}
		fmt.Fprintf(&b, "| %s | %.2f (%s) | %.2f | %.2f | %.2f |\n",
			col.Name, col.WorstReturn, col.WorstDate, col.AverageReturn,
			col.ProbIndexBeats*100, col.ProbNegative*100)
	}
	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "write stats report")
}

// WriteText renders the report as the plain multi-section listing.
func WriteText(w io.Writer, report *Report) error {
	var b strings.Builder
	b.WriteString("Worst returns with corresponding entry days:\n")
	for _, col := range report.Columns {
		fmt.Fprintf(&b, "  %s: %.2f%% on %s\n", col.Name, col.WorstReturn, col.WorstDate)
	}
	b.WriteString("\nAverage returns:\n")
	for _, col := range report.Columns {
		fmt.Fprintf(&b, "  %s: %.2f%%\n", col.Name, col.AverageReturn)
	}
	b.WriteString("\nProbability that the asset returns less than the index:\n")
	for _, col := range report.Columns {
		if col.Name == report.Columns[0].Name {
			continue
		}
		fmt.Fprintf(&b, "  %s: %.2f%%\n", col.Name, col.ProbIndexBeats*100)
	}
	b.WriteString("\nProbability of a negative return:\n")
	for _, col := range report.Columns {
		fmt.Fprintf(&b, "  %s: %.2f%%\n", col.Name, col.ProbNegative*100)
	}
	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "write stats report")
}
