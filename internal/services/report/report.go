// Package report renders the human-readable outcome of one backtest run.
package report

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/vadiminshakov/capindex/internal/domain"
	"github.com/vadiminshakov/capindex/internal/services/analytics"
	"github.com/vadiminshakov/capindex/internal/services/simulator"
)

// Write prints starting/final portfolio value and a comparison table of the
// index against every constituent held alone. Constituents without enough
// usable data are listed as excluded instead of being dropped.
func Write(w io.Writer, result *simulator.Result, order []string) error {
	var out string
	out += fmt.Sprintf("Starting portfolio value: %s\n", result.Initial.StringFixed(2))
	out += fmt.Sprintf("Final portfolio value:    %s\n\n", result.Final.StringFixed(2))
	out += "=== Performance Comparison ===\n"
	out += fmt.Sprintf("%-10s %10s %10s %10s\n", "Asset", "Return %", "Sharpe", "Max DD %")

	if perf, ok := analytics.Analyze(result.Portfolio); ok {
		out += line(domain.IndexColumn, perf)
	} else {
		out += fmt.Sprintf("%-10s %10s %10s %10s\n", domain.IndexColumn, "excluded", "-", "-")
	}
	for _, symbol := range order {
		trajectory, found := result.Assets[symbol]
		if !found {
			continue
		}
		if perf, ok := analytics.AnalyzeAsset(trajectory); ok {
			out += line(symbol, perf)
		} else {
			out += fmt.Sprintf("%-10s %10s %10s %10s\n", symbol, "excluded", "-", "-")
		}
	}

	_, err := io.WriteString(w, out)
	return errors.Wrap(err, "write report")
}

func line(name string, perf domain.Performance) string {
	return fmt.Sprintf("%-10s %10.2f %10.2f %10.2f\n",
		name, perf.TotalReturnPct, perf.Sharpe, perf.MaxDrawdownPct)
}
