package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/capindex/internal/domain"
)

func trajectory(values ...float64) domain.Trajectory {
	var tr domain.Trajectory
	day := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		tr.Append(day.AddDate(0, 0, i), v)
	}
	return tr
}

func TestAnalyzeTotalReturn(t *testing.T) {
	perf, ok := Analyze(trajectory(100, 110, 121))
	require.True(t, ok)
	require.InDelta(t, 21.0, perf.TotalReturnPct, 1e-9)
}

func TestAnalyzeConstantSeriesSharpeIsZero(t *testing.T) {
	perf, ok := Analyze(trajectory(100, 100, 100, 100))
	require.True(t, ok)
	require.Zero(t, perf.Sharpe)
	require.False(t, math.IsNaN(perf.Sharpe))
	require.Zero(t, perf.MaxDrawdownPct)
}

func TestAnalyzeDrawdownBounds(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"monotonic rise", []float64{100, 110, 120}, 0},
		{"half lost", []float64{100, 200, 100}, 50},
		{"total loss", []float64{100, 0}, 100},
		{"recovers", []float64{100, 50, 150}, 50.0 / 150.0 * 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			perf, ok := Analyze(trajectory(tc.values...))
			require.True(t, ok)
			require.InDelta(t, tc.want, perf.MaxDrawdownPct, 1e-9)
			require.GreaterOrEqual(t, perf.MaxDrawdownPct, 0.0)
			require.LessOrEqual(t, perf.MaxDrawdownPct, 100.0)
		})
	}
}

func TestAnalyzeSharpeMatchesFormula(t *testing.T) {
	values := []float64{100, 102, 101, 105}
	perf, ok := Analyze(trajectory(values...))
	require.True(t, ok)

	returns := []float64{0.02, -1.0 / 102.0, 4.0 / 101.0}
	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / 3
	var varsum float64
	for _, r := range returns {
		varsum += (r - mean) * (r - mean)
	}
	want := math.Sqrt(365) * mean / math.Sqrt(varsum/3)
	require.InDelta(t, want, perf.Sharpe, 1e-9)
}

func TestAnalyzeAssetSkipsPaddedZeros(t *testing.T) {
	// Pre-listing days are recorded as zero; the first positive value is
	// the return base.
	perf, ok := AnalyzeAsset(trajectory(0, 0, 0, 10, 12, 15))
	require.True(t, ok)
	require.InDelta(t, 50.0, perf.TotalReturnPct, 1e-9)
}

func TestAnalyzeAssetExcludesSparseSeries(t *testing.T) {
	_, ok := AnalyzeAsset(trajectory(0, 0, 0, 10))
	require.False(t, ok, "a single usable point is not enough for metrics")

	_, ok = AnalyzeAsset(trajectory(0, 0, 0, 0))
	require.False(t, ok)
}

func TestAnalyzeTooShort(t *testing.T) {
	_, ok := Analyze(trajectory(100))
	require.False(t, ok)
}
