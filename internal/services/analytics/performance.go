// Package analytics derives return and risk metrics from valuation trajectories.
package analytics

import (
	"math"

	"github.com/vadiminshakov/capindex/internal/domain"
)

// tradingDaysPerYear annualizes daily sharpe: crypto markets trade every day.
const tradingDaysPerYear = 365

// Analyze computes metrics over the literal value sequence. Use it for the
// portfolio trajectory, which carries a valuation on every simulated day.
// ok is false when the series has fewer than two points.
func Analyze(trajectory domain.Trajectory) (domain.Performance, bool) {
	return analyze(trajectory.Values())
}

// AnalyzeAsset computes metrics for a single constituent. Leading zero
// values come from pre-listing padding, so only positive points count and
// the first positive value is the return base. Series with fewer than two
// usable points are excluded from metrics entirely.
func AnalyzeAsset(trajectory domain.Trajectory) (domain.Performance, bool) {
	values := trajectory.Values()
	usable := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			usable = append(usable, v)
		}
	}
	return analyze(usable)
}

func analyze(values []float64) (domain.Performance, bool) {
	if len(values) < 2 || values[0] == 0 {
		return domain.Performance{}, false
	}
	return domain.Performance{
		TotalReturnPct: (values[len(values)-1] - values[0]) / values[0] * 100,
		Sharpe:         sharpe(values),
		MaxDrawdownPct: maxDrawdown(values),
	}, true
}

func sharpe(values []float64) float64 {
	returns := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		returns = append(returns, (values[i]-values[i-1])/values[i-1])
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var varsum float64
	for _, r := range returns {
		varsum += (r - mean) * (r - mean)
	}
	stdev := math.Sqrt(varsum / float64(len(returns)))
	if stdev == 0 {
		// Division guard, not a claim about riskless returns.
		return 0
	}
	return math.Sqrt(tradingDaysPerYear) * mean / stdev
}

func maxDrawdown(values []float64) float64 {
	var peak, worst float64
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if dd := peak - v; dd > worst {
			worst = dd
		}
	}
	if peak == 0 {
		return 0
	}
	return worst / peak * 100
}
