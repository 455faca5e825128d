// Package weights converts market-cap snapshots into target portfolio weights.
package weights

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Mode selects the weighting policy.
type Mode string

const (
	// CapWeighted assigns each asset exactly its market-cap share.
	CapWeighted Mode = "capweight"
	// CapWeightedFloor raises every raw share to a minimum allocation and
	// renormalizes. Small constituents get inflated; large caps can end up
	// below their raw share.
	CapWeightedFloor Mode = "capweight-floor"
)

// ErrNoCandidates is returned when no asset is eligible for the rebalance.
// The caller must skip the rebalance for that day, it is not a failure.
var ErrNoCandidates = errors.New("no assets eligible for rebalancing")

// Calculator computes normalized target weights from market caps.
type Calculator struct {
	mode          Mode
	minAllocation float64
}

// NewCalculator validates the mode and floor and returns a Calculator.
func NewCalculator(mode Mode, minAllocation float64) (*Calculator, error) {
	switch mode {
	case CapWeighted, CapWeightedFloor:
	default:
		return nil, fmt.Errorf("unknown weighting mode: %q", mode)
	}
	if minAllocation < 0 || minAllocation > 1 {
		return nil, fmt.Errorf("min allocation must be in [0,1], got %f", minAllocation)
	}
	return &Calculator{mode: mode, minAllocation: minAllocation}, nil
}

// Compute returns target weights for the given market-cap snapshot.
// Assets with a NaN market cap or a non-positive price cannot be valued or
// traded and are dropped from the candidate set. Weights of the remaining
// assets sum to 1 within floating tolerance.
func (c *Calculator) Compute(caps map[string]float64, prices map[string]decimal.Decimal) (map[string]float64, error) {
	included := make(map[string]float64, len(caps))
	var total float64
	for symbol, cap := range caps {
		if math.IsNaN(cap) {
			continue
		}
		if price, ok := prices[symbol]; !ok || !price.IsPositive() {
			continue
		}
		included[symbol] = cap
		total += cap
	}
	if len(included) == 0 || total <= 0 {
		return nil, ErrNoCandidates
	}

	weights := make(map[string]float64, len(included))
	var sum float64
	for symbol, cap := range included {
		w := cap / total
		if c.mode == CapWeightedFloor && w < c.minAllocation {
			w = c.minAllocation
		}
		weights[symbol] = w
		sum += w
	}
	if c.mode == CapWeightedFloor {
		// The floor breaks normalization, rescale back to a unit sum.
		for symbol := range weights {
			weights[symbol] /= sum
		}
	}
	return weights, nil
}
