package domain

import "time"

// Point is one recorded valuation on a simulated day.
type Point struct {
	Date  time.Time
	Value float64
}

// Trajectory is an append-only sequence of daily valuation points,
// one per simulated day.
type Trajectory struct {
	Points []Point
}

// Append records one more valuation point.
func (t *Trajectory) Append(day time.Time, value float64) {
	t.Points = append(t.Points, Point{Date: day, Value: value})
}

// Values returns the raw value sequence.
func (t *Trajectory) Values() []float64 {
	vals := make([]float64, len(t.Points))
	for i, p := range t.Points {
		vals[i] = p.Value
	}
	return vals
}

// RebalanceEvent captures one executed rebalance: the market-cap snapshot
// that triggered it and the resulting target weights.
type RebalanceEvent struct {
	Date       time.Time          `json:"date"`
	MarketCaps map[string]float64 `json:"market_caps"`
	Weights    map[string]float64 `json:"weights"`
}
