package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the canonical on-disk representation of a trading day.
const DateFormat = "2006-01-02"

// Day normalizes a timestamp to midnight UTC so dates compare by calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Record is a single daily observation for one asset.
// MarketCap is NaN when the asset had no capitalization data for that day
// (not yet listed); Price is zero on padded pre-listing days.
type Record struct {
	Date      time.Time
	Price     decimal.Decimal
	MarketCap float64
	Volume    float64
}

// Listed reports whether the record carries tradable data.
func (r Record) Listed() bool {
	return r.Price.IsPositive() && !math.IsNaN(r.MarketCap)
}
