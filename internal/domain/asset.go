package domain

import (
	"time"

	"github.com/pkg/errors"
)

// AssetSeries is an immutable, gap-free daily series of records for one asset.
// Records are strictly ascending by exactly one calendar day, so lookups by
// date are plain offset arithmetic. The series must never be mutated after
// construction: sweep workers read it concurrently without locks.
type AssetSeries struct {
	symbol  string
	records []Record
}

// NewAssetSeries validates contiguity and wraps the records.
func NewAssetSeries(symbol string, records []Record) (*AssetSeries, error) {
	if symbol == "" {
		return nil, errors.New("asset symbol is required")
	}
	if len(records) == 0 {
		return nil, errors.Errorf("asset %s has no records", symbol)
	}
	for i := range records {
		records[i].Date = Day(records[i].Date)
		if records[i].Price.IsNegative() {
			return nil, errors.Errorf("asset %s has negative price on %s",
				symbol, records[i].Date.Format(DateFormat))
		}
		if i == 0 {
			continue
		}
		if got, want := records[i].Date, records[i-1].Date.AddDate(0, 0, 1); !got.Equal(want) {
			return nil, errors.Errorf("asset %s series is not contiguous: %s follows %s",
				symbol, got.Format(DateFormat), records[i-1].Date.Format(DateFormat))
		}
	}
	return &AssetSeries{symbol: symbol, records: records}, nil
}

// Symbol returns the asset identifier.
func (s *AssetSeries) Symbol() string { return s.symbol }

// Start returns the first covered day.
func (s *AssetSeries) Start() time.Time { return s.records[0].Date }

// End returns the last covered day.
func (s *AssetSeries) End() time.Time { return s.records[len(s.records)-1].Date }

// At returns the record for the given day and whether the day is covered.
func (s *AssetSeries) At(day time.Time) (Record, bool) {
	day = Day(day)
	offset := int(day.Sub(s.records[0].Date).Hours() / 24)
	if offset < 0 || offset >= len(s.records) {
		return Record{}, false
	}
	return s.records[offset], true
}

// Len returns the number of daily records.
func (s *AssetSeries) Len() int { return len(s.records) }
