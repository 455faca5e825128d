// Package marketdata loads normalized per-asset CSV files into immutable
// daily series consumed by the simulator.
package marketdata

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/capindex/internal/domain"
)

// rawDateFormat is the CoinGecko export timestamp; normalized files use the
// plain domain.DateFormat but raw files copied through unchanged keep this.
const rawDateFormat = "2006-01-02 15:04:05 UTC"

// Loader reads asset CSVs from a data directory.
type Loader struct {
	dir    string
	logger *zap.Logger
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{dir: dir, logger: logger}
}

// Load reads one CSV per symbol (<dir>/<symbol>.csv). Any unreadable file or
// malformed row is fatal for the whole universe: simulating a partial
// constituent set would silently skew every weight.
func (l *Loader) Load(symbols []string) ([]*domain.AssetSeries, error) {
	if len(symbols) == 0 {
		return nil, errors.New("no constituent symbols configured")
	}
	series := make([]*domain.AssetSeries, 0, len(symbols))
	for _, symbol := range symbols {
		s, err := l.loadOne(symbol)
		if err != nil {
			return nil, errors.Wrapf(err, "load constituent %s", symbol)
		}
		l.logger.Info("loaded constituent series",
			zap.String("asset", symbol),
			zap.Int("days", s.Len()),
			zap.Time("start", s.Start()),
			zap.Time("end", s.End()))
		series = append(series, s)
	}
	return series, nil
}

func (l *Loader) loadOne(symbol string) (*domain.AssetSeries, error) {
	path := filepath.Join(l.dir, symbol+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open data file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if len(rows) < 2 {
		return nil, errors.Errorf("%s has no data rows", path)
	}

	records := make([]domain.Record, 0, len(rows)-1)
	for i, row := range rows[1:] { // skip header
		rec, err := parseRow(row)
		if err != nil {
			return nil, errors.Wrapf(err, "%s row %d", path, i+2)
		}
		records = append(records, rec)
	}
	return domain.NewAssetSeries(symbol, records)
}

func parseRow(row []string) (domain.Record, error) {
	if len(row) < 4 {
		return domain.Record{}, errors.Errorf("want 4 columns (date,price,market_cap,volume), got %d", len(row))
	}
	day, err := parseDate(row[0])
	if err != nil {
		return domain.Record{}, err
	}
	price, err := decimal.NewFromString(strings.TrimSpace(row[1]))
	if err != nil {
		return domain.Record{}, errors.Wrapf(err, "invalid price %q", row[1])
	}
	return domain.Record{
		Date:      day,
		Price:     price,
		MarketCap: parseOptionalFloat(row[2]),
		Volume:    parseOptionalFloat(row[3]),
	}, nil
}

func parseDate(field string) (time.Time, error) {
	field = strings.TrimSpace(field)
	if t, err := time.Parse(domain.DateFormat, field); err == nil {
		return t, nil
	}
	t, err := time.Parse(rawDateFormat, field)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid date %q, want %q or %q",
			field, domain.DateFormat, rawDateFormat)
	}
	return domain.Day(t), nil
}

// parseOptionalFloat maps empty or unparsable cells to NaN: CoinGecko leaves
// market cap blank for days before capitalization was tracked.
func parseOptionalFloat(field string) float64 {
	field = strings.TrimSpace(field)
	if field == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
