// Package sweep runs one independent simulation per candidate entry date and
// assembles the resulting entry-date x asset return matrix.
package sweep

import (
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/capindex/internal/domain"
	"github.com/vadiminshakov/capindex/internal/services/analytics"
	"github.com/vadiminshakov/capindex/internal/services/simulator"
	"github.com/vadiminshakov/capindex/internal/services/weights"
)

// Config bounds one sweep.
type Config struct {
	EntryFrom      time.Time // first candidate entry date, inclusive
	EntryTo        time.Time // last candidate entry date, inclusive
	ExitDate       time.Time // fixed end of every simulated window
	RebalanceEvery int
	InitialCash    decimal.Decimal
	WeightingMode  weights.Mode
	MinAllocation  float64
	Workers        int // 0 means one worker per CPU
}

func (c Config) validate() error {
	if c.EntryTo.Before(c.EntryFrom) {
		return errors.Errorf("entry interval start %s is after its end %s",
			c.EntryFrom.Format(domain.DateFormat), c.EntryTo.Format(domain.DateFormat))
	}
	if !c.EntryTo.Before(c.ExitDate) {
		return errors.Errorf("entry interval end %s must be strictly before exit date %s",
			c.EntryTo.Format(domain.DateFormat), c.ExitDate.Format(domain.DateFormat))
	}
	return nil
}

// Driver fans entry dates out across workers. Every run gets a fresh
// simulator and ledger; the only shared state is the read-only series.
type Driver struct {
	assets []*domain.AssetSeries
	cfg    Config
	logger *zap.Logger
}

// NewDriver validates the sweep configuration up front, before any
// simulation work is spent.
func NewDriver(assets []*domain.AssetSeries, cfg Config, logger *zap.Logger) (*Driver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	// Probe the per-run config once so a bad rebalance period or weighting
	// mode fails here rather than inside every worker.
	if _, err := simulator.New(assets, cfg.runConfig(cfg.EntryFrom), logger); err != nil {
		return nil, err
	}
	return &Driver{assets: assets, cfg: cfg, logger: logger}, nil
}

func (c Config) runConfig(entry time.Time) simulator.Config {
	return simulator.Config{
		Start:          entry,
		End:            c.ExitDate,
		RebalanceEvery: c.RebalanceEvery,
		InitialCash:    c.InitialCash,
		WeightingMode:  c.WeightingMode,
		MinAllocation:  c.MinAllocation,
	}
}

// Run executes one simulation per entry date and returns the matrix with
// rows in entry-date order. The column set is fixed for the whole sweep;
// assets without usable metrics for an entry date carry an explicit
// exclusion marker instead of a number.
func (d *Driver) Run() (*domain.ReturnMatrix, error) {
	entries := d.entryDates()
	matrix := &domain.ReturnMatrix{
		Columns: d.columns(),
		Rows:    make([]domain.ReturnRow, len(entries)),
	}

	d.logger.Info("starting sweep",
		zap.Int("entry_dates", len(entries)),
		zap.Int("workers", d.cfg.Workers))

	jobs := make(chan int)
	errOnce := make(chan error, len(entries))
	var wg sync.WaitGroup
	for w := 0; w < d.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				row, err := d.simulateEntry(entries[i])
				if err != nil {
					errOnce <- errors.Wrapf(err, "entry date %s", entries[i].Format(domain.DateFormat))
					continue
				}
				matrix.Rows[i] = row
			}
		}()
	}
	for i := range entries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	select {
	case err := <-errOnce:
		return nil, err
	default:
	}
	return matrix, nil
}

func (d *Driver) simulateEntry(entry time.Time) (domain.ReturnRow, error) {
	sim, err := simulator.New(d.assets, d.cfg.runConfig(entry), d.logger)
	if err != nil {
		return domain.ReturnRow{}, err
	}
	result, err := sim.Run()
	if err != nil {
		return domain.ReturnRow{}, err
	}

	row := domain.ReturnRow{
		EntryDate: domain.Day(entry),
		Cells:     make([]domain.ReturnCell, 0, len(d.assets)+1),
	}
	if perf, ok := analytics.Analyze(result.Portfolio); ok {
		row.Cells = append(row.Cells, domain.ReturnCell{Return: perf.TotalReturnPct})
	} else {
		row.Cells = append(row.Cells, domain.ReturnCell{Excluded: true})
	}
	for _, asset := range d.assets {
		if perf, ok := analytics.AnalyzeAsset(result.Assets[asset.Symbol()]); ok {
			row.Cells = append(row.Cells, domain.ReturnCell{Return: perf.TotalReturnPct})
		} else {
			row.Cells = append(row.Cells, domain.ReturnCell{Excluded: true})
		}
	}
	return row, nil
}

func (d *Driver) entryDates() []time.Time {
	var dates []time.Time
	for day := domain.Day(d.cfg.EntryFrom); !day.After(domain.Day(d.cfg.EntryTo)); day = day.AddDate(0, 0, 1) {
		dates = append(dates, day)
	}
	return dates
}

func (d *Driver) columns() []string {
	cols := make([]string, 0, len(d.assets)+1)
	cols = append(cols, domain.IndexColumn)
	for _, asset := range d.assets {
		cols = append(cols, asset.Symbol())
	}
	return cols
}
