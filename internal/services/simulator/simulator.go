// Package simulator drives the daily index simulation: mark-to-market
// valuation, periodic market-cap rebalancing and trajectory recording.
package simulator

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/capindex/internal/domain"
	"github.com/vadiminshakov/capindex/internal/services/broker"
	"github.com/vadiminshakov/capindex/internal/services/weights"
)

// Config bounds one simulation run.
type Config struct {
	Start          time.Time
	End            time.Time
	RebalanceEvery int // simulated days between rebalances
	InitialCash    decimal.Decimal
	WeightingMode  weights.Mode
	MinAllocation  float64
}

// Journal receives every executed rebalance, e.g. for persistent audit.
type Journal interface {
	Append(event domain.RebalanceEvent) error
}

// Result carries everything recorded during one run. It is created fresh per
// run: no simulation state outlives the Run call, so sweep iterations stay
// independent.
type Result struct {
	Portfolio  domain.Trajectory
	Assets     map[string]domain.Trajectory
	Rebalances []domain.RebalanceEvent
	Initial    decimal.Decimal
	Final      decimal.Decimal
}

// Simulator replays the constituent series over a date window against a
// virtual broker ledger.
type Simulator struct {
	assets  []*domain.AssetSeries
	calc    *weights.Calculator
	cfg     Config
	journal Journal
	logger  *zap.Logger
}

// New validates the configuration and builds a Simulator. The asset series
// are read-only; a single Simulator may be reused across sequential runs.
func New(assets []*domain.AssetSeries, cfg Config, logger *zap.Logger) (*Simulator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(assets) == 0 {
		return nil, errors.New("at least one constituent series is required")
	}
	if cfg.RebalanceEvery < 1 {
		return nil, errors.Errorf("rebalance period must be at least 1 day, got %d", cfg.RebalanceEvery)
	}
	if cfg.End.Before(cfg.Start) {
		return nil, errors.Errorf("simulation start %s is after end %s",
			cfg.Start.Format(domain.DateFormat), cfg.End.Format(domain.DateFormat))
	}
	if !cfg.InitialCash.IsPositive() {
		return nil, errors.New("initial cash must be positive")
	}
	calc, err := weights.NewCalculator(cfg.WeightingMode, cfg.MinAllocation)
	if err != nil {
		return nil, errors.Wrap(err, "configure weight calculator")
	}
	cfg.Start = domain.Day(cfg.Start)
	cfg.End = domain.Day(cfg.End)
	return &Simulator{assets: assets, calc: calc, cfg: cfg, logger: logger}, nil
}

// WithJournal attaches a rebalance journal. Pass nil to detach.
func (s *Simulator) WithJournal(journal Journal) *Simulator {
	s.journal = journal
	return s
}

// Run walks the window day by day with a fresh ledger. Each day is marked to
// market and recorded; on the rebalance cadence the current market-cap
// snapshot is turned into target weights and executed. The cadence counts
// simulated days starting at zero on the window start, so the portfolio is
// invested on the entry day itself and re-weighted every RebalanceEvery days
// after. Days past the series coverage are ignored, not an error.
func (s *Simulator) Run() (*Result, error) {
	ledger := broker.NewLedger(s.cfg.InitialCash, s.logger)
	result := &Result{
		Assets:  make(map[string]domain.Trajectory, len(s.assets)),
		Initial: s.cfg.InitialCash,
	}

	end := s.cfg.End
	if last := s.coverageEnd(); last.Before(end) {
		end = last
	}

	dayCount := 0
	for day := s.cfg.Start; !day.After(end); day = day.AddDate(0, 0, 1) {
		prices, caps := s.snapshot(day)

		if dayCount%s.cfg.RebalanceEvery == 0 {
			s.rebalance(ledger, day, prices, caps, result)
		}
		dayCount++

		value, _ := ledger.MarkToMarket(prices).Float64()
		result.Portfolio.Append(day, value)
		for _, asset := range s.assets {
			price, _ := prices[asset.Symbol()].Float64()
			tr := result.Assets[asset.Symbol()]
			tr.Append(day, price)
			result.Assets[asset.Symbol()] = tr
		}
	}

	result.Final = ledger.TotalValue()
	return result, nil
}

func (s *Simulator) rebalance(ledger *broker.Ledger, day time.Time,
	prices map[string]decimal.Decimal, caps map[string]float64, result *Result) {

	ledger.MarkToMarket(prices)
	target, err := s.calc.Compute(caps, prices)
	if err != nil {
		if errors.Is(err, weights.ErrNoCandidates) {
			s.logger.Warn("no active assets, skipping rebalance",
				zap.Time("date", day))
			return
		}
		s.logger.Error("weight computation failed", zap.Error(err), zap.Time("date", day))
		return
	}
	ledger.RebalanceTo(target, prices)

	// NaN caps mark unlisted assets; they are noise in the audit trail and
	// not representable in JSON.
	snapshot := make(map[string]float64, len(caps))
	for symbol, cap := range caps {
		if !math.IsNaN(cap) {
			snapshot[symbol] = cap
		}
	}
	event := domain.RebalanceEvent{Date: day, MarketCaps: snapshot, Weights: target}
	result.Rebalances = append(result.Rebalances, event)
	if s.journal != nil {
		if err := s.journal.Append(event); err != nil {
			s.logger.Warn("failed to journal rebalance", zap.Error(err))
		}
	}
	s.logger.Info("rebalanced portfolio",
		zap.Time("date", day),
		zap.Int("assets", len(target)))
}

// snapshot collects prices and market caps for one day. Uncovered or
// pre-listing days yield a zero price and NaN cap, which downstream
// exclusion rules treat as untradable.
func (s *Simulator) snapshot(day time.Time) (map[string]decimal.Decimal, map[string]float64) {
	prices := make(map[string]decimal.Decimal, len(s.assets))
	caps := make(map[string]float64, len(s.assets))
	for _, asset := range s.assets {
		rec, ok := asset.At(day)
		if !ok {
			prices[asset.Symbol()] = decimal.Zero
			caps[asset.Symbol()] = math.NaN()
			continue
		}
		prices[asset.Symbol()] = rec.Price
		caps[asset.Symbol()] = rec.MarketCap
	}
	return prices, caps
}

func (s *Simulator) coverageEnd() time.Time {
	last := s.assets[0].End()
	for _, asset := range s.assets[1:] {
		if asset.End().After(last) {
			last = asset.End()
		}
	}
	return last
}

