// Package broker implements the virtual broker backing the index simulation:
// a cash-and-shares ledger that executes target-weight orders at given prices.
package broker

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Ledger tracks cash and per-asset share holdings. All trades are computed
// from one pre-trade valuation snapshot, so execution within a rebalance is
// effectively atomic and order across assets does not matter.
type Ledger struct {
	cash   decimal.Decimal
	shares map[string]decimal.Decimal
	value  decimal.Decimal
	logger *zap.Logger
}

// NewLedger creates a ledger holding only cash.
func NewLedger(initialCash decimal.Decimal, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		cash:   initialCash,
		shares: make(map[string]decimal.Decimal),
		value:  initialCash,
		logger: logger,
	}
}

// MarkToMarket revalues the portfolio at the given prices without trading.
// It must run every simulated day: the returned value is what the recorded
// trajectory is built from. Holdings without a quoted positive price are
// carried at zero for the day.
func (l *Ledger) MarkToMarket(prices map[string]decimal.Decimal) decimal.Decimal {
	total := l.cash
	for symbol, qty := range l.shares {
		price, ok := prices[symbol]
		if !ok || !price.IsPositive() {
			continue
		}
		total = total.Add(qty.Mul(price))
	}
	l.value = total
	return total
}

// RebalanceTo moves every holding to its target weight of the current
// portfolio value. Assets held but absent from weights are liquidated.
// Assets without a positive price are skipped entirely: their positions
// stay untouched rather than being force-liquidated.
func (l *Ledger) RebalanceTo(weights map[string]float64, prices map[string]decimal.Decimal) {
	total := l.value

	universe := make(map[string]struct{}, len(l.shares)+len(weights))
	for symbol := range l.shares {
		universe[symbol] = struct{}{}
	}
	for symbol := range weights {
		universe[symbol] = struct{}{}
	}

	for symbol := range universe {
		price, ok := prices[symbol]
		if !ok || !price.IsPositive() {
			continue
		}
		targetValue := total.Mul(decimal.NewFromFloat(weights[symbol]))
		targetShares := targetValue.Div(price)
		old := l.shares[symbol]
		delta := targetShares.Sub(old)
		if delta.IsZero() {
			continue
		}
		l.cash = l.cash.Sub(delta.Mul(price))
		if targetShares.IsZero() {
			delete(l.shares, symbol)
		} else {
			l.shares[symbol] = targetShares
		}
		l.logger.Debug("target-weight order executed",
			zap.String("asset", symbol),
			zap.Float64("weight", weights[symbol]),
			zap.String("shares", targetShares.String()),
			zap.String("price", price.String()))
	}
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() decimal.Decimal { return l.cash }

// Shares returns the held quantity for one asset.
func (l *Ledger) Shares(symbol string) decimal.Decimal { return l.shares[symbol] }

// TotalValue returns the valuation from the last MarkToMarket call.
func (l *Ledger) TotalValue() decimal.Decimal { return l.value }
