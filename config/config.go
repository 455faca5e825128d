// Package config loads and validates the simulation configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/capindex/internal/domain"
	"github.com/vadiminshakov/capindex/internal/services/weights"
)

// Defaults applied when the file or flags leave an option unset.
const (
	DefaultRebalanceDays = 30
	DefaultInitialCash   = 1_000_000
	DefaultDataDir       = "data/normalized"
	DefaultOutput        = "returns.csv"
)

// Config is the validated runtime configuration.
type Config struct {
	Assets        []string
	DataDir       string
	RebalanceDays int
	Weighting     weights.Mode
	MinAllocation float64
	InitialCash   decimal.Decimal
	StartDate     time.Time // simulated window start (single backtest)
	EndDate       time.Time // simulated window end / sweep exit date
	EntryFrom     time.Time // sweep: first candidate entry date
	EntryTo       time.Time // sweep: last candidate entry date
	Workers       int
	Output        string
}

type configTmp struct {
	Assets        []string `yaml:"assets"`
	DataDir       string   `yaml:"data_dir"`
	RebalanceDays int      `yaml:"rebalance_period_days"`
	Weighting     string   `yaml:"weighting"`
	MinAllocation float64  `yaml:"min_allocation"`
	InitialCash   string   `yaml:"initial_cash"`
	StartDate     string   `yaml:"start_date"`
	EndDate       string   `yaml:"end_date"`
	EntryFrom     string   `yaml:"entry_from"`
	EntryTo       string   `yaml:"entry_to"`
	Workers       int      `yaml:"workers"`
	Output        string   `yaml:"output"`
}

// Load reads a yaml config file and applies defaults and validation.
func Load(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var tmp configTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return fromTmp(tmp)
}

// Default returns the baseline configuration without any file input.
func Default() Config {
	return Config{
		DataDir:       DefaultDataDir,
		RebalanceDays: DefaultRebalanceDays,
		Weighting:     weights.CapWeighted,
		InitialCash:   decimal.NewFromInt(DefaultInitialCash),
		Output:        DefaultOutput,
	}
}

func fromTmp(tmp configTmp) (Config, error) {
	cfg := Default()
	cfg.Assets = tmp.Assets
	if tmp.DataDir != "" {
		cfg.DataDir = tmp.DataDir
	}
	if tmp.RebalanceDays != 0 {
		cfg.RebalanceDays = tmp.RebalanceDays
	}
	if tmp.Weighting != "" {
		cfg.Weighting = weights.Mode(tmp.Weighting)
	}
	cfg.MinAllocation = tmp.MinAllocation
	if tmp.InitialCash != "" {
		cash, err := decimal.NewFromString(tmp.InitialCash)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'initial_cash' param in yaml config: %w", err)
		}
		cfg.InitialCash = cash
	}
	if tmp.Workers != 0 {
		cfg.Workers = tmp.Workers
	}
	if tmp.Output != "" {
		cfg.Output = tmp.Output
	}

	var err error
	if cfg.StartDate, err = parseDate(tmp.StartDate, "start_date"); err != nil {
		return Config{}, err
	}
	if cfg.EndDate, err = parseDate(tmp.EndDate, "end_date"); err != nil {
		return Config{}, err
	}
	if cfg.EntryFrom, err = parseDate(tmp.EntryFrom, "entry_from"); err != nil {
		return Config{}, err
	}
	if cfg.EntryTo, err = parseDate(tmp.EntryTo, "entry_to"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseDate(value, name string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("incorrect '%s' param in yaml config, want %s: %w",
			name, domain.DateFormat, err)
	}
	return domain.Day(t), nil
}

// ValidateBacktest checks everything a single run needs. It must pass before
// any simulation work begins.
func (c Config) ValidateBacktest() error {
	if err := c.validateCommon(); err != nil {
		return err
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return fmt.Errorf("start_date and end_date are required")
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("start_date %s is after end_date %s",
			c.StartDate.Format(domain.DateFormat), c.EndDate.Format(domain.DateFormat))
	}
	return nil
}

// ValidateSweep checks everything an entry-date sweep needs.
func (c Config) ValidateSweep() error {
	if err := c.validateCommon(); err != nil {
		return err
	}
	if c.EntryFrom.IsZero() || c.EntryTo.IsZero() || c.EndDate.IsZero() {
		return fmt.Errorf("entry_from, entry_to and end_date are required for a sweep")
	}
	if c.EntryTo.Before(c.EntryFrom) {
		return fmt.Errorf("entry_from %s is after entry_to %s",
			c.EntryFrom.Format(domain.DateFormat), c.EntryTo.Format(domain.DateFormat))
	}
	if !c.EntryTo.Before(c.EndDate) {
		return fmt.Errorf("entry_to %s must be strictly before end_date %s",
			c.EntryTo.Format(domain.DateFormat), c.EndDate.Format(domain.DateFormat))
	}
	return nil
}

func (c Config) validateCommon() error {
	if len(c.Assets) == 0 {
		return fmt.Errorf("at least one asset is required")
	}
	if c.RebalanceDays < 1 {
		return fmt.Errorf("rebalance_period_days must be at least 1, got %d", c.RebalanceDays)
	}
	if c.MinAllocation < 0 || c.MinAllocation > 1 {
		return fmt.Errorf("min_allocation must be in [0,1], got %f", c.MinAllocation)
	}
	if !c.InitialCash.IsPositive() {
		return fmt.Errorf("initial_cash must be positive")
	}
	switch c.Weighting {
	case weights.CapWeighted, weights.CapWeightedFloor:
	default:
		return fmt.Errorf("unknown weighting mode %q", c.Weighting)
	}
	return nil
}
