package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/capindex/internal/services/weights"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
assets: [bitcoin, ethereum, cardano]
data_dir: testdata
rebalance_period_days: 14
weighting: capweight-floor
min_allocation: 0.01
initial_cash: "500000"
start_date: 2018-02-01
end_date: 2024-12-31
entry_from: 2018-01-01
entry_to: 2018-12-31
workers: 4
output: out.csv
`))
	require.NoError(t, err)
	require.Equal(t, []string{"bitcoin", "ethereum", "cardano"}, cfg.Assets)
	require.Equal(t, 14, cfg.RebalanceDays)
	require.Equal(t, weights.CapWeightedFloor, cfg.Weighting)
	require.Equal(t, "500000", cfg.InitialCash.String())
	require.Equal(t, time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC), cfg.StartDate)
	require.NoError(t, cfg.ValidateBacktest())
	require.NoError(t, cfg.ValidateSweep())
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
assets: [bitcoin]
start_date: 2021-01-01
end_date: 2021-06-01
`))
	require.NoError(t, err)
	require.Equal(t, DefaultRebalanceDays, cfg.RebalanceDays)
	require.Equal(t, weights.CapWeighted, cfg.Weighting)
	require.Equal(t, "1000000", cfg.InitialCash.String())
	require.Equal(t, DefaultDataDir, cfg.DataDir)
	require.NoError(t, cfg.ValidateBacktest())
}

func TestValidateSweepRejectsLateEntryInterval(t *testing.T) {
	cfg := Default()
	cfg.Assets = []string{"bitcoin"}
	cfg.EntryFrom = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg.EntryTo = time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)
	cfg.EndDate = cfg.EntryTo
	require.Error(t, cfg.ValidateSweep(), "entry interval must end strictly before the exit date")

	cfg.EndDate = cfg.EntryTo.AddDate(0, 0, 1)
	require.NoError(t, cfg.ValidateSweep())
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() Config {
		cfg := Default()
		cfg.Assets = []string{"bitcoin"}
		cfg.StartDate = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
		cfg.EndDate = time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
		return cfg
	}

	cfg := base()
	cfg.Assets = nil
	require.Error(t, cfg.ValidateBacktest())

	cfg = base()
	cfg.StartDate, cfg.EndDate = cfg.EndDate, cfg.StartDate
	require.Error(t, cfg.ValidateBacktest())

	cfg = base()
	cfg.MinAllocation = 1.2
	require.Error(t, cfg.ValidateBacktest())

	cfg = base()
	cfg.Weighting = "equal"
	require.Error(t, cfg.ValidateBacktest())

	cfg = base()
	cfg.RebalanceDays = 0
	require.Error(t, cfg.ValidateBacktest())
}

func TestLoadRejectsBadYaml(t *testing.T) {
	_, err := Load(writeConfig(t, "assets: [bitcoin\n"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "start_date: 01/02/2021\nassets: [a]\n"))
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
