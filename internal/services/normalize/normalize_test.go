package normalize

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/capindex/internal/services/marketdata"
)

func TestRunPadsLateListings(t *testing.T) {
	rawDir, outDir := t.TempDir(), t.TempDir()
	raw := "snapped_at,price,market_cap,total_volume\n" +
		"2021-01-04 00:00:00 UTC,0.18,5583313122,1203522229\n" +
		"2021-01-05 00:00:00 UTC,0.17,5399153560,1102928826\n"
	require.NoError(t, os.WriteFile(filepath.Join(rawDir, "cardano.csv"), []byte(raw), 0o644))

	n := New(rawDir, outDir, nil)
	require.NoError(t, n.Run(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)))

	// The padded file must satisfy the loader's contiguity contract.
	series, err := marketdata.NewLoader(outDir, nil).Load([]string{"cardano"})
	require.NoError(t, err)
	s := series[0]
	require.Equal(t, 5, s.Len())
	require.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), s.Start())

	rec, ok := s.At(time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	require.True(t, rec.Price.IsZero())
	require.False(t, rec.Listed())

	rec, ok = s.At(time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	require.Equal(t, "0.18", rec.Price.String())
}

func TestRunKeepsEarlySeriesUnpadded(t *testing.T) {
	rawDir, outDir := t.TempDir(), t.TempDir()
	raw := "snapped_at,price,market_cap,total_volume\n" +
		"2020-12-30 00:00:00 UTC,100,1000,10\n" +
		"2020-12-31 00:00:00 UTC,101,1010,10\n" +
		"2021-01-01 00:00:00 UTC,102,1020,10\n"
	require.NoError(t, os.WriteFile(filepath.Join(rawDir, "btc.csv"), []byte(raw), 0o644))

	n := New(rawDir, outDir, nil)
	require.NoError(t, n.Run(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)))

	series, err := marketdata.NewLoader(outDir, nil).Load([]string{"btc"})
	require.NoError(t, err)
	require.Equal(t, 3, series[0].Len(), "series starting before the global start date gets no padding")
}

func TestRunFailsOnEmptyRawDir(t *testing.T) {
	n := New(t.TempDir(), t.TempDir(), nil)
	require.Error(t, n.Run(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)))
}
