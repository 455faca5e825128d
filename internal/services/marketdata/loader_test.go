package marketdata

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadNormalizedFile(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "bitcoin.csv",
		"snapped_at,price,market_cap,total_volume\n"+
			"2021-01-01,29374.15,546105388489,40730301359\n"+
			"2021-01-02,32127.27,597263672333,67865420765\n"+
			"2021-01-03,32782.02,610094415919,78665235202\n")

	series, err := NewLoader(dir, nil).Load([]string{"bitcoin"})
	require.NoError(t, err)
	require.Len(t, series, 1)

	s := series[0]
	require.Equal(t, "bitcoin", s.Symbol())
	require.Equal(t, 3, s.Len())

	rec, ok := s.At(time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	require.Equal(t, "32127.27", rec.Price.String())
	require.InDelta(t, 597263672333, rec.MarketCap, 1)
}

func TestLoadRawTimestampFormat(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "cardano.csv",
		"snapped_at,price,market_cap,total_volume\n"+
			"2021-01-01 00:00:00 UTC,0.18,5583313122,1203522229\n"+
			"2021-01-02 00:00:00 UTC,0.17,5399153560,1102928826\n")

	series, err := NewLoader(dir, nil).Load([]string{"cardano"})
	require.NoError(t, err)
	require.Equal(t, 2, series[0].Len())
}

func TestLoadBlankMarketCapIsNaN(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "eth.csv",
		"snapped_at,price,market_cap,total_volume\n"+
			"2021-01-01,700,,123\n"+
			"2021-01-02,710,81000000000,456\n")

	series, err := NewLoader(dir, nil).Load([]string{"eth"})
	require.NoError(t, err)

	rec, ok := series[0].At(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	require.True(t, math.IsNaN(rec.MarketCap))
	require.False(t, rec.Listed())
}

func TestLoadFailsOnGap(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "btc.csv",
		"snapped_at,price,market_cap,total_volume\n"+
			"2021-01-01,100,1,1\n"+
			"2021-01-03,100,1,1\n")

	_, err := NewLoader(dir, nil).Load([]string{"btc"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not contiguous")
}

func TestLoadFailsOnMissingFile(t *testing.T) {
	_, err := NewLoader(t.TempDir(), nil).Load([]string{"nope"})
	require.Error(t, err)
}

func TestLoadFailsOnMalformedDate(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "btc.csv",
		"snapped_at,price,market_cap,total_volume\n"+
			"01/02/2021,100,1,1\n")

	_, err := NewLoader(dir, nil).Load([]string{"btc"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid date")
}
