package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/capindex/internal/domain"
	"github.com/vadiminshakov/capindex/internal/services/simulator"
)

func TestWrite(t *testing.T) {
	day := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	var portfolio, btc, ada domain.Trajectory
	for i, v := range []float64{1000, 1100, 1210} {
		portfolio.Append(day.AddDate(0, 0, i), v)
	}
	for i, v := range []float64{100, 105, 110} {
		btc.Append(day.AddDate(0, 0, i), v)
	}
	ada.Append(day, 0)

	result := &simulator.Result{
		Portfolio: portfolio,
		Assets:    map[string]domain.Trajectory{"btc": btc, "ada": ada},
		Initial:   decimal.NewFromInt(1000),
		Final:     decimal.NewFromInt(1210),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, result, []string{"btc", "ada"}))
	out := buf.String()

	require.Contains(t, out, "Starting portfolio value: 1000.00")
	require.Contains(t, out, "Final portfolio value:    1210.00")
	require.Contains(t, out, "index")
	require.Contains(t, out, "21.00")
	require.Contains(t, out, "btc")
	require.Contains(t, out, "10.00")
	require.Contains(t, out, "ada")
	require.Contains(t, out, "excluded")
}
