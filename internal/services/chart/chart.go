// Package chart renders the index-vs-constituents comparison as a PNG.
package chart

import (
	"os"

	"github.com/pkg/errors"
	charts "github.com/vicanso/go-charts/v2"

	"github.com/vadiminshakov/capindex/internal/domain"
	"github.com/vadiminshakov/capindex/internal/services/simulator"
	"github.com/vadiminshakov/capindex/pkg/indicators"
)

// smaPeriod matches the default rebalance cadence, so the overlay smooths
// out exactly one rebalancing cycle.
const smaPeriod = 30

// Render draws every trajectory normalized to 100 at its first usable point,
// plus an SMA overlay of the index curve when the window is long enough.
func Render(result *simulator.Result, order []string) ([]byte, error) {
	points := result.Portfolio.Points
	if len(points) < 2 {
		return nil, errors.New("not enough points to render a chart")
	}

	labels := make([]string, len(points))
	for i, p := range points {
		labels[i] = p.Date.Format(domain.DateFormat)
	}

	names := []string{domain.IndexColumn}
	index := normalize(result.Portfolio.Values())
	values := [][]float64{index}

	for _, symbol := range order {
		trajectory, ok := result.Assets[symbol]
		if !ok {
			continue
		}
		normalized := normalize(trajectory.Values())
		if normalized == nil {
			continue
		}
		names = append(names, symbol)
		values = append(values, normalized)
	}

	if sma, err := indicators.SMA(index, smaPeriod); err == nil {
		names = append(names, domain.IndexColumn+" sma")
		// Align the overlay to the end of the axis, the warmup has no value.
		padded := make([]float64, len(index)-len(sma), len(index))
		values = append(values, append(padded, sma...))
	}

	split := 6
	if len(labels) < 30 {
		split = 3
	}

	p, err := charts.LineRender(
		values,
		charts.TitleTextOptionFunc("Index vs constituents (start = 100)"),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        labels,
			SplitNumber: split,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, errors.Wrap(err, "render comparison chart")
	}
	return p.Bytes()
}

// RenderToFile renders the comparison chart and writes it to path.
func RenderToFile(result *simulator.Result, order []string, path string) error {
	buf, err := Render(result, order)
	if err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(path, buf, 0o644), "write chart to %s", path)
}

// normalize rescales a series so its first positive value is 100. Leading
// pre-listing zeros stay zero. Returns nil when nothing is positive.
func normalize(values []float64) []float64 {
	var base float64
	for _, v := range values {
		if v > 0 {
			base = v
			break
		}
	}
	if base == 0 {
		return nil
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = 100 * v / base
	}
	return out
}
