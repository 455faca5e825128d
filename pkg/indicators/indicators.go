// Package indicators wraps the technical indicators used by the chart layer.
package indicators

import (
	"fmt"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
)

// SMA calculates the Simple Moving Average for the given period.
// The result is aligned to the end of the input: the first period-1 warmup
// points are dropped, so len(result) == len(values)-period+1.
func SMA(values []float64, period int) ([]float64, error) {
	if period < 1 {
		return nil, fmt.Errorf("sma period must be positive, got %d", period)
	}
	if len(values) < period {
		return nil, fmt.Errorf("not enough data points: need %d, got %d", period, len(values))
	}

	sma := trend.NewSmaWithPeriod[float64](period)
	outputChan := sma.Compute(helper.SliceToChan(values))

	return helper.ChanToSlice(outputChan), nil
}
