package calculator

import (
	"errors"

	"SignalSentinel/internal/model"
)

// CalculateSMA computes the simple moving average of the given prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// SMASeries computes a trailing simple moving average for every point.
// A point is NaN until `window` values are available, and whenever its
// window contains a NaN.
func SMASeries(values []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := make([]float64, len(values))
	for i := range values {
		if i+1 < window {
			out[i] = model.Undefined()
			continue
		}
		sma, err := CalculateSMA(values[:i+1], window)
		if err != nil {
			return nil, err
		}
		out[i] = sma // NaN propagates through the sum
	}
	return out, nil
}
