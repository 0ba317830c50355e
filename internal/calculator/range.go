package calculator

import (
	"errors"

	"SignalSentinel/internal/model"
)

// RollingMax returns the max over the trailing `window` values for every
// point. Partial windows count, NaN values are skipped, and a window with no
// valid value yields NaN.
func RollingMax(values []float64, window int) ([]float64, error) {
	return rolling(values, window, func(cur, v float64) bool { return v > cur })
}

// RollingMin is the min counterpart of RollingMax.
func RollingMin(values []float64, window int) ([]float64, error) {
	return rolling(values, window, func(cur, v float64) bool { return v < cur })
}

func rolling(values []float64, window int, better func(cur, v float64) bool) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := make([]float64, len(values))
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		best := model.Undefined()
		for j := start; j <= i; j++ {
			v := values[j]
			if model.IsUndefined(v) {
				continue
			}
			if model.IsUndefined(best) || better(best, v) {
				best = v
			}
		}
		out[i] = best
	}
	return out, nil
}
