package calculator

import (
	"errors"
	"fmt"
	"time"

	"SignalSentinel/internal/model"
)

// FindExtrema locates local peaks and troughs: point i is a peak when its
// value is strictly greater than every other value within `lookahead`
// points on both sides, and a trough when strictly less. Points closer than
// `lookahead` to either end are never classified.
func FindExtrema(times []time.Time, values []float64, lookahead int) (model.Extrema, error) {
	var ext model.Extrema
	if lookahead < 1 {
		return ext, errors.New("lookahead must be at least 1")
	}
	if len(times) != len(values) {
		return ext, fmt.Errorf("length mismatch: %d times, %d values", len(times), len(values))
	}

	for i := lookahead; i < len(values)-lookahead; i++ {
		v := values[i]
		if model.IsUndefined(v) {
			continue
		}
		peak, trough := true, true
		for j := i - lookahead; j <= i+lookahead; j++ {
			if j == i {
				continue
			}
			// comparisons against NaN are false, so NaN neighbours disqualify
			if !(v > values[j]) {
				peak = false
			}
			if !(v < values[j]) {
				trough = false
			}
			if !peak && !trough {
				break
			}
		}
		if peak {
			ext.Peaks = append(ext.Peaks, model.Extremum{Index: i, Time: times[i], Value: v})
		} else if trough {
			ext.Troughs = append(ext.Troughs, model.Extremum{Index: i, Time: times[i], Value: v})
		}
	}
	return ext, nil
}
