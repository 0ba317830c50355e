package calculator

import (
	"errors"

	"SignalSentinel/internal/model"
)

// NeutralRSI is reported when the RSI has no meaningful value.
const NeutralRSI = 50.0

// RSISeries computes the RSI of every point from plain rolling means of
// gains and losses over the trailing `period` price changes.
// Returns NeutralRSI while history is insufficient, when the average loss
// is zero, and when the window contains missing prices.
func RSISeries(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := make([]float64, len(closes))
	for i := range closes {
		out[i] = NeutralRSI
		if i < period {
			continue
		}

		var avgGain, avgLoss float64
		for j := i - period + 1; j <= i; j++ {
			change := closes[j] - closes[j-1]
			if change > 0 {
				avgGain += change
			} else if change < 0 {
				avgLoss -= change // make positive
			} else if model.IsUndefined(change) {
				avgGain = model.Undefined()
			}
		}
		avgGain /= float64(period)
		avgLoss /= float64(period)

		if model.IsUndefined(avgGain) || avgLoss == 0 {
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100.0 - 100.0/(1.0+rs)
	}
	return out, nil
}
