package strategy

import (
	"fmt"

	"SignalSentinel/internal/calculator"
	"SignalSentinel/internal/model"
)

// Consolidation is the per-bar output of DetectConsolidation.
type Consolidation struct {
	Patterns  []model.ConsolidationPattern
	RangeHigh []float64
	RangeLow  []float64
}

// DetectConsolidation computes the trailing high/low envelope over `window`
// bars and flags a bar as possible consolidation when its own high-low range
// is strictly narrower than the previous bar's.
func DetectConsolidation(bars model.BarSeries, window int) (Consolidation, error) {
	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))
	for i, b := range bars {
		highs[i] = b.High
		lows[i] = b.Low
	}

	rangeHigh, err := calculator.RollingMax(highs, window)
	if err != nil {
		return Consolidation{}, fmt.Errorf("range high: %w", err)
	}
	rangeLow, err := calculator.RollingMin(lows, window)
	if err != nil {
		return Consolidation{}, fmt.Errorf("range low: %w", err)
	}

	patterns := make([]model.ConsolidationPattern, len(bars))
	for i := range bars {
		patterns[i] = model.ConsolidationNone
		if i > 0 && bars[i].Range() < bars[i-1].Range() {
			patterns[i] = model.ConsolidationPossible
		}
	}

	return Consolidation{Patterns: patterns, RangeHigh: rangeHigh, RangeLow: rangeLow}, nil
}
