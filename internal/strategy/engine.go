package strategy

import (
	"errors"
	"fmt"

	"SignalSentinel/internal/calculator"
	"SignalSentinel/internal/model"
)

// Params configures one pipeline run. It is passed by value and never
// mutated by the pipeline.
type Params struct {
	SMAWindow           int
	RSIWindow           int
	Lookahead           int
	ConsolidationWindow int
	BuyMultiplier       float64 // close must exceed sma*BuyMultiplier
	SellMultiplier      float64 // close must fall below sma*SellMultiplier
	BuyRSIBelow         float64
	SellRSIAbove        float64
}

// DefaultParams returns the stock thresholds.
func DefaultParams() Params {
	return Params{
		SMAWindow:           20,
		RSIWindow:           14,
		Lookahead:           5,
		ConsolidationWindow: 30,
		BuyMultiplier:       1.01,
		SellMultiplier:      0.99,
		BuyRSIBelow:         35,
		SellRSIAbove:        65,
	}
}

// Validate checks that all windows are usable.
func (p Params) Validate() error {
	if p.SMAWindow < 1 {
		return errors.New("sma window must be at least 1")
	}
	if p.RSIWindow < 1 {
		return errors.New("rsi window must be at least 1")
	}
	if p.Lookahead < 1 {
		return errors.New("lookahead must be at least 1")
	}
	if p.ConsolidationWindow < 1 {
		return errors.New("consolidation window must be at least 1")
	}
	return nil
}

// Compose derives the buy and sell flags of an annotated bar. The pattern
// clause and the indicator clause are OR-ed; inside the indicator clause
// both conditions must hold. An undefined SMA never satisfies it.
// Both flags can be set on the same bar.
func Compose(b model.AnnotatedBar, p Params) (buy, sell bool) {
	buy = (b.Engulfing == model.EngulfingBullish || b.Consolidation == model.ConsolidationPossible) ||
		(b.Close > b.SMA*p.BuyMultiplier && b.RSI < p.BuyRSIBelow)
	sell = (b.Engulfing == model.EngulfingBearish || b.Consolidation == model.ConsolidationPossible) ||
		(b.Close < b.SMA*p.SellMultiplier && b.RSI > p.SellRSIAbove)
	return buy, sell
}

// Run executes the pattern, extremum, consolidation, indicator and composer
// stages over a resampled series. It is a pure function of its inputs.
func Run(symbol string, series model.BarSeries, p Params) (*model.Analysis, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	closes := series.Closes()

	engulfing := DetectEngulfing(series)

	ext, err := calculator.FindExtrema(series.Times(), closes, p.Lookahead)
	if err != nil {
		return nil, fmt.Errorf("extrema: %w", err)
	}

	cons, err := DetectConsolidation(series, p.ConsolidationWindow)
	if err != nil {
		return nil, fmt.Errorf("consolidation: %w", err)
	}

	sma, err := calculator.SMASeries(closes, p.SMAWindow)
	if err != nil {
		return nil, fmt.Errorf("sma: %w", err)
	}
	rsi, err := calculator.RSISeries(closes, p.RSIWindow)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}

	bars := make([]model.AnnotatedBar, len(series))
	for i, b := range series {
		ab := model.AnnotatedBar{
			OHLCV:         b,
			Engulfing:     engulfing[i],
			Consolidation: cons.Patterns[i],
			RangeHigh:     cons.RangeHigh[i],
			RangeLow:      cons.RangeLow[i],
			SMA:           sma[i],
			RSI:           rsi[i],
		}
		ab.BuySignal, ab.SellSignal = Compose(ab, p)
		bars[i] = ab
	}

	return &model.Analysis{Symbol: symbol, Bars: bars, Extrema: ext}, nil
}

// Signals lists one event per signalled bar in time order. A bar carrying
// both flags is reported as a buy.
func Signals(a *model.Analysis) []model.SignalEvent {
	if a == nil {
		return nil
	}
	var events []model.SignalEvent
	for _, b := range a.Bars {
		var side model.Side
		switch {
		case b.BuySignal:
			side = model.SideBuy
		case b.SellSignal:
			side = model.SideSell
		default:
			continue
		}
		events = append(events, model.SignalEvent{
			Side:   side,
			Symbol: a.Symbol,
			Price:  b.Close,
			Time:   b.Time,
		})
	}
	return events
}
