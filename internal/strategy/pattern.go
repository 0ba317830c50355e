package strategy

import "SignalSentinel/internal/model"

// DetectEngulfing labels every bar with the engulfing pattern it completes
// together with its predecessor. The first bar is always none.
func DetectEngulfing(bars model.BarSeries) []model.EngulfingPattern {
	out := make([]model.EngulfingPattern, len(bars))
	for i := range bars {
		if i == 0 {
			out[i] = model.EngulfingNone
			continue
		}
		out[i] = classifyEngulfing(bars[i-1], bars[i])
	}
	return out
}

// classifyEngulfing compares two adjacent candles. The bullish and bearish
// conditions require opposite candle colours, so at most one can hold.
func classifyEngulfing(prev, cur model.OHLCV) model.EngulfingPattern {
	switch {
	case prev.Close < prev.Open && cur.Open < cur.Close &&
		cur.Open < prev.Close && cur.Close > prev.Open:
		return model.EngulfingBullish
	case prev.Open < prev.Close && cur.Close < cur.Open &&
		cur.Close < prev.Open && cur.Open > prev.Close:
		return model.EngulfingBearish
	default:
		return model.EngulfingNone
	}
}
