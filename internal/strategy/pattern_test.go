package strategy

import (
	"math/rand"
	"testing"

	"SignalSentinel/internal/model"
)

func TestClassifyEngulfing(t *testing.T) {
	tests := []struct {
		name      string
		prev, cur model.OHLCV
		want      model.EngulfingPattern
	}{
		{"bullish", ohlc(10, 8), ohlc(7, 12), model.EngulfingBullish},
		{"bearish", ohlc(8, 10), ohlc(11, 7), model.EngulfingBearish},
		{"bullish body not covered", ohlc(10, 8), ohlc(8.5, 9.5), model.EngulfingNone},
		{"same colour", ohlc(8, 10), ohlc(7, 12), model.EngulfingNone},
		{"doji previous", ohlc(9, 9), ohlc(7, 12), model.EngulfingNone},
		{"touching open is not engulfing", ohlc(10, 8), ohlc(8, 12), model.EngulfingNone},
	}
	for _, tt := range tests {
		if got := classifyEngulfing(tt.prev, tt.cur); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

func TestDetectEngulfing_MutuallyExclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	series := make(model.BarSeries, 500)
	for i := range series {
		series[i] = ohlc(100+rng.NormFloat64()*3, 100+rng.NormFloat64()*3)
	}
	labels := DetectEngulfing(series)
	if labels[0] != model.EngulfingNone {
		t.Errorf("first bar must be none, got %s", labels[0])
	}
	for i := 1; i < len(series); i++ {
		prev, cur := series[i-1], series[i]
		bull := prev.Close < prev.Open && cur.Open < cur.Close && cur.Open < prev.Close && cur.Close > prev.Open
		bear := prev.Open < prev.Close && cur.Close < cur.Open && cur.Close < prev.Open && cur.Open > prev.Close
		if bull && bear {
			t.Fatalf("bar %d satisfies both patterns", i)
		}
		if bull != (labels[i] == model.EngulfingBullish) || bear != (labels[i] == model.EngulfingBearish) {
			t.Errorf("bar %d: label %s disagrees with conditions bull=%v bear=%v", i, labels[i], bull, bear)
		}
	}
}

func ohlc(open, close float64) model.OHLCV {
	return model.OHLCV{Open: open, Close: close, High: max(open, close), Low: min(open, close)}
}
