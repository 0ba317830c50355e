package model

import (
	"math"
	"time"
)

// OHLCV represents a single candlestick bar. Missing or malformed prices are
// NaN; a zero Time marks a row whose timestamp could not be parsed.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Valid reports whether the bar carries a usable timestamp.
func (b OHLCV) Valid() bool {
	return !b.Time.IsZero()
}

// Range returns High-Low, NaN when either side is missing.
func (b OHLCV) Range() float64 {
	return b.High - b.Low
}

// BarSeries is an ordered run of bars with strictly increasing timestamps.
// Gaps are allowed.
type BarSeries []OHLCV

// Closes returns the close projection of the series.
func (s BarSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, b := range s {
		closes[i] = b.Close
	}
	return closes
}

// Times returns the timestamp projection of the series.
func (s BarSeries) Times() []time.Time {
	times := make([]time.Time, len(s))
	for i, b := range s {
		times[i] = b.Time
	}
	return times
}

// Undefined is the value used for indicators that have no value yet.
func Undefined() float64 { return math.NaN() }

// IsUndefined reports whether v carries no value.
func IsUndefined(v float64) bool { return math.IsNaN(v) }
