package model

import "time"

// EngulfingPattern labels a two-candle engulfing reversal.
type EngulfingPattern string

const (
	EngulfingNone    EngulfingPattern = "none"
	EngulfingBullish EngulfingPattern = "bullish"
	EngulfingBearish EngulfingPattern = "bearish"
)

// ConsolidationPattern labels a contracting trading range.
type ConsolidationPattern string

const (
	ConsolidationNone     ConsolidationPattern = "none"
	ConsolidationPossible ConsolidationPattern = "possible"
)

// AnnotatedBar is a bar enriched with pattern labels, indicators and signals.
type AnnotatedBar struct {
	OHLCV
	Engulfing     EngulfingPattern
	Consolidation ConsolidationPattern
	RangeHigh     float64 // rolling max of High
	RangeLow      float64 // rolling min of Low
	SMA           float64 // NaN until the window is full
	RSI           float64 // 0~100, 50 when neutral
	BuySignal     bool
	SellSignal    bool
}

// Extremum is a local peak or trough of the close series.
type Extremum struct {
	Index int
	Time  time.Time
	Value float64
}

// Extrema holds the sparse peak and trough relations over a series.
type Extrema struct {
	Peaks   []Extremum
	Troughs []Extremum
}

// Analysis is the full output of one pipeline run.
type Analysis struct {
	Symbol  string
	Bars    []AnnotatedBar
	Extrema Extrema
}

// Side indicates the direction of a reported signal.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// SignalEvent is one reportable signal on a bar.
type SignalEvent struct {
	Side   Side
	Symbol string
	Price  float64
	Time   time.Time
}
