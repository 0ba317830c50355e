package recorder

import "time"

// CycleEvent summarises one polling cycle.
type CycleEvent struct {
	CycleID   string
	Symbol    string
	StartedAt time.Time
	Bars      int
	Buys      int
	Sells     int
	Status    string // ok, empty, error, panic
	Error     string
}

// SignalRecord holds one signalled bar with the indicator values behind it.
type SignalRecord struct {
	CycleID       string
	Symbol        string
	Side          string
	Price         float64
	BarTime       time.Time
	Engulfing     string
	Consolidation string
	SMA           float64 // NaN when undefined
	RSI           float64
}

// Recorder persists cycle history for later analysis.
type Recorder interface {
	RecordCycle(evt *CycleEvent) error
	RecordSignals(recs []*SignalRecord) error
	Close() error
}
