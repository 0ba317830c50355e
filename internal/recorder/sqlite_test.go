package recorder

import (
	"database/sql"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRecorderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	r, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer r.Close()

	at := time.Date(2024, 3, 1, 14, 35, 0, 0, time.UTC)
	require.NoError(t, r.RecordCycle(&CycleEvent{
		CycleID: "c1", Symbol: "IBM.US", StartedAt: at,
		Bars: 48, Buys: 1, Sells: 0, Status: "ok",
	}))
	require.NoError(t, r.RecordSignals([]*SignalRecord{{
		CycleID: "c1", Symbol: "IBM.US", Side: "BUY", Price: 101.5, BarTime: at,
		Engulfing: "bullish", Consolidation: "none", SMA: math.NaN(), RSI: 50,
	}}))

	var bars, buys int
	var status string
	require.NoError(t, r.db.QueryRow(`SELECT bars, buys, status FROM cycles WHERE cycle_id = ?`, "c1").
		Scan(&bars, &buys, &status))
	assert.Equal(t, 48, bars)
	assert.Equal(t, 1, buys)
	assert.Equal(t, "ok", status)

	var sma, rsi sql.NullFloat64
	var barTime int64
	require.NoError(t, r.db.QueryRow(`SELECT sma, rsi, bar_time FROM signals WHERE cycle_id = ?`, "c1").
		Scan(&sma, &rsi, &barTime))
	assert.False(t, sma.Valid, "NaN sma must be stored as NULL")
	assert.True(t, rsi.Valid)
	assert.Equal(t, 50.0, rsi.Float64)
	assert.Equal(t, at.Unix(), barTime)
}

func TestSQLiteRecorderDuplicateCycle(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "dup.db"))
	require.NoError(t, err)
	defer r.Close()

	evt := &CycleEvent{CycleID: "same", Status: "empty"}
	require.NoError(t, r.RecordCycle(evt))
	assert.Error(t, r.RecordCycle(evt))
}

func TestSQLiteRecorderReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	r, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, r.RecordCycle(&CycleEvent{CycleID: "a", Status: "ok"}))
	require.NoError(t, r.Close())

	r, err = NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer r.Close()
	var n int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM cycles`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordCycle(&CycleEvent{}))
	assert.NoError(t, r.RecordSignals([]*SignalRecord{{Side: "BUY"}}))
	assert.NoError(t, r.Close())
}

func TestSQLiteRecorderSignalsAreAtomic(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "tx.db"))
	require.NoError(t, err)
	defer r.Close()

	at := time.Date(2024, 3, 1, 14, 35, 0, 0, time.UTC)
	require.NoError(t, r.RecordSignals([]*SignalRecord{
		{CycleID: "c1", Side: "BUY", Price: 1, BarTime: at},
		{CycleID: "c1", Side: "SELL", Price: 2, BarTime: at.Add(5 * time.Minute)},
	}))

	// the side-less second row fails the batch, so the first must not persist
	assert.Error(t, r.RecordSignals([]*SignalRecord{
		{CycleID: "c2", Side: "BUY", Price: 3, BarTime: at},
		{CycleID: "c2", Price: 4, BarTime: at},
	}))

	var n1, n2 int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM signals WHERE cycle_id = 'c1'`).Scan(&n1))
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM signals WHERE cycle_id = 'c2'`).Scan(&n2))
	assert.Equal(t, 2, n1)
	assert.Equal(t, 0, n2)
}

func TestSQLiteRecorderEmptySignals(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	defer r.Close()
	assert.NoError(t, r.RecordSignals(nil))
}
