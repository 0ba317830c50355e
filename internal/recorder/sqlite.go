package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"SignalSentinel/internal/model"
)

// SQLiteRecorder persists cycle history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the poller writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cycles (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			cycle_id   TEXT NOT NULL UNIQUE,
			timestamp  INTEGER NOT NULL,
			symbol     TEXT,
			bars       INTEGER,
			buys       INTEGER,
			sells      INTEGER,
			status     TEXT,
			error      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cycles_ts ON cycles(timestamp)`,

		`CREATE TABLE IF NOT EXISTS signals (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			cycle_id      TEXT NOT NULL,
			symbol        TEXT,
			side          TEXT NOT NULL,
			price         REAL,
			bar_time      INTEGER NOT NULL,
			engulfing     TEXT,
			consolidation TEXT,
			sma           REAL,
			rsi           REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_bar ON signals(bar_time)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullable maps NaN to SQL NULL.
func nullable(v float64) sql.NullFloat64 {
	if model.IsUndefined(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func (r *SQLiteRecorder) RecordCycle(evt *CycleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	started := evt.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO cycles
		(cycle_id, timestamp, symbol, bars, buys, sells, status, error)
		VALUES (?,?,?,?,?,?,?,?)`,
		evt.CycleID, started.Unix(), evt.Symbol,
		evt.Bars, evt.Buys, evt.Sells, evt.Status, evt.Error,
	)
	if err != nil {
		return fmt.Errorf("insert cycle: %w", err)
	}
	return nil
}

// RecordSignals stores all signals of one cycle in a single transaction.
func (r *SQLiteRecorder) RecordSignals(recs []*SignalRecord) error {
	if len(recs) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO signals
		(cycle_id, symbol, side, price, bar_time, engulfing, consolidation, sma, rsi)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare signal insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		if rec.Side == "" {
			return fmt.Errorf("signal for %s at %s has no side", rec.Symbol, rec.BarTime.Format(time.RFC3339))
		}
		if _, err := stmt.Exec(
			rec.CycleID, rec.Symbol, rec.Side, nullable(rec.Price), rec.BarTime.Unix(),
			rec.Engulfing, rec.Consolidation, nullable(rec.SMA), nullable(rec.RSI),
		); err != nil {
			return fmt.Errorf("insert signal: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit signals: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
