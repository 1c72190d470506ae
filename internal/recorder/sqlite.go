package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"StockTerminal/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical data to a SQLite database.
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

	// WAL so the API can read history while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS indicator_snapshots (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			bar_time    INTEGER NOT NULL,
			close       REAL,
			volume      INTEGER,
			ema_9       REAL,
			sma_20      REAL,
			sma_50      REAL,
			sma_200     REAL,
			rsi_14      REAL,
			macd        REAL,
			macd_signal REAL,
			bb_upper    REAL,
			bb_middle   REAL,
			bb_lower    REAL,
			obv         REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_symbol_ts ON indicator_snapshots(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS fetch_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			symbol     TEXT NOT NULL,
			session_id TEXT,
			source     TEXT,
			trigger    TEXT,
			bars       INTEGER,
			error      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_ts ON fetch_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func nullable(v model.Value) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v.Float, Valid: v.Valid}
}

func fromNullable(n sql.NullFloat64) model.Value {
	return model.Value{Float: n.Float64, Valid: n.Valid}
}

func (r *SQLiteRecorder) RecordSnapshot(snap *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	at := snap.RecordedAt
	if at.IsZero() {
		at = time.Now()
	}
	ind := snap.Indicators
	_, err := r.db.Exec(`INSERT INTO indicator_snapshots
		(timestamp, symbol, bar_time, close, volume,
		 ema_9, sma_20, sma_50, sma_200, rsi_14, macd, macd_signal,
		 bb_upper, bb_middle, bb_lower, obv)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		at.UnixMilli(), snap.Symbol, snap.BarTime.Unix(), snap.Close, snap.Volume,
		nullable(ind.EMA9), nullable(ind.SMA20), nullable(ind.SMA50), nullable(ind.SMA200),
		nullable(ind.RSI14), nullable(ind.MACD), nullable(ind.MACDSignal),
		nullable(ind.BBUpper), nullable(ind.BBMiddle), nullable(ind.BBLower), nullable(ind.OBV),
	)
	return err
}

func (r *SQLiteRecorder) RecordFetch(evt *FetchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fetch_events
		(timestamp, symbol, session_id, source, trigger, bars, error)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().UnixMilli(), evt.Symbol, evt.SessionID, evt.Source,
		evt.Trigger, evt.Bars, evt.Error,
	)
	return err
}

// LatestSnapshots returns up to limit snapshots for symbol, newest first.
func (r *SQLiteRecorder) LatestSnapshots(symbol string, limit int) ([]Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT timestamp, symbol, bar_time, close, volume,
		ema_9, sma_20, sma_50, sma_200, rsi_14, macd, macd_signal,
		bb_upper, bb_middle, bb_lower, obv
		FROM indicator_snapshots WHERE symbol = ?
		ORDER BY timestamp DESC, id DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var (
			s                                 Snapshot
			ts, barTime                       int64
			ema9, sma20, sma50, sma200, rsi14 sql.NullFloat64
			macd, macdSignal                  sql.NullFloat64
			bbUpper, bbMiddle, bbLower, obv   sql.NullFloat64
		)
		if err := rows.Scan(&ts, &s.Symbol, &barTime, &s.Close, &s.Volume,
			&ema9, &sma20, &sma50, &sma200, &rsi14, &macd, &macdSignal,
			&bbUpper, &bbMiddle, &bbLower, &obv); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		s.RecordedAt = time.UnixMilli(ts)
		s.BarTime = time.Unix(barTime, 0).UTC()
		s.Indicators = model.IndicatorSet{
			EMA9:       fromNullable(ema9),
			SMA20:      fromNullable(sma20),
			SMA50:      fromNullable(sma50),
			SMA200:     fromNullable(sma200),
			RSI14:      fromNullable(rsi14),
			MACD:       fromNullable(macd),
			MACDSignal: fromNullable(macdSignal),
			BBUpper:    fromNullable(bbUpper),
			BBMiddle:   fromNullable(bbMiddle),
			BBLower:    fromNullable(bbLower),
			OBV:        fromNullable(obv),
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
