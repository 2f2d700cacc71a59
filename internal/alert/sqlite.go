package alert

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/thanesh002/Crypto-Note/internal/model"
)

// SQLiteStore persists alert state to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the HTTP API can read while the scanner writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite alert store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signals (
			symbol        TEXT PRIMARY KEY,
			last_call     TEXT NOT NULL,
			last_score    REAL NOT NULL,
			last_alert_ts INTEGER NOT NULL,
			updated_ts    INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS alert_history (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			ts     INTEGER NOT NULL,
			symbol TEXT NOT NULL,
			call   TEXT NOT NULL,
			score  REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_ts ON alert_history(ts)`,
		`CREATE INDEX IF NOT EXISTS idx_history_symbol ON alert_history(symbol)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, symbol string) (*model.AlertState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT last_call, last_score, last_alert_ts, updated_ts FROM signals WHERE symbol = ?`, symbol)

	var (
		call           string
		score          float64
		alertTS, updTS int64
	)
	if err := row.Scan(&call, &score, &alertTS, &updTS); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get state %s: %w", symbol, err)
	}
	state := &model.AlertState{
		Symbol:    symbol,
		LastCall:  model.Call(call),
		LastScore: score,
		UpdatedAt: time.Unix(updTS, 0),
	}
	if alertTS > 0 {
		state.LastAlertAt = time.Unix(alertTS, 0)
	}
	return state, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, state *model.AlertState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var alertTS int64
	if !state.LastAlertAt.IsZero() {
		alertTS = state.LastAlertAt.Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO signals (symbol, last_call, last_score, last_alert_ts, updated_ts)
		 VALUES (?,?,?,?,?)
		 ON CONFLICT(symbol) DO UPDATE SET
			last_call = excluded.last_call,
			last_score = excluded.last_score,
			last_alert_ts = excluded.last_alert_ts,
			updated_ts = excluded.updated_ts`,
		state.Symbol, string(state.LastCall), state.LastScore, alertTS, state.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("put state %s: %w", state.Symbol, err)
	}
	return nil
}

func (s *SQLiteStore) All(ctx context.Context) ([]model.AlertState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT symbol, last_call, last_score, last_alert_ts, updated_ts FROM signals`)
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	defer rows.Close()

	var out []model.AlertState
	for rows.Next() {
		var (
			st             model.AlertState
			call           string
			alertTS, updTS int64
		)
		if err := rows.Scan(&st.Symbol, &call, &st.LastScore, &alertTS, &updTS); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		st.LastCall = model.Call(call)
		st.UpdatedAt = time.Unix(updTS, 0)
		if alertTS > 0 {
			st.LastAlertAt = time.Unix(alertTS, 0)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) RecordAlert(ctx context.Context, state *model.AlertState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO alert_history (ts, symbol, call, score) VALUES (?,?,?,?)`,
		state.LastAlertAt.Unix(), state.Symbol, string(state.LastCall), state.LastScore)
	if err != nil {
		return fmt.Errorf("record alert %s: %w", state.Symbol, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite alert store")
	return s.db.Close()
}
