// internal/store/store.go
// Package store handles SQLite persistence for training sessions.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Session records one completed training session.
type Session struct {
	ID        int64
	StartedAt time.Time
	EndedAt   time.Time
	// Mode is the training mode, "send" or "listen".
	Mode string
	// KeyerMode is the keyer used for send sessions ("straight",
	// "iambic-a", "iambic-b"); empty for listen sessions.
	KeyerMode string
	WPM       int
	// Chars is the number of characters produced (send) or checked
	// against the played groups (listen).
	Chars int
	// Errors is the number of incorrect characters (listen only).
	Errors     int
	DurationMs int64
}

// Store wraps SQLite access for session data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			keyer_mode TEXT NOT NULL,
			wpm INTEGER NOT NULL,
			chars INTEGER NOT NULL,
			errors INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a completed session and returns its row id.
func (s *Store) InsertSession(ctx context.Context, sess Session) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (started_at, ended_at, mode, keyer_mode, wpm, chars, errors, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.StartedAt.Format(time.RFC3339Nano),
		sess.EndedAt.Format(time.RFC3339Nano),
		sess.Mode,
		sess.KeyerMode,
		sess.WPM,
		sess.Chars,
		sess.Errors,
		sess.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSessions returns the most recent sessions, newest first. A limit of
// zero or less returns no rows.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, ended_at, mode, keyer_mode, wpm, chars, errors, duration_ms
		 FROM sessions
		 ORDER BY ended_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var startedAt, endedAt string
		if err := rows.Scan(&sess.ID, &startedAt, &endedAt, &sess.Mode, &sess.KeyerMode,
			&sess.WPM, &sess.Chars, &sess.Errors, &sess.DurationMs); err != nil {
			return nil, err
		}
		if sess.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if sess.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Totals aggregates characters, errors and practice time for a mode.
// An empty mode aggregates every session.
func (s *Store) Totals(ctx context.Context, mode string) (chars, errors int, duration time.Duration, err error) {
	var durationMs sql.NullInt64
	var charsN, errorsN sql.NullInt64
	err = s.db.QueryRowContext(ctx,
		`SELECT SUM(chars), SUM(errors), SUM(duration_ms)
		 FROM sessions
		 WHERE (? = '' OR mode = ?)`, mode, mode).
		Scan(&charsN, &errorsN, &durationMs)
	if err != nil {
		return 0, 0, 0, err
	}
	return int(charsN.Int64), int(errorsN.Int64), time.Duration(durationMs.Int64) * time.Millisecond, nil
}
