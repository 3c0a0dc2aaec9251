package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteStore implements KV backed by the kv table of a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	getValue    *sql.Stmt
	getEntry    *sql.Stmt
	upsertValue *sql.Stmt
	deleteValue *sql.Stmt
}

var _ KV = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLiteStore from an already-opened and migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		s.Close()
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.getValue, err = s.db.Prepare(`SELECT value FROM kv WHERE key = ?`)
	if err != nil {
		return err
	}

	s.getEntry, err = s.db.Prepare(`SELECT key, value, updated_at FROM kv WHERE key = ?`)
	if err != nil {
		return err
	}

	s.upsertValue, err = s.db.Prepare(`
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`)
	if err != nil {
		return err
	}

	s.deleteValue, err = s.db.Prepare(`DELETE FROM kv WHERE key = ?`)
	if err != nil {
		return err
	}

	return nil
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// Get returns the value stored under key.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.getValue.QueryRowContext(ctx, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// GetEntry returns the value stored under key along with its write time.
func (s *SQLiteStore) GetEntry(ctx context.Context, key string) (*Entry, error) {
	var e Entry
	var tsStr string
	err := s.getEntry.QueryRowContext(ctx, key).Scan(&e.Key, &e.Value, &tsStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("key %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	e.UpdatedAt, _ = parseTimestamp(tsStr)
	return &e, nil
}

// Set stores value under key, replacing any previous value.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	ts := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.upsertValue.ExecContext(ctx, key, value, ts); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.deleteValue.ExecContext(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{
		s.getValue, s.getEntry, s.upsertValue, s.deleteValue,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
