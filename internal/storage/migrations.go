package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type migration struct {
	Version int
	Name    string
	Apply   func(tx *sql.Tx) error
}

// MigrationRunner brings a SQLite database up to the current schema.
type MigrationRunner struct {
	db         *sql.DB
	migrations []migration
	logger     *zap.Logger

	// JournalMode is applied with PRAGMA journal_mode before migrating.
	JournalMode string
}

// NewMigrationRunner returns a runner for every known migration. A nil
// logger discards output.
func NewMigrationRunner(db *sql.DB, logger ...*zap.Logger) *MigrationRunner {
	l := zap.NewNop()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &MigrationRunner{
		db:          db,
		logger:      l.Named("migrate"),
		JournalMode: "wal",
		migrations: []migration{
			{Version: 1, Name: "kv_store", Apply: migrateV001},
		},
	}
}

var journalModes = map[string]bool{
	"delete": true, "truncate": true, "persist": true,
	"memory": true, "wal": true, "off": true,
}

// Run applies pending migrations with a background context.
func (r *MigrationRunner) Run() error {
	return r.RunContext(context.Background())
}

// RunContext sets the journal mode, makes sure schema_migrations exists and
// applies every migration newer than the recorded ones, each in its own
// transaction.
func (r *MigrationRunner) RunContext(ctx context.Context) error {
	mode := strings.ToLower(r.JournalMode)
	if !journalModes[mode] {
		return fmt.Errorf("invalid journal mode %q", r.JournalMode)
	}
	if _, err := r.db.ExecContext(ctx, "PRAGMA journal_mode = "+mode); err != nil {
		return fmt.Errorf("set journal mode: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	current, err := SchemaVersion(ctx, r.db)
	if err != nil {
		return err
	}

	for _, m := range r.migrations {
		if m.Version <= current {
			continue
		}
		if err := r.apply(ctx, m); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		r.logger.Info("applied migration", zap.Int("version", m.Version), zap.String("name", m.Name))
	}

	return nil
}

// SchemaVersion reports the highest applied migration, 0 for a fresh
// database.
func SchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	err := db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(version), 0) FROM schema_migrations",
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

func (r *MigrationRunner) apply(ctx context.Context, m migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := m.Apply(tx); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
		m.Version, m.Name,
	); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}

	return tx.Commit()
}
