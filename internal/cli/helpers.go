package cli

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/runnerr0/unitconv/internal/config"
	"github.com/runnerr0/unitconv/internal/converter"
	"github.com/runnerr0/unitconv/internal/history"
	"github.com/runnerr0/unitconv/internal/logging"
	"github.com/runnerr0/unitconv/internal/prefs"
	"github.com/runnerr0/unitconv/internal/storage"
)

// app bundles everything a command needs. Commands build one with openApp
// and tests build one over an in-memory database with newApp.
type app struct {
	cfg    *config.Config
	dbPath string
	db     *sql.DB
	store  *storage.SQLiteStore
	logger *zap.Logger

	history   *history.Log
	converter *converter.Service
	prefs     *prefs.Store
}

func newApp(cfg *config.Config, dbPath string, db *sql.DB, store *storage.SQLiteStore, logger *zap.Logger) *app {
	log := history.NewLog(store, logger)
	return &app{
		cfg:       cfg,
		dbPath:    dbPath,
		db:        db,
		store:     store,
		logger:    logger,
		history:   log,
		converter: converter.NewService(log, logger),
		prefs:     prefs.New(store, prefs.Theme(cfg.Display.Theme)),
	}
}

func (a *app) close() {
	a.store.Close()
	a.db.Close()
	_ = a.logger.Sync()
}

// loadConfig reads --config if given, else the default config file,
// creating it with defaults on first run.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if globals != nil && globals.Config != "" {
		path, pathErr := config.ExpandPath(globals.Config)
		if pathErr != nil {
			return nil, pathErr
		}
		cfg, err = config.LoadOrCreateAt(path)
	} else {
		cfg, err = config.LoadOrCreate()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath prefers --db-path over the configured location.
func resolveDBPath(globals *GlobalFlags, cfg *config.Config) (string, error) {
	if globals != nil && globals.DBPath != "" {
		return config.ExpandPath(globals.DBPath)
	}
	return cfg.DBPath()
}

// openApp loads config, opens the database, runs migrations and wires
// the services.
func openApp(globals *GlobalFlags) (*app, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, err
	}

	verbose := globals != nil && globals.Verbose
	logger, err := logging.New(cfg.Logging, verbose)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(globals, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve db path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	runner := storage.NewMigrationRunner(db, logger)
	runner.JournalMode = cfg.Storage.SQLiteJournalMode
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create store: %w", err)
	}

	logger.Debug("opened database", zap.String("path", dbPath))
	return newApp(cfg, dbPath, db, store, logger), nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
