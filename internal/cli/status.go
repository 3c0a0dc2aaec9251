package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/unitconv/internal/history"
	"github.com/runnerr0/unitconv/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string `json:"version"`
	DatabasePath      string `json:"database_path"`
	DatabaseSizeBytes int64  `json:"database_size_bytes"`
	SchemaVersion     int    `json:"schema_version"`
	HistoryCount      int    `json:"history_count"`
	HistoryCapacity   int    `json:"history_capacity"`
	LastConversion    string `json:"last_conversion,omitempty"`
	Theme             string `json:"theme"`
	DefaultCategory   string `json:"default_category"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	a, err := openApp(c.globals)
	if err != nil {
		return err
	}
	defer a.close()

	return c.executeWithApp(a)
}

// executeWithApp runs status against a provided app (for testing).
func (c *StatusCommand) executeWithApp(a *app) error {
	ctx := context.Background()

	count := len(a.history.List(ctx))

	var lastWrite time.Time
	entry, err := a.store.GetEntry(ctx, history.StorageKey)
	switch {
	case err == nil:
		lastWrite = entry.UpdatedAt
	case errors.Is(err, storage.ErrNotFound):
	default:
		return fmt.Errorf("get history entry: %w", err)
	}

	theme, err := a.prefs.Theme(ctx)
	if err != nil {
		return err
	}

	schema, err := storage.SchemaVersion(ctx, a.db)
	if err != nil {
		return err
	}

	out := statusJSON{
		Version:           c.version,
		DatabasePath:      a.dbPath,
		DatabaseSizeBytes: getDatabaseSize(a.db, a.dbPath),
		SchemaVersion:     schema,
		HistoryCount:      count,
		HistoryCapacity:   history.Capacity,
		Theme:             string(theme),
		DefaultCategory:   a.cfg.Display.DefaultCategory,
	}
	if !lastWrite.IsZero() {
		out.LastConversion = lastWrite.UTC().Format(time.RFC3339)
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(os.Stdout, out)
	}

	fmt.Println("unitconv status")
	fmt.Println("===============")
	fmt.Printf("Version:       %s\n", out.Version)
	fmt.Printf("Database:      %s (%s)\n", out.DatabasePath, formatBytes(out.DatabaseSizeBytes))
	fmt.Printf("Schema:        v%d\n", out.SchemaVersion)
	fmt.Printf("History:       %d of %d\n", out.HistoryCount, out.HistoryCapacity)
	if !lastWrite.IsZero() {
		fmt.Printf("Last updated:  %s\n", lastWrite.Local().Format("2006-01-02 15:04"))
	}
	fmt.Printf("Theme:         %s\n", out.Theme)
	fmt.Printf("Category:      %s\n", out.DefaultCategory)
	return nil
}

// getDatabaseSize returns the database file size in bytes.
// For on-disk databases, it uses os.Stat. For in-memory databases,
// it queries page_count * page_size.
func getDatabaseSize(db *sql.DB, dbPath string) int64 {
	if info, err := os.Stat(dbPath); err == nil {
		return info.Size()
	}

	var pageCount, pageSize int64
	if err := db.QueryRow("PRAGMA page_count").Scan(&pageCount); err != nil {
		return 0
	}
	if err := db.QueryRow("PRAGMA page_size").Scan(&pageSize); err != nil {
		return 0
	}
	return pageCount * pageSize
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
