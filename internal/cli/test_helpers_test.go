package cli

import (
	"bytes"
	"database/sql"
	"io"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/runnerr0/unitconv/internal/config"
	"github.com/runnerr0/unitconv/internal/storage"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// newTestApp wires an app over a migrated in-memory database.
func newTestApp(t *testing.T) *app {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	require.NoError(t, storage.NewMigrationRunner(db).Run())

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)

	a := newApp(config.DefaultConfig(), ":memory:", db, store, zap.NewNop())
	t.Cleanup(a.close)
	return a
}

// writeTestConfig writes a config file whose storage points into a temp
// dir, for tests that go through openApp.
func writeTestConfig(t *testing.T) (cfgPath, dir string) {
	t.Helper()
	dir = t.TempDir()
	cfgPath = dir + "/config.yaml"
	content := "storage:\n  path: " + dir + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	return cfgPath, dir
}
