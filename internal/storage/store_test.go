package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestStore creates a migrated in-memory store for testing.
func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db := openTestDB(t)

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store := openTestStore(t)

	v, ok, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSQLiteStore_SetGet_Roundtrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "theme", "dark"))

	v, ok, err := store.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestSQLiteStore_SetOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "theme", "dark"))
	require.NoError(t, store.Set(ctx, "theme", "light"))

	v, _, err := store.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", v)

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM kv").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSQLiteStore_StoresEmptyString(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "blank", ""))

	v, ok, err := store.Get(ctx, "blank")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "theme", "dark"))
	require.NoError(t, store.Delete(ctx, "theme"))

	_, ok, err := store.Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting again is a no-op
	assert.NoError(t, store.Delete(ctx, "theme"))
}

func TestSQLiteStore_GetEntry(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	require.NoError(t, store.Set(ctx, "conversionHistory", "[]"))

	e, err := store.GetEntry(ctx, "conversionHistory")
	require.NoError(t, err)
	assert.Equal(t, "conversionHistory", e.Key)
	assert.Equal(t, "[]", e.Value)
	assert.True(t, e.UpdatedAt.After(before), "updated_at should be recent")
}

func TestSQLiteStore_GetEntryNotFound(t *testing.T) {
	store := openTestStore(t)

	e, err := store.GetEntry(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, e)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := t.TempDir() + "/kv.db"
	ctx := context.Background()

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	require.NoError(t, NewMigrationRunner(db).Run())
	store, err := NewSQLiteStore(db)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "theme", "dark"))
	store.Close()
	db.Close()

	db, err = sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, NewMigrationRunner(db).Run())
	store, err = NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	v, ok, err := store.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestNewSQLiteStore_UnmigratedDB(t *testing.T) {
	db := openTestDB(t)

	store, err := NewSQLiteStore(db)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestParseTimestamp(t *testing.T) {
	for _, s := range []string{
		"2025-01-02T03:04:05.123456789Z",
		"2025-01-02T03:04:05Z",
		"2025-01-02 03:04:05",
	} {
		ts, err := parseTimestamp(s)
		require.NoError(t, err, s)
		assert.Equal(t, 2025, ts.Year())
	}

	_, err := parseTimestamp("yesterday")
	assert.Error(t, err)
}
