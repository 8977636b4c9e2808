package store_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sesskit/sesskit/store"
)

type sessionRow struct {
	id    string
	ctime int64
	atime int64
	vars  string
}

func openSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "sessions.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func fetchRow(t *testing.T, db *sql.DB, id string) (sessionRow, bool) {
	t.Helper()
	var row sessionRow
	err := db.QueryRow(`SELECT id, ctime, atime, vars FROM sessions WHERE id = ?`, id).
		Scan(&row.id, &row.ctime, &row.atime, &row.vars)
	if err == sql.ErrNoRows {
		return sessionRow{}, false
	}
	require.NoError(t, err)
	return row, true
}

func ageRow(t *testing.T, db *sql.DB, id string, by time.Duration) {
	t.Helper()
	_, err := db.Exec(`UPDATE sessions SET atime = atime - ? WHERE id = ?`, int64(by.Seconds()), id)
	require.NoError(t, err)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	t.Parallel()

	db := openSQLiteDB(t)
	s, err := store.NewSQLiteStoreWithDB(db, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	vars := store.Vars{
		"key1": "value",
		"key2": float64(123),
		"key3": []any{float64(1), float64(2), float64(3)},
		"key4": map[string]any{"foo": "bar", "nested": map[string]any{"n": true}},
		"key5": nil,
	}
	require.NoError(t, s.Save(ctx, "0123", vars))

	loaded, err := s.Load(ctx, "0123")
	require.NoError(t, err)
	assert.Equal(t, vars, loaded)
}

func TestSQLiteStore_SaveTimestamps(t *testing.T) {
	t.Parallel()

	db := openSQLiteDB(t)
	s, err := store.NewSQLiteStoreWithDB(db, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "0123", store.Vars{"key1": "value"}))
	first, ok := fetchRow(t, db, "0123")
	require.True(t, ok)
	assert.Equal(t, "0123", first.id)
	assert.InDelta(t, time.Now().Unix(), first.ctime, 2)
	assert.Equal(t, first.ctime, first.atime)
	assert.JSONEq(t, `{"key1":"value"}`, first.vars)

	// Push the record into the past, then update it: ctime must survive,
	// atime must advance.
	ageRow(t, db, "0123", 2*time.Hour)
	aged, _ := fetchRow(t, db, "0123")

	require.NoError(t, s.Save(ctx, "0123", store.Vars{"key3": 0.1}))
	updated, ok := fetchRow(t, db, "0123")
	require.True(t, ok)
	assert.Equal(t, first.ctime, updated.ctime)
	assert.Greater(t, updated.atime, aged.atime)
	assert.JSONEq(t, `{"key3":0.1}`, updated.vars)
}

func TestSQLiteStore_SaveEmptyDeletes(t *testing.T) {
	t.Parallel()

	db := openSQLiteDB(t)
	s, err := store.NewSQLiteStoreWithDB(db, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "0123", store.Vars{"key1": "value"}))
	require.NoError(t, s.Save(ctx, "0123", store.Vars{}))

	_, ok := fetchRow(t, db, "0123")
	assert.False(t, ok)

	_, err = s.Load(ctx, "0123")
	assert.ErrorIs(t, err, store.ErrTimedOut)
}

func TestSQLiteStore_LoadExpiry(t *testing.T) {
	t.Parallel()

	db := openSQLiteDB(t)
	s, err := store.NewSQLiteStoreWithDB(db, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("missing record", func(t *testing.T) {
		_, err := s.Load(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrTimedOut)
	})

	t.Run("expired record is indistinguishable from missing", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, "0123", store.Vars{"key1": "value"}))
		ageRow(t, db, "0123", 2*time.Hour)

		_, err := s.Load(ctx, "0123")
		assert.ErrorIs(t, err, store.ErrTimedOut)

		// The row is still there; only GC removes it.
		_, ok := fetchRow(t, db, "0123")
		assert.True(t, ok)
	})
}

func TestSQLiteStore_GC(t *testing.T) {
	t.Parallel()

	db := openSQLiteDB(t)
	s, err := store.NewSQLiteStoreWithDB(db, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "old", store.Vars{"key1": "value"}))
	require.NoError(t, s.Save(ctx, "young", store.Vars{"key2": "value"}))
	ageRow(t, db, "old", 2*time.Hour)

	require.NoError(t, s.GC(ctx))

	_, ok := fetchRow(t, db, "old")
	assert.False(t, ok)
	_, ok = fetchRow(t, db, "young")
	assert.True(t, ok)
}

func TestSQLiteStore_AutoGCOnConstruction(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sessions.sqlite")

	seed, err := store.NewSQLiteStore(time.Hour, store.SQLiteConfig{Path: path, GCAuto: false})
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, seed.Save(ctx, "old", store.Vars{"key1": "value"}))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	ageRow(t, db, "old", 2*time.Hour)
	require.NoError(t, db.Close())
	require.NoError(t, seed.Close())

	// Probability 1 forces the sweep on construction.
	swept, err := store.NewSQLiteStore(time.Hour, store.SQLiteConfig{
		Path:       path,
		GCAuto:     true,
		GCAutoProb: 1.0,
	})
	require.NoError(t, err)
	defer swept.Close()

	_, err = swept.Load(ctx, "old")
	assert.ErrorIs(t, err, store.ErrTimedOut)

	db, err = sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	_, ok := fetchRow(t, db, "old")
	assert.False(t, ok)
}
