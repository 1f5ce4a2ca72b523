package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteDB_InMemory(t *testing.T) {
	ctx := context.Background()

	db, err := NewSQLiteDB(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.Health(ctx))

	var enabled int
	require.NoError(t, db.DB.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled))
	assert.Equal(t, 1, enabled)

	stats := db.Stats()
	assert.Equal(t, "sqlite", stats.Driver)
	assert.Equal(t, 1, stats.MaxConns)
	assert.Equal(t, 1, stats.Open)
}

func TestNewSQLiteDB_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "votes.db")

	db, err := NewSQLiteDB(ctx, path)
	require.NoError(t, err)

	_, err = db.DB.ExecContext(ctx, "CREATE TABLE marker (id TEXT PRIMARY KEY)")
	require.NoError(t, err)
	db.Close()

	reopened, err := NewSQLiteDB(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	var name string
	err = reopened.DB.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'marker'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "marker", name)
}

func TestNewSQLiteDB_EmptyPath(t *testing.T) {
	db, err := NewSQLiteDB(context.Background(), "  ")
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestNewPostgresDB_InvalidURL(t *testing.T) {
	db, err := NewPostgresDB(context.Background(), "not a url ::")
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestPostgresOptions_WithDefaults(t *testing.T) {
	got := PostgresOptions{}.withDefaults()
	assert.Equal(t, defaultPostgresOptions, got)

	got = PostgresOptions{MaxConns: 1, ConnectTimeout: time.Second}.withDefaults()
	assert.Equal(t, int32(1), got.MaxConns)
	assert.Equal(t, int32(1), got.MinConns)
	assert.Equal(t, time.Second, got.ConnectTimeout)
	assert.Equal(t, time.Hour, got.MaxConnLifetime)
}
