package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteDB is an embedded store used for local runs and tests.
type SQLiteDB struct {
	DB *sql.DB
}

// NewSQLiteDB opens (or creates) the SQLite database at path. ":memory:"
// gives a private in-memory database.
func NewSQLiteDB(ctx context.Context, path string) (*SQLiteDB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&"
	} else {
		dsn += "?"
	}
	dsn += "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// One connection: SQLite serialises writers anyway, and an in-memory
	// database only exists on the connection that created it.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return &SQLiteDB{DB: db}, nil
}

// Close closes the database
func (s *SQLiteDB) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}

// Health checks the database connection
func (s *SQLiteDB) Health(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *SQLiteDB) Stats() PoolStats {
	st := s.DB.Stats()
	return PoolStats{
		Driver:   "sqlite",
		Open:     st.OpenConnections,
		InUse:    st.InUse,
		Idle:     st.Idle,
		MaxConns: st.MaxOpenConnections,
	}
}
