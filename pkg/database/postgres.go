package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolStats is a driver-neutral view of connection pool usage
type PoolStats struct {
	Driver   string `json:"driver"`
	Open     int    `json:"open"`
	InUse    int    `json:"in_use"`
	Idle     int    `json:"idle"`
	MaxConns int    `json:"max_conns"`
}

// PostgresOptions tunes the pgx pool. Zero fields keep the defaults.
type PostgresOptions struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

var defaultPostgresOptions = PostgresOptions{
	MaxConns:        10,
	MinConns:        2,
	MaxConnLifetime: time.Hour,
	MaxConnIdleTime: 30 * time.Minute,
	ConnectTimeout:  5 * time.Second,
}

type PostgresDB struct {
	Pool *pgxpool.Pool
}

// NewPostgresDB opens a pool with the default options
func NewPostgresDB(ctx context.Context, databaseURL string) (*PostgresDB, error) {
	return NewPostgresDBWithOptions(ctx, databaseURL, PostgresOptions{})
}

// NewPostgresDBWithOptions opens a pool and pings it before returning
func NewPostgresDBWithOptions(ctx context.Context, databaseURL string, opts PostgresOptions) (*PostgresDB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	opts = opts.withDefaults()
	config.MaxConns = opts.MaxConns
	config.MinConns = opts.MinConns
	config.MaxConnLifetime = opts.MaxConnLifetime
	config.MaxConnIdleTime = opts.MaxConnIdleTime
	config.HealthCheckPeriod = time.Minute
	config.ConnConfig.ConnectTimeout = opts.ConnectTimeout
	config.ConnConfig.RuntimeParams["application_name"] = "team-vote"

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresDB{Pool: pool}, nil
}

func (o PostgresOptions) withDefaults() PostgresOptions {
	d := defaultPostgresOptions
	if o.MaxConns > 0 {
		d.MaxConns = o.MaxConns
	}
	if o.MinConns > 0 {
		d.MinConns = o.MinConns
	}
	if d.MinConns > d.MaxConns {
		d.MinConns = d.MaxConns
	}
	if o.MaxConnLifetime > 0 {
		d.MaxConnLifetime = o.MaxConnLifetime
	}
	if o.MaxConnIdleTime > 0 {
		d.MaxConnIdleTime = o.MaxConnIdleTime
	}
	if o.ConnectTimeout > 0 {
		d.ConnectTimeout = o.ConnectTimeout
	}
	return d
}

func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

func (db *PostgresDB) Health(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Stats reports pool usage for the health endpoint
func (db *PostgresDB) Stats() PoolStats {
	s := db.Pool.Stat()
	return PoolStats{
		Driver:   "postgres",
		Open:     int(s.TotalConns()),
		InUse:    int(s.AcquiredConns()),
		Idle:     int(s.IdleConns()),
		MaxConns: int(s.MaxConns()),
	}
}
