package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ALLOWED_ORIGINS", "LOG_LEVEL", "ENVIRONMENT", "DATABASE_DRIVER",
		"DATABASE_URL", "SQLITE_PATH", "REDIS_URL", "LIVE_RESULTS_INTERVAL",
	} {
		t.Setenv(key, env[key])
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, map[string]string{"DATABASE_URL": "postgres://localhost/vote"})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, "team-vote.db", cfg.SQLitePath)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 2*time.Second, cfg.LiveResultsInterval)
}

func TestLoad_SQLite(t *testing.T) {
	setEnv(t, map[string]string{
		"DATABASE_DRIVER":       "SQLite",
		"SQLITE_PATH":           ":memory:",
		"ALLOWED_ORIGINS":       " http://a.example , ,http://b.example",
		"LIVE_RESULTS_INTERVAL": "500ms",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, ":memory:", cfg.SQLitePath)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 500*time.Millisecond, cfg.LiveResultsInterval)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres without url", map[string]string{}},
		{"unknown driver", map[string]string{"DATABASE_DRIVER": "mysql"}},
		{"bad interval", map[string]string{"DATABASE_DRIVER": "sqlite", "LIVE_RESULTS_INTERVAL": "soon"}},
		{"zero interval", map[string]string{"DATABASE_DRIVER": "sqlite", "LIVE_RESULTS_INTERVAL": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
