package sqlite

import (
	"context"
	"fmt"

	"team-vote/pkg/database"
)

// Times are stored as INTEGER unix microseconds.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		vision TEXT NOT NULL,
		image TEXT,
		leader TEXT NOT NULL,
		co_leader TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS candidates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		team TEXT NOT NULL,
		description TEXT NOT NULL,
		vision TEXT NOT NULL,
		image TEXT,
		created_at INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS votes (
		id TEXT PRIMARY KEY,
		voter_name TEXT NOT NULL,
		voter_key TEXT NOT NULL UNIQUE,
		team_id TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		cast_at INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_teams_created_at ON teams(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_candidates_created_at ON candidates(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_team_id ON votes(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_cast_at ON votes(cast_at)`,
}

// Migrate creates all tables and indexes
func Migrate(ctx context.Context, db *database.SQLiteDB) error {
	for _, stmt := range schema {
		if _, err := db.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// Drop removes everything Migrate creates
func Drop(ctx context.Context, db *database.SQLiteDB) error {
	for _, table := range []string{"votes", "candidates", "teams"} {
		if _, err := db.DB.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	return nil
}
