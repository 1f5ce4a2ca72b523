package postgres

import (
	"context"
	"fmt"

	"team-vote/pkg/database"
)

// Schema is applied by Migrate. Every statement is idempotent.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		vision TEXT NOT NULL,
		image TEXT,
		leader TEXT NOT NULL,
		co_leader TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS candidates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		team TEXT NOT NULL,
		description TEXT NOT NULL,
		vision TEXT NOT NULL,
		image TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	// voter_key is lower(trim(voter_name)); the unique constraint backs the
	// duplicate-vote guard so concurrent submissions cannot both succeed.
	`CREATE TABLE IF NOT EXISTS votes (
		id TEXT PRIMARY KEY,
		voter_name TEXT NOT NULL,
		voter_key TEXT NOT NULL,
		team_id TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		cast_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT votes_voter_key_key UNIQUE (voter_key)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_teams_created_at ON teams(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_candidates_created_at ON candidates(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_team_id ON votes(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_cast_at ON votes(cast_at DESC)`,
}

// dropStatements removes everything Schema creates
var dropStatements = []string{
	`DROP TABLE IF EXISTS votes CASCADE`,
	`DROP TABLE IF EXISTS candidates CASCADE`,
	`DROP TABLE IF EXISTS teams CASCADE`,
}

// Migrate creates all tables and indexes
func Migrate(ctx context.Context, db *database.PostgresDB) error {
	for _, stmt := range Schema {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// Drop removes all tables
func Drop(ctx context.Context, db *database.PostgresDB) error {
	for _, stmt := range dropStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to drop tables: %w", err)
		}
	}
	return nil
}
