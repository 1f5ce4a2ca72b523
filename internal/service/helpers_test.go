package service

import (
	"context"
	"testing"

	"team-vote/internal/repository"
	"team-vote/internal/repository/sqlite"
	"team-vote/pkg/database"
	"team-vote/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewSQLiteDB(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, sqlite.Migrate(ctx, db))

	return &repository.Repositories{
		Teams:      sqlite.NewTeamRepository(db),
		Candidates: sqlite.NewCandidateRepository(db),
		Votes:      sqlite.NewVoteRepository(db),
	}
}

func setupCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return NewCacheService(client, zap.NewNop()), mr
}
