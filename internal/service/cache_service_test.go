package service

import (
	"context"
	"testing"

	"team-vote/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheService_Disabled(t *testing.T) {
	ctx := context.Background()

	for name, c := range map[string]*CacheService{
		"nil":       nil,
		"no client": NewCacheService(nil, nil),
	} {
		t.Run(name, func(t *testing.T) {
			assert.False(t, c.Enabled())
			_, ok := c.TeamsVersion(ctx)
			assert.False(t, ok)
			c.SetTeams(ctx, 0, []domain.Team{{ID: "t1"}})
			_, ok = c.GetTeams(ctx, 0)
			assert.False(t, ok)
			c.InvalidateTeams(ctx)
			_, ok = c.GetTally(ctx)
			assert.False(t, ok)
			assert.NoError(t, c.HealthCheck(ctx))
		})
	}
}

func TestCacheService_Teams(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t)

	version, ok := c.TeamsVersion(ctx)
	require.True(t, ok)
	assert.Zero(t, version)

	_, ok = c.GetTeams(ctx, version)
	assert.False(t, ok)

	teams := []domain.Team{{ID: "t1", Name: "Alpha", Votes: []domain.VoteRef{}}}
	c.SetTeams(ctx, version, teams)

	got, ok := c.GetTeams(ctx, version)
	require.True(t, ok)
	assert.Equal(t, "Alpha", got[0].Name)
	assert.Greater(t, mr.TTL("test:voting:teams:all:v0").Minutes(), 4.0)

	c.InvalidateTeams(ctx)
	next, ok := c.TeamsVersion(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(1), next)
	_, ok = c.GetTeams(ctx, next)
	assert.False(t, ok)

	// A listing written late under the old generation is never served.
	c.SetTeams(ctx, version, teams)
	_, ok = c.GetTeams(ctx, next)
	assert.False(t, ok)

	require.NoError(t, mr.Set("test:voting:teams:all:v1", "{not json"))
	_, ok = c.GetTeams(ctx, next)
	assert.False(t, ok)

	require.NoError(t, mr.Set("test:voting:teams:version", "abc"))
	_, ok = c.TeamsVersion(ctx)
	assert.False(t, ok)
}

func TestCacheService_Tally(t *testing.T) {
	ctx := context.Background()
	c, _ := setupCache(t)

	tally := []domain.TeamTally{{ID: "t1", Name: "Alpha", VoteCount: 3}}
	c.SetTally(ctx, tally)

	got, ok := c.GetTally(ctx)
	require.True(t, ok)
	assert.Equal(t, tally, got)
}

func TestCacheService_HealthCheck(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t)

	assert.NoError(t, c.HealthCheck(ctx))

	mr.Close()
	assert.Error(t, c.HealthCheck(ctx))

	// Errors never escape the read paths.
	_, ok := c.TeamsVersion(ctx)
	assert.False(t, ok)
	_, ok = c.GetTally(ctx)
	assert.False(t, ok)
}
