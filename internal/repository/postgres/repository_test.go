package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"team-vote/internal/domain"
	"team-vote/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupDB connects to TEST_DATABASE_URL and resets the schema. Tests are
// skipped when it is not set.
func setupDB(t *testing.T) *database.PostgresDB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, url)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, Drop(ctx, db))
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))
	return db
}

func team(id, name string, created time.Time) *domain.Team {
	return &domain.Team{
		ID: id, Name: name, Description: "d", Vision: "v",
		Leader: name + " leader", CoLeader: name + " co-leader",
		CreatedAt: created, UpdatedAt: created,
	}
}

func TestPostgresRepositories(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	teams := NewTeamRepository(db)
	votes := NewVoteRepository(db)
	candidates := NewCandidateRepository(db)

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, teams.Create(ctx, team("t1", "Alpha", base)))
	require.NoError(t, teams.Create(ctx, team("t2", "Beta", base.Add(time.Second))))

	vote := &domain.Vote{ID: "v1", VoterName: "Alice", VoterKey: "alice", TeamID: "t1", Timestamp: base}
	require.NoError(t, votes.Create(ctx, vote))

	t.Run("duplicate voter", func(t *testing.T) {
		dup := &domain.Vote{ID: "v2", VoterName: "ALICE", VoterKey: "alice", TeamID: "t2", Timestamp: base}
		assert.ErrorIs(t, votes.Create(ctx, dup), domain.ErrDuplicateVoter)
	})

	t.Run("unknown team", func(t *testing.T) {
		orphan := &domain.Vote{ID: "v3", VoterName: "Bob", VoterKey: "bob", TeamID: "missing", Timestamp: base}
		assert.ErrorIs(t, votes.Create(ctx, orphan), domain.ErrTeamNotFound)
	})

	t.Run("teams with votes", func(t *testing.T) {
		list, err := teams.ListWithVotes(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "t1", list[0].ID)
		require.Len(t, list[0].Votes, 1)
		assert.Empty(t, list[1].Votes)
	})

	t.Run("tallies", func(t *testing.T) {
		tallies, err := teams.ListTallies(ctx)
		require.NoError(t, err)
		require.Len(t, tallies, 2)
		assert.Equal(t, 1, tallies[0].VoteCount)
		assert.Equal(t, 0, tallies[1].VoteCount)
	})

	t.Run("vote queries", func(t *testing.T) {
		names, err := votes.ListVoterNames(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice"}, names)

		list, err := votes.ListWithTeams(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Alpha", list[0].Team.Name)
	})

	t.Run("candidates", func(t *testing.T) {
		require.NoError(t, candidates.Create(ctx, &domain.Candidate{
			ID: "c1", Name: "Cand", Team: "Red", Description: "d", Vision: "v", CreatedAt: base,
		}))
		list, err := candidates.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Empty(t, list[0].Votes)
	})
}
