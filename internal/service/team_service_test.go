package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"team-vote/internal/domain"
	"team-vote/internal/repository"
	apperrors "team-vote/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func validTeamRequest() *domain.CreateTeamRequest {
	return &domain.CreateTeamRequest{
		Name:        "Visionary Leaders",
		Description: "  Building tomorrow  ",
		Vision:      "Empower everyone",
		Leader:      "Sarah Johnson",
		CoLeader:    "Michael Chen",
	}
}

func TestTeamService_CreateTeam(t *testing.T) {
	ctx := context.Background()
	svc := NewTeamService(setupRepos(t).Teams, nil, zap.NewNop())

	req := validTeamRequest()
	req.Image = strPtr("https://example.com/team.png")

	team, err := svc.CreateTeam(ctx, req)
	require.NoError(t, err)

	assert.NotEmpty(t, team.ID)
	assert.Equal(t, req.Name, team.Name)
	assert.Equal(t, req.Description, team.Description)
	assert.Equal(t, req.Vision, team.Vision)
	assert.Equal(t, req.Leader, team.Leader)
	assert.Equal(t, req.CoLeader, team.CoLeader)
	require.NotNil(t, team.Image)
	assert.Equal(t, *req.Image, *team.Image)
	assert.NotNil(t, team.Votes)
	assert.Empty(t, team.Votes)

	teams, err := svc.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, team.ID, teams[0].ID)
	assert.Equal(t, req.Description, teams[0].Description)
	assert.True(t, team.CreatedAt.Equal(teams[0].CreatedAt))
}

func TestTeamService_CreateTeam_EmptyImageIsNull(t *testing.T) {
	svc := NewTeamService(setupRepos(t).Teams, nil, zap.NewNop())

	req := validTeamRequest()
	req.Image = strPtr("")

	team, err := svc.CreateTeam(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, team.Image)
}

func TestTeamService_CreateTeam_MissingFields(t *testing.T) {
	svc := NewTeamService(setupRepos(t).Teams, nil, zap.NewNop())

	tests := []struct {
		name   string
		mutate func(r *domain.CreateTeamRequest)
	}{
		{"name", func(r *domain.CreateTeamRequest) { r.Name = "" }},
		{"description", func(r *domain.CreateTeamRequest) { r.Description = "" }},
		{"vision", func(r *domain.CreateTeamRequest) { r.Vision = "   " }},
		{"leader", func(r *domain.CreateTeamRequest) { r.Leader = "" }},
		{"coLeader", func(r *domain.CreateTeamRequest) { r.CoLeader = "\t" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTeamRequest()
			tt.mutate(req)

			_, err := svc.CreateTeam(context.Background(), req)
			appErr := apperrors.As(err, "")
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
			assert.Equal(t, "Missing required fields", appErr.Message)
		})
	}

	teams, err := svc.ListTeams(context.Background())
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestTeamService_ListTeams_UsesCache(t *testing.T) {
	ctx := context.Background()
	cache, mr := setupCache(t)
	svc := NewTeamService(setupRepos(t).Teams, cache, zap.NewNop())

	_, err := svc.CreateTeam(ctx, validTeamRequest())
	require.NoError(t, err)
	version, ok := cache.TeamsVersion(ctx)
	require.True(t, ok)
	key := fmt.Sprintf("test:voting:teams:all:v%d", version)
	assert.False(t, mr.Exists(key))

	first, err := svc.ListTeams(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists(key))

	second, err := svc.ListTeams(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second))
	assert.Equal(t, first[0].ID, second[0].ID)

	// A new team moves the listing to the next generation.
	_, err = svc.CreateTeam(ctx, validTeamRequest())
	require.NoError(t, err)

	third, err := svc.ListTeams(ctx)
	require.NoError(t, err)
	assert.Len(t, third, 2)
}

// stallingTeams blocks the next ListWithVotes after it has read the store
type stallingTeams struct {
	repository.TeamRepository

	mu      sync.Mutex
	hold    chan struct{}
	entered chan struct{}
}

func (s *stallingTeams) ListWithVotes(ctx context.Context) ([]domain.Team, error) {
	teams, err := s.TeamRepository.ListWithVotes(ctx)

	s.mu.Lock()
	hold, entered := s.hold, s.entered
	s.hold, s.entered = nil, nil
	s.mu.Unlock()

	if hold != nil {
		close(entered)
		<-hold
	}
	return teams, err
}

func TestTeamService_ListTeams_WriteDuringReadIsNotCached(t *testing.T) {
	ctx := context.Background()
	cache, _ := setupCache(t)
	repos := setupRepos(t)
	teamRepo := &stallingTeams{TeamRepository: repos.Teams}
	teams := NewTeamService(teamRepo, cache, zap.NewNop())
	voting := NewVotingService(repos, cache, zap.NewNop())

	team, err := teams.CreateTeam(ctx, validTeamRequest())
	require.NoError(t, err)

	hold, entered := make(chan struct{}), make(chan struct{})
	teamRepo.mu.Lock()
	teamRepo.hold, teamRepo.entered = hold, entered
	teamRepo.mu.Unlock()

	stale := make(chan []domain.Team, 1)
	go func() {
		list, _ := teams.ListTeams(ctx)
		stale <- list
	}()
	<-entered

	// The vote commits while the listing above holds a pre-vote read.
	_, err = voting.CastVote(ctx, &domain.CastVoteRequest{VoterName: "Alice", TeamID: team.ID})
	require.NoError(t, err)

	close(hold)
	require.Empty(t, (<-stale)[0].Votes)

	fresh, err := teams.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	require.Len(t, fresh[0].Votes, 1)
	assert.Equal(t, "Alice", fresh[0].Votes[0].VoterName)
}
