package service

import (
	"context"
	"time"

	"team-vote/internal/domain"
	"team-vote/internal/repository"
	apperrors "team-vote/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const msgMissingFields = "Missing required fields"

type teamService struct {
	teams  repository.TeamRepository
	cache  *CacheService
	logger *zap.Logger
	clock  func() time.Time
}

// NewTeamService creates a new team service
func NewTeamService(teams repository.TeamRepository, cache *CacheService, logger *zap.Logger) TeamService {
	return &teamService{teams: teams, cache: cache, logger: logger, clock: now}
}

// ListTeams serves the listing from the cache when the current generation
// is there. The version is read before the store so that a write landing
// mid-read bumps it and the stale result is filed under a dead generation.
func (s *teamService) ListTeams(ctx context.Context) ([]domain.Team, error) {
	version, cacheable := s.cache.TeamsVersion(ctx)
	if cacheable {
		if teams, ok := s.cache.GetTeams(ctx, version); ok {
			return teams, nil
		}
	}

	teams, err := s.teams.ListWithVotes(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch teams", zap.Error(err))
		return nil, apperrors.NewInternalError("Failed to fetch teams", err)
	}

	if cacheable {
		s.cache.SetTeams(ctx, version, teams)
	}
	return teams, nil
}

func (s *teamService) CreateTeam(ctx context.Context, req *domain.CreateTeamRequest) (*domain.Team, error) {
	if req == nil || isBlank(req.Name) || isBlank(req.Description) || isBlank(req.Vision) ||
		isBlank(req.Leader) || isBlank(req.CoLeader) {
		return nil, apperrors.NewValidationError(msgMissingFields)
	}

	created := s.clock()
	team := &domain.Team{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Vision:      req.Vision,
		Image:       optionalImage(req.Image),
		Leader:      req.Leader,
		CoLeader:    req.CoLeader,
		CreatedAt:   created,
		UpdatedAt:   created,
		Votes:       []domain.VoteRef{},
	}

	if err := s.teams.Create(ctx, team); err != nil {
		s.logger.Error("Failed to create team", zap.String("name", team.Name), zap.Error(err))
		return nil, apperrors.NewInternalError("Failed to create team", err)
	}

	s.cache.InvalidateTeams(ctx)

	s.logger.Info("Team created", zap.String("team_id", team.ID), zap.String("name", team.Name))
	return team, nil
}
