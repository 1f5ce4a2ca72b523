package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"team-vote/internal/domain"
	"team-vote/internal/repository"
	apperrors "team-vote/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const msgVoteCast = "Vote cast successfully"

type votingService struct {
	teams  repository.TeamRepository
	votes  repository.VoteRepository
	guard  *VoteGuard
	cache  *CacheService
	logger *zap.Logger
	clock  func() time.Time
}

// NewVotingService creates a new voting service
func NewVotingService(repos *repository.Repositories, cache *CacheService, logger *zap.Logger) VotingService {
	return &votingService{
		teams:  repos.Teams,
		votes:  repos.Votes,
		guard:  NewVoteGuard(repos.Votes, logger),
		cache:  cache,
		logger: logger,
		clock:  now,
	}
}

// CastVote handles vote submission with duplicate prevention
func (s *votingService) CastVote(ctx context.Context, req *domain.CastVoteRequest) (*domain.CastVoteResponse, error) {
	if req == nil || isBlank(req.VoterName) || isBlank(req.TeamID) {
		return nil, apperrors.NewValidationError("Voter name and team ID are required")
	}

	if err := s.guard.Check(ctx, req.VoterName); err != nil {
		return nil, s.logged(err)
	}

	team, err := s.teams.GetByID(ctx, req.TeamID)
	if err != nil {
		return nil, s.logged(apperrors.NewInternalError("Failed to cast vote", err))
	}
	if team == nil {
		return nil, apperrors.NewNotFoundError("Team not found")
	}

	voterName := strings.TrimSpace(req.VoterName)
	vote := &domain.Vote{
		ID:        uuid.NewString(),
		VoterName: voterName,
		VoterKey:  domain.NormalizeVoterName(voterName),
		TeamID:    team.ID,
		Timestamp: s.clock(),
	}

	if err := s.votes.Create(ctx, vote); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateVoter):
			return nil, apperrors.NewConflictError(msgAlreadyVoted)
		case errors.Is(err, domain.ErrTeamNotFound):
			return nil, apperrors.NewNotFoundError("Team not found")
		}
		return nil, s.logged(apperrors.NewInternalError("Failed to cast vote", err))
	}

	s.cache.InvalidateTeams(ctx)

	s.logger.Info("Vote cast",
		zap.String("vote_id", vote.ID),
		zap.String("team_id", vote.TeamID))

	return &domain.CastVoteResponse{
		Message: msgVoteCast,
		Vote: domain.VoteReceipt{
			ID:        vote.ID,
			VoterName: vote.VoterName,
			Team:      team.Summary(),
			Timestamp: vote.Timestamp,
		},
	}, nil
}

// ListVotes returns all votes newest first with their statistics. The
// counts are taken from the same read as the list so they always agree.
func (s *votingService) ListVotes(ctx context.Context) (*domain.VoteSummary, error) {
	votes, err := s.votes.ListWithTeams(ctx)
	if err != nil {
		return nil, s.logged(apperrors.NewInternalError("Failed to fetch votes", err))
	}

	perTeam := make(map[string]int)
	for _, v := range votes {
		perTeam[v.TeamID]++
	}

	return &domain.VoteSummary{
		Votes:       votes,
		TotalVotes:  len(votes),
		VotesByTeam: domain.NewTeamVoteCounts(perTeam),
	}, nil
}

// AdminStats returns the admin dashboard payload, built from a single read
// of the teams with their votes.
func (s *votingService) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	teams, err := s.teams.ListWithVotes(ctx)
	if err != nil {
		return nil, s.logged(apperrors.NewInternalError("Failed to fetch admin statistics", err))
	}

	total := 0
	perTeam := make(map[string]int)
	withCounts := make([]domain.TeamWithCount, 0, len(teams))
	for _, team := range teams {
		n := len(team.Votes)
		withCounts = append(withCounts, domain.TeamWithCount{Team: team, VoteCount: n})
		total += n
		if n > 0 {
			perTeam[team.ID] = n
		}
	}

	return &domain.AdminStats{
		TotalVotes: total,
		Teams:      withCounts,
		Stats:      domain.NewTeamVoteCounts(perTeam),
	}, nil
}

// logged records internal errors before they are returned
func (s *votingService) logged(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeInternal {
		s.logger.Error(appErr.Message, zap.Error(appErr.Internal))
	}
	return err
}
