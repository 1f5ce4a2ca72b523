package service

import (
	"context"

	"team-vote/internal/domain"
	"team-vote/internal/repository"
	apperrors "team-vote/pkg/errors"

	"go.uber.org/zap"
)

const msgAlreadyVoted = "You have already voted"

// VoteGuard rejects a voter whose normalized name matches a stored vote.
// It runs before the insert; the store's unique voter key catches the
// concurrent case the scan cannot.
type VoteGuard struct {
	votes  repository.VoteRepository
	logger *zap.Logger
}

func NewVoteGuard(votes repository.VoteRepository, logger *zap.Logger) *VoteGuard {
	return &VoteGuard{votes: votes, logger: logger}
}

// Check returns a conflict error when voterName has already voted
func (g *VoteGuard) Check(ctx context.Context, voterName string) error {
	key := domain.NormalizeVoterName(voterName)

	names, err := g.votes.ListVoterNames(ctx)
	if err != nil {
		return apperrors.NewInternalError("Failed to cast vote", err)
	}

	for _, name := range names {
		if domain.NormalizeVoterName(name) == key {
			g.logger.Debug("Duplicate voter rejected", zap.Int("stored_votes", len(names)))
			return apperrors.NewConflictError(msgAlreadyVoted)
		}
	}

	return nil
}
