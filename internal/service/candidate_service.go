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

type candidateService struct {
	candidates repository.CandidateRepository
	logger     *zap.Logger
	clock      func() time.Time
}

// NewCandidateService creates a new candidate service
func NewCandidateService(candidates repository.CandidateRepository, logger *zap.Logger) CandidateService {
	return &candidateService{candidates: candidates, logger: logger, clock: now}
}

func (s *candidateService) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	candidates, err := s.candidates.List(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch candidates", zap.Error(err))
		return nil, apperrors.NewInternalError("Failed to fetch candidates", err)
	}
	return candidates, nil
}

func (s *candidateService) CreateCandidate(ctx context.Context, req *domain.CreateCandidateRequest) (*domain.Candidate, error) {
	if req == nil || isBlank(req.Name) || isBlank(req.Team) || isBlank(req.Description) || isBlank(req.Vision) {
		return nil, apperrors.NewValidationError(msgMissingFields)
	}

	candidate := &domain.Candidate{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Team:        req.Team,
		Description: req.Description,
		Vision:      req.Vision,
		Image:       optionalImage(req.Image),
		CreatedAt:   s.clock(),
		Votes:       []domain.VoteRef{},
	}

	if err := s.candidates.Create(ctx, candidate); err != nil {
		s.logger.Error("Failed to create candidate", zap.String("name", candidate.Name), zap.Error(err))
		return nil, apperrors.NewInternalError("Failed to create candidate", err)
	}

	s.logger.Info("Candidate created", zap.String("candidate_id", candidate.ID))
	return candidate, nil
}
