package service

import (
	"context"

	"team-vote/internal/domain"
)

// TeamService defines the interface for team operations
type TeamService interface {
	// ListTeams returns every team with its votes, oldest first
	ListTeams(ctx context.Context) ([]domain.Team, error)

	// CreateTeam validates the request and stores a new team
	CreateTeam(ctx context.Context, req *domain.CreateTeamRequest) (*domain.Team, error)
}

// CandidateService defines the interface for candidate operations
type CandidateService interface {
	// ListCandidates returns every candidate, oldest first
	ListCandidates(ctx context.Context) ([]domain.Candidate, error)

	// CreateCandidate validates the request and stores a new candidate
	CreateCandidate(ctx context.Context, req *domain.CreateCandidateRequest) (*domain.Candidate, error)
}

// VotingService defines the interface for voting operations
type VotingService interface {
	// CastVote records one vote for one team, rejecting repeat voters
	CastVote(ctx context.Context, req *domain.CastVoteRequest) (*domain.CastVoteResponse, error)

	// ListVotes returns every vote with the total and per-team counts
	ListVotes(ctx context.Context) (*domain.VoteSummary, error)

	// AdminStats returns totals and every team with its vote count
	AdminStats(ctx context.Context) (*domain.AdminStats, error)
}

// TallyBroadcaster defines the interface for the live results feed
type TallyBroadcaster interface {
	// Start begins the periodic tally loop
	Start(ctx context.Context) error

	// Stop ends the loop and closes every subscription
	Stop(ctx context.Context) error

	// Subscribe registers a new listener. The first tally is delivered
	// immediately.
	Subscribe(ctx context.Context) (*Subscription, error)
}

// Services aggregates all service interfaces
type Services struct {
	Teams      TeamService
	Candidates CandidateService
	Voting     VotingService
	Tallies    TallyBroadcaster
	Cache      *CacheService
}
