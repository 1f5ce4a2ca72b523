package repository

import (
	"context"

	"team-vote/internal/domain"
)

// TeamRepository defines the interface for team data operations
type TeamRepository interface {
	// ListWithVotes returns every team with its votes, oldest team first.
	// Teams and votes come from a single statement, so they agree.
	ListWithVotes(ctx context.Context) ([]domain.Team, error)

	// GetByID returns the team or nil when it does not exist
	GetByID(ctx context.Context, id string) (*domain.Team, error)

	// Create inserts a new team
	Create(ctx context.Context, team *domain.Team) error

	// ListTallies returns every team with its current vote count
	ListTallies(ctx context.Context) ([]domain.TeamTally, error)
}

// CandidateRepository defines the interface for candidate data operations
type CandidateRepository interface {
	// List returns every candidate, oldest first
	List(ctx context.Context) ([]domain.Candidate, error)

	// Create inserts a new candidate
	Create(ctx context.Context, candidate *domain.Candidate) error
}

// VoteRepository defines the interface for vote data operations
type VoteRepository interface {
	// ListVoterNames returns the stored voter name of every vote
	ListVoterNames(ctx context.Context) ([]string, error)

	// Create inserts a vote. It returns domain.ErrDuplicateVoter when the
	// voter key is already taken and domain.ErrTeamNotFound when the team
	// does not exist.
	Create(ctx context.Context, vote *domain.Vote) error

	// ListWithTeams returns every vote joined with its team, newest first
	ListWithTeams(ctx context.Context) ([]domain.VoteWithTeam, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Teams      TeamRepository
	Candidates CandidateRepository
	Votes      VoteRepository
}

// TeamFolder rebuilds teams from team-LEFT-JOIN-vote rows ordered by team.
// Each team appears once, with its votes in row order.
type TeamFolder struct {
	teams []domain.Team
}

// Add appends one joined row. vote is nil when the team has no votes.
func (f *TeamFolder) Add(team domain.Team, vote *domain.VoteRef) {
	if n := len(f.teams); n == 0 || f.teams[n-1].ID != team.ID {
		team.Votes = []domain.VoteRef{}
		f.teams = append(f.teams, team)
	}
	if vote != nil {
		last := &f.teams[len(f.teams)-1]
		last.Votes = append(last.Votes, *vote)
	}
}

// Teams returns the folded teams, never nil
func (f *TeamFolder) Teams() []domain.Team {
	if f.teams == nil {
		return []domain.Team{}
	}
	return f.teams
}
