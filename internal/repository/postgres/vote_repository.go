package postgres

import (
	"context"
	"fmt"

	"team-vote/internal/domain"
	"team-vote/internal/repository"
	"team-vote/pkg/database"
)

type VoteRepository struct {
	db *database.PostgresDB
}

func NewVoteRepository(db *database.PostgresDB) *VoteRepository {
	return &VoteRepository{db: db}
}

var _ repository.VoteRepository = (*VoteRepository)(nil)

// ListVoterNames returns the voter name of every stored vote
func (r *VoteRepository) ListVoterNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT voter_name FROM votes`)
	if err != nil {
		return nil, fmt.Errorf("failed to list voter names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan voter name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read voter names: %w", err)
	}

	return names, nil
}

// Create creates a new vote record
func (r *VoteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO votes (id, voter_name, voter_key, team_id, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`, vote.ID, vote.VoterName, vote.VoterKey, vote.TeamID, vote.Timestamp)

	if err != nil {
		switch code, constraint := pgErrorCode(err); {
		case code == codeUniqueViolation && constraint == constraintVoterKey:
			return domain.ErrDuplicateVoter
		case code == codeForeignKeyViolation:
			return domain.ErrTeamNotFound
		}
		return fmt.Errorf("failed to create vote: %w", err)
	}

	return nil
}

// ListWithTeams returns all votes with their team, newest first
func (r *VoteRepository) ListWithTeams(ctx context.Context) ([]domain.VoteWithTeam, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT v.id, v.voter_name, v.team_id, v.cast_at, t.name, t.leader, t.co_leader
		FROM votes v
		JOIN teams t ON t.id = v.team_id
		ORDER BY v.cast_at DESC, v.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	votes := []domain.VoteWithTeam{}
	for rows.Next() {
		var v domain.VoteWithTeam
		err := rows.Scan(&v.ID, &v.VoterName, &v.TeamID, &v.Timestamp, &v.Team.Name, &v.Team.Leader, &v.Team.CoLeader)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}

	return votes, nil
}
