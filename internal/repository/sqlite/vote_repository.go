package sqlite

import (
	"context"
	"fmt"

	"team-vote/internal/domain"
	"team-vote/internal/repository"
	"team-vote/pkg/database"
)

type VoteRepository struct {
	db *database.SQLiteDB
}

func NewVoteRepository(db *database.SQLiteDB) *VoteRepository {
	return &VoteRepository{db: db}
}

var _ repository.VoteRepository = (*VoteRepository)(nil)

func (r *VoteRepository) ListVoterNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.DB.QueryContext(ctx, `SELECT voter_name FROM votes`)
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

func (r *VoteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	_, err := r.db.DB.ExecContext(ctx, `
		INSERT INTO votes (id, voter_name, voter_key, team_id, cast_at)
		VALUES (?, ?, ?, ?, ?)
	`, vote.ID, vote.VoterName, vote.VoterKey, vote.TeamID, toMicros(vote.Timestamp))

	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrDuplicateVoter
	case isForeignKeyViolation(err):
		return domain.ErrTeamNotFound
	default:
		return fmt.Errorf("failed to create vote: %w", err)
	}
}

func (r *VoteRepository) ListWithTeams(ctx context.Context) ([]domain.VoteWithTeam, error) {
	rows, err := r.db.DB.QueryContext(ctx, `
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
		var (
			v      domain.VoteWithTeam
			castAt int64
		)
		err := rows.Scan(&v.ID, &v.VoterName, &v.TeamID, &castAt, &v.Team.Name, &v.Team.Leader, &v.Team.CoLeader)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		v.Timestamp = fromMicros(castAt)
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}
	return votes, nil
}
