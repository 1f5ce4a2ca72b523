package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"team-vote/internal/domain"
	"team-vote/internal/repository"
	"team-vote/pkg/database"
)

type TeamRepository struct {
	db *database.SQLiteDB
}

func NewTeamRepository(db *database.SQLiteDB) *TeamRepository {
	return &TeamRepository{db: db}
}

var _ repository.TeamRepository = (*TeamRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeam(row rowScanner) (domain.Team, error) {
	var (
		team               domain.Team
		image              sql.NullString
		createdAt, updated int64
	)
	err := row.Scan(
		&team.ID,
		&team.Name,
		&team.Description,
		&team.Vision,
		&image,
		&team.Leader,
		&team.CoLeader,
		&createdAt,
		&updated,
	)
	if err != nil {
		return team, err
	}
	team.Image = stringPtr(image)
	team.CreatedAt = fromMicros(createdAt)
	team.UpdatedAt = fromMicros(updated)
	return team, nil
}

func (r *TeamRepository) ListWithVotes(ctx context.Context) ([]domain.Team, error) {
	rows, err := r.db.DB.QueryContext(ctx, `
		SELECT t.id, t.name, t.description, t.vision, t.image, t.leader, t.co_leader,
		       t.created_at, t.updated_at, v.id, v.voter_name, v.cast_at
		FROM teams t
		LEFT JOIN votes v ON v.team_id = t.id
		ORDER BY t.created_at ASC, t.id ASC, v.cast_at ASC, v.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var folder repository.TeamFolder
	for rows.Next() {
		var (
			team               domain.Team
			image              sql.NullString
			createdAt, updated int64
			voteID, voterName  sql.NullString
			castAt             sql.NullInt64
		)
		err := rows.Scan(
			&team.ID,
			&team.Name,
			&team.Description,
			&team.Vision,
			&image,
			&team.Leader,
			&team.CoLeader,
			&createdAt,
			&updated,
			&voteID,
			&voterName,
			&castAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		team.Image = stringPtr(image)
		team.CreatedAt = fromMicros(createdAt)
		team.UpdatedAt = fromMicros(updated)

		var ref *domain.VoteRef
		if voteID.Valid {
			ref = &domain.VoteRef{ID: voteID.String, VoterName: voterName.String, Timestamp: fromMicros(castAt.Int64)}
		}
		folder.Add(team, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read teams: %w", err)
	}

	return folder.Teams(), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	row := r.db.DB.QueryRowContext(ctx, `
		SELECT id, name, description, vision, image, leader, co_leader, created_at, updated_at
		FROM teams
		WHERE id = ?
	`, id)

	team, err := scanTeam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &team, nil
}

func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	_, err := r.db.DB.ExecContext(ctx, `
		INSERT INTO teams (id, name, description, vision, image, leader, co_leader, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		team.ID,
		team.Name,
		team.Description,
		team.Vision,
		nullString(team.Image),
		team.Leader,
		team.CoLeader,
		toMicros(team.CreatedAt),
		toMicros(team.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *TeamRepository) ListTallies(ctx context.Context) ([]domain.TeamTally, error) {
	rows, err := r.db.DB.QueryContext(ctx, `
		SELECT t.id, t.name, t.leader, t.co_leader, COUNT(v.id)
		FROM teams t
		LEFT JOIN votes v ON v.team_id = t.id
		GROUP BY t.id
		ORDER BY t.created_at ASC, t.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get team tallies: %w", err)
	}
	defer rows.Close()

	tallies := []domain.TeamTally{}
	for rows.Next() {
		var tally domain.TeamTally
		if err := rows.Scan(&tally.ID, &tally.Name, &tally.Leader, &tally.CoLeader, &tally.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan team tally: %w", err)
		}
		tallies = append(tallies, tally)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read team tallies: %w", err)
	}
	return tallies, nil
}
