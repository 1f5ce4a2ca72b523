package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"team-vote/internal/domain"
	"team-vote/internal/repository"
	"team-vote/pkg/database"

	"github.com/jackc/pgx/v5"
)

type TeamRepository struct {
	db *database.PostgresDB
}

func NewTeamRepository(db *database.PostgresDB) *TeamRepository {
	return &TeamRepository{db: db}
}

var _ repository.TeamRepository = (*TeamRepository)(nil)

// ListWithVotes returns all teams with their votes, oldest team first
func (r *TeamRepository) ListWithVotes(ctx context.Context) ([]domain.Team, error) {
	rows, err := r.db.Pool.Query(ctx, `
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
			team      domain.Team
			voteID    *string
			voterName *string
			castAt    *time.Time
		)
		err := rows.Scan(
			&team.ID,
			&team.Name,
			&team.Description,
			&team.Vision,
			&team.Image,
			&team.Leader,
			&team.CoLeader,
			&team.CreatedAt,
			&team.UpdatedAt,
			&voteID,
			&voterName,
			&castAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}

		var ref *domain.VoteRef
		if voteID != nil {
			ref = &domain.VoteRef{ID: *voteID, VoterName: *voterName, Timestamp: *castAt}
		}
		folder.Add(team, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read teams: %w", err)
	}

	return folder.Teams(), nil
}

// GetByID gets a team by ID
func (r *TeamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	var team domain.Team
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, description, vision, image, leader, co_leader, created_at, updated_at
		FROM teams
		WHERE id = $1
	`, id).Scan(
		&team.ID,
		&team.Name,
		&team.Description,
		&team.Vision,
		&team.Image,
		&team.Leader,
		&team.CoLeader,
		&team.CreatedAt,
		&team.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return &team, nil
}

// Create inserts a new team
func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO teams (id, name, description, vision, image, leader, co_leader, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		team.ID,
		team.Name,
		team.Description,
		team.Vision,
		team.Image,
		team.Leader,
		team.CoLeader,
		team.CreatedAt,
		team.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// ListTallies gets all teams with their vote counts
func (r *TeamRepository) ListTallies(ctx context.Context) ([]domain.TeamTally, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT t.id, t.name, t.leader, t.co_leader, COUNT(v.id)
		FROM teams t
		LEFT JOIN votes v ON v.team_id = t.id
		GROUP BY t.id, t.name, t.leader, t.co_leader, t.created_at
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
