package postgres

import (
	"context"
	"fmt"

	"team-vote/internal/domain"
	"team-vote/internal/repository"
	"team-vote/pkg/database"
)

type CandidateRepository struct {
	db *database.PostgresDB
}

func NewCandidateRepository(db *database.PostgresDB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

var _ repository.CandidateRepository = (*CandidateRepository)(nil)

func (r *CandidateRepository) List(ctx context.Context) ([]domain.Candidate, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, team, description, vision, image, created_at
		FROM candidates
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []domain.Candidate{}
	for rows.Next() {
		c := domain.Candidate{Votes: []domain.VoteRef{}}
		err := rows.Scan(&c.ID, &c.Name, &c.Team, &c.Description, &c.Vision, &c.Image, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}

	return candidates, nil
}

func (r *CandidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO candidates (id, name, team, description, vision, image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, c.Name, c.Team, c.Description, c.Vision, c.Image, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}
