package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"team-vote/internal/domain"
	"team-vote/internal/repository"
	"team-vote/pkg/database"
)

type CandidateRepository struct {
	db *database.SQLiteDB
}

func NewCandidateRepository(db *database.SQLiteDB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

var _ repository.CandidateRepository = (*CandidateRepository)(nil)

func (r *CandidateRepository) List(ctx context.Context) ([]domain.Candidate, error) {
	rows, err := r.db.DB.QueryContext(ctx, `
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
		var (
			c         = domain.Candidate{Votes: []domain.VoteRef{}}
			image     sql.NullString
			createdAt int64
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Team, &c.Description, &c.Vision, &image, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		c.Image = stringPtr(image)
		c.CreatedAt = fromMicros(createdAt)
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	return candidates, nil
}

func (r *CandidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	_, err := r.db.DB.ExecContext(ctx, `
		INSERT INTO candidates (id, name, team, description, vision, image, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Team, c.Description, c.Vision, nullString(c.Image), toMicros(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}
