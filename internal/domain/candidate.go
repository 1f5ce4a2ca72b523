package domain

import "time"

// Candidate is a standalone entity whose team is a free-text label.
// Votes never reference candidates, so Votes is always empty.
type Candidate struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Team        string    `json:"team"`
	Description string    `json:"description"`
	Vision      string    `json:"vision"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	Votes       []VoteRef `json:"votes"`
}

// CreateCandidateRequest is the body of POST /api/candidates
type CreateCandidateRequest struct {
	Name        string  `json:"name"`
	Team        string  `json:"team"`
	Description string  `json:"description"`
	Vision      string  `json:"vision"`
	Image       *string `json:"image,omitempty"`
}
