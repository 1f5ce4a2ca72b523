package domain

import "time"

// Team is a voting option: a leader and co-leader pair
type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Vision      string    `json:"vision"`
	Image       *string   `json:"image"`
	Leader      string    `json:"leader"`
	CoLeader    string    `json:"coLeader"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Votes       []VoteRef `json:"votes"`
}

// CreateTeamRequest is the body of POST /api/teams
type CreateTeamRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Vision      string  `json:"vision"`
	Leader      string  `json:"leader"`
	CoLeader    string  `json:"coLeader"`
	Image       *string `json:"image,omitempty"`
}

// TeamSummary is the public subset of a team embedded in vote payloads
type TeamSummary struct {
	Name     string `json:"name"`
	Leader   string `json:"leader"`
	CoLeader string `json:"coLeader"`
}

// TeamTally is one entry of the live results stream
type TeamTally struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	VoteCount int    `json:"voteCount"`
	Leader    string `json:"leader"`
	CoLeader  string `json:"coLeader"`
}

// TeamWithCount is a team plus its vote count, used by the admin view
type TeamWithCount struct {
	Team
	VoteCount int `json:"voteCount"`
}

// Summary returns the public fields of the team
func (t *Team) Summary() TeamSummary {
	return TeamSummary{Name: t.Name, Leader: t.Leader, CoLeader: t.CoLeader}
}
