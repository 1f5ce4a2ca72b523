package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	// ErrDuplicateVoter is returned by the store when a vote for an already
	// recorded voter identity is inserted.
	ErrDuplicateVoter = errors.New("voter has already voted")

	// ErrTeamNotFound is returned by the store when a vote references a
	// team that does not exist.
	ErrTeamNotFound = errors.New("team not found")
)

// Vote is a single recorded choice of one voter for one team
type Vote struct {
	ID        string    `json:"id"`
	VoterName string    `json:"voterName"`
	VoterKey  string    `json:"-"`
	TeamID    string    `json:"teamId"`
	Timestamp time.Time `json:"timestamp"`
}

// VoteRef is a vote as nested under its team
type VoteRef struct {
	ID        string    `json:"id"`
	VoterName string    `json:"voterName"`
	Timestamp time.Time `json:"timestamp"`
}

// VoteWithTeam is a vote joined with its team's public fields
type VoteWithTeam struct {
	ID        string      `json:"id"`
	VoterName string      `json:"voterName"`
	TeamID    string      `json:"teamId"`
	Timestamp time.Time   `json:"timestamp"`
	Team      TeamSummary `json:"team"`
}

// CastVoteRequest is the body of POST /api/votes
type CastVoteRequest struct {
	VoterName string `json:"voterName"`
	TeamID    string `json:"teamId"`
}

// VoteReceipt is the vote echoed back to the voter
type VoteReceipt struct {
	ID        string      `json:"id"`
	VoterName string      `json:"voterName"`
	Team      TeamSummary `json:"team"`
	Timestamp time.Time   `json:"timestamp"`
}

// CastVoteResponse is returned after a successful vote
type CastVoteResponse struct {
	Message string      `json:"message"`
	Vote    VoteReceipt `json:"vote"`
}

// TeamVoteCount mirrors a group-by row: {"teamId": "...", "_count": {"teamId": n}}
type TeamVoteCount struct {
	TeamID string     `json:"teamId"`
	Count  GroupCount `json:"_count"`
}

// GroupCount is the _count object of a TeamVoteCount
type GroupCount struct {
	TeamID int `json:"teamId"`
}

// NewTeamVoteCounts turns per-team totals into group-by rows ordered by
// team id. Teams without votes have no row.
func NewTeamVoteCounts(perTeam map[string]int) []TeamVoteCount {
	counts := make([]TeamVoteCount, 0, len(perTeam))
	for teamID, n := range perTeam {
		if n > 0 {
			counts = append(counts, TeamVoteCount{TeamID: teamID, Count: GroupCount{TeamID: n}})
		}
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].TeamID < counts[j].TeamID })
	return counts
}

// VoteSummary is returned by GET /api/votes
type VoteSummary struct {
	Votes       []VoteWithTeam  `json:"votes"`
	TotalVotes  int             `json:"totalVotes"`
	VotesByTeam []TeamVoteCount `json:"votesByTeam"`
}

// AdminStats is returned by GET /api/admin/stats
type AdminStats struct {
	TotalVotes int             `json:"totalVotes"`
	Teams      []TeamWithCount `json:"teams"`
	Stats      []TeamVoteCount `json:"stats"`
}

// NormalizeVoterName returns the identity used for duplicate detection:
// surrounding whitespace removed, lower-cased.
func NormalizeVoterName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
