package handler

import (
	"net/http"

	"team-vote/internal/domain"
	"team-vote/internal/service"
	"team-vote/pkg/logger"
)

type VotingHandler struct {
	voting service.VotingService
	logger *logger.Logger
}

func NewVotingHandler(voting service.VotingService, log *logger.Logger) *VotingHandler {
	return &VotingHandler{voting: voting, logger: log}
}

// CastVote handles POST /api/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req domain.CastVoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.voting.CastVote(r.Context(), &req)
	if err != nil {
		respondAppError(w, r, h.logger, err, "Failed to cast vote")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// ListVotes handles GET /api/votes
func (h *VotingHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	summary, err := h.voting.ListVotes(r.Context())
	if err != nil {
		respondAppError(w, r, h.logger, err, "Failed to fetch votes")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// AdminStats handles GET /api/admin/stats
func (h *VotingHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.voting.AdminStats(r.Context())
	if err != nil {
		respondAppError(w, r, h.logger, err, "Failed to fetch admin statistics")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
