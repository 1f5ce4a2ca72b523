package handler

import (
	"net/http"

	"team-vote/internal/domain"
	"team-vote/internal/service"
	"team-vote/pkg/logger"
)

type CandidateHandler struct {
	candidates service.CandidateService
	logger     *logger.Logger
}

func NewCandidateHandler(candidates service.CandidateService, log *logger.Logger) *CandidateHandler {
	return &CandidateHandler{candidates: candidates, logger: log}
}

// List handles GET /api/candidates
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.candidates.ListCandidates(r.Context())
	if err != nil {
		respondAppError(w, r, h.logger, err, "Failed to fetch candidates")
		return
	}
	respondJSON(w, http.StatusOK, candidates)
}

// Create handles POST /api/candidates
func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCandidateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	candidate, err := h.candidates.CreateCandidate(r.Context(), &req)
	if err != nil {
		respondAppError(w, r, h.logger, err, "Failed to create candidate")
		return
	}
	respondJSON(w, http.StatusCreated, candidate)
}
