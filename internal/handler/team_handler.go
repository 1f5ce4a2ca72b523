package handler

import (
	"net/http"

	"team-vote/internal/domain"
	"team-vote/internal/service"
	"team-vote/pkg/logger"
)

type TeamHandler struct {
	teams  service.TeamService
	logger *logger.Logger
}

func NewTeamHandler(teams service.TeamService, log *logger.Logger) *TeamHandler {
	return &TeamHandler{teams: teams, logger: log}
}

// List handles GET /api/teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.ListTeams(r.Context())
	if err != nil {
		respondAppError(w, r, h.logger, err, "Failed to fetch teams")
		return
	}
	respondJSON(w, http.StatusOK, teams)
}

// Create handles POST /api/teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	team, err := h.teams.CreateTeam(r.Context(), &req)
	if err != nil {
		respondAppError(w, r, h.logger, err, "Failed to create team")
		return
	}
	respondJSON(w, http.StatusCreated, team)
}
