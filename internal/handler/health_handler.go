package handler

import (
	"context"
	"net/http"
	"time"

	"team-vote/internal/service"
	"team-vote/pkg/database"
	"team-vote/pkg/logger"
)

// Pinger is anything whose connection can be checked
type Pinger interface {
	Health(ctx context.Context) error
}

type poolReporter interface {
	Stats() database.PoolStats
}

// HealthHandler handles health check requests
type HealthHandler struct {
	db     Pinger
	cache  *service.CacheService
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger, cache *service.CacheService, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, logger: log}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string              `json:"status"`
	Timestamp time.Time           `json:"timestamp"`
	Version   string              `json:"version"`
	Service   string              `json:"service"`
	Checks    map[string]string   `json:"checks"`
	Pool      *database.PoolStats `json:"pool,omitempty"`
}

// Check handles GET /health. A database failure answers 503; a Redis
// failure only marks the service degraded.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
		Service:   "team-vote",
		Checks:    map[string]string{"database": "ok", "redis": "disabled"},
	}
	status := http.StatusOK

	if err := h.db.Health(ctx); err != nil {
		h.logger.WithError(err).Error("Database health check failed")
		response.Status = "degraded"
		response.Checks["database"] = "error"
		status = http.StatusServiceUnavailable
	} else if pr, ok := h.db.(poolReporter); ok {
		stats := pr.Stats()
		response.Pool = &stats
	}

	if h.cache.Enabled() {
		if err := h.cache.HealthCheck(ctx); err != nil {
			response.Status = "degraded"
			response.Checks["redis"] = "error"
		} else {
			response.Checks["redis"] = "ok"
		}
	}

	respondJSON(w, status, response)
}
