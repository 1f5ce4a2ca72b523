package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"team-vote/internal/middleware"
	"team-vote/internal/service"
	apperrors "team-vote/pkg/errors"
	"team-vote/pkg/logger"

	"go.uber.org/zap"
)

// LiveResultsHandler streams team tallies as server-sent events
type LiveResultsHandler struct {
	tallies service.TallyBroadcaster
	logger  *logger.Logger
}

func NewLiveResultsHandler(tallies service.TallyBroadcaster, log *logger.Logger) *LiveResultsHandler {
	return &LiveResultsHandler{tallies: tallies, logger: log}
}

// Stream handles GET /api/live-results. Each tally is written as
// "data: <json>\n\n". The stream ends when the client goes away, the hub
// stops, or a write fails.
func (h *LiveResultsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.logger.WithField("request_id", middleware.GetRequestID(ctx))

	sub, err := h.tallies.Subscribe(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to open live results stream")
		respondError(w, http.StatusInternalServerError, apperrors.ErrorTypeInternal, "Failed to fetch live results")
		return
	}
	defer sub.Close()

	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	log.Debug("Live results stream opened")
	defer log.Debug("Live results stream closed")

	for {
		select {
		case <-ctx.Done():
			return
		case tally, ok := <-sub.C:
			if !ok {
				return
			}

			data, err := json.Marshal(tally)
			if err != nil {
				log.WithError(err).Error("Failed to encode live tally")
				return
			}

			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				log.Debug("Live results write failed", zap.Error(err))
				return
			}
			if err := rc.Flush(); err != nil {
				log.Debug("Live results flush failed", zap.Error(err))
				return
			}
		}
	}
}
