package handler

import (
	"encoding/json"
	"net/http"

	"team-vote/internal/middleware"
	apperrors "team-vote/pkg/errors"
	"team-vote/pkg/logger"

	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, errType apperrors.ErrorType, message string) {
	respondJSON(w, status, apperrors.ErrorResponse{
		Error: message,
		Type:  errType,
	})
}

// respondAppError writes err as a JSON error body. Errors that are not
// *AppError are reported as internal errors with fallback as the message.
func respondAppError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error, fallback string) {
	appErr := apperrors.As(err, fallback)

	if appErr.Type == apperrors.ErrorTypeInternal {
		log.Error(appErr.Message,
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(appErr.Internal))
	}

	respondError(w, appErr.StatusCode, appErr.Type, appErr.Message)
}

// decodeJSON decodes the request body into v, answering 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, apperrors.ErrorTypeValidation, "Invalid request body")
		return false
	}
	return true
}

// NotFound answers unknown routes with a JSON body
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, apperrors.ErrorTypeNotFound, "Not found")
}

// MethodNotAllowed answers known routes hit with the wrong method
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, apperrors.ErrorTypeValidation, "Method not allowed")
}
