package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantType   ErrorType
		wantStatus int
	}{
		{"validation", NewValidationError("Missing required fields"), ErrorTypeValidation, http.StatusBadRequest},
		{"conflict", NewConflictError("You have already voted"), ErrorTypeConflict, http.StatusBadRequest},
		{"not found", NewNotFoundError("Team not found"), ErrorTypeNotFound, http.StatusNotFound},
		{"internal", NewInternalError("Failed to cast vote", stderrors.New("db down")), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
		})
	}
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewInternalError("Failed to fetch teams", cause)

	assert.Equal(t, "internal: Failed to fetch teams (connection refused)", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "not_found: Team not found", NewNotFoundError("Team not found").Error())
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewNotFoundError("Team not found"))
	got := As(wrapped, "fallback")
	assert.Equal(t, ErrorTypeNotFound, got.Type)
	assert.Equal(t, "Team not found", got.Message)

	plain := stderrors.New("boom")
	got = As(plain, "Failed to cast vote")
	assert.Equal(t, ErrorTypeInternal, got.Type)
	assert.Equal(t, "Failed to cast vote", got.Message)
	assert.ErrorIs(t, got, plain)
}
