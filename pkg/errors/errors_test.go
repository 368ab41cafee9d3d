package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"bad request", BadRequest("Missing required fields", nil), http.StatusBadRequest},
		{"unauthorized", Unauthorized("Invalid credentials"), http.StatusUnauthorized},
		{"forbidden", Forbidden("Forbidden - Insufficient permissions"), http.StatusForbidden},
		{"not found", NotFound("Appointment", nil), http.StatusNotFound},
		{"conflict", Conflict("User already exists", nil), http.StatusConflict},
		{"internal", Internal(fmt.Errorf("boom")), http.StatusInternalServerError},
		{"too many requests", TooManyRequests(), http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("failed to get appointment: %w", NotFound("Appointment", nil))

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "Appointment not found", appErr.Message)
	assert.True(t, Is(wrapped, ErrNotFound))
	assert.False(t, Is(wrapped, ErrConflict))
	assert.False(t, Is(fmt.Errorf("plain"), ErrNotFound))
}

func TestErrorIncludesCause(t *testing.T) {
	err := Internal(fmt.Errorf("connection refused"))
	assert.Equal(t, "Internal server error: connection refused", err.Error())
	assert.EqualError(t, err.Unwrap(), "connection refused")
}
