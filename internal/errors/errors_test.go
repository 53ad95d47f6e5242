package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"invalid credential", ErrInvalidCredential, http.StatusForbidden, "INVALID_TOKEN"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"duplicate email", ErrDuplicateEmail, http.StatusConflict, "EMAIL_EXISTS"},
		{"wrapped not found", fmt.Errorf("place abc: %w", ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"invalid login", ErrInvalidLogin, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"invalid input", fmt.Errorf("%w: guests must be positive", ErrInvalidInput), http.StatusBadRequest, "INVALID_INPUT"},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.code, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_StoreFailureHidesDetails(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("dial tcp 10.0.0.3:27017: connection refused"))

	resp := httpErr.ToErrorResponse()
	assert.Equal(t, "internal server error", resp.Error)
	assert.Equal(t, "internal server error", httpErr.Error())
}
