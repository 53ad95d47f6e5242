package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized is returned when no session credential was presented.
	ErrUnauthorized = errors.New("unauthorized: no token provided")
	// ErrInvalidCredential is returned when a presented token fails verification.
	ErrInvalidCredential = errors.New("invalid token")
	// ErrForbidden is returned when the caller does not own the resource.
	ErrForbidden = errors.New("not allowed to modify this resource")
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrNotFound is returned when a resource id has no match.
	ErrNotFound = errors.New("not found")
	// ErrInvalidLogin is returned when email or password do not match.
	ErrInvalidLogin = errors.New("invalid email or password")
	// ErrInvalidInput is returned when a request is well formed but semantically wrong.
	ErrInvalidInput = errors.New("invalid input")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognised is a
// store failure and is reported as a generic 500.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthorized.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrInvalidCredential):
		return NewHTTPError(http.StatusForbidden, ErrInvalidCredential.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrDuplicateEmail):
		return NewHTTPError(http.StatusConflict, ErrDuplicateEmail.Error(), "EMAIL_EXISTS")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrInvalidLogin):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidLogin.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
