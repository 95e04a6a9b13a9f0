package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. The two cases are deliberately indistinguishable so that
	// login responses cannot be used to enumerate registered usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrTaskNotFound covers both a task that does not exist and a task
	// owned by another user. Merging the two prevents existence leakage
	// across tenants.
	ErrTaskNotFound = errors.New("task not found")
)

// ValidationError reports malformed or missing input. It is raised before
// any store access is attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a username collision during registration. Echoing
// the username back is safe: the caller supplied it themselves.
type ConflictError struct {
	Username string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("username %q is already taken", e.Username)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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

// MapErrorToHTTP maps domain errors to HTTP errors. Anything outside the
// taxonomy collapses to an opaque 500: internal detail stays server-side.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	var conflictErr *ConflictError
	switch {
	case errors.As(err, &validationErr):
		return NewHTTPError(http.StatusBadRequest, validationErr.Message, "VALIDATION_ERROR")
	case errors.As(err, &conflictErr):
		return NewHTTPError(http.StatusConflict, conflictErr.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, ErrTaskNotFound.Error(), "TASK_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
