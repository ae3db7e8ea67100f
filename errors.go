package ragchat

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates user input failed validation.
	ErrValidation = errors.New("validation error")

	// ErrUnauthorized indicates missing or expired credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the user lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoRefreshToken indicates a token refresh was needed but no refresh
	// token is stored.
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrNotAdmin indicates an admin-only operation was attempted by a
	// regular user.
	ErrNotAdmin = errors.New("admin role required")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps well-known status codes to sentinel errors so callers can use
// errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	}
	return nil
}
