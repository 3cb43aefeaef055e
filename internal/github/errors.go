package github

import (
	"errors"
	"fmt"
)

// Failure classes callers branch on with errors.Is. ErrUnauthorized
// covers both missing/insufficient credentials and the anonymous
// rate-limit responses GitHub reports as 403.
var (
	ErrUnauthorized = errors.New("github: unauthorized or rate limited")
	ErrNotFound     = errors.New("github: not found")
)

// APIError is a non-2xx response from the GitHub API, carrying enough
// detail to render an actionable message.
type APIError struct {
	StatusCode int
	Status     string
	// Message is GitHub's own error message, when the response body had
	// one.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("github: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("github: %s", e.Status)
}

// Is maps authorization and not-found statuses onto the sentinel errors
// so callers can classify without inspecting status codes.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == 401 || e.StatusCode == 403
	case ErrNotFound:
		return e.StatusCode == 404
	}
	return false
}
