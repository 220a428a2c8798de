package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means no usable auth token was available, or the
	// backend rejected the one we sent. Not retryable; the only recovery
	// is a fresh login.
	ErrUnauthorized = errors.New("not authenticated")
)

// APIError is a remote rejection: the backend answered, but with a
// non-success status or an explicit failure body. Message carries the
// server-provided text when the body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}
