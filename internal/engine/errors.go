package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownEngine is returned by Open for an unregistered name.
	ErrUnknownEngine = errors.New("unknown engine")
	// ErrNotConfigured is returned when an engine has no API key.
	ErrNotConfigured = errors.New("engine not configured")
	// ErrEmptyResponse is returned when a backend answers without any text.
	ErrEmptyResponse = errors.New("empty response from engine")
)

// APIError is a non-2xx HTTP response from a translation backend.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, body)
}

// IsRateLimit reports whether the error looks like a quota or rate-limit
// rejection that key rotation or backoff can recover from.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == 429 || apiErr.Status == 529
	}

	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// IsRetryable reports whether an engine call is worth retrying: rate
// limits and server-side failures, but not bad requests or auth errors.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == 429 || apiErr.Status == 529 || apiErr.Status >= 500
	}

	return IsRateLimit(err)
}
