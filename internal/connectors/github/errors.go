package github

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotAFile indicates a contents-by-path request resolved to a
// directory rather than a file.
var ErrNotAFile = errors.New("github: path is a directory, not a file")

// maxBodyExcerpt bounds the upstream message carried in an APIError so
// error payloads stay small.
const maxBodyExcerpt = 200

// APIError represents a non-success GitHub API response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// excerpt truncates an upstream message to maxBodyExcerpt bytes.
func excerpt(s string) string {
	if len(s) > maxBodyExcerpt {
		return s[:maxBodyExcerpt] + "..."
	}
	return s
}
