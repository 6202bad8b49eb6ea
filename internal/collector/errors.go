package collector

import (
	"errors"
	"fmt"
)

// ErrInvalidResponse marks a page body that could not be decoded as the
// API's JSON shape. Fatal to the whole fetch; never retried.
var ErrInvalidResponse = errors.New("invalid JSON response from YouTube API")

// APIError is a failure reported by the API itself on a page request.
// Message carries the payload's error.message when the API gave one,
// otherwise a generic "HTTP <status>" string.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("YouTube API error: %s", e.Message)
}
