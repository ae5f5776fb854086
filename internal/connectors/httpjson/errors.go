package httpjson

import (
	"fmt"
	"net/http"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Is maps 429 to domain.ErrRateLimited and every status to domain.ErrUpstream.
func (e *StatusError) Is(target error) bool {
	switch target {
	case domain.ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case domain.ErrUpstream:
		return true
	default:
		return false
	}
}
