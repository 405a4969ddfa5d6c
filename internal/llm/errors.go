package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrRateLimited is matched by every error that means "too many requests",
// whether it came from the provider or from the local limiter.
var ErrRateLimited = errors.New("llm: rate limited")

// StatusClientClosedRequest reports a request cancelled by the caller.
const StatusClientClosedRequest = 499

// StatusError is a non-success answer from a provider.
type StatusError struct {
	Provider string
	Code     int
	Message  string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: API returned status %d", e.Provider, e.Code)
	}
	return fmt.Sprintf("%s: API error - %s (HTTP %d)", e.Provider, e.Message, e.Code)
}

// Is makes errors.Is(err, ErrRateLimited) hold for HTTP 429.
func (e *StatusError) Is(target error) bool {
	return target == ErrRateLimited && e.Code == http.StatusTooManyRequests
}

// StatusCode maps the outcome of a request to an HTTP-like status.
func StatusCode(err error) int {
	var statusErr *StatusError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.As(err, &statusErr):
		return statusErr.Code
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest
	default:
		return http.StatusBadGateway
	}
}
