package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: http.StatusOK},
		{name: "provider_429", err: &StatusError{Provider: "openai", Code: http.StatusTooManyRequests}, want: http.StatusTooManyRequests},
		{name: "wrapped_429", err: fmt.Errorf("submit: %w", &StatusError{Code: http.StatusTooManyRequests}), want: http.StatusTooManyRequests},
		{name: "local_limiter", err: fmt.Errorf("%w: local limit", ErrRateLimited), want: http.StatusTooManyRequests},
		{name: "provider_500", err: &StatusError{Code: http.StatusInternalServerError}, want: http.StatusInternalServerError},
		{name: "deadline", err: fmt.Errorf("openai: request failed: %w", context.DeadlineExceeded), want: http.StatusGatewayTimeout},
		{name: "canceled", err: context.Canceled, want: StatusClientClosedRequest},
		{name: "transport", err: errors.New("connection refused"), want: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestStatusErrorIsRateLimited(t *testing.T) {
	assert.ErrorIs(t, &StatusError{Code: http.StatusTooManyRequests}, ErrRateLimited)
	assert.NotErrorIs(t, &StatusError{Code: http.StatusBadRequest}, ErrRateLimited)
}

func TestWrapGeminiError(t *testing.T) {
	t.Run("grpc_resource_exhausted", func(t *testing.T) {
		err := wrapGeminiError(status.Error(codes.ResourceExhausted, "quota exceeded"))
		assert.ErrorIs(t, err, ErrRateLimited)
		assert.Equal(t, http.StatusTooManyRequests, StatusCode(err))
	})

	t.Run("rest_error", func(t *testing.T) {
		err := wrapGeminiError(&googleapi.Error{Code: http.StatusTooManyRequests, Message: "slow down"})
		assert.Equal(t, http.StatusTooManyRequests, StatusCode(err))
		assert.Contains(t, err.Error(), "slow down")
	})

	t.Run("deadline", func(t *testing.T) {
		err := wrapGeminiError(context.DeadlineExceeded)
		assert.Equal(t, http.StatusGatewayTimeout, StatusCode(err))
	})

	t.Run("unknown", func(t *testing.T) {
		err := wrapGeminiError(errors.New("boom"))
		assert.Equal(t, http.StatusBadGateway, StatusCode(err))
	})
}
