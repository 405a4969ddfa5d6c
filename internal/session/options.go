package session

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Option configures a Session.
type Option func(*Session)

// WithModel sets the model name sent with every request.
func WithModel(model string) Option {
	return func(s *Session) {
		s.model = model
	}
}

// WithSystemPrompt sets the system prompt sent ahead of the history.
func WithSystemPrompt(prompt string) Option {
	return func(s *Session) {
		s.systemPrompt = prompt
	}
}

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.timeout = d
	}
}

// WithSampling sets the temperature and token limit of each request.
func WithSampling(temperature float64, maxTokens int) Option {
	return func(s *Session) {
		s.temperature = temperature
		s.maxTokens = maxTokens
	}
}

// WithStream selects streaming requests.
func WithStream(stream bool) Option {
	return func(s *Session) {
		s.stream = stream
	}
}

// WithRateLimit allows at most perMinute requests per minute. Requests over
// the limit complete immediately with status 429. Zero disables the limit.
func WithRateLimit(perMinute int) Option {
	return func(s *Session) {
		if perMinute <= 0 {
			s.limiter = nil
			s.perMinute = 0
			return
		}
		s.perMinute = perMinute
		s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	}
}

// WithOnResponse registers a callback invoked once per completed request.
func WithOnResponse(fn func(Response)) Option {
	return func(s *Session) {
		s.onResponse = fn
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}
