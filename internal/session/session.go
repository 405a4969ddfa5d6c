// Package session keeps the conversation with the model and submits
// requests on behalf of the UI.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/castrovroberto/prophet/internal/llm"
	"github.com/castrovroberto/prophet/internal/logger"
)

var (
	// ErrBusy is returned when a request is already in flight.
	ErrBusy = errors.New("session: a request is already in flight")
	// ErrEmptyInput is returned when submitting blank input.
	ErrEmptyInput = errors.New("session: input is empty")
)

// Message is one entry of the conversation history.
type Message struct {
	ID        string
	Role      string
	Content   string
	CreatedAt time.Time
}

// Response describes a completed request. Status follows HTTP semantics:
// 200 on success, 429 when rate limited, anything else on failure.
type Response struct {
	RequestID string
	Status    int
	Text      string
	Err       error
	Duration  time.Duration
}

// Session holds the conversation history and the pending input. It is safe
// for concurrent use; at most one request is in flight at a time.
type Session struct {
	id     string
	client llm.Client
	log    *slog.Logger

	model        string
	systemPrompt string
	temperature  float64
	maxTokens    int
	timeout      time.Duration
	stream       bool
	perMinute    int
	limiter      *rate.Limiter
	onResponse   func(Response)

	mu       sync.Mutex
	messages []Message
	input    string
	loading  bool
}

// New creates a session that talks to client.
func New(client llm.Client, opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		client: client,
		log:    logger.Get(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("session_id", s.id)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Messages returns a copy of the conversation history in order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Input returns the pending input.
func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// SetInput replaces the pending input.
func (s *Session) SetInput(input string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = input
}

// IsLoading reports whether a request is in flight.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Send sets the input to prompt and submits it.
func (s *Session) Send(ctx context.Context, prompt string) (Response, error) {
	s.SetInput(prompt)
	return s.Submit(ctx)
}

// Submit sends the pending input together with the history and blocks until
// the request completes. ErrBusy and ErrEmptyInput are returned without
// contacting the model; every other outcome is reported through the
// Response and the OnResponse callback.
func (s *Session) Submit(ctx context.Context) (Response, error) {
	req, requestID, err := s.begin()
	if err != nil {
		return Response{}, err
	}

	start := time.Now()
	var text string
	if s.limiter != nil && !s.limiter.Allow() {
		err = fmt.Errorf("%w: more than %d requests per minute", llm.ErrRateLimited, s.perMinute)
	} else {
		text, err = s.call(ctx, req)
	}

	resp := Response{
		RequestID: requestID,
		Status:    llm.StatusCode(err),
		Text:      text,
		Err:       err,
		Duration:  time.Since(start),
	}
	s.finish(resp)

	if resp.Status == http.StatusOK {
		s.log.Info("Request completed", "request_id", requestID, "duration", resp.Duration, "chars", len(text))
	} else {
		s.log.Warn("Request failed", "request_id", requestID, "status", resp.Status, "error", err)
	}
	if s.onResponse != nil {
		s.onResponse(resp)
	}
	return resp, nil
}

// begin records the user message and marks the session busy.
func (s *Session) begin() (llm.Request, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return llm.Request{}, "", ErrBusy
	}
	prompt := strings.TrimSpace(s.input)
	if prompt == "" {
		return llm.Request{}, "", ErrEmptyInput
	}

	msg := Message{
		ID:        uuid.NewString(),
		Role:      llm.RoleUser,
		Content:   prompt,
		CreatedAt: time.Now(),
	}
	s.messages = append(s.messages, msg)
	s.input = ""
	s.loading = true

	history := make([]llm.Message, len(s.messages))
	for i, m := range s.messages {
		history[i] = llm.Message{Role: m.Role, Content: m.Content}
	}
	req := llm.Request{
		Model:       s.model,
		System:      s.systemPrompt,
		Messages:    history,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}
	return req, msg.ID, nil
}

func (s *Session) finish(resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	if resp.Status != http.StatusOK {
		return
	}
	s.messages = append(s.messages, Message{
		ID:        uuid.NewString(),
		Role:      llm.RoleAssistant,
		Content:   resp.Text,
		CreatedAt: time.Now(),
	})
}

func (s *Session) call(ctx context.Context, req llm.Request) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.log.Debug("Submitting request", "model", req.Model, "messages", len(req.Messages), "stream", s.stream)

	var (
		text string
		err  error
	)
	if s.stream {
		text, err = s.collectStream(ctx, req)
	} else {
		text, err = s.client.Generate(ctx, req)
	}

	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("request timed out after %s: %w", s.timeout, context.DeadlineExceeded)
	}
	return text, err
}

// collectStream joins the streamed chunks into the full answer.
func (s *Session) collectStream(ctx context.Context, req llm.Request) (string, error) {
	chunks := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.client.Stream(ctx, req, chunks)
	}()

	var sb strings.Builder
	for chunk := range chunks {
		sb.WriteString(chunk)
	}
	if err := <-errCh; err != nil {
		return "", err
	}
	return sb.String(), nil
}
