package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/castrovroberto/prophet/internal/config"
	"github.com/castrovroberto/prophet/internal/llm"
	"github.com/castrovroberto/prophet/internal/session"
)

// newSession builds the provider client and a chat session configured from
// cfg. The returned cleanup releases the client.
func newSession(cfg *config.AppConfig, log *slog.Logger) (*session.Session, func(), error) {
	client, cleanup, err := newClient(cfg)
	if err != nil {
		return nil, nil, err
	}

	sess := session.New(client,
		session.WithModel(cfg.LLM.Model),
		session.WithSystemPrompt(cfg.Persona().SystemPrompt),
		session.WithTimeout(cfg.LLM.RequestTimeout),
		session.WithSampling(cfg.LLM.Temperature, cfg.LLM.MaxTokens),
		session.WithStream(cfg.LLM.Stream),
		session.WithRateLimit(cfg.LLM.RequestsPerMinute),
		session.WithLogger(log),
	)
	log.Info("Session created",
		"session_id", sess.ID(),
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model,
		"stream", cfg.LLM.Stream)
	return sess, cleanup, nil
}

func newClient(cfg *config.AppConfig) (llm.Client, func(), error) {
	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s client: %w", cfg.LLM.Provider, err)
	}
	cleanup := func() {}
	if c, ok := client.(io.Closer); ok {
		cleanup = func() { _ = c.Close() }
	}
	return client, cleanup, nil
}
