package contextkeys

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/castrovroberto/prophet/internal/config"
	"github.com/castrovroberto/prophet/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestConfigFromContext(t *testing.T) {
	cfg := &config.AppConfig{LogLevel: "debug"}
	ctx := WithConfig(context.Background(), cfg)
	assert.Same(t, cfg, ConfigFromContext(ctx))

	assert.Panics(t, func() { ConfigFromContext(context.Background()) })
}

func TestLoggerFromContext(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Same(t, log, LoggerFromContext(WithLogger(context.Background(), log)))
	assert.Same(t, logger.Get(), LoggerFromContext(context.Background()))
}
