package chat

import (
	"context"
	"log/slog"

	"github.com/muesli/termenv"
)

// ChatModelOption is a functional option for configuring the chat Model
type ChatModelOption func(*Model)

// WithTheme sets the theme for the chat model
func WithTheme(theme *Theme) ChatModelOption {
	return func(m *Model) {
		m.theme = theme
	}
}

// WithFrameScheduler sets how animation frames are delivered
func WithFrameScheduler(scheduler FrameScheduler) ChatModelOption {
	return func(m *Model) {
		m.scheduler = scheduler
	}
}

// WithParentContext sets the context requests run under
func WithParentContext(ctx context.Context) ChatModelOption {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// WithColorProfile overrides the detected terminal colour profile
func WithColorProfile(profile termenv.Profile) ChatModelOption {
	return func(m *Model) {
		m.profile = profile
	}
}

// WithLogger sets the logger for the chat model
func WithLogger(log *slog.Logger) ChatModelOption {
	return func(m *Model) {
		m.log = log
	}
}
