package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/castrovroberto/prophet/internal/animation"
	"github.com/castrovroberto/prophet/internal/config"
	"github.com/castrovroberto/prophet/internal/session"
)

// ChatService abstracts the conversation the screen submits prompts to.
// *session.Session implements it.
type ChatService interface {
	ID() string
	Send(ctx context.Context, prompt string) (session.Response, error)
	Messages() []session.Message
}

// FrameScheduler delivers msg after a delay. Tests inject one that hands
// frames over without waiting.
type FrameScheduler interface {
	Schedule(after time.Duration, msg tea.Msg) tea.Cmd
}

// RealFrameScheduler schedules frames with tea.Tick.
type RealFrameScheduler struct{}

// Schedule implements FrameScheduler.
func (RealFrameScheduler) Schedule(after time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return msg
	})
}

type (
	// frameMsg carries one animation frame back into Update.
	frameMsg struct {
		frame animation.Frame
	}

	// responseMsg is the completion of the request submitted for cycle.
	responseMsg struct {
		cycle uint64
		resp  session.Response
		err   error
	}
)

// ConfigReloadedMsg is sent by the host when the configuration file changed.
type ConfigReloadedMsg struct {
	Config *config.AppConfig
	Err    error
}
