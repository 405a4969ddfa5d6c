package chat

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castrovroberto/prophet/internal/animation"
	"github.com/castrovroberto/prophet/internal/config"
	"github.com/castrovroberto/prophet/internal/llm"
	"github.com/castrovroberto/prophet/internal/session"
)

// mockChatService replays queued responses and records prompts.
type mockChatService struct {
	mu        sync.Mutex
	responses []session.Response
	prompts   []string
	messages  []session.Message
}

func (s *mockChatService) ID() string { return "0f8fad5b-d9cb-469f-a165-70867728950e" }

func (s *mockChatService) Send(_ context.Context, prompt string) (session.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	s.messages = append(s.messages, session.Message{Role: llm.RoleUser, Content: prompt, CreatedAt: time.Now()})

	if len(s.responses) == 0 {
		return session.Response{}, session.ErrBusy
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	if resp.Status == http.StatusOK {
		s.messages = append(s.messages, session.Message{Role: llm.RoleAssistant, Content: resp.Text, CreatedAt: time.Now()})
	}
	return resp, nil
}

func (s *mockChatService) Messages() []session.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]session.Message(nil), s.messages...)
}

// manualScheduler keeps frames until the test delivers them.
type manualScheduler struct {
	pending []tea.Msg
}

func (s *manualScheduler) Schedule(_ time.Duration, msg tea.Msg) tea.Cmd {
	s.pending = append(s.pending, msg)
	return nil
}

// drain delivers scheduled frames until none are left.
func (s *manualScheduler) drain(t *testing.T, m *Model) {
	t.Helper()
	for i := 0; len(s.pending) > 0; i++ {
		require.Less(t, i, 10000, "animation did not settle")
		msg := s.pending[0]
		s.pending = s.pending[1:]
		m.Update(msg)
	}
}

// collect runs cmd and returns the messages it produced, skipping spinner
// ticks.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	case spinner.TickMsg, nil:
		return nil
	}
	return []tea.Msg{msg}
}

func responses(msgs []tea.Msg) []responseMsg {
	var out []responseMsg
	for _, msg := range msgs {
		if r, ok := msg.(responseMsg); ok {
			out = append(out, r)
		}
	}
	return out
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		LLM: config.LLMConfig{Provider: config.ProviderOpenAI, Model: "gpt-test"},
	}
}

func newTestModel(t *testing.T, svc *mockChatService) (*Model, *manualScheduler) {
	t.Helper()
	cfg := testConfig()
	sched := &manualScheduler{}
	ctrl := animation.NewController(cfg.AnimationSettings(), animation.NewRand(42))
	m := NewModel(cfg, ctrl, svc,
		WithFrameScheduler(sched),
		WithColorProfile(termenv.Ascii),
	)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, sched
}

func press(m *Model, k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func TestWelcomeCardShownBeforeFirstMessage(t *testing.T) {
	m, _ := newTestModel(t, &mockChatService{})

	view := m.View()
	persona := config.DefaultPersona()
	assert.Contains(t, view, persona.Name)
	assert.Contains(t, view, "0f8fad5b")
	assert.Len(t, m.State().Options, persona.OptionCount)
}

func TestSelectPromptLocksInput(t *testing.T) {
	svc := &mockChatService{responses: []session.Response{{Status: http.StatusOK, Text: "The stars align."}}}
	m, sched := newTestModel(t, svc)
	first := m.State().Options[0]

	cmd := press(m, "1")
	require.NotNil(t, cmd)
	assert.True(t, m.State().InputLocked)
	assert.Equal(t, animation.PhaseAwaitingResponse, m.State().Phase)
	assert.NotEmpty(t, sched.pending, "first carousel frame is scheduled")
	assert.Equal(t, "consulting", m.header.GetStatus())

	t.Run("second_selection_is_ignored", func(t *testing.T) {
		assert.Nil(t, press(m, "2"))
		assert.Nil(t, press(m, "enter"))
		assert.Equal(t, uint64(1), m.State().Cycle)
	})

	resps := responses(collect(cmd))
	require.Len(t, resps, 1)
	assert.Equal(t, []string{first.Label}, svc.prompts)
}

func TestSuccessfulResponseCycle(t *testing.T) {
	svc := &mockChatService{responses: []session.Response{{Status: http.StatusOK, Text: "The stars align."}}}
	m, sched := newTestModel(t, svc)

	cmd := press(m, "1")
	sched.pending = nil // skip the carousel

	for _, r := range responses(collect(cmd)) {
		m.Update(r)
	}

	s := m.State()
	require.True(t, s.Panel.Active)
	assert.Equal(t, "The stars align.", s.Panel.Text)
	assert.Contains(t, m.View(), "The stars align.")
	assert.False(t, m.statusBar.IsLoading())
	assert.Len(t, m.messageList.GetMessages(), 2)

	sched.drain(t, m)

	s = m.State()
	assert.False(t, s.Panel.Active)
	assert.False(t, s.InputLocked)
	assert.True(t, s.ResetAvailable)
	assert.Contains(t, m.View(), "r ↻")
}

func TestRateLimitNotice(t *testing.T) {
	svc := &mockChatService{responses: []session.Response{{
		Status: http.StatusTooManyRequests,
		Err:    llm.ErrRateLimited,
	}}}
	m, sched := newTestModel(t, svc)

	cmd := press(m, "2")
	for _, r := range responses(collect(cmd)) {
		m.Update(r)
	}
	sched.drain(t, m)

	notice := config.DefaultPersona().RateLimitNotice
	assert.Equal(t, notice, m.State().Notice)
	assert.False(t, m.State().InputLocked)
	assert.Contains(t, m.View(), notice)
	assert.Equal(t, "rate limited", m.header.GetStatus())

	assert.Nil(t, press(m, "1"), "selection is blocked while the notice is open")
	assert.Len(t, svc.prompts, 1)

	press(m, "esc")
	assert.Empty(t, m.State().Notice)
	assert.NotContains(t, m.View(), notice)
}

func TestFailureShowsErrorAndUnlocks(t *testing.T) {
	svc := &mockChatService{responses: []session.Response{{
		Status: http.StatusBadGateway,
		Err:    errors.New("openai: request failed: connection refused"),
	}}}
	m, _ := newTestModel(t, svc)

	cmd := press(m, "1")
	for _, r := range responses(collect(cmd)) {
		m.Update(r)
	}

	assert.False(t, m.State().InputLocked)
	assert.Empty(t, m.State().Notice)
	assert.Contains(t, m.statusBar.View(), "connection refused")
}

func TestServiceErrorIsTreatedAsFailure(t *testing.T) {
	m, _ := newTestModel(t, &mockChatService{})

	cmd := press(m, "1")
	for _, r := range responses(collect(cmd)) {
		m.Update(r)
	}

	assert.False(t, m.State().InputLocked)
	assert.Contains(t, m.State().LastError, "already in flight")
}

func TestFocusAndEnterSelectsFocusedOption(t *testing.T) {
	svc := &mockChatService{responses: []session.Response{{Status: http.StatusOK, Text: "ok"}}}
	m, _ := newTestModel(t, svc)
	second := m.State().Options[1]

	press(m, "right")
	cmd := press(m, "enter")
	collect(cmd)

	assert.Equal(t, []string{second.Label}, svc.prompts)
}

func TestResetAfterSettle(t *testing.T) {
	svc := &mockChatService{responses: []session.Response{{Status: http.StatusOK, Text: "ok"}}}
	m, sched := newTestModel(t, svc)

	press(m, "r")
	assert.False(t, m.State().ResetAvailable)

	cmd := press(m, "1")
	for _, r := range responses(collect(cmd)) {
		m.Update(r)
	}
	sched.drain(t, m)
	require.True(t, m.State().ResetAvailable)

	pool := config.DefaultPersona().PromptOptions
	press(m, "r")
	for _, opt := range m.State().Options {
		assert.Contains(t, pool, opt)
	}
	assert.Len(t, m.State().Options, config.DefaultPersona().OptionCount)
}

func TestConfigReload(t *testing.T) {
	m, _ := newTestModel(t, &mockChatService{})

	t.Run("error_is_reported", func(t *testing.T) {
		m.Update(ConfigReloadedMsg{Err: errors.New("bad yaml")})
		assert.Contains(t, m.statusBar.View(), "bad yaml")
		m.statusBar.ClearError()
	})

	t.Run("new_settings_apply", func(t *testing.T) {
		cfg := testConfig()
		cfg.Animation.CarouselLength = 1
		m.Update(ConfigReloadedMsg{Config: cfg})

		assert.Equal(t, 1, m.ctrl.Settings().CarouselLength)
		assert.Contains(t, m.statusBar.View(), "configuration reloaded")
	})
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, &mockChatService{})
	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, strings.Contains(m.View(), "quit"))
}
