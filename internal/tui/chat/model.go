package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/castrovroberto/prophet/internal/animation"
	"github.com/castrovroberto/prophet/internal/config"
	"github.com/castrovroberto/prophet/internal/logger"
)

// Model is the chat screen. It owns the animation state and feeds the
// controller with key presses, frames and request completions.
type Model struct {
	ctx       context.Context
	cfg       *config.AppConfig
	ctrl      *animation.Controller
	state     animation.State
	service   ChatService
	scheduler FrameScheduler
	theme     *Theme
	profile   termenv.Profile
	keys      keyMap
	log       *slog.Logger

	header      *HeaderModel
	messageList *MessageListModel
	stage       *StageModel
	prompts     *PromptBarModel
	statusBar   *StatusBarModel

	width  int
	height int
	ready  bool
}

// NewModel creates the chat screen for service, animated by ctrl.
func NewModel(cfg *config.AppConfig, ctrl *animation.Controller, service ChatService, opts ...ChatModelOption) *Model {
	m := &Model{
		ctx:       context.Background(),
		cfg:       cfg,
		ctrl:      ctrl,
		service:   service,
		scheduler: RealFrameScheduler{},
		theme:     NewDefaultTheme(),
		profile:   lipgloss.ColorProfile(),
		keys:      newKeyMap(),
		log:       logger.Get(),
	}
	for _, opt := range opts {
		opt(m)
	}

	persona := cfg.Persona()
	m.header = NewHeaderModel(m.theme, persona.Name, cfg.LLM.Provider, cfg.LLM.Model, service.ID())
	m.messageList = NewMessageListModel(m.theme, welcomeCard(persona), 80, m.theme.MinViewportHeight)
	m.stage = NewStageModel(m.theme, NewFader(m.profile, m.theme.Colors.Background))
	m.prompts = NewPromptBarModel(m.theme)
	m.statusBar = NewStatusBarModel(m.theme, m.keys)

	m.setState(ctrl.Init())
	m.messageList.SetMessages(service.Messages())
	return m
}

func welcomeCard(p *config.Persona) WelcomeCard {
	return WelcomeCard{Name: p.Name, Text: p.Welcome, Image: p.WelcomeImage}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.cfg.Persona().Name)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.messageList, cmd = m.messageList.Update(msg)
		return m, cmd

	case frameMsg:
		s, effects := m.ctrl.Advance(m.state, msg.frame)
		return m, m.apply(s, effects)

	case responseMsg:
		return m, m.handleResponse(msg)

	case ConfigReloadedMsg:
		m.handleReload(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.statusBar, cmd = m.statusBar.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}

	if m.state.Notice != "" {
		if key.Matches(msg, m.keys.Dismiss) {
			m.setState(m.ctrl.DismissNotice(m.state))
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.messageList, cmd = m.messageList.Update(msg)
		return cmd

	case key.Matches(msg, m.keys.Choose):
		idx := int(msg.String()[0] - '1')
		if opt, ok := m.prompts.At(idx); ok {
			return m.selectPrompt(opt)
		}

	case key.Matches(msg, m.keys.Send):
		if opt, ok := m.prompts.Focused(); ok {
			return m.selectPrompt(opt)
		}

	case key.Matches(msg, m.keys.Next):
		m.prompts.Next()

	case key.Matches(msg, m.keys.Prev):
		m.prompts.Prev()

	case key.Matches(msg, m.keys.Reset):
		s, effects := m.ctrl.Reset(m.state)
		return m.apply(s, effects)
	}
	return nil
}

func (m *Model) selectPrompt(opt animation.PromptOption) tea.Cmd {
	if !m.ctrl.CanSelect(m.state) {
		m.log.Debug("Prompt selection ignored", "phase", m.state.Phase, "locked", m.state.InputLocked)
		return nil
	}

	s, effects := m.ctrl.SelectPrompt(m.state, opt)
	m.log.Info("Prompt selected", "cycle", s.Cycle, "prompt", opt.Label, "side", s.NextSide)

	m.statusBar.ClearError()
	m.statusBar.SetInfo("")
	m.statusBar.SetLoading(true)
	return tea.Batch(m.apply(s, effects), m.statusBar.GetSpinnerTickCmd())
}

func (m *Model) handleResponse(msg responseMsg) tea.Cmd {
	result := animation.Result{
		Cycle:  msg.cycle,
		Status: msg.resp.Status,
		Text:   msg.resp.Text,
		Err:    msg.resp.Err,
	}
	if msg.err != nil {
		result.Status = http.StatusInternalServerError
		result.Err = msg.err
	}

	m.statusBar.SetLoading(false)
	s, effects := m.ctrl.Resolve(m.state, result)
	if s.LastError != "" && s.LastError != m.state.LastError {
		m.log.Error("Request failed", "cycle", result.Cycle, "status", result.Status, "error", s.LastError)
		m.statusBar.SetError(errors.New(s.LastError))
	}
	m.messageList.SetMessages(m.service.Messages())
	return m.apply(s, effects)
}

func (m *Model) handleReload(msg ConfigReloadedMsg) {
	if msg.Err != nil {
		m.log.Warn("Configuration reload failed", "error", msg.Err)
		m.statusBar.SetError(fmt.Errorf("config reload: %w", msg.Err))
		return
	}

	m.cfg = msg.Config
	m.ctrl = m.ctrl.WithSettings(msg.Config.AnimationSettings())
	persona := msg.Config.Persona()
	m.header.SetPersona(persona.Name)
	m.messageList.SetWelcome(welcomeCard(persona))
	m.statusBar.SetInfo("configuration reloaded")
	m.log.Info("Configuration reloaded", "persona", persona.Name)
}

// apply stores s and turns the controller effects into commands.
func (m *Model) apply(s animation.State, effects []animation.Effect) tea.Cmd {
	m.setState(s)

	var cmds []tea.Cmd
	for _, e := range effects {
		switch e := e.(type) {
		case animation.Schedule:
			cmds = append(cmds, m.scheduler.Schedule(e.After, frameMsg{frame: e.Frame}))
		case animation.Submit:
			cmds = append(cmds, m.submit(e))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) submit(e animation.Submit) tea.Cmd {
	ctx, svc := m.ctx, m.service
	return func() tea.Msg {
		resp, err := svc.Send(ctx, e.Prompt)
		return responseMsg{cycle: e.Cycle, resp: resp, err: err}
	}
}

func (m *Model) setState(s animation.State) {
	m.state = s
	m.prompts.SetOptions(s.Options)
	m.header.SetStatus(phaseStatus(s))

	var keys help.KeyMap = m.keys
	if s.Notice != "" {
		keys = noticeHelp{keys: m.keys}
	}
	m.statusBar.SetKeys(keys)
}

func phaseStatus(s animation.State) string {
	switch {
	case s.Notice != "":
		return "rate limited"
	case s.Phase == animation.PhaseAwaitingResponse:
		return "consulting"
	case s.Phase == animation.PhaseResponseVisible:
		return "speaking"
	default:
		return "ready"
	}
}

func (m *Model) resize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.header, _ = m.header.Update(msg)
	m.statusBar, _ = m.statusBar.Update(msg)
	m.prompts.SetWidth(msg.Width)
	m.stage.SetSize(msg.Width, m.theme.StageHeight)
	m.messageList.SetSize(msg.Width, m.theme.ViewportHeight(msg.Height))
	m.ready = true
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	disabled := !m.ctrl.CanSelect(m.state)
	showReset := m.state.ResetAvailable && !disabled

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.messageList.View(),
		m.stage.View(m.state),
		lipgloss.NewStyle().Height(m.theme.PromptBarHeight).Render(m.prompts.View(disabled, showReset)),
		m.statusBar.View(),
	)
}

// State returns the current animation state.
func (m *Model) State() animation.State { return m.state }
