package chat

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// StatusBarModel shows the request progress, the last error and key hints.
type StatusBarModel struct {
	theme             *Theme
	spinner           spinner.Model
	help              help.Model
	keys              help.KeyMap
	loading           bool
	err               error
	info              string
	thinkingStartTime time.Time
	width             int
}

// NewStatusBarModel creates a new status bar model
func NewStatusBarModel(theme *Theme, keys help.KeyMap) *StatusBarModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Sender

	h := help.New()
	h.Styles.ShortKey = theme.Help.Bold(true)
	h.Styles.ShortDesc = theme.Help

	return &StatusBarModel{
		theme:   theme,
		spinner: sp,
		help:    h,
		keys:    keys,
		width:   50,
	}
}

// Update handles status bar updates
func (s *StatusBarModel) Update(msg tea.Msg) (*StatusBarModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.help.Width = msg.Width
	case spinner.TickMsg:
		if s.loading {
			s.spinner, cmd = s.spinner.Update(msg)
		}
	}

	return s, cmd
}

// View renders the status bar
func (s *StatusBarModel) View() string {
	var text string
	switch {
	case s.loading:
		elapsed := time.Since(s.thinkingStartTime)
		text = s.theme.StatusBar.Render(fmt.Sprintf("%s Waiting for the prophet... (%.1fs)", s.spinner.View(), elapsed.Seconds()))
	case s.err != nil:
		msg := "Error: " + s.err.Error()
		if s.width > 0 {
			msg = runewidth.Truncate(msg, s.width, "…")
		}
		text = s.theme.Error.Render(msg)
	case s.info != "":
		text = s.theme.StatusBar.Render(runewidth.Truncate(s.info, max(s.width, 1), "…"))
	default:
		text = s.help.View(s.keys)
	}
	return text
}

// SetLoading sets the loading state
func (s *StatusBarModel) SetLoading(loading bool) {
	s.loading = loading
	if loading {
		s.thinkingStartTime = time.Now()
	}
}

// IsLoading reports whether the spinner is running.
func (s *StatusBarModel) IsLoading() bool {
	return s.loading
}

// SetError sets the error state
func (s *StatusBarModel) SetError(err error) {
	s.err = err
}

// ClearError clears the error state
func (s *StatusBarModel) ClearError() {
	s.err = nil
}

// SetInfo shows a transient message in place of the key hints.
func (s *StatusBarModel) SetInfo(info string) {
	s.info = info
}

// SetKeys replaces the key hints.
func (s *StatusBarModel) SetKeys(keys help.KeyMap) {
	s.keys = keys
}

// GetHeight returns the status bar height
func (s *StatusBarModel) GetHeight() int {
	return s.theme.StatusBarHeight
}

// GetSpinnerTickCmd returns the spinner tick command if loading
func (s *StatusBarModel) GetSpinnerTickCmd() tea.Cmd {
	if s.loading {
		return s.spinner.Tick
	}
	return nil
}
