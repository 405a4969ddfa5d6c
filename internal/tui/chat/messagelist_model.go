package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/castrovroberto/prophet/internal/llm"
	"github.com/castrovroberto/prophet/internal/logger"
	"github.com/castrovroberto/prophet/internal/session"
)

// WelcomeCard is shown in place of the history until the first message.
type WelcomeCard struct {
	Name  string
	Text  string
	Image string
}

// MessageListModel renders the conversation history in a scrollable
// viewport.
type MessageListModel struct {
	theme    *Theme
	viewport viewport.Model
	messages []session.Message
	welcome  WelcomeCard
	renderer *glamour.TermRenderer
	width    int
	height   int
}

// NewMessageListModel creates a new message list model
func NewMessageListModel(theme *Theme, welcome WelcomeCard, width, height int) *MessageListModel {
	vp := viewport.New(width, height)
	vp.Style = theme.ViewportBorder

	ml := &MessageListModel{
		theme:    theme,
		viewport: vp,
		welcome:  welcome,
		width:    width,
		height:   height,
	}
	ml.renderer = newRenderer(width - vp.Style.GetHorizontalFrameSize())
	ml.rebuildViewport()
	return ml
}

func newRenderer(wrap int) *glamour.TermRenderer {
	if wrap < 10 {
		wrap = 10
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		logger.Get().Error("Failed to initialize glamour markdown renderer", "error", err)
		return nil
	}
	return renderer
}

// Update handles message list updates
func (ml *MessageListModel) Update(msg tea.Msg) (*MessageListModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ml.SetSize(msg.Width, msg.Height)
	case tea.MouseMsg, tea.KeyMsg:
		ml.viewport, cmd = ml.viewport.Update(msg)
	}

	return ml, cmd
}

// SetSize resizes the viewport and re-wraps the history.
func (ml *MessageListModel) SetSize(width, height int) {
	ml.width = width
	ml.height = height
	ml.viewport.Width = width - ml.viewport.Style.GetHorizontalFrameSize()
	ml.viewport.Height = height
	ml.renderer = newRenderer(ml.viewport.Width)
	ml.rebuildViewport()
}

// View renders the message list
func (ml *MessageListModel) View() string {
	return ml.viewport.View()
}

// SetMessages replaces the history and scrolls to the newest message.
func (ml *MessageListModel) SetMessages(messages []session.Message) {
	ml.messages = messages
	ml.rebuildViewport()
	ml.viewport.GotoBottom()
}

// SetWelcome replaces the welcome card.
func (ml *MessageListModel) SetWelcome(welcome WelcomeCard) {
	ml.welcome = welcome
	ml.rebuildViewport()
}

// GetMessages returns the rendered history.
func (ml *MessageListModel) GetMessages() []session.Message {
	return ml.messages
}

// rebuildViewport re-renders all stored messages into the viewport
func (ml *MessageListModel) rebuildViewport() {
	if len(ml.messages) == 0 {
		ml.viewport.SetContent(ml.welcomeView())
		return
	}

	var b strings.Builder
	for _, m := range ml.messages {
		sender := "You"
		if m.Role == llm.RoleAssistant {
			sender = ml.welcome.Name
		}
		header := ml.theme.Sender.Render(sender+":") + " " + ml.theme.Time.Render(m.CreatedAt.Format("15:04:05"))

		body := m.Content
		if m.Role == llm.RoleAssistant && ml.renderer != nil {
			rendered, err := ml.renderer.Render(m.Content)
			if err != nil {
				logger.Get().Warn("Markdown rendering failed, falling back to plain text", "error", err)
			} else {
				body = strings.TrimSpace(rendered)
			}
		}
		fmt.Fprintf(&b, "%s\n%s\n\n", header, body)
	}
	ml.viewport.SetContent(strings.TrimRight(b.String(), "\n"))
}

func (ml *MessageListModel) welcomeView() string {
	lines := []string{ml.theme.Sender.Render(ml.welcome.Name)}
	if ml.welcome.Image != "" {
		lines = append(lines, ml.theme.Time.Render("["+ml.welcome.Image+"]"))
	}
	if ml.welcome.Text != "" {
		lines = append(lines, "", ml.welcome.Text)
	}

	card := ml.theme.Welcome
	if w := ml.viewport.Width - card.GetHorizontalFrameSize(); w > 10 {
		card = card.MaxWidth(ml.viewport.Width).Width(min(w, 60))
	}
	return lipgloss.PlaceHorizontal(ml.viewport.Width, lipgloss.Center, card.Render(strings.Join(lines, "\n")))
}
