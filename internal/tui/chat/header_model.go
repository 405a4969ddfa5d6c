package chat

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// HeaderModel shows who the user talks to and through which model.
type HeaderModel struct {
	theme     *Theme
	persona   string
	provider  string
	modelName string
	sessionID string
	status    string
	width     int
}

// NewHeaderModel creates a new header model
func NewHeaderModel(theme *Theme, persona, provider, modelName, sessionID string) *HeaderModel {
	return &HeaderModel{
		theme:     theme,
		persona:   persona,
		provider:  provider,
		modelName: modelName,
		sessionID: sessionID,
		status:    "ready",
		width:     50,
	}
}

// Update handles header-specific updates
func (h *HeaderModel) Update(msg tea.Msg) (*HeaderModel, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		h.width = msg.Width
	}
	return h, nil
}

// View renders the header on a single line.
func (h *HeaderModel) View() string {
	parts := []string{
		"◆ " + h.persona,
		fmt.Sprintf("%s/%s", h.provider, h.modelName),
	}
	if h.sessionID != "" {
		parts = append(parts, "session "+shortID(h.sessionID))
	}
	parts = append(parts, h.status)

	text := strings.Join(parts, " │ ")
	avail := h.width - h.theme.Header.GetHorizontalFrameSize()
	if avail > 0 {
		text = runewidth.Truncate(text, avail, "…")
	}
	return h.theme.Header.Width(h.width).Render(text)
}

// SetStatus updates the status
func (h *HeaderModel) SetStatus(status string) {
	h.status = status
}

// SetPersona updates the persona name
func (h *HeaderModel) SetPersona(name string) {
	h.persona = name
}

// GetStatus returns the status
func (h *HeaderModel) GetStatus() string {
	return h.status
}

// GetHeight returns the header height
func (h *HeaderModel) GetHeight() int {
	return h.theme.HeaderHeight
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
