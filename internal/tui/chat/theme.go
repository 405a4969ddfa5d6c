package chat

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains all styling and dimension constants for the TUI
type Theme struct {
	// Layout dimensions
	HeaderHeight      int
	StatusBarHeight   int
	PromptBarHeight   int
	StageHeight       int
	MinViewportHeight int

	// Color palette. Fading colours must be hex values.
	Colors struct {
		Primary    lipgloss.Color
		Secondary  lipgloss.Color
		Background lipgloss.Color
		Surface    lipgloss.Color
		Text       lipgloss.Color
		Error      lipgloss.Color
		Warning    lipgloss.Color
		Muted      lipgloss.Color
		Border     lipgloss.Color
	}

	// Component styles
	Header         lipgloss.Style
	StatusBar      lipgloss.Style
	Error          lipgloss.Style
	Sender         lipgloss.Style
	Time           lipgloss.Style
	Welcome        lipgloss.Style
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonDisabled lipgloss.Style
	Panel          lipgloss.Style
	Notice         lipgloss.Style
	Help           lipgloss.Style

	// Viewport styling
	ViewportBorder lipgloss.Style
}

// NewDefaultTheme creates the default theme configuration
func NewDefaultTheme() *Theme {
	theme := &Theme{
		HeaderHeight:      1,
		StatusBarHeight:   1,
		PromptBarHeight:   3,
		StageHeight:       8,
		MinViewportHeight: 3,
	}

	theme.Colors.Primary = lipgloss.Color("#7D56F4")
	theme.Colors.Secondary = lipgloss.Color("#FFFDF5")
	theme.Colors.Background = lipgloss.Color("#1A1A1A")
	theme.Colors.Surface = lipgloss.Color("#303030")
	theme.Colors.Text = lipgloss.Color("#E4E4E4")
	theme.Colors.Error = lipgloss.Color("#FF4672")
	theme.Colors.Warning = lipgloss.Color("#FFB454")
	theme.Colors.Muted = lipgloss.Color("#6C6C6C")
	theme.Colors.Border = lipgloss.Color("#7D56F4")

	theme.Header = lipgloss.NewStyle().
		Background(theme.Colors.Primary).
		Foreground(theme.Colors.Secondary).
		Padding(0, 1)

	theme.StatusBar = lipgloss.NewStyle().
		Background(theme.Colors.Surface).
		Foreground(theme.Colors.Text)

	theme.Error = lipgloss.NewStyle().
		Foreground(theme.Colors.Error)

	theme.Sender = lipgloss.NewStyle().
		Foreground(theme.Colors.Primary).
		Bold(true)

	theme.Time = lipgloss.NewStyle().
		Foreground(theme.Colors.Muted).
		Italic(true)

	theme.Welcome = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Colors.Border).
		Padding(1, 2)

	theme.Button = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Colors.Muted).
		Foreground(theme.Colors.Text).
		Padding(0, 1)

	theme.ButtonFocused = theme.Button.
		BorderForeground(theme.Colors.Primary).
		Foreground(theme.Colors.Secondary).
		Bold(true)

	theme.ButtonDisabled = theme.Button.
		BorderForeground(theme.Colors.Surface).
		Foreground(theme.Colors.Muted)

	theme.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	theme.Notice = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Colors.Warning).
		Foreground(theme.Colors.Warning).
		Bold(true).
		Padding(1, 3).
		Align(lipgloss.Center)

	theme.Help = lipgloss.NewStyle().
		Foreground(theme.Colors.Muted)

	theme.ViewportBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Colors.Border)

	return theme
}

// ViewportHeight returns the rows left for the history viewport content.
func (t *Theme) ViewportHeight(windowHeight int) int {
	frame := t.ViewportBorder.GetVerticalFrameSize()
	h := windowHeight - t.HeaderHeight - t.StatusBarHeight - t.PromptBarHeight - t.StageHeight - frame
	if h < t.MinViewportHeight {
		return t.MinViewportHeight
	}
	return h
}
