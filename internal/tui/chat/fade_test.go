package chat

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestFaderColor(t *testing.T) {
	f := NewFader(termenv.TrueColor, lipgloss.Color("#000000"))

	tests := []struct {
		name    string
		opacity float64
		want    lipgloss.Color
	}{
		{name: "transparent", opacity: 0, want: "#000000"},
		{name: "half", opacity: 0.5, want: "#808080"},
		{name: "opaque", opacity: 1, want: "#ffffff"},
		{name: "clamped_above", opacity: 1.5, want: "#ffffff"},
		{name: "clamped_below", opacity: -1, want: "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Color(lipgloss.Color("#ffffff"), tt.opacity))
		})
	}
}

func TestFaderVisibility(t *testing.T) {
	color := NewFader(termenv.ANSI256, lipgloss.Color("#000000"))
	ascii := NewFader(termenv.Ascii, lipgloss.Color("#000000"))

	assert.False(t, color.Visible(0))
	assert.True(t, color.Visible(0.1))

	assert.False(t, ascii.Visible(0.4))
	assert.True(t, ascii.Visible(0.5))
}

func TestFaderRenderInvisibleKeepsSize(t *testing.T) {
	f := NewFader(termenv.Ascii, lipgloss.Color("#000000"))
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())

	visible := f.Render(style, lipgloss.Color("#ffffff"), 1, "hello")
	hidden := f.Render(style, lipgloss.Color("#ffffff"), 0, "hello")

	assert.Contains(t, visible, "hello")
	assert.NotContains(t, hidden, "hello")
	assert.Equal(t, lipgloss.Height(visible), lipgloss.Height(hidden))
	assert.Empty(t, strings.TrimSpace(hidden))
}

func TestHexToRGBFallsBackToWhite(t *testing.T) {
	assert.Equal(t, rgb{255, 255, 255}, hexToRGB("63"))
	assert.Equal(t, rgb{125, 86, 244}, hexToRGB("#7D56F4"))
}
