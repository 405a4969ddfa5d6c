package chat

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/castrovroberto/prophet/internal/animation"
)

// PromptBarModel renders the prompt options as a row of buttons.
type PromptBarModel struct {
	theme   *Theme
	options []animation.PromptOption
	focus   int
	width   int
}

// NewPromptBarModel creates an empty prompt bar.
func NewPromptBarModel(theme *Theme) *PromptBarModel {
	return &PromptBarModel{theme: theme, width: 50}
}

// SetOptions replaces the options, keeping the focus in range.
func (p *PromptBarModel) SetOptions(options []animation.PromptOption) {
	p.options = options
	if p.focus >= len(options) {
		p.focus = 0
	}
}

// SetWidth sets the available width.
func (p *PromptBarModel) SetWidth(width int) {
	p.width = width
}

// Next moves the focus right, wrapping around.
func (p *PromptBarModel) Next() {
	if len(p.options) > 0 {
		p.focus = (p.focus + 1) % len(p.options)
	}
}

// Prev moves the focus left, wrapping around.
func (p *PromptBarModel) Prev() {
	if len(p.options) > 0 {
		p.focus = (p.focus - 1 + len(p.options)) % len(p.options)
	}
}

// Focused returns the focused option.
func (p *PromptBarModel) Focused() (animation.PromptOption, bool) {
	return p.At(p.focus)
}

// At returns the option at index i.
func (p *PromptBarModel) At(i int) (animation.PromptOption, bool) {
	if i < 0 || i >= len(p.options) {
		return animation.PromptOption{}, false
	}
	return p.options[i], true
}

// View renders the buttons. Disabled buttons are dimmed and never focused.
// showReset appends the reset button.
func (p *PromptBarModel) View(disabled, showReset bool) string {
	n := len(p.options)
	if showReset {
		n++
	}
	if n == 0 {
		return ""
	}

	frame := p.theme.Button.GetHorizontalFrameSize()
	labelWidth := p.width/n - frame - 4
	if labelWidth < 4 {
		labelWidth = 4
	}

	buttons := make([]string, 0, n)
	for i, opt := range p.options {
		style := p.theme.Button
		switch {
		case disabled:
			style = p.theme.ButtonDisabled
		case i == p.focus:
			style = p.theme.ButtonFocused
		}
		label := fmt.Sprintf("%d %s", i+1, runewidth.Truncate(opt.Label, labelWidth, "…"))
		buttons = append(buttons, style.Render(label))
	}
	if showReset {
		buttons = append(buttons, p.theme.Button.Render("r ↻"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}
