package chat

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/castrovroberto/prophet/internal/animation"
)

// StageModel draws the transient presentation: the loading carousel, the
// response panel and the blocking notice.
type StageModel struct {
	theme  *Theme
	fader  Fader
	width  int
	height int
}

// NewStageModel creates a stage drawing with fader.
func NewStageModel(theme *Theme, fader Fader) *StageModel {
	return &StageModel{theme: theme, fader: fader, width: 50, height: theme.StageHeight}
}

// SetSize sets the stage area.
func (s *StageModel) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// View renders the stage for state.
func (s *StageModel) View(state animation.State) string {
	var content string
	switch {
	case state.Notice != "":
		content = s.noticeView(state.Notice)
	case state.Panel.Active:
		content = s.panelView(state.Panel)
	case state.Carousel.Active():
		content = s.carouselView(state.Carousel)
	}
	return lipgloss.NewStyle().Width(s.width).Height(s.height).MaxHeight(s.height).Render(content)
}

func (s *StageModel) carouselView(c animation.Carousel) string {
	msg, opacity := c.Message()
	line := runewidth.Truncate(msg, s.width, "…")
	text := s.fader.Render(lipgloss.NewStyle().Italic(true), s.theme.Colors.Primary, opacity, line)
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, text)
}

func (s *StageModel) panelView(p animation.ResponsePanel) string {
	panelWidth := s.width * 3 / 5
	if panelWidth < 20 {
		panelWidth = s.width
	}
	style := s.theme.Panel.Width(panelWidth - s.theme.Panel.GetHorizontalBorderSize()).MaxHeight(s.height)
	box := s.fader.Render(style, s.theme.Colors.Text, p.Opacity, p.Text)

	pos := lipgloss.Left
	if p.Side == animation.SideRight {
		pos = lipgloss.Right
	}
	return lipgloss.PlaceHorizontal(s.width, pos, box)
}

func (s *StageModel) noticeView(notice string) string {
	box := s.theme.Notice.Render(notice + "\n\n" + s.theme.Help.Render("press enter to continue"))
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, box)
}
