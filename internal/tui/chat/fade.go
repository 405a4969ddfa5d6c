package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// rgb is a colour in RGB space for interpolation.
type rgb struct {
	R, G, B float64
}

// hexToRGB converts a hex colour string to rgb. Unparseable values are white.
func hexToRGB(hex string) rgb {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return rgb{255, 255, 255}
	}
	return rgb{float64(r), float64(g), float64(b)}
}

func (c rgb) toLipgloss() lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", int(c.R+0.5), int(c.G+0.5), int(c.B+0.5)))
}

// lerpRGB linearly interpolates between two colours.
func lerpRGB(c1, c2 rgb, t float64) rgb {
	return rgb{
		R: c1.R + (c2.R-c1.R)*t,
		G: c1.G + (c2.G-c1.G)*t,
		B: c1.B + (c2.B-c1.B)*t,
	}
}

// Fader renders opacity as a blend of a foreground colour into the
// background. Terminals without colour show text once it is at least half
// opaque.
type Fader struct {
	profile termenv.Profile
	bg      rgb
}

// NewFader creates a fader for profile blending towards background.
func NewFader(profile termenv.Profile, background lipgloss.Color) Fader {
	return Fader{profile: profile, bg: hexToRGB(string(background))}
}

// Color returns fg at the given opacity.
func (f Fader) Color(fg lipgloss.Color, opacity float64) lipgloss.Color {
	return lerpRGB(f.bg, hexToRGB(string(fg)), clamp01(opacity)).toLipgloss()
}

// Visible reports whether anything should be drawn at opacity.
func (f Fader) Visible(opacity float64) bool {
	if f.profile == termenv.Ascii {
		return opacity >= 0.5
	}
	return opacity > 0
}

// Render draws text with style, its foreground and border blended to
// opacity. Invisible text renders as blank space of the same size.
func (f Fader) Render(style lipgloss.Style, fg lipgloss.Color, opacity float64, text string) string {
	out := style.Render(text)
	if !f.Visible(opacity) {
		w, h := lipgloss.Size(out)
		return lipgloss.NewStyle().Width(w).Height(h).Render("")
	}
	if f.profile == termenv.Ascii {
		return out
	}
	c := f.Color(fg, opacity)
	return style.Foreground(c).BorderForeground(c).Render(text)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
