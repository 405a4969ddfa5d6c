package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castrovroberto/prophet/internal/animation"
)

func TestPromptBarFocus(t *testing.T) {
	bar := NewPromptBarModel(NewDefaultTheme())
	bar.SetOptions([]animation.PromptOption{{Label: "a"}, {Label: "b"}, {Label: "c"}})

	opt, ok := bar.Focused()
	require.True(t, ok)
	assert.Equal(t, "a", opt.Label)

	bar.Prev()
	opt, _ = bar.Focused()
	assert.Equal(t, "c", opt.Label, "focus wraps to the last option")

	bar.Next()
	bar.Next()
	opt, _ = bar.Focused()
	assert.Equal(t, "b", opt.Label)

	bar.SetOptions([]animation.PromptOption{{Label: "x"}})
	opt, _ = bar.Focused()
	assert.Equal(t, "x", opt.Label, "focus resets when options shrink")

	_, ok = bar.At(5)
	assert.False(t, ok)
}

func TestPromptBarView(t *testing.T) {
	bar := NewPromptBarModel(NewDefaultTheme())
	bar.SetWidth(120)
	bar.SetOptions([]animation.PromptOption{
		{Label: "Tell me about AI"},
		{Label: strings.Repeat("very long question ", 10)},
	})

	view := bar.View(false, true)
	assert.Contains(t, view, "1 Tell me about AI")
	assert.Contains(t, view, "2 very")
	assert.Contains(t, view, "…")
	assert.Contains(t, view, "↻")

	assert.NotContains(t, bar.View(true, false), "↻")
	assert.Empty(t, NewPromptBarModel(NewDefaultTheme()).View(false, false))
}
