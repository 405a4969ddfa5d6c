package textutils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	opts := DefaultTruncateOptions()

	tests := []struct {
		name     string
		text     string
		opts     TruncateOptions
		expected string
	}{
		{
			name:     "short_text_unchanged",
			text:     "The stars are quiet tonight.",
			opts:     opts,
			expected: "The stars are quiet tonight.",
		},
		{
			name:     "exact_limit_unchanged",
			text:     strings.Repeat("a", 400),
			opts:     opts,
			expected: strings.Repeat("a", 400),
		},
		{
			name:     "hard_cut_without_sentence_end",
			text:     strings.Repeat("b", 1000),
			opts:     opts,
			expected: strings.Repeat("b", 400) + "...",
		},
		{
			name:     "prefers_sentence_end_in_window",
			text:     "One. Two three four five six seven",
			opts:     TruncateOptions{MaxChars: 20, Tolerance: 18, Ellipsis: "..."},
			expected: "One....",
		},
		{
			name:     "sentence_end_outside_window_is_ignored",
			text:     "One. Two three four five six seven",
			opts:     TruncateOptions{MaxChars: 20, Tolerance: 5, Ellipsis: "..."},
			expected: "One. Two three four...",
		},
		{
			name:     "decimal_point_is_not_a_sentence_end",
			text:     "Pi is 3.14159 and more digits follow",
			opts:     TruncateOptions{MaxChars: 12, Tolerance: 10, Ellipsis: "..."},
			expected: "Pi is 3.1415...",
		},
		{
			name:     "line_limit",
			text:     "one\ntwo\nthree\nfour",
			opts:     TruncateOptions{MaxChars: 400, MaxLines: 2, Ellipsis: "..."},
			expected: "one\ntwo...",
		},
		{
			name:     "multibyte_runes_count_as_characters",
			text:     strings.Repeat("é", 10),
			opts:     TruncateOptions{MaxChars: 4, Ellipsis: "…"},
			expected: "éééé…",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.text, tt.opts))
		})
	}
}

func TestTruncateBound(t *testing.T) {
	opts := DefaultTruncateOptions()
	texts := []string{
		strings.Repeat("word ", 300),
		strings.Repeat("A sentence ends here. ", 60),
		strings.Repeat("x", 1000),
	}

	for _, text := range texts {
		out := Truncate(text, opts)
		assert.LessOrEqual(t, utf8.RuneCountInString(out), opts.MaxChars+utf8.RuneCountInString(opts.Ellipsis))
		assert.True(t, strings.HasSuffix(out, opts.Ellipsis))
	}
}

func TestTruncateIdempotentOnShortText(t *testing.T) {
	opts := DefaultTruncateOptions()
	text := "Ask again tomorrow."
	once := Truncate(text, opts)
	assert.Equal(t, once, Truncate(once, opts))
}
