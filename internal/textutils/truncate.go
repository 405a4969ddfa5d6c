package textutils

import (
	"strings"
	"unicode"
)

// TruncateOptions bounds the size of text shown in a response panel.
type TruncateOptions struct {
	MaxChars  int    `mapstructure:"max_chars"` // Hard limit in characters (runes)
	Tolerance int    `mapstructure:"tolerance"` // Window below MaxChars searched for a sentence end
	MaxLines  int    `mapstructure:"max_lines"` // Maximum number of lines kept, 0 disables
	Ellipsis  string `mapstructure:"ellipsis"`  // Marker appended when text was cut
}

// DefaultTruncateOptions returns the limits used by the response panel.
func DefaultTruncateOptions() TruncateOptions {
	return TruncateOptions{
		MaxChars:  400,
		Tolerance: 80,
		MaxLines:  12,
		Ellipsis:  "...",
	}
}

// Truncate shortens text to the configured limits. When the text has to be
// cut, it prefers the last sentence end within Tolerance characters of
// MaxChars and falls back to a hard cut at MaxChars. Text within the limits
// is returned unchanged.
func Truncate(text string, opts TruncateOptions) string {
	cut := false

	if opts.MaxLines > 0 {
		lines := strings.Split(text, "\n")
		if len(lines) > opts.MaxLines {
			text = strings.Join(lines[:opts.MaxLines], "\n")
			cut = true
		}
	}

	runes := []rune(text)
	if opts.MaxChars > 0 && len(runes) > opts.MaxChars {
		end := opts.MaxChars
		if boundary := lastSentenceEnd(runes, opts.MaxChars-opts.Tolerance, opts.MaxChars); boundary > 0 {
			end = boundary
		}
		runes = runes[:end]
		cut = true
	}

	if !cut {
		return text
	}

	return strings.TrimRightFunc(string(runes), unicode.IsSpace) + opts.Ellipsis
}

// lastSentenceEnd returns the index just past the last sentence terminator
// ending in [floor, limit], or 0 when there is none.
func lastSentenceEnd(runes []rune, floor, limit int) int {
	if floor < 1 {
		floor = 1
	}
	for i := limit - 1; i+1 >= floor; i-- {
		switch runes[i] {
		case '.', '!', '?':
			if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
				return i + 1
			}
		}
	}
	return 0
}
