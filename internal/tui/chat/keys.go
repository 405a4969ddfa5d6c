package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines the key bindings of the chat screen.
type keyMap struct {
	Choose   key.Binding
	Next     key.Binding
	Prev     key.Binding
	Send     key.Binding
	Reset    key.Binding
	Dismiss  key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Choose: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "ask"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "tab", "l"),
			key.WithHelp("→/tab", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "shift+tab", "h"),
			key.WithHelp("←", "previous"),
		),
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "ask selected"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new questions"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter/esc", "dismiss"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Send, k.Reset, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Choose, k.Next, k.Prev, k.Send},
		{k.Reset, k.Dismiss, k.PageUp, k.PageDown, k.Quit},
	}
}

// noticeHelp is shown while a notice blocks the screen.
type noticeHelp struct{ keys keyMap }

func (n noticeHelp) ShortHelp() []key.Binding { return []key.Binding{n.keys.Dismiss, n.keys.Quit} }

func (n noticeHelp) FullHelp() [][]key.Binding { return [][]key.Binding{n.ShortHelp()} }
