package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings the shell intercepts before any widget sees
// the key. Everything else goes through the key-press dispatcher.
type KeyMap struct {
	Quit       key.Binding
	FocusPanel key.Binding
	CloseHelp  key.Binding
}

// DefaultKeyMap returns the default shell bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		FocusPanel: key.NewBinding(key.WithKeys("alt+s", "ctrl+g"), key.WithHelp("alt+s / ctrl+g", "focus the changes list")),
		CloseHelp:  key.NewBinding(key.WithKeys("esc", "?", "q"), key.WithHelp("esc", "close help")),
	}
}

// Bindings lists the shell bindings for the help overlay.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Quit, k.FocusPanel, k.CloseHelp}
}
