package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard shortcuts of the searchbox and its host form.
// Related bindings (Up/Down, Left/Right) share help text since they appear
// as a single row in the help overlay.
type KeyMap struct {
	// Dropdown
	Up     key.Binding
	Down   key.Binding
	Accept key.Binding
	Close  key.Binding

	// Chips
	Left   key.Binding
	Right  key.Binding
	Delete key.Binding

	// Form
	Focus key.Binding
	Copy  key.Binding
	Theme key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "Move through suggestions"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↑/↓", "Move through suggestions"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎ (Enter)", "Accept suggestion / submit"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Close suggestions / leave chips"),
		),

		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "Select chips"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("←/→", "Select chips"),
		),
		Delete: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("⌫", "Remove chip"),
		),

		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("⇥ (Tab)", "Switch field"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("Ctrl+Y", "Copy value"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("Ctrl+T", "Next theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "Help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "Quit"),
		),
	}
}
