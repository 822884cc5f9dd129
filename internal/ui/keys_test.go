package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"Up", tea.KeyMsg{Type: tea.KeyUp}, km.Up},
		{"Down", tea.KeyMsg{Type: tea.KeyDown}, km.Down},
		{"Accept", tea.KeyMsg{Type: tea.KeyEnter}, km.Accept},
		{"Close", tea.KeyMsg{Type: tea.KeyEsc}, km.Close},
		{"Left", tea.KeyMsg{Type: tea.KeyLeft}, km.Left},
		{"Right", tea.KeyMsg{Type: tea.KeyRight}, km.Right},
		{"Backspace", tea.KeyMsg{Type: tea.KeyBackspace}, km.Delete},
		{"Delete", tea.KeyMsg{Type: tea.KeyDelete}, km.Delete},
		{"Tab", tea.KeyMsg{Type: tea.KeyTab}, km.Focus},
		{"ShiftTab", tea.KeyMsg{Type: tea.KeyShiftTab}, km.Focus},
		{"Copy", tea.KeyMsg{Type: tea.KeyCtrlY}, km.Copy},
		{"Theme", tea.KeyMsg{Type: tea.KeyCtrlT}, km.Theme},
		{"Help", tea.KeyMsg{Type: tea.KeyF1}, km.Help},
		{"Quit", tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("expected %q to match %s binding", tt.msg.String(), tt.name)
			}
		})
	}

	t.Run("LettersAreNotBound", func(t *testing.T) {
		// Letters must reach the text input.
		for _, r := range "qjkhl?" {
			msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
			for _, b := range []key.Binding{km.Up, km.Down, km.Left, km.Right, km.Help, km.Quit} {
				if key.Matches(msg, b) {
					t.Errorf("%q should not match %v", r, b.Keys())
				}
			}
		}
	})
}
