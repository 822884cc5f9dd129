package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"segbox/internal/lookup"
	"segbox/internal/valuecfg"
)

// ConfigLoadedMsg delivers an asynchronously loaded configuration to the
// searchbox registered for FieldID. Load identifies the request; a searchbox
// only applies the result of its own pending load.
type ConfigLoadedMsg struct {
	FieldID string
	Load    uint64
	Config  valuecfg.Config
	Err     error
}

// CandidateClickedMsg accepts a dropdown candidate by pointer, bypassing the
// keyboard selection.
type CandidateClickedMsg struct {
	FieldID string
	Index   int
}

// ChipAddedMsg is sent after a candidate becomes a chip.
type ChipAddedMsg struct {
	FieldID string
	Entry   lookup.Entry
}

// ChipRemovedMsg is sent after a chip is deleted.
type ChipRemovedMsg struct {
	FieldID string
	Chip    ChipSegment
	Index   int
}

// SubmitMsg is sent when enter is pressed with no candidates listed. The
// host form decides what submitting means.
type SubmitMsg struct {
	FieldID string
	Value   string
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

type toastTickMsg struct{}

func scheduleToastTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}
