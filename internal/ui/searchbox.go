package ui

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"segbox/internal/debug"
	appErrors "segbox/internal/errors"
	"segbox/internal/lookup"
	"segbox/internal/valuecfg"
)

// loadSeq numbers background loads across all searchboxes.
var loadSeq atomic.Uint64

// Source is where a searchbox gets its value configuration: an inline
// document, built synchronously, or locators loaded in the background.
type Source struct {
	inline   *valuecfg.Config
	locators []string
}

// InlineSource uses cfg directly.
func InlineSource(cfg valuecfg.Config) Source {
	return Source{inline: &cfg}
}

// LocatorSource loads and merges the documents at locators (URLs or file
// paths) after the searchbox starts.
func LocatorSource(locators ...string) Source {
	return Source{locators: append([]string(nil), locators...)}
}

// Locators returns the locators of a LocatorSource.
func (s Source) Locators() []string {
	return append([]string(nil), s.locators...)
}

// SearchboxOption configures a Searchbox.
type SearchboxOption func(*Searchbox)

// WithWidth sets the visual width including the border.
func WithWidth(w int) SearchboxOption {
	return func(s *Searchbox) {
		if w > 0 {
			s.Width = w
		}
	}
}

// WithMaxVisible sets how many suggestions are listed at once.
func WithMaxVisible(n int) SearchboxOption {
	return func(s *Searchbox) {
		s.dropdown = s.dropdown.WithMaxVisible(n)
	}
}

// WithPlaceholder sets the text shown while the searchbox is empty.
func WithPlaceholder(p string) SearchboxOption {
	return func(s *Searchbox) {
		s.input.Placeholder = p
	}
}

// WithFetcher sets the fetcher used for remote locators.
func WithFetcher(f *valuecfg.Fetcher) SearchboxOption {
	return func(s *Searchbox) {
		s.fetcher = f
	}
}

// WithKeyMap overrides the default keybindings.
func WithKeyMap(km KeyMap) SearchboxOption {
	return func(s *Searchbox) {
		s.keys = km
	}
}

// Searchbox is a segmented autocomplete input. Accepted values become chips;
// the attached Field always holds the chip data joined by spaces.
type Searchbox struct {
	// Configuration
	Width int

	// Collaborators
	field    *Field
	input    textinput.Model
	keys     KeyMap
	fetcher  *valuecfg.Fetcher
	locators []string

	// State
	content      Content
	table        *lookup.Table
	dropdown     Dropdown
	pendingValue string
	loading      bool
	loadID       uint64
	navIndex     int // Highlighted chip in navigation mode (-1 = typing)
	focused      bool
	err          error
}

// NewSearchbox attaches a searchbox to field. An inline source is validated
// immediately and its errors returned; a locator source starts empty and
// loads when Init's command runs. A value already on the field is turned
// into chips once a table exists; tokens that cannot be resolved stop that
// process without failing construction (see Err).
func NewSearchbox(field *Field, src Source, opts ...SearchboxOption) (*Searchbox, error) {
	if err := validateTarget(field); err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Type to search..."
	ti.CharLimit = 256

	s := &Searchbox{
		Width:    60,
		field:    field,
		input:    ti,
		keys:     DefaultKeyMap(),
		content:  NewContent(),
		table:    lookup.Empty(),
		dropdown: NewDropdown(),
		navIndex: -1,
	}
	for _, opt := range opts {
		opt(s)
	}

	if src.inline != nil {
		cfg, err := valuecfg.Validate(*src.inline)
		if err != nil {
			return nil, err
		}
		s.table = lookup.Build(cfg)
		s.prepopulate(field.Value())
		return s, nil
	}

	s.locators = src.Locators()
	s.pendingValue = field.Value()
	s.loading = len(s.locators) > 0
	if s.loading {
		s.loadID = loadSeq.Add(1)
	}
	s.publish()
	return s, nil
}

func validateTarget(field *Field) error {
	if field == nil || field.ID == "" {
		return appErrors.New(appErrors.CodeMissingIdentifier, "searchbox target has no identifier", nil)
	}
	if field.Kind != KindInput {
		return appErrors.New(appErrors.CodeInvalidElementKind,
			fmt.Sprintf("searchbox target %q is a %s, not an input", field.ID, field.Kind), nil)
	}
	return nil
}

// Init starts loading a locator source. Inline sources need nothing.
func (s *Searchbox) Init() tea.Cmd {
	if !s.loading {
		return nil
	}
	return s.loadCmd()
}

func (s *Searchbox) loadCmd() tea.Cmd {
	id := s.field.ID
	load := s.loadID
	locators := s.Locators()
	fetcher := s.fetcher
	return func() tea.Msg {
		ctx := debug.WithLogger(context.Background(), debug.Logger().WithValues("field", id))
		cfg, err := valuecfg.LoadAll(ctx, locators, fetcher)
		return ConfigLoadedMsg{FieldID: id, Load: load, Config: cfg, Err: err}
	}
}

// Update handles messages and returns the searchbox.
func (s *Searchbox) Update(msg tea.Msg) (*Searchbox, tea.Cmd) {
	switch msg := msg.(type) {
	case ConfigLoadedMsg:
		if msg.FieldID == s.field.ID {
			s.applyConfig(msg)
		}
		return s, nil

	case CandidateClickedMsg:
		if msg.FieldID != s.field.ID {
			return s, nil
		}
		return s, s.ClickCandidate(msg.Index)

	case tea.KeyMsg:
		if !s.focused {
			return s, nil
		}
		return s.handleKey(msg)
	}

	if s.focused {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Searchbox) applyConfig(msg ConfigLoadedMsg) {
	if !s.loading || msg.Load != s.loadID {
		debug.Log("stale searchbox configuration ignored", "field", s.field.ID, "load", msg.Load)
		return
	}
	s.loading = false
	if msg.Err != nil {
		s.err = msg.Err
		debug.Error(msg.Err, "load searchbox configuration", "field", s.field.ID, "locators", s.locators)
		return
	}
	cfg, err := valuecfg.Validate(msg.Config)
	if err != nil {
		s.err = err
		debug.Error(err, "validate searchbox configuration", "field", s.field.ID)
		return
	}
	s.err = nil
	s.table = lookup.Build(cfg)
	debug.Log("searchbox configuration loaded", "field", s.field.ID, "values", s.table.Len())

	pending := s.pendingValue
	s.pendingValue = ""
	s.prepopulate(pending)
	if s.focused {
		s.dropdown.Recompute(s.content.CurrentTypedFragment(), s.table)
	}
}

func (s *Searchbox) prepopulate(plain string) {
	if plain != "" {
		if err := s.content.Prepopulate(plain, s.table.Invert()); err != nil {
			s.err = err
			debug.Error(err, "prepopulate searchbox", "field", s.field.ID, "value", plain)
		}
	}
	s.publish()
}

func (s *Searchbox) handleKey(msg tea.KeyMsg) (*Searchbox, tea.Cmd) {
	if s.navIndex >= 0 {
		return s.handleChipNavKey(msg)
	}

	if s.dropdown.HasCandidates() {
		switch {
		case key.Matches(msg, s.keys.Down):
			s.dropdown.MoveDown()
			return s, nil
		case key.Matches(msg, s.keys.Up):
			s.dropdown.MoveUp()
			return s, nil
		case key.Matches(msg, s.keys.Accept):
			if idx, ok := s.dropdown.EnterTarget(); ok {
				return s, s.accept(idx)
			}
			return s, nil
		case key.Matches(msg, s.keys.Close):
			s.dropdown.Close()
			return s, nil
		}
	}

	switch {
	case key.Matches(msg, s.keys.Accept):
		return s, emit(SubmitMsg{FieldID: s.field.ID, Value: s.Value()})
	case key.Matches(msg, s.keys.Left) && s.input.Value() == "" && s.content.ChipCount() > 0:
		s.navIndex = s.content.ChipCount() - 1
		s.dropdown.Close()
		return s, nil
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	after := s.input.Value()

	backspace := msg.Type == tea.KeyBackspace
	if after == before && !backspace {
		return s, cmd
	}
	return s, tea.Batch(cmd, s.contentChanged(after, backspace))
}

// contentChanged is the content-changed event: apply the edit, republish
// the value and rematch the typed fragment.
func (s *Searchbox) contentChanged(fragment string, deletedBackward bool) tea.Cmd {
	index := s.content.ChipCount() - 1
	removed, ok := s.content.HandleContentChanged(fragment, deletedBackward)
	s.publish()
	s.dropdown.Recompute(s.content.CurrentTypedFragment(), s.table)
	if !ok {
		return nil
	}
	debug.Log("chip removed", "field", s.field.ID, "data", removed.Data)
	return emit(ChipRemovedMsg{FieldID: s.field.ID, Chip: removed, Index: index})
}

func (s *Searchbox) handleChipNavKey(msg tea.KeyMsg) (*Searchbox, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Left):
		if s.navIndex > 0 {
			s.navIndex--
		}
		return s, nil

	case key.Matches(msg, s.keys.Right):
		if s.navIndex < s.content.ChipCount()-1 {
			s.navIndex++
		} else {
			s.navIndex = -1
		}
		return s, nil

	case key.Matches(msg, s.keys.Delete):
		index := s.navIndex
		removed, ok := s.content.RemoveChip(index)
		if !ok {
			s.navIndex = -1
			return s, nil
		}
		s.publish()
		switch count := s.content.ChipCount(); {
		case count == 0:
			s.navIndex = -1
		case s.navIndex >= count:
			s.navIndex = count - 1
		}
		debug.Log("chip removed", "field", s.field.ID, "data", removed.Data)
		return s, emit(ChipRemovedMsg{FieldID: s.field.ID, Chip: removed, Index: index})

	case key.Matches(msg, s.keys.Close), key.Matches(msg, s.keys.Down):
		s.navIndex = -1
		return s, nil

	case msg.Type == tea.KeyRunes:
		// Typing leaves chip navigation and goes to the input.
		s.navIndex = -1
		return s.handleKey(msg)
	}
	return s, nil
}

// ClickCandidate accepts the i-th listed candidate as a pointer click would,
// closes the dropdown and returns focus to the input.
func (s *Searchbox) ClickCandidate(i int) tea.Cmd {
	added := s.accept(i)
	if added == nil {
		return nil
	}
	return tea.Batch(added, s.Focus())
}

// accept materializes candidate i as a chip.
func (s *Searchbox) accept(i int) tea.Cmd {
	e, ok := s.dropdown.Accept(i)
	if !ok {
		return nil
	}
	s.content.AcceptCandidate(e)
	s.input.SetValue("")
	s.dropdown.Close()
	s.publish()
	debug.Log("chip added", "field", s.field.ID, "data", e.Data, "text", e.Text)
	return emit(ChipAddedMsg{FieldID: s.field.ID, Entry: e})
}

func (s *Searchbox) publish() {
	s.field.SetValue(s.content.PlainValue())
}

// Focus focuses the input and returns its blink command.
func (s *Searchbox) Focus() tea.Cmd {
	s.focused = true
	return s.input.Focus()
}

// Blur removes focus and closes the dropdown.
func (s *Searchbox) Blur() {
	s.focused = false
	s.navIndex = -1
	s.dropdown.Close()
	s.input.Blur()
}

// Focused reports whether the searchbox has focus.
func (s *Searchbox) Focused() bool { return s.focused }

// ID returns the attached field's identifier.
func (s *Searchbox) ID() string { return s.field.ID }

// Field returns the attached field.
func (s *Searchbox) Field() *Field { return s.field }

// Value returns the plain value: chip data joined by spaces.
func (s *Searchbox) Value() string { return s.content.PlainValue() }

// Chips returns the accepted chips in order.
func (s *Searchbox) Chips() []ChipSegment { return s.content.Chips() }

// TypedFragment returns the text typed since the last chip.
func (s *Searchbox) TypedFragment() string { return s.content.CurrentTypedFragment() }

// Dropdown returns a snapshot of the suggestion list.
func (s *Searchbox) Dropdown() Dropdown { return s.dropdown }

// Table returns the active lookup table.
func (s *Searchbox) Table() *lookup.Table { return s.table }

// Locators returns the configured locators, if any.
func (s *Searchbox) Locators() []string { return append([]string(nil), s.locators...) }

// Loading reports whether a locator source has not arrived yet.
func (s *Searchbox) Loading() bool { return s.loading }

// Err returns the last configuration or pre-population error.
func (s *Searchbox) Err() error { return s.err }

// InChipNavigation reports whether a chip is highlighted for deletion.
func (s *Searchbox) InChipNavigation() bool { return s.navIndex >= 0 }

// NavIndex returns the highlighted chip, or -1.
func (s *Searchbox) NavIndex() int { return s.navIndex }
