package ui

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	appErrors "segbox/internal/errors"
	"segbox/internal/valuecfg"
)

func sampleConfig() valuecfg.Config {
	return valuecfg.Config{ValueKinds: []valuecfg.ValueKind{
		{Name: "greek", Color: "#7aa2f7", Values: []valuecfg.Value{
			{Data: "alpha", Text: "a-display"},
			{Data: "beta", Text: "b-display"},
			{Data: "gamma"},
		}},
		{Name: "misc", Color: "orange", Values: []valuecfg.Value{
			{Data: "my-value-1"},
			{Data: "solo"},
		}},
	}}
}

func newTestSearchbox(t *testing.T, value string, opts ...SearchboxOption) *Searchbox {
	t.Helper()
	sb, err := NewSearchbox(NewField("q", KindInput, value), InlineSource(sampleConfig()), opts...)
	if err != nil {
		t.Fatalf("NewSearchbox: %v", err)
	}
	sb.Focus()
	return sb
}

func typeText(sb *Searchbox, text string) []tea.Msg {
	var msgs []tea.Msg
	for _, r := range text {
		var cmd tea.Cmd
		sb, cmd = sb.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		msgs = append(msgs, drain(cmd)...)
	}
	return msgs
}

func press(sb *Searchbox, kt tea.KeyType) []tea.Msg {
	_, cmd := sb.Update(tea.KeyMsg{Type: kt})
	return drain(cmd)
}

// drain runs cmd and any batched commands, collecting the messages that
// arrive promptly. Cursor blink commands sleep and are skipped.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(50 * time.Millisecond):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func chipData(sb *Searchbox) []string {
	var out []string
	for _, c := range sb.Chips() {
		out = append(out, c.Data)
	}
	return out
}

func assertChips(t *testing.T, sb *Searchbox, want ...string) {
	t.Helper()
	if got := chipData(sb); !slices.Equal(got, want) {
		t.Fatalf("expected chips %v, got %v", want, got)
	}
}

func assertValue(t *testing.T, sb *Searchbox, want string) {
	t.Helper()
	if got := sb.Field().Value(); got != want {
		t.Fatalf("expected field value %q, got %q", want, got)
	}
}

func TestNewSearchboxRejectsInvalidTargets(t *testing.T) {
	cases := []struct {
		name  string
		field *Field
		code  appErrors.Code
	}{
		{"nil field", nil, appErrors.CodeMissingIdentifier},
		{"empty id", NewField("", KindInput, ""), appErrors.CodeMissingIdentifier},
		{"textarea", NewField("notes", KindTextArea, ""), appErrors.CodeInvalidElementKind},
		{"button", NewField("go", KindButton, ""), appErrors.CodeInvalidElementKind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sb, err := NewSearchbox(tc.field, InlineSource(sampleConfig()))
			if err == nil {
				t.Fatal("expected error")
			}
			if sb != nil {
				t.Errorf("expected no searchbox on error, got %#v", sb)
			}
			if !appErrors.IsCode(err, tc.code) {
				t.Errorf("expected code %s, got %v", tc.code, err)
			}
		})
	}
}

func TestNewSearchboxRejectsDuplicateValues(t *testing.T) {
	cfg := sampleConfig()
	cfg.ValueKinds[1].Values = append(cfg.ValueKinds[1].Values, valuecfg.Value{Data: "x", Text: "gamma"})

	_, err := NewSearchbox(NewField("q", KindInput, ""), InlineSource(cfg))
	if !appErrors.IsCode(err, appErrors.CodeDuplicateValue) {
		t.Fatalf("expected duplicate value error, got %v", err)
	}
}

func TestSearchboxTypingOpensDropdown(t *testing.T) {
	sb := newTestSearchbox(t, "")

	typeText(sb, "disp")

	if !sb.Dropdown().IsOpen() {
		t.Fatal("expected dropdown to open")
	}
	cands := sb.Dropdown().Candidates()
	if len(cands) != 2 || cands[0].Text != "a-display" || cands[1].Text != "b-display" {
		t.Fatalf("unexpected candidates: %+v", cands)
	}
	if sb.Dropdown().Active() != -1 {
		t.Errorf("expected no active candidate, got %d", sb.Dropdown().Active())
	}
	if sb.TypedFragment() != "disp" {
		t.Errorf("expected fragment %q, got %q", "disp", sb.TypedFragment())
	}
	// Typed text never reaches the plain value.
	assertValue(t, sb, "")
}

func TestSearchboxKeyboardAccept(t *testing.T) {
	sb := newTestSearchbox(t, "")
	typeText(sb, "disp")

	press(sb, tea.KeyDown)
	press(sb, tea.KeyDown)
	if sb.Dropdown().Active() != 1 {
		t.Fatalf("expected active 1, got %d", sb.Dropdown().Active())
	}
	press(sb, tea.KeyDown)
	if sb.Dropdown().Active() != 0 {
		t.Fatalf("down should wrap to the first candidate, got %d", sb.Dropdown().Active())
	}

	msgs := press(sb, tea.KeyEnter)

	assertChips(t, sb, "alpha")
	assertValue(t, sb, "alpha")
	if sb.TypedFragment() != "" {
		t.Errorf("expected fragment cleared, got %q", sb.TypedFragment())
	}
	if sb.Dropdown().IsOpen() {
		t.Error("expected dropdown closed after accept")
	}

	added, ok := findMsg[ChipAddedMsg](msgs)
	if !ok {
		t.Fatalf("expected ChipAddedMsg, got %#v", msgs)
	}
	if added.Entry.Data != "alpha" || added.FieldID != "q" {
		t.Errorf("unexpected ChipAddedMsg: %+v", added)
	}
}

func TestSearchboxEnterAcceptsSoleCandidate(t *testing.T) {
	sb := newTestSearchbox(t, "")
	typeText(sb, "sol")
	if n := len(sb.Dropdown().Candidates()); n != 1 {
		t.Fatalf("expected 1 candidate, got %d", n)
	}

	press(sb, tea.KeyEnter)

	assertValue(t, sb, "solo")
}

func TestSearchboxEnterWithSeveralCandidatesAndNoSelection(t *testing.T) {
	sb := newTestSearchbox(t, "")
	typeText(sb, "disp")

	msgs := press(sb, tea.KeyEnter)

	assertChips(t, sb)
	if !sb.Dropdown().IsOpen() {
		t.Error("dropdown should stay open")
	}
	if _, submitted := findMsg[SubmitMsg](msgs); submitted {
		t.Error("enter with candidates must not submit")
	}
}

func TestSearchboxEscClosesDropdown(t *testing.T) {
	sb := newTestSearchbox(t, "")
	typeText(sb, "disp")

	press(sb, tea.KeyEsc)

	if sb.Dropdown().IsOpen() {
		t.Error("expected dropdown closed")
	}
	if sb.TypedFragment() != "disp" {
		t.Errorf("esc keeps the fragment, got %q", sb.TypedFragment())
	}
}

func TestSearchboxAcceptSequenceJoinsData(t *testing.T) {
	sb := newTestSearchbox(t, "")

	typeText(sb, "gam")
	press(sb, tea.KeyEnter)
	typeText(sb, "MY-VAL")
	press(sb, tea.KeyEnter)

	assertValue(t, sb, "gamma my-value-1")
	if sb.Value() != sb.Field().Value() {
		t.Errorf("Value() %q and field %q disagree", sb.Value(), sb.Field().Value())
	}
}

func TestSearchboxSubmitWithoutCandidates(t *testing.T) {
	sb := newTestSearchbox(t, "alpha")

	msgs := press(sb, tea.KeyEnter)

	submit, ok := findMsg[SubmitMsg](msgs)
	if !ok {
		t.Fatalf("expected SubmitMsg, got %#v", msgs)
	}
	if submit != (SubmitMsg{FieldID: "q", Value: "alpha"}) {
		t.Errorf("unexpected SubmitMsg: %+v", submit)
	}
}

func TestSearchboxBackspaceRemovesLastChip(t *testing.T) {
	sb := newTestSearchbox(t, "alpha beta")
	assertChips(t, sb, "alpha", "beta")

	msgs := press(sb, tea.KeyBackspace)

	assertChips(t, sb, "alpha")
	assertValue(t, sb, "alpha")
	removed, ok := findMsg[ChipRemovedMsg](msgs)
	if !ok {
		t.Fatalf("expected ChipRemovedMsg, got %#v", msgs)
	}
	if removed.Chip.Data != "beta" || removed.Index != 1 {
		t.Errorf("unexpected ChipRemovedMsg: %+v", removed)
	}
}

func TestSearchboxBackspaceEditsFragmentFirst(t *testing.T) {
	sb := newTestSearchbox(t, "alpha")
	typeText(sb, "ga")

	press(sb, tea.KeyBackspace)

	if sb.TypedFragment() != "g" {
		t.Errorf("expected fragment %q, got %q", "g", sb.TypedFragment())
	}
	assertChips(t, sb, "alpha")
}

func TestSearchboxPrepopulates(t *testing.T) {
	sb := newTestSearchbox(t, "alpha gamma")

	assertChips(t, sb, "alpha", "gamma")
	if chip := sb.Chips()[0]; chip.Text != "a-display" || chip.Color != "#7aa2f7" {
		t.Errorf("unexpected first chip: %+v", chip)
	}
	assertValue(t, sb, "alpha gamma")
	if sb.Err() != nil {
		t.Errorf("unexpected error: %v", sb.Err())
	}
}

func TestSearchboxPartialPrepopulation(t *testing.T) {
	sb := newTestSearchbox(t, "alpha nope gamma")

	assertChips(t, sb, "alpha")
	assertValue(t, sb, "alpha")
	if !appErrors.IsCode(sb.Err(), appErrors.CodeUnresolvableToken) {
		t.Fatalf("expected unresolvable token error, got %v", sb.Err())
	}
	if !strings.Contains(sb.View(), "nope") {
		t.Error("expected the offending token in the view")
	}
}

func TestSearchboxLocatorSourceLoadsAsync(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"valueKinds":[{"name":"status","color":"green","values":[{"data":"open"},{"data":"done","text":"Done"}]}]}`))
	}))
	defer srv.Close()

	field := NewField("q", KindInput, "done open")
	sb, err := NewSearchbox(field, LocatorSource(srv.URL))
	if err != nil {
		t.Fatalf("NewSearchbox: %v", err)
	}

	if !sb.Loading() {
		t.Fatal("expected loading before the config arrives")
	}
	assertChips(t, sb)
	// The value is republished from empty content until values arrive.
	if field.Value() != "" {
		t.Fatalf("expected empty value while loading, got %q", field.Value())
	}

	cmd := sb.Init()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	loaded, ok := cmd().(ConfigLoadedMsg)
	if !ok || loaded.Err != nil {
		t.Fatalf("unexpected load result: %#v", loaded)
	}

	sb, _ = sb.Update(loaded)

	if sb.Loading() {
		t.Error("expected loading to finish")
	}
	assertChips(t, sb, "done", "open")
	if field.Value() != "done open" {
		t.Errorf("expected value restored, got %q", field.Value())
	}
	if sb.Chips()[0].Text != "Done" {
		t.Errorf("expected display text from the document, got %q", sb.Chips()[0].Text)
	}
}

func TestSearchboxLoadFailure(t *testing.T) {
	sb, err := NewSearchbox(NewField("q", KindInput, ""), LocatorSource("/does/not/exist.json"))
	if err != nil {
		t.Fatalf("NewSearchbox: %v", err)
	}

	sb, _ = sb.Update(sb.Init()())

	if sb.Loading() {
		t.Error("expected loading to finish on failure")
	}
	if !appErrors.IsCode(sb.Err(), appErrors.CodeConfigLoad) {
		t.Errorf("expected config load error, got %v", sb.Err())
	}
	if sb.Table().Len() != 0 {
		t.Errorf("expected empty table, got %d entries", sb.Table().Len())
	}
}

func TestSearchboxAppliesOnlyItsOwnLoad(t *testing.T) {
	doc := valuecfg.Config{ValueKinds: []valuecfg.ValueKind{
		{Name: "k", Values: []valuecfg.Value{{Data: "zeta"}}},
	}}

	t.Run("inline source ignores loads", func(t *testing.T) {
		sb := newTestSearchbox(t, "")
		before := sb.Table().Len()

		sb, _ = sb.Update(ConfigLoadedMsg{FieldID: "q", Config: doc})

		if sb.Table().Len() != before {
			t.Fatalf("inline table replaced: %d entries, want %d", sb.Table().Len(), before)
		}
	})

	t.Run("result of another request", func(t *testing.T) {
		sb, err := NewSearchbox(NewField("q", KindInput, ""), LocatorSource("/unused.json"))
		if err != nil {
			t.Fatalf("NewSearchbox: %v", err)
		}

		sb, _ = sb.Update(ConfigLoadedMsg{FieldID: "q", Load: sb.loadID + 1, Config: doc})
		if !sb.Loading() || sb.Table().Len() != 0 {
			t.Fatal("a foreign load must not be applied")
		}

		sb, _ = sb.Update(ConfigLoadedMsg{FieldID: "q", Load: sb.loadID, Config: doc})
		if sb.Loading() || sb.Table().Len() != 1 {
			t.Fatalf("own load not applied: loading=%v len=%d", sb.Loading(), sb.Table().Len())
		}

		sb, _ = sb.Update(ConfigLoadedMsg{FieldID: "q", Load: sb.loadID, Config: sampleConfig()})
		if sb.Table().Len() != 1 {
			t.Fatal("the table is replaced only once")
		}
	})
}

func TestSearchboxIgnoresOtherFieldsMessages(t *testing.T) {
	sb := newTestSearchbox(t, "")
	typeText(sb, "disp")

	sb, _ = sb.Update(CandidateClickedMsg{FieldID: "other", Index: 0})
	sb, _ = sb.Update(ConfigLoadedMsg{FieldID: "other", Err: appErrors.New(appErrors.CodeConfigLoad, "nope", nil)})

	assertChips(t, sb)
	if sb.Err() != nil {
		t.Errorf("unexpected error: %v", sb.Err())
	}
}

func TestSearchboxClickAcceptsCandidate(t *testing.T) {
	sb := newTestSearchbox(t, "")
	typeText(sb, "disp")
	sb.Blur()
	typeText(sb, "x") // ignored while blurred
	sb.Focus()
	typeText(sb, "l") // "displ"

	msgs := drain(sb.ClickCandidate(1))

	assertValue(t, sb, "beta")
	if sb.Dropdown().IsOpen() {
		t.Error("expected dropdown closed after click")
	}
	if !sb.Focused() {
		t.Error("click keeps the input focused")
	}
	if _, ok := findMsg[ChipAddedMsg](msgs); !ok {
		t.Errorf("expected ChipAddedMsg, got %#v", msgs)
	}
}

func TestSearchboxClickOutOfRangeIsIgnored(t *testing.T) {
	sb := newTestSearchbox(t, "")
	typeText(sb, "disp")

	if cmd := sb.ClickCandidate(7); cmd != nil {
		t.Error("expected no command for an out of range click")
	}
	assertChips(t, sb)
}

func TestSearchboxChipNavigation(t *testing.T) {
	sb := newTestSearchbox(t, "alpha beta gamma")

	press(sb, tea.KeyLeft)
	if !sb.InChipNavigation() || sb.NavIndex() != 2 {
		t.Fatalf("expected navigation on the last chip, got %d", sb.NavIndex())
	}

	press(sb, tea.KeyLeft)
	press(sb, tea.KeyLeft)
	press(sb, tea.KeyLeft)
	if sb.NavIndex() != 0 {
		t.Fatalf("left stops at the first chip, got %d", sb.NavIndex())
	}

	msgs := press(sb, tea.KeyBackspace)
	assertValue(t, sb, "beta gamma")
	if sb.NavIndex() != 0 {
		t.Errorf("expected index 0 after delete, got %d", sb.NavIndex())
	}
	removed, ok := findMsg[ChipRemovedMsg](msgs)
	if !ok || removed.Chip.Data != "alpha" || removed.Index != 0 {
		t.Errorf("unexpected removal: %+v (found=%v)", removed, ok)
	}

	press(sb, tea.KeyRight)
	if sb.NavIndex() != 1 {
		t.Errorf("expected index 1, got %d", sb.NavIndex())
	}
	press(sb, tea.KeyRight)
	if sb.InChipNavigation() {
		t.Error("right past the last chip returns to the input")
	}
}

func TestSearchboxChipNavigationTypingReturnsToInput(t *testing.T) {
	sb := newTestSearchbox(t, "alpha")
	press(sb, tea.KeyLeft)
	if !sb.InChipNavigation() {
		t.Fatal("expected chip navigation")
	}

	typeText(sb, "g")

	if sb.InChipNavigation() {
		t.Error("typing leaves chip navigation")
	}
	if sb.TypedFragment() != "g" {
		t.Errorf("expected fragment %q, got %q", "g", sb.TypedFragment())
	}
	if !sb.Dropdown().IsOpen() {
		t.Error("expected dropdown open for the new fragment")
	}
}

func TestSearchboxDeletingLastChipLeavesNavigation(t *testing.T) {
	sb := newTestSearchbox(t, "alpha")
	press(sb, tea.KeyLeft)

	press(sb, tea.KeyDelete)

	assertChips(t, sb)
	if sb.InChipNavigation() {
		t.Error("expected navigation to end with no chips left")
	}
	assertValue(t, sb, "")
}

func TestSearchboxView(t *testing.T) {
	field := NewField("q", KindInput, "alpha")
	field.Label = "Query"
	sb, err := NewSearchbox(field, InlineSource(sampleConfig()), WithWidth(40), WithPlaceholder("find..."))
	if err != nil {
		t.Fatalf("NewSearchbox: %v", err)
	}
	sb.Focus()

	view := stripANSI(sb.View())
	for _, want := range []string{"Query", "a-display"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q:\n%s", want, view)
		}
	}
	if sb.DropdownTop() != -1 {
		t.Errorf("expected no dropdown, got top %d", sb.DropdownTop())
	}

	typeText(sb, "disp")
	view = stripANSI(sb.View())
	if !strings.Contains(view, "b-display") {
		t.Errorf("expected candidates in view:\n%s", view)
	}

	top := sb.DropdownTop()
	lines := strings.Split(view, "\n")
	if top <= 0 || len(lines) <= top {
		t.Fatalf("dropdown top %d out of range for %d lines", top, len(lines))
	}
	if !strings.Contains(lines[top], "a-display") {
		t.Errorf("expected first candidate on line %d, got %q", top, lines[top])
	}

	if idx, ok := sb.CandidateAtLine(top + 1); !ok || idx != 1 {
		t.Errorf("CandidateAtLine(%d) = %d, %v; want 1, true", top+1, idx, ok)
	}
	if _, ok := sb.CandidateAtLine(0); ok {
		t.Error("the label line is not a candidate")
	}
}

func TestSearchboxOptions(t *testing.T) {
	km := DefaultKeyMap()
	sb := newTestSearchbox(t, "", WithWidth(80), WithMaxVisible(2), WithKeyMap(km),
		WithFetcher(valuecfg.NewFetcher(valuecfg.WithTimeout(time.Second))))

	if sb.Width != 80 {
		t.Errorf("expected width 80, got %d", sb.Width)
	}
	if sb.Dropdown().MaxVisible != 2 {
		t.Errorf("expected max visible 2, got %d", sb.Dropdown().MaxVisible)
	}
	if sb.Init() != nil {
		t.Error("inline sources need no loading")
	}
}
