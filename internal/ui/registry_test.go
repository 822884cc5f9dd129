package ui

import (
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	appErrors "segbox/internal/errors"
	"segbox/internal/valuecfg"
)

func mustRegister(t *testing.T, r *Registry, field *Field, src Source) *Searchbox {
	t.Helper()
	sb, err := r.Register(field, src)
	if err != nil {
		t.Fatalf("Register(%q): %v", field.ID, err)
	}
	return sb
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()

	a := mustRegister(t, r, NewField("a", KindInput, ""), InlineSource(sampleConfig()))
	b := mustRegister(t, r, NewField("b", KindInput, "solo"), InlineSource(sampleConfig()))

	if r.Len() != 2 {
		t.Fatalf("expected 2 searchboxes, got %d", r.Len())
	}
	if ids := r.IDs(); !slices.Equal(ids, []string{"a", "b"}) {
		t.Fatalf("expected registration order, got %v", ids)
	}
	if got, ok := r.Get("a"); !ok || got != a {
		t.Error("Get(a) returned the wrong instance")
	}
	if got, ok := r.Get("b"); !ok || got != b {
		t.Error("Get(b) returned the wrong instance")
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("unexpected searchbox for unknown id")
	}
}

func TestRegistryReRegisterReplaces(t *testing.T) {
	r := NewRegistry()
	field := NewField("q", KindInput, "")

	first := mustRegister(t, r, field, InlineSource(sampleConfig()))
	first.Focus()

	field.SetValue("alpha")
	second := mustRegister(t, r, field, InlineSource(sampleConfig()))

	if r.Len() != 1 {
		t.Fatalf("expected 1 searchbox, got %d", r.Len())
	}
	if got, _ := r.Get("q"); got != second || first == second {
		t.Fatal("expected the second registration to replace the first")
	}
	if first.Focused() {
		t.Error("replaced instance loses focus")
	}
	assertChips(t, second, "alpha")
}

func TestRegistryReplacedLoadDoesNotReachNewInstance(t *testing.T) {
	r := NewRegistry()
	old := mustRegister(t, r, NewField("q", KindInput, ""), LocatorSource("/does/not/exist.json"))
	pending := old.loadCmd()

	inline := mustRegister(t, r, NewField("q", KindInput, "alpha"), InlineSource(sampleConfig()))
	before := inline.Table().Len()

	late := pending().(ConfigLoadedMsg)
	late.Err = nil
	late.Config = valuecfg.Config{ValueKinds: []valuecfg.ValueKind{
		{Name: "k", Values: []valuecfg.Value{{Data: "zeta"}}},
	}}
	r.Update(late)

	if inline.Table().Len() != before {
		t.Fatalf("late load replaced the table: %d entries, want %d", inline.Table().Len(), before)
	}
	assertChips(t, inline, "alpha")
	if inline.Err() != nil {
		t.Errorf("unexpected error: %v", inline.Err())
	}

	// The same holds when the replacement loads too: only its own result applies.
	fresh := mustRegister(t, r, NewField("q", KindInput, ""), LocatorSource("/does/not/exist.json"))
	r.Update(late)
	if !fresh.Loading() || fresh.Table().Len() != 0 {
		t.Fatal("late load of the replaced instance was applied")
	}
}

func TestRegistryRegisterFailureKeepsExisting(t *testing.T) {
	r := NewRegistry()
	existing := mustRegister(t, r, NewField("q", KindInput, ""), InlineSource(sampleConfig()))

	_, err := r.Register(NewField("q", KindTextArea, ""), InlineSource(sampleConfig()))
	if !appErrors.IsCode(err, appErrors.CodeInvalidElementKind) {
		t.Fatalf("expected invalid element kind, got %v", err)
	}
	if got, _ := r.Get("q"); got != existing {
		t.Error("failed registration must keep the existing instance")
	}

	_, err = r.Register(nil, InlineSource(sampleConfig()))
	if !appErrors.IsCode(err, appErrors.CodeMissingIdentifier) {
		t.Errorf("expected missing identifier, got %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 searchbox, got %d", r.Len())
	}
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	mustRegister(t, r, NewField("q", KindInput, ""), InlineSource(sampleConfig()))

	if !r.Remove("q") {
		t.Fatal("expected Remove to report removal")
	}
	if r.Remove("q") {
		t.Error("second Remove should report nothing removed")
	}
	if r.Len() != 0 {
		t.Errorf("expected empty registry, got %d", r.Len())
	}
}

func TestRegistryRoutesMessages(t *testing.T) {
	r := NewRegistry()
	a := mustRegister(t, r, NewField("a", KindInput, ""), InlineSource(sampleConfig()))
	b := mustRegister(t, r, NewField("b", KindInput, ""), InlineSource(sampleConfig()))

	drain(r.FocusNext(1))
	if !a.Focused() {
		t.Fatal("expected the first searchbox focused")
	}

	r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if a.TypedFragment() != "s" || b.TypedFragment() != "" {
		t.Fatalf("keys only reach the focused searchbox: a=%q b=%q", a.TypedFragment(), b.TypedFragment())
	}

	drain(r.FocusNext(1))
	if a.Focused() || !b.Focused() {
		t.Fatal("expected focus on the second searchbox")
	}

	r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	msgs := drain(r.Update(CandidateClickedMsg{FieldID: "b", Index: 0}))
	assertValue(t, b, "gamma")
	assertValue(t, a, "")
	if _, ok := findMsg[ChipAddedMsg](msgs); !ok {
		t.Errorf("expected ChipAddedMsg, got %#v", msgs)
	}

	drain(r.FocusNext(1))
	if !a.Focused() {
		t.Error("focus wraps")
	}
	drain(r.FocusNext(-1))
	if !b.Focused() {
		t.Error("focus moves backwards")
	}
}

func TestRegistryInitBatchesLoads(t *testing.T) {
	r := NewRegistry()
	if r.Init() != nil {
		t.Fatal("expected no command for an empty registry")
	}

	mustRegister(t, r, NewField("remote", KindInput, ""), LocatorSource("/nonexistent/values.json"))

	msgs := drain(r.Init())
	loaded, ok := findMsg[ConfigLoadedMsg](msgs)
	if !ok {
		t.Fatalf("expected ConfigLoadedMsg, got %#v", msgs)
	}
	if loaded.FieldID != "remote" || !appErrors.IsCode(loaded.Err, appErrors.CodeConfigLoad) {
		t.Fatalf("unexpected load result: %+v", loaded)
	}

	r.Update(loaded)
	sb, _ := r.Get("remote")
	if sb.Loading() {
		t.Error("expected loading to finish")
	}
	if sb.Err() == nil {
		t.Error("expected the load error to be kept")
	}
}
