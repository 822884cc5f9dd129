package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"segbox/internal/debug"
)

// Registry holds the live searchboxes by field identifier, in registration
// order. Registering an identifier again replaces the earlier instance.
type Registry struct {
	boxes *orderedmap.OrderedMap[string, *Searchbox]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{boxes: orderedmap.New[string, *Searchbox]()}
}

// Register creates a searchbox for field and stores it under field.ID. On
// error nothing is stored and any existing instance is kept.
func (r *Registry) Register(field *Field, src Source, opts ...SearchboxOption) (*Searchbox, error) {
	sb, err := NewSearchbox(field, src, opts...)
	if err != nil {
		debug.Error(err, "register searchbox")
		return nil, err
	}
	if old, replaced := r.boxes.Set(field.ID, sb); replaced {
		old.Blur()
		debug.Log("searchbox replaced", "field", field.ID)
	}
	return sb, nil
}

// Get returns the searchbox registered for id.
func (r *Registry) Get(id string) (*Searchbox, bool) {
	return r.boxes.Get(id)
}

// Remove drops the searchbox registered for id.
func (r *Registry) Remove(id string) bool {
	_, ok := r.boxes.Delete(id)
	return ok
}

// Len returns the number of registered searchboxes.
func (r *Registry) Len() int {
	return r.boxes.Len()
}

// IDs returns the registered identifiers in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, r.boxes.Len())
	for pair := r.boxes.Oldest(); pair != nil; pair = pair.Next() {
		ids = append(ids, pair.Key)
	}
	return ids
}

// Searchboxes returns the registered searchboxes in registration order.
func (r *Registry) Searchboxes() []*Searchbox {
	out := make([]*Searchbox, 0, r.boxes.Len())
	for pair := r.boxes.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Focused returns the searchbox that has focus, if any.
func (r *Registry) Focused() (*Searchbox, bool) {
	for pair := r.boxes.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Focused() {
			return pair.Value, true
		}
	}
	return nil, false
}

// Init batches the init commands of every searchbox.
func (r *Registry) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, sb := range r.Searchboxes() {
		cmds = append(cmds, sb.Init())
	}
	return tea.Batch(cmds...)
}

// Update routes msg. Messages addressed to a field go to that searchbox;
// keys go to the focused one; anything else is broadcast.
func (r *Registry) Update(msg tea.Msg) tea.Cmd {
	if id, ok := fieldIDOf(msg); ok {
		sb, found := r.Get(id)
		if !found {
			debug.Log("message for unknown searchbox dropped", "field", id)
			return nil
		}
		_, cmd := sb.Update(msg)
		return cmd
	}

	if _, isKey := msg.(tea.KeyMsg); isKey {
		sb, ok := r.Focused()
		if !ok {
			return nil
		}
		_, cmd := sb.Update(msg)
		return cmd
	}

	var cmds []tea.Cmd
	for _, sb := range r.Searchboxes() {
		_, cmd := sb.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// FocusNext moves focus to the searchbox after the focused one, wrapping.
// delta -1 moves backwards.
func (r *Registry) FocusNext(delta int) tea.Cmd {
	boxes := r.Searchboxes()
	if len(boxes) == 0 {
		return nil
	}
	current := -1
	for i, sb := range boxes {
		if sb.Focused() {
			current = i
			sb.Blur()
		}
	}
	next := 0
	if current >= 0 {
		next = ((current+delta)%len(boxes) + len(boxes)) % len(boxes)
	}
	return boxes[next].Focus()
}

func fieldIDOf(msg tea.Msg) (string, bool) {
	switch m := msg.(type) {
	case ConfigLoadedMsg:
		return m.FieldID, true
	case CandidateClickedMsg:
		return m.FieldID, true
	}
	return "", false
}
