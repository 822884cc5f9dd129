// Package lookup holds the read-only value table a searchbox matches against,
// the reverse mapping used to rebuild chips from a plain value, and the
// matching rules themselves.
package lookup

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"segbox/internal/valuecfg"
)

// Entry is a single selectable value. Entries are immutable once built.
type Entry struct {
	Text       string
	Data       string
	Color      string
	IgnoreCase bool
	Kind       string
}

// Table maps display text to its entry, preserving configuration order.
// A nil *Table behaves as an empty table.
type Table struct {
	entries *orderedmap.OrderedMap[string, Entry]
}

// Build flattens a validated configuration into a table. Validation is the
// caller's job; a repeated text here simply replaces the earlier entry.
func Build(cfg valuecfg.Config) *Table {
	t := &Table{entries: orderedmap.New[string, Entry]()}
	for _, kind := range cfg.ValueKinds {
		ignoreCase := kind.CaseInsensitive()
		for _, v := range kind.Values {
			text := v.Text
			if text == "" {
				text = v.Data
			}
			t.entries.Set(text, Entry{
				Text:       text,
				Data:       v.Data,
				Color:      kind.Color,
				IgnoreCase: ignoreCase,
				Kind:       kind.Name,
			})
		}
	}
	return t
}

// Empty returns a table with no entries.
func Empty() *Table {
	return &Table{entries: orderedmap.New[string, Entry]()}
}

// Get returns the entry for a display text.
func (t *Table) Get(text string) (Entry, bool) {
	if t == nil || t.entries == nil {
		return Entry{}, false
	}
	return t.entries.Get(text)
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil || t.entries == nil {
		return 0
	}
	return t.entries.Len()
}

// Entries returns every entry in insertion order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, t.Len())
	t.each(func(e Entry) bool {
		out = append(out, e)
		return true
	})
	return out
}

func (t *Table) each(fn func(Entry) bool) {
	if t == nil || t.entries == nil {
		return
	}
	for pair := t.entries.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Value) {
			return
		}
	}
}

// Reverse maps underlying data back to the entry chosen to display it.
type Reverse struct {
	byData *orderedmap.OrderedMap[string, Entry]
}

// Invert builds the data → entry mapping used for pre-population. When
// several entries share the same data the shortest display text wins; on a
// tie the first in table order is kept.
func (t *Table) Invert() *Reverse {
	r := &Reverse{byData: orderedmap.New[string, Entry]()}
	t.each(func(e Entry) bool {
		if prev, ok := r.byData.Get(e.Data); ok && len(prev.Text) <= len(e.Text) {
			return true
		}
		r.byData.Set(e.Data, e)
		return true
	})
	return r
}

// Resolve returns the entry for a data token.
func (r *Reverse) Resolve(data string) (Entry, bool) {
	if r == nil || r.byData == nil {
		return Entry{}, false
	}
	return r.byData.Get(data)
}

// Len returns the number of distinct data tokens.
func (r *Reverse) Len() int {
	if r == nil || r.byData == nil {
		return 0
	}
	return r.byData.Len()
}
