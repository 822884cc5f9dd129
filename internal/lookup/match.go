package lookup

import (
	"strings"
	"unicode"
)

// Match returns the entries whose display text contains typed, in table
// order. Each entry applies its own case rule. Blank input matches nothing.
func (t *Table) Match(typed string) []Entry {
	needle := strings.TrimSpace(typed)
	if needle == "" {
		return nil
	}
	folded := strings.ToLower(needle)

	var out []Entry
	t.each(func(e Entry) bool {
		if e.IgnoreCase {
			if strings.Contains(strings.ToLower(e.Text), folded) {
				out = append(out, e)
			}
		} else if strings.Contains(e.Text, needle) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// Tokenize splits a plain value into data tokens. Whitespace and
// parentheses separate tokens; parentheses are dropped.
func Tokenize(plain string) []string {
	return strings.FieldsFunc(plain, func(r rune) bool {
		return unicode.IsSpace(r) || r == '(' || r == ')'
	})
}
