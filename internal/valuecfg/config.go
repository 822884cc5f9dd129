// Package valuecfg defines the searchbox value configuration document and
// the validation that turns a raw document into a fully defaulted one.
package valuecfg

import (
	"fmt"

	appErrors "segbox/internal/errors"
)

// Config is the declarative searchbox configuration document.
type Config struct {
	ValueKinds []ValueKind `json:"valueKinds" yaml:"valueKinds"`
}

// ValueKind groups values that share a color and case rule.
// A nil IgnoreCase means the document left it unset.
type ValueKind struct {
	Name       string  `json:"name" yaml:"name"`
	Color      string  `json:"color" yaml:"color"`
	IgnoreCase *bool   `json:"ignoreCase,omitempty" yaml:"ignoreCase,omitempty"`
	Values     []Value `json:"values" yaml:"values"`
}

// Value is a single selectable member. Data is what ends up in the plain
// value; Text is what the user sees and types against. An empty Text is
// treated as unset.
type Value struct {
	Data string `json:"data" yaml:"data"`
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// CaseInsensitive reports the effective case rule of the kind.
func (k ValueKind) CaseInsensitive() bool {
	return k.IgnoreCase == nil || *k.IgnoreCase
}

// Len returns the number of values across all kinds.
func (c Config) Len() int {
	n := 0
	for _, kind := range c.ValueKinds {
		n += len(kind.Values)
	}
	return n
}

// Validate returns a defaulted copy of cfg. IgnoreCase defaults to true and
// Text defaults to Data. A display text seen twice anywhere in the document
// fails with CodeDuplicateValue; no partial result is returned. cfg itself
// is never modified.
func Validate(cfg Config) (Config, error) {
	out := Config{ValueKinds: make([]ValueKind, 0, len(cfg.ValueKinds))}
	seen := make(map[string]string, cfg.Len())

	for _, kind := range cfg.ValueKinds {
		ignoreCase := kind.CaseInsensitive()
		resolved := ValueKind{
			Name:       kind.Name,
			Color:      kind.Color,
			IgnoreCase: &ignoreCase,
			Values:     make([]Value, 0, len(kind.Values)),
		}
		for _, v := range kind.Values {
			text := v.Text
			if text == "" {
				text = v.Data
			}
			if owner, dup := seen[text]; dup {
				return Config{}, duplicateValueError(text, owner, kind.Name)
			}
			seen[text] = kind.Name
			resolved.Values = append(resolved.Values, Value{Data: v.Data, Text: text})
		}
		out.ValueKinds = append(out.ValueKinds, resolved)
	}
	return out, nil
}

// Merge concatenates the kinds of every config in order. The result is not
// validated.
func Merge(cfgs ...Config) Config {
	var out Config
	for _, c := range cfgs {
		out.ValueKinds = append(out.ValueKinds, c.ValueKinds...)
	}
	return out
}

func duplicateValueError(text, firstKind, secondKind string) error {
	msg := fmt.Sprintf("duplicate value %q", text)
	if firstKind == secondKind {
		msg += fmt.Sprintf(" in kind %q", firstKind)
	} else {
		msg += fmt.Sprintf(" in kinds %q and %q", firstKind, secondKind)
	}
	return appErrors.New(appErrors.CodeDuplicateValue, msg, nil)
}
