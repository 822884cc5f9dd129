package ui

import (
	"fmt"
	"strings"

	appErrors "segbox/internal/errors"
	"segbox/internal/lookup"
)

// Segment is one element of a searchbox's content: either an editable
// TextSegment or an immutable ChipSegment.
type Segment interface {
	isSegment()
}

// TextSegment is an editable run of typed text.
type TextSegment struct {
	Content string
}

// ChipSegment is an accepted value. It is never edited, only removed.
type ChipSegment struct {
	Text  string
	Data  string
	Color string
}

func (TextSegment) isSegment() {}
func (ChipSegment) isSegment() {}

func chipFromEntry(e lookup.Entry) ChipSegment {
	return ChipSegment{Text: e.Text, Data: e.Data, Color: e.Color}
}

// Content is the ordered segment sequence behind a searchbox. After every
// exported mutation it ends with exactly one TextSegment (the sentinel,
// possibly empty) and holds no two adjacent TextSegments.
type Content struct {
	segments []Segment
}

// NewContent returns content holding only an empty sentinel run.
func NewContent() Content {
	return Content{segments: []Segment{TextSegment{}}}
}

// Segments returns a copy of the sequence.
func (c Content) Segments() []Segment {
	out := make([]Segment, len(c.segments))
	copy(out, c.segments)
	return out
}

// Chips returns the chips in order.
func (c Content) Chips() []ChipSegment {
	var chips []ChipSegment
	for _, seg := range c.segments {
		if chip, ok := seg.(ChipSegment); ok {
			chips = append(chips, chip)
		}
	}
	return chips
}

// ChipCount returns the number of chips.
func (c Content) ChipCount() int {
	n := 0
	for _, seg := range c.segments {
		if _, ok := seg.(ChipSegment); ok {
			n++
		}
	}
	return n
}

// PlainValue is the space-joined data of every chip, recomputed on each call.
func (c Content) PlainValue() string {
	chips := c.Chips()
	data := make([]string, len(chips))
	for i, chip := range chips {
		data[i] = chip.Data
	}
	return strings.Join(data, " ")
}

// CurrentTypedFragment returns the trailing text run, or "" when the
// sequence does not end in one.
func (c Content) CurrentTypedFragment() string {
	if len(c.segments) == 0 {
		return ""
	}
	if text, ok := c.segments[len(c.segments)-1].(TextSegment); ok {
		return text.Content
	}
	return ""
}

// AcceptCandidate replaces the trailing text run with a chip for e and
// re-establishes the sentinel.
func (c *Content) AcceptCandidate(e lookup.Entry) ChipSegment {
	chip := chipFromEntry(e)
	if n := len(c.segments); n > 0 {
		if _, ok := c.segments[n-1].(TextSegment); ok {
			c.segments = c.segments[:n-1]
		}
	}
	c.segments = append(c.segments, chip)
	c.EnsureTrailingEditableRun()
	return chip
}

// HandleContentChanged applies an edit reported by the input surface.
// fragment is the new trailing text; deletedBackward is set when the edit
// was a backspace. A backspace on an already empty run removes the last
// chip, which is returned.
func (c *Content) HandleContentChanged(fragment string, deletedBackward bool) (ChipSegment, bool) {
	var removed ChipSegment
	var ok bool
	if deletedBackward && fragment == "" && c.CurrentTypedFragment() == "" {
		removed, ok = c.removeLastChip()
	}
	c.setTypedFragment(fragment)
	c.EnsureTrailingEditableRun()
	return removed, ok
}

// RemoveChip removes the i-th chip (counting chips only).
func (c *Content) RemoveChip(i int) (ChipSegment, bool) {
	n := -1
	for pos, seg := range c.segments {
		chip, ok := seg.(ChipSegment)
		if !ok {
			continue
		}
		n++
		if n == i {
			c.segments = append(c.segments[:pos:pos], c.segments[pos+1:]...)
			c.EnsureTrailingEditableRun()
			return chip, true
		}
	}
	return ChipSegment{}, false
}

func (c *Content) removeLastChip() (ChipSegment, bool) {
	count := c.ChipCount()
	if count == 0 {
		return ChipSegment{}, false
	}
	return c.RemoveChip(count - 1)
}

func (c *Content) setTypedFragment(fragment string) {
	c.EnsureTrailingEditableRun()
	c.segments[len(c.segments)-1] = TextSegment{Content: fragment}
}

// EnsureTrailingEditableRun merges adjacent text runs and appends an empty
// run when the sequence is empty or ends on a chip.
func (c *Content) EnsureTrailingEditableRun() {
	merged := c.segments[:0:0]
	for _, seg := range c.segments {
		if text, ok := seg.(TextSegment); ok && len(merged) > 0 {
			if prev, ok := merged[len(merged)-1].(TextSegment); ok {
				merged[len(merged)-1] = TextSegment{Content: prev.Content + text.Content}
				continue
			}
		}
		merged = append(merged, seg)
	}
	if len(merged) == 0 {
		merged = append(merged, TextSegment{})
	} else if _, ok := merged[len(merged)-1].(TextSegment); !ok {
		merged = append(merged, TextSegment{})
	}
	c.segments = merged
}

// Prepopulate appends a chip for each data token in plain, resolved through
// rev. It stops at the first token rev cannot resolve and returns a
// CodeUnresolvableToken error; chips added before that token are kept.
func (c *Content) Prepopulate(plain string, rev *lookup.Reverse) error {
	fragment := c.CurrentTypedFragment()
	if n := len(c.segments); n > 0 {
		if _, ok := c.segments[n-1].(TextSegment); ok {
			c.segments = c.segments[:n-1]
		}
	}
	defer func() {
		c.segments = append(c.segments, TextSegment{Content: fragment})
		c.EnsureTrailingEditableRun()
	}()

	for _, token := range lookup.Tokenize(plain) {
		entry, ok := rev.Resolve(token)
		if !ok {
			return unresolvableTokenError(token)
		}
		c.segments = append(c.segments, chipFromEntry(entry))
	}
	return nil
}

// Reset drops every segment.
func (c *Content) Reset() {
	c.segments = []Segment{TextSegment{}}
}

func unresolvableTokenError(token string) error {
	return appErrors.New(appErrors.CodeUnresolvableToken, fmt.Sprintf("no value with data %q", token), nil)
}
