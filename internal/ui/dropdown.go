package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"segbox/internal/lookup"
	"segbox/internal/ui/theme"
)

const defaultMaxVisible = 5

// Dropdown tracks the candidate list under a searchbox and which candidate,
// if any, has keyboard focus. active == -1 means no keyboard selection.
type Dropdown struct {
	// Configuration
	MaxVisible int

	// State
	candidates   []lookup.Entry
	active       int
	open         bool
	scrollOffset int
}

// NewDropdown creates a closed dropdown.
func NewDropdown() Dropdown {
	return Dropdown{
		MaxVisible: defaultMaxVisible,
		active:     -1,
	}
}

// WithMaxVisible sets how many candidate rows are shown at once.
func (d Dropdown) WithMaxVisible(n int) Dropdown {
	if n > 0 {
		d.MaxVisible = n
	}
	return d
}

// Recompute closes the dropdown, matches typed against table and reopens it
// when anything matched.
func (d *Dropdown) Recompute(typed string, table *lookup.Table) {
	d.Close()
	matches := table.Match(typed)
	if len(matches) == 0 {
		return
	}
	d.candidates = matches
	d.open = true
}

// MoveDown advances the keyboard selection, wrapping past the last candidate.
func (d *Dropdown) MoveDown() {
	if len(d.candidates) == 0 {
		return
	}
	d.active++
	if d.active >= len(d.candidates) {
		d.active = 0
	}
	d.adjustScrollOffset()
}

// MoveUp moves the keyboard selection back, wrapping before the first
// candidate. From no selection it lands on the last candidate.
func (d *Dropdown) MoveUp() {
	if len(d.candidates) == 0 {
		return
	}
	d.active--
	if d.active < 0 {
		d.active = len(d.candidates) - 1
	}
	d.adjustScrollOffset()
}

// Accept returns the candidate at i. It only succeeds while open.
func (d Dropdown) Accept(i int) (lookup.Entry, bool) {
	if !d.open || i < 0 || i >= len(d.candidates) {
		return lookup.Entry{}, false
	}
	return d.candidates[i], true
}

// EnterTarget is the candidate enter should accept: the active one, or the
// only one when exactly one candidate exists.
func (d Dropdown) EnterTarget() (int, bool) {
	if !d.open {
		return 0, false
	}
	if d.active > -1 && d.active < len(d.candidates) {
		return d.active, true
	}
	if len(d.candidates) == 1 {
		return 0, true
	}
	return 0, false
}

// Close clears the candidates and selection.
func (d *Dropdown) Close() {
	d.candidates = nil
	d.open = false
	d.active = -1
	d.scrollOffset = 0
}

// IsOpen reports whether the dropdown is showing candidates.
func (d Dropdown) IsOpen() bool { return d.open }

// HasCandidates reports whether any candidate is listed.
func (d Dropdown) HasCandidates() bool { return len(d.candidates) > 0 }

// Active returns the keyboard-selected index, or -1.
func (d Dropdown) Active() int { return d.active }

// Candidates returns a copy of the candidate list.
func (d Dropdown) Candidates() []lookup.Entry {
	out := make([]lookup.Entry, len(d.candidates))
	copy(out, d.candidates)
	return out
}

func (d *Dropdown) adjustScrollOffset() {
	if d.active < 0 {
		return
	}
	if d.active < d.scrollOffset {
		d.scrollOffset = d.active
	}
	if d.active >= d.scrollOffset+d.maxVisible() {
		d.scrollOffset = d.active - d.maxVisible() + 1
	}
	maxOffset := len(d.candidates) - d.maxVisible()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if d.scrollOffset > maxOffset {
		d.scrollOffset = maxOffset
	}
	if d.scrollOffset < 0 {
		d.scrollOffset = 0
	}
}

func (d Dropdown) maxVisible() int {
	if d.MaxVisible <= 0 {
		return defaultMaxVisible
	}
	return d.MaxVisible
}

func (d Dropdown) visibleRange() (start, end int) {
	start = d.scrollOffset
	end = start + d.maxVisible()
	if end > len(d.candidates) {
		end = len(d.candidates)
	}
	return start, end
}

// CandidateAt maps a line of the rendered dropdown to a candidate index.
// Scroll indicator lines map to nothing.
func (d Dropdown) CandidateAt(line int) (int, bool) {
	if !d.open || line < 0 {
		return 0, false
	}
	if d.scrollOffset > 0 {
		if line == 0 {
			return 0, false
		}
		line--
	}
	start, end := d.visibleRange()
	idx := start + line
	if idx >= end {
		return 0, false
	}
	return idx, true
}

// View renders the visible candidate rows. A closed dropdown renders "".
func (d Dropdown) View(width int) string {
	if !d.open || len(d.candidates) == 0 {
		return ""
	}
	if width < 12 {
		width = 12
	}

	var lines []string
	if d.scrollOffset > 0 {
		lines = append(lines, styleDropdownHint().Render("  ▲ more above"))
	}
	start, end := d.visibleRange()
	for i := start; i < end; i++ {
		lines = append(lines, d.renderRow(d.candidates[i], i == d.active, width))
	}
	if end < len(d.candidates) {
		lines = append(lines, styleDropdownHint().Render("  ▼ more below"))
	}
	return strings.Join(lines, "\n")
}

func (d Dropdown) renderRow(e lookup.Entry, active bool, width int) string {
	prefix := "  "
	textStyle := styleDropdownOption()
	if active {
		prefix = "▸ "
		textStyle = styleDropdownHighlight()
	}
	swatchColor, _ := chipColors(e.Color)
	swatch := lipgloss.NewStyle().Foreground(swatchColor).Render("● ")

	kind := ""
	if e.Kind != "" {
		kind = styleDropdownHint().Render(ansi.Truncate(e.Kind, width/3, "…"))
	}
	kindWidth := lipgloss.Width(kind)

	// prefix + swatch + text + gap + kind
	textRoom := width - 4 - kindWidth - 1
	if textRoom < 4 {
		textRoom = 4
	}
	text := textStyle.Render(ansi.Truncate(e.Text, textRoom, "…"))

	row := prefix + swatch + text
	gap := width - lipgloss.Width(row) - kindWidth
	if gap < 1 {
		gap = 1
	}
	return row + strings.Repeat(" ", gap) + kind
}

func styleDropdownOption() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Text())
}

func styleDropdownHighlight() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Primary()).
		Bold(true)
}

func styleDropdownHint() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted())
}
