package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// boxChrome is the horizontal space taken by the border and padding.
const boxChrome = 4

// View renders the label, the bordered chip-and-input box, a status line
// when loading or failed, and the dropdown while it is open.
func (s *Searchbox) View() string {
	inner := s.innerWidth()

	elements := renderChips(s.content.Chips(), s.navIndex)
	s.input.Width = max(inner/2, 8)
	elements = append(elements, s.input.View())
	body := wrapElements(elements, inner)

	box := styleBox(s.focused).Width(inner + 2).Render(body)

	var sections []string
	if label := s.field.Label; label != "" {
		sections = append(sections, styleLabel().Render(label))
	}
	sections = append(sections, box)
	if status := s.statusLine(inner); status != "" {
		sections = append(sections, status)
	}
	if dd := s.dropdown.View(inner); dd != "" {
		sections = append(sections, dd)
	}
	return strings.Join(sections, "\n")
}

func (s *Searchbox) innerWidth() int {
	return max(s.Width-boxChrome, 12)
}

func (s *Searchbox) statusLine(width int) string {
	switch {
	case s.loading:
		return styleMuted().Render("Loading values...")
	case s.err != nil:
		return styleErrorLine().Render(ansi.Truncate(s.err.Error(), width, "…"))
	}
	return ""
}

// DropdownTop returns the line of View at which the dropdown starts, or -1
// when it is closed.
func (s *Searchbox) DropdownTop() int {
	if !s.dropdown.IsOpen() {
		return -1
	}
	view := s.View()
	dd := s.dropdown.View(s.innerWidth())
	return lipgloss.Height(view) - lipgloss.Height(dd)
}

// CandidateAtLine maps a line of View to a candidate index.
func (s *Searchbox) CandidateAtLine(line int) (int, bool) {
	top := s.DropdownTop()
	if top < 0 {
		return 0, false
	}
	return s.dropdown.CandidateAt(line - top)
}
