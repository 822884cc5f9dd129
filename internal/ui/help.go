package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// helpSection represents a group of keybindings for display.
type helpSection struct {
	title string
	rows  [][]string // Each row: [keys, description]
}

// getHelpSections returns the help content organized into sections.
// Text is derived from binding.Help() so the KeyMap stays the single source.
func getHelpSections(keys KeyMap) []helpSection {
	return []helpSection{
		{
			title: "Suggestions",
			rows: [][]string{
				{keys.Up.Help().Key, keys.Up.Help().Desc},
				{keys.Accept.Help().Key, keys.Accept.Help().Desc},
				{keys.Close.Help().Key, keys.Close.Help().Desc},
			},
		},
		{
			title: "Chips",
			rows: [][]string{
				{keys.Left.Help().Key, keys.Left.Help().Desc},
				{keys.Delete.Help().Key, keys.Delete.Help().Desc},
			},
		},
		{
			title: "Form",
			rows: [][]string{
				{keys.Focus.Help().Key, keys.Focus.Help().Desc},
				{keys.Copy.Help().Key, keys.Copy.Help().Desc},
				{keys.Theme.Help().Key, keys.Theme.Help().Desc},
				{keys.Help.Help().Key, keys.Help.Help().Desc},
				{keys.Quit.Help().Key, keys.Quit.Help().Desc},
			},
		},
	}
}

// helpMarkdown renders the sections as a markdown document.
func helpMarkdown(keys KeyMap) string {
	var b strings.Builder
	b.WriteString("# Searchbox help\n\n")
	b.WriteString("Type to search. Accepted values become chips; the field value is their data joined by spaces.\n\n")
	for _, section := range getHelpSections(keys) {
		fmt.Fprintf(&b, "## %s\n\n", section.title)
		b.WriteString("| Key | Action |\n|---|---|\n")
		for _, row := range section.rows {
			fmt.Fprintf(&b, "| %s | %s |\n", row[0], row[1])
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "_Press %s or Esc to close_\n", keys.Help.Help().Key)
	return b.String()
}

// renderHelpOverlay renders the help document in a bordered box no wider
// than width. format selects the glamour style; "plain" skips markdown.
func renderHelpOverlay(keys KeyMap, format string, width int) string {
	contentWidth := min(max(width-8, 30), 72)
	render := buildMarkdownRenderer(format, contentWidth)
	return styleHelpOverlay().Render(render(helpMarkdown(keys)))
}

// footerHint defines a key hint for the footer bar.
// These are intentionally shorter than the KeyMap help text.
type footerHint struct {
	key  string
	desc string
}

var formFooterHints = []footerHint{
	{"↑↓", "Suggest"},
	{"⏎", "Accept"},
	{"←", "Chips"},
	{"⇥", "Field"},
	{"^Y", "Copy"},
	{"F1", "Help"},
}

// renderFooter renders pill-style key hints, dropping hints from the end
// until they fit width, with status right-aligned.
func renderFooter(width int, status string) string {
	right := styleKeyDesc().Render(status)
	available := width - lipgloss.Width(right) - 2

	hints := formFooterHints
	for len(hints) > 0 && renderHintsWidth(hints) > available {
		hints = hints[:len(hints)-1]
	}

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	left := strings.Join(parts, "  ")

	spacing := max(width-lipgloss.Width(left)-lipgloss.Width(right), 2)
	return left + strings.Repeat(" ", spacing) + right
}

// keyPill renders a single key hint as a pill with description.
func keyPill(key, desc string) string {
	return styleKeyPill().Render(" "+key+" ") + " " + styleKeyDesc().Render(desc)
}

func renderHintsWidth(hints []footerHint) int {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	return lipgloss.Width(strings.Join(parts, "  "))
}
