package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"segbox/internal/ui/theme"
)

type chipState int

const (
	chipStateNormal chipState = iota
	chipStateHighlight
)

// Powerline characters for pill-shaped chips
const (
	pillLeft  = "\ue0b6" // Left half-circle (rounded left edge)
	pillRight = "\ue0b4" // Right half-circle (rounded right edge)
)

// maxChipLabel caps a chip label so a single long value cannot take a row.
const maxChipLabel = 32

// renderPillChip renders a chip as a pill in its configured color. A
// highlighted chip (chip navigation) is drawn in the theme accent instead.
func renderPillChip(chip ChipSegment, state chipState) string {
	bgColor, fgColor := chipColors(chip.Color)
	if state == chipStateHighlight {
		t := theme.Current()
		bgColor = t.Accent()
		fgColor = t.Background()
	}

	leftCap := lipgloss.NewStyle().Foreground(bgColor).Render(pillLeft)

	labelStyle := lipgloss.NewStyle().
		Foreground(fgColor).
		Background(bgColor)
	if state == chipStateHighlight {
		labelStyle = labelStyle.Bold(true)
	}
	labelText := labelStyle.Render(ansi.Truncate(chip.Text, maxChipLabel, "…"))

	rightCap := lipgloss.NewStyle().Foreground(bgColor).Render(pillRight)

	return leftCap + labelText + rightCap
}

// renderChips renders every chip, highlighting navIndex.
func renderChips(chips []ChipSegment, navIndex int) []string {
	out := make([]string, 0, len(chips))
	for i, chip := range chips {
		state := chipStateNormal
		if i == navIndex {
			state = chipStateHighlight
		}
		out = append(out, renderPillChip(chip, state))
	}
	return out
}

// wrapElements lays rendered elements out in rows no wider than width.
func wrapElements(elements []string, width int) string {
	if width <= 0 || len(elements) == 0 {
		return strings.Join(elements, " ")
	}

	var lines []string
	var currentLine []string
	currentWidth := 0

	for _, elem := range elements {
		elemWidth := lipgloss.Width(elem)
		spaceNeeded := elemWidth
		if len(currentLine) > 0 {
			spaceNeeded++ // +1 for space separator
		}

		if currentWidth+spaceNeeded > width && len(currentLine) > 0 {
			lines = append(lines, strings.Join(currentLine, " "))
			currentLine = []string{elem}
			currentWidth = elemWidth
		} else {
			currentLine = append(currentLine, elem)
			currentWidth += spaceNeeded
		}
	}

	if len(currentLine) > 0 {
		lines = append(lines, strings.Join(currentLine, " "))
	}

	return strings.Join(lines, "\n")
}
