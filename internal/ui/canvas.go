package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"
)

// Canvas composes the form body and its floating layers (help, toasts) into
// one frame through a cellbuf screen.
type Canvas struct {
	screen *cellbuf.Screen
	writer *cellbuf.ScreenWriter
	width  int
	height int
}

// NewCanvas creates a width x height canvas. Non-positive sizes become 1.
func NewCanvas(width, height int) *Canvas {
	width = max(width, 1)
	height = max(height, 1)
	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{})
	return &Canvas{
		screen: screen,
		writer: cellbuf.NewScreenWriter(screen),
		width:  width,
		height: height,
	}
}

// DrawStringAt writes block with its top-left corner at x,y, cropping
// anything outside the canvas.
func (c *Canvas) DrawStringAt(x, y int, block string) {
	if c == nil || block == "" {
		return
	}
	c.drawLines(max(x, 0), max(y, 0), splitLines(block))
}

// Center draws block centered horizontally and vertically within the rows
// left after topMargin and bottomMargin.
func (c *Canvas) Center(block string, topMargin, bottomMargin int) {
	lines := splitLines(block)
	if c == nil || len(lines) == 0 {
		return
	}
	w := min(maxLineWidth(lines), c.width)
	h := len(lines)

	topMargin = max(topMargin, 0)
	bottomMargin = max(bottomMargin, 0)
	usable := max(c.height-topMargin-bottomMargin, h)

	y := topMargin + (usable-h)/2
	y = min(y, c.height-bottomMargin-h)
	y = max(y, topMargin)
	c.drawLines(max((c.width-w)/2, 0), max(y, 0), lines)
}

// BottomRight anchors block to the bottom-right corner, inset by padding.
func (c *Canvas) BottomRight(block string, padding int) {
	lines := splitLines(block)
	if c == nil || len(lines) == 0 {
		return
	}
	padding = max(padding, 0)
	x := max(c.width-maxLineWidth(lines)-padding, 0)
	y := max(c.height-len(lines)-padding, 0)
	c.drawLines(x, y, lines)
}

func (c *Canvas) drawLines(x, y int, lines []string) {
	for i, line := range lines {
		row := y + i
		if row >= c.height {
			break
		}
		if line == "" {
			continue
		}
		c.writer.PrintCropAt(x, row, line, "")
	}
}

// Render returns the composed frame and releases the screen.
func (c *Canvas) Render() string {
	if c == nil || c.screen == nil {
		return ""
	}
	raw := cellbuf.Render(c.screen)
	_ = c.screen.Close()
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

func splitLines(block string) []string {
	if block == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(block, "\r\n", "\n"), "\n")
}

func maxLineWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		widest = max(widest, lipgloss.Width(line))
	}
	return widest
}

// stripANSI removes every escape sequence from s.
func stripANSI(s string) string {
	return ansi.Strip(s)
}
