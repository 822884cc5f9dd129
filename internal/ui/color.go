package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"segbox/internal/ui/theme"
)

// cssColors covers the named colors configuration documents commonly use.
var cssColors = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#ff0000",
	"green":     "#008000",
	"blue":      "#0000ff",
	"yellow":    "#ffff00",
	"orange":    "#ffa500",
	"purple":    "#800080",
	"pink":      "#ffc0cb",
	"gray":      "#808080",
	"grey":      "#808080",
	"cyan":      "#00ffff",
	"magenta":   "#ff00ff",
	"teal":      "#008080",
	"navy":      "#000080",
	"maroon":    "#800000",
	"olive":     "#808000",
	"lime":      "#00ff00",
	"brown":     "#a52a2a",
	"gold":      "#ffd700",
	"silver":    "#c0c0c0",
	"indigo":    "#4b0082",
	"violet":    "#ee82ee",
	"crimson":   "#dc143c",
	"coral":     "#ff7f50",
	"salmon":    "#fa8072",
	"tomato":    "#ff6347",
	"skyblue":   "#87ceeb",
	"steelblue": "#4682b4",
	"tan":       "#d2b48c",
}

const (
	darkChipText  = "#1a1b26"
	lightChipText = "#ffffff"
)

// parseCSSColor understands #rgb, #rrggbb and the names in cssColors.
func parseCSSColor(s string) (colorful.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := cssColors[s]; ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

func isANSIColor(s string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil && n >= 0 && n <= 255
}

// chipColors resolves a configured color to a chip background and a
// readable foreground. Unknown colors fall back to the theme.
func chipColors(css string) (bg, fg lipgloss.TerminalColor) {
	t := theme.Current()
	if c, ok := parseCSSColor(css); ok {
		return lipgloss.Color(c.Hex()), lipgloss.Color(contrastText(c))
	}
	if isANSIColor(css) {
		return lipgloss.Color(strings.TrimSpace(css)), t.Background()
	}
	return t.Info(), t.Background()
}

// contrastText picks dark or light text by perceived lightness.
func contrastText(c colorful.Color) string {
	l, _, _ := c.Lab()
	if l > 0.6 {
		return darkChipText
	}
	return lightChipText
}
