package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"segbox/internal/ui/theme"
)

// toasts float above the form, so they must explicitly set a background
// color instead of inheriting the terminal default.

func TestStyleSuccessToastUsesThemeBackground(t *testing.T) {
	expectToastBackground(t, styleSuccessToast())
}

func TestStyleErrorToastUsesThemeBackground(t *testing.T) {
	expectToastBackground(t, styleErrorToast())
}

func TestStyleBoxBorderFollowsFocus(t *testing.T) {
	assertAdaptiveColor(t, styleBox(true).GetBorderTopForeground(), theme.Current().BorderFocused(), "focused border")
	assertAdaptiveColor(t, styleBox(false).GetBorderTopForeground(), theme.Current().BorderNormal(), "blurred border")
}

func TestBuildMarkdownRendererPlainWraps(t *testing.T) {
	render := buildMarkdownRenderer("plain", 10)
	out := render("alpha beta gamma delta")
	for _, line := range strings.Split(out, "\n") {
		if lipgloss.Width(line) > 10 {
			t.Fatalf("line %q exceeds wrap width", line)
		}
	}
	if !strings.Contains(out, "gamma") {
		t.Fatalf("expected content preserved, got %q", out)
	}
}

func expectToastBackground(t *testing.T, s lipgloss.Style) {
	t.Helper()

	expected := theme.Current().Background()

	assertAdaptiveColor(t, s.GetBackground(), expected, "body background")

	assertAdaptiveColor(t, s.GetBorderTopBackground(), expected, "border top background")
	assertAdaptiveColor(t, s.GetBorderRightBackground(), expected, "border right background")
	assertAdaptiveColor(t, s.GetBorderBottomBackground(), expected, "border bottom background")
	assertAdaptiveColor(t, s.GetBorderLeftBackground(), expected, "border left background")
}

func assertAdaptiveColor(t *testing.T, got lipgloss.TerminalColor, expected lipgloss.AdaptiveColor, label string) {
	t.Helper()

	adaptive, ok := got.(lipgloss.AdaptiveColor)
	if !ok {
		t.Fatalf("%s should be AdaptiveColor, got %T", label, got)
	}
	if adaptive != expected {
		t.Fatalf("%s mismatch: expected %+v, got %+v", label, expected, adaptive)
	}
}
