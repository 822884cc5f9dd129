// Package theme provides the semantic color system for segbox.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the semantic colors used by the searchbox and its host form.
// All methods return AdaptiveColor for automatic light/dark terminal support.
type Theme interface {
	Primary() lipgloss.AdaptiveColor // Focused border, active dropdown row
	Accent() lipgloss.AdaptiveColor  // Highlighted chip in navigation mode

	Error() lipgloss.AdaptiveColor   // Load and pre-population errors
	Success() lipgloss.AdaptiveColor // Submit confirmation
	Info() lipgloss.AdaptiveColor    // Chip color when a value has none

	Text() lipgloss.AdaptiveColor      // Primary text
	TextMuted() lipgloss.AdaptiveColor // Placeholder, kind names, hints

	Background() lipgloss.AdaptiveColor          // Main background
	BackgroundSecondary() lipgloss.AdaptiveColor // Dropdown and overlay surface

	BorderNormal() lipgloss.AdaptiveColor  // Unfocused border
	BorderFocused() lipgloss.AdaptiveColor // Focused border
}

// Palette is a Theme backed by plain data.
type Palette struct {
	PrimaryColor             lipgloss.AdaptiveColor
	AccentColor              lipgloss.AdaptiveColor
	ErrorColor               lipgloss.AdaptiveColor
	SuccessColor             lipgloss.AdaptiveColor
	InfoColor                lipgloss.AdaptiveColor
	TextColor                lipgloss.AdaptiveColor
	TextMutedColor           lipgloss.AdaptiveColor
	BackgroundColor          lipgloss.AdaptiveColor
	BackgroundSecondaryColor lipgloss.AdaptiveColor
	BorderNormalColor        lipgloss.AdaptiveColor
	BorderFocusedColor       lipgloss.AdaptiveColor
}

func (p Palette) Primary() lipgloss.AdaptiveColor             { return p.PrimaryColor }
func (p Palette) Accent() lipgloss.AdaptiveColor              { return p.AccentColor }
func (p Palette) Error() lipgloss.AdaptiveColor               { return p.ErrorColor }
func (p Palette) Success() lipgloss.AdaptiveColor             { return p.SuccessColor }
func (p Palette) Info() lipgloss.AdaptiveColor                { return p.InfoColor }
func (p Palette) Text() lipgloss.AdaptiveColor                { return p.TextColor }
func (p Palette) TextMuted() lipgloss.AdaptiveColor           { return p.TextMutedColor }
func (p Palette) Background() lipgloss.AdaptiveColor          { return p.BackgroundColor }
func (p Palette) BackgroundSecondary() lipgloss.AdaptiveColor { return p.BackgroundSecondaryColor }
func (p Palette) BorderNormal() lipgloss.AdaptiveColor        { return p.BorderNormalColor }
func (p Palette) BorderFocused() lipgloss.AdaptiveColor       { return p.BorderFocusedColor }

func ac(dark, light string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: dark, Light: light}
}
