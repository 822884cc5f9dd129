package theme

// DefaultName is the theme used when none is configured.
const DefaultName = "tokyonight"

var tokyoNight = Palette{
	PrimaryColor:             ac("#82aaff", "#2e7de9"),
	AccentColor:              ac("#ff966c", "#b15c00"),
	ErrorColor:               ac("#ff757f", "#f52a65"),
	SuccessColor:             ac("#c3e88d", "#587539"),
	InfoColor:                ac("#7dcfff", "#0db9d7"),
	TextColor:                ac("#c8d3f5", "#3760bf"),
	TextMutedColor:           ac("#636da6", "#848cb5"),
	BackgroundColor:          ac("#222436", "#e1e2e7"),
	BackgroundSecondaryColor: ac("#2f334d", "#c8c9ce"),
	BorderNormalColor:        ac("#3b4261", "#a8aecb"),
	BorderFocusedColor:       ac("#82aaff", "#2e7de9"),
}

var gruvbox = Palette{
	PrimaryColor:             ac("#83a598", "#076678"),
	AccentColor:              ac("#fabd2f", "#b57614"),
	ErrorColor:               ac("#fb4934", "#9d0006"),
	SuccessColor:             ac("#b8bb26", "#79740e"),
	InfoColor:                ac("#83a598", "#076678"),
	TextColor:                ac("#ebdbb2", "#3c3836"),
	TextMutedColor:           ac("#a89984", "#7c6f64"),
	BackgroundColor:          ac("#282828", "#fbf1c7"),
	BackgroundSecondaryColor: ac("#504945", "#ebdbb2"),
	BorderNormalColor:        ac("#504945", "#bdae93"),
	BorderFocusedColor:       ac("#83a598", "#076678"),
}

var catppuccin = Palette{
	PrimaryColor:             ac("#89b4fa", "#1e66f5"),
	AccentColor:              ac("#fab387", "#fe640b"),
	ErrorColor:               ac("#f38ba8", "#d20f39"),
	SuccessColor:             ac("#a6e3a1", "#40a02b"),
	InfoColor:                ac("#89b4fa", "#1e66f5"),
	TextColor:                ac("#cdd6f4", "#4c4f69"),
	TextMutedColor:           ac("#6c7086", "#9ca0b0"),
	BackgroundColor:          ac("#1e1e2e", "#eff1f5"),
	BackgroundSecondaryColor: ac("#313244", "#e6e9ef"),
	BorderNormalColor:        ac("#6c7086", "#9ca0b0"),
	BorderFocusedColor:       ac("#89b4fa", "#1e66f5"),
}

var dracula = Palette{
	PrimaryColor:             ac("#bd93f9", "#7e57c2"),
	AccentColor:              ac("#f1fa8c", "#f9a825"),
	ErrorColor:               ac("#ff5555", "#d32f2f"),
	SuccessColor:             ac("#50fa7b", "#388e3c"),
	InfoColor:                ac("#8be9fd", "#1976d2"),
	TextColor:                ac("#f8f8f2", "#212121"),
	TextMutedColor:           ac("#6272a4", "#757575"),
	BackgroundColor:          ac("#282a36", "#ffffff"),
	BackgroundSecondaryColor: ac("#44475a", "#e0e0e0"),
	BorderNormalColor:        ac("#6272a4", "#bdbdbd"),
	BorderFocusedColor:       ac("#bd93f9", "#7e57c2"),
}

var nord = Palette{
	PrimaryColor:             ac("#88C0D0", "#5E81AC"),
	AccentColor:              ac("#8FBCBB", "#8FBCBB"),
	ErrorColor:               ac("#BF616A", "#BF616A"),
	SuccessColor:             ac("#A3BE8C", "#A3BE8C"),
	InfoColor:                ac("#88C0D0", "#5E81AC"),
	TextColor:                ac("#ECEFF4", "#2E3440"),
	TextMutedColor:           ac("#8B95A7", "#3B4252"),
	BackgroundColor:          ac("#2E3440", "#ECEFF4"),
	BackgroundSecondaryColor: ac("#3B4252", "#E5E9F0"),
	BorderNormalColor:        ac("#434C5E", "#4C566A"),
	BorderFocusedColor:       ac("#4C566A", "#434C5E"),
}

// mono relies on the terminal's own colors; it pairs with --no-color.
var mono = Palette{
	PrimaryColor:             ac("15", "0"),
	AccentColor:              ac("15", "0"),
	ErrorColor:               ac("9", "1"),
	SuccessColor:             ac("10", "2"),
	InfoColor:                ac("7", "8"),
	TextColor:                ac("15", "0"),
	TextMutedColor:           ac("8", "7"),
	BackgroundColor:          ac("0", "15"),
	BackgroundSecondaryColor: ac("236", "254"),
	BorderNormalColor:        ac("8", "7"),
	BorderFocusedColor:       ac("15", "0"),
}

func init() {
	RegisterTheme(DefaultName, tokyoNight)
	RegisterTheme("gruvbox", gruvbox)
	RegisterTheme("catppuccin", catppuccin)
	RegisterTheme("dracula", dracula)
	RegisterTheme("nord", nord)
	RegisterTheme("mono", mono)
}
