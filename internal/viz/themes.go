package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the lab view.
type Theme struct {
	Name   string
	Canvas lipgloss.Color
	Title  lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Active lipgloss.Color
	Idle   lipgloss.Color
	Border lipgloss.Color
}

var (
	ThemeMinimal = Theme{
		Name:   "minimal",
		Canvas: lipgloss.Color("#ffffff"),
		Title:  lipgloss.Color("#ffffff"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#dddddd"),
		Muted:  lipgloss.Color("#888888"),
		Active: lipgloss.Color("#00ff00"),
		Idle:   lipgloss.Color("#666666"),
		Border: lipgloss.Color("#444444"),
	}

	ThemeChalkboard = Theme{
		Name:   "chalkboard",
		Canvas: lipgloss.Color("#f0f0e0"),
		Title:  lipgloss.Color("#ffe680"),
		Accent: lipgloss.Color("#80d0ff"),
		Text:   lipgloss.Color("#e0e0d0"),
		Muted:  lipgloss.Color("#7a8a7a"),
		Active: lipgloss.Color("#ff9966"),
		Idle:   lipgloss.Color("#5a6a5a"),
		Border: lipgloss.Color("#3a4a3a"),
	}

	ThemePhosphor = Theme{
		Name:   "phosphor",
		Canvas: lipgloss.Color("#00ff00"), // green phosphor
		Title:  lipgloss.Color("#88ff88"),
		Accent: lipgloss.Color("#ffff00"),
		Text:   lipgloss.Color("#00dd00"),
		Muted:  lipgloss.Color("#005500"),
		Active: lipgloss.Color("#88ff88"),
		Idle:   lipgloss.Color("#006600"),
		Border: lipgloss.Color("#003300"),
	}

	ThemeSpectrum = Theme{
		Name:   "spectrum",
		Canvas: lipgloss.Color("#00ffff"),
		Title:  lipgloss.Color("#ff00ff"),
		Accent: lipgloss.Color("#ffff00"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666688"),
		Active: lipgloss.Color("#ff4444"),
		Idle:   lipgloss.Color("#444466"),
		Border: lipgloss.Color("#444466"),
	}

	Themes = []Theme{
		ThemeMinimal,
		ThemeChalkboard,
		ThemePhosphor,
		ThemeSpectrum,
	}
)

// GetTheme returns a theme by name, falling back to minimal.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMinimal
}

// NextTheme is the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
