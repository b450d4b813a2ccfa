package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the palette for the phase portrait and the TUI chrome.
type Theme struct {
	Name    string
	Axis1   lipgloss.Color
	Axis2   lipgloss.Color
	Orbit   lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
}

var (
	// ThemeClassic follows matplotlib's C0/C1/C2 cycle like the PNG export.
	ThemeClassic = Theme{
		Name:    "classic",
		Axis1:   lipgloss.Color("#1f77b4"),
		Axis2:   lipgloss.Color("#ff7f0e"),
		Orbit:   lipgloss.Color("#2ca02c"),
		Accent:  lipgloss.Color("#00d7d7"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#626262"),
		Warning: lipgloss.Color("#ffd75f"),
	}

	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Axis1:   lipgloss.Color("#00ffff"),
		Axis2:   lipgloss.Color("#ff00ff"),
		Orbit:   lipgloss.Color("#ffff00"),
		Accent:  lipgloss.Color("#ff00ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Warning: lipgloss.Color("#ff8800"),
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Axis1:   lipgloss.Color("#00cc00"),
		Axis2:   lipgloss.Color("#88ff88"),
		Orbit:   lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Warning: lipgloss.Color("#ffff00"),
	}

	Themes = []Theme{ThemeClassic, ThemeCyberpunk, ThemeRetro}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme cycles through Themes.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
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
