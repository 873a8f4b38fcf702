package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin palettes, true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

// Theme is the colour set handed to the renderer. It is plain data chosen
// once at startup.
type Theme struct {
	Text      lipgloss.Color
	Subtext   lipgloss.Color
	Primary   lipgloss.Color
	Danger    lipgloss.Color
	Surface   lipgloss.Color
	Indicator lipgloss.Color
	Border    lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
}

// Mocha is the dark theme.
func Mocha() Theme {
	return Theme{
		Text:      "#cdd6f4",
		Subtext:   "#a6adc8",
		Primary:   "#89b4fa",
		Danger:    "#f38ba8",
		Surface:   "#313244",
		Indicator: "#45475a",
		Border:    "#585b70",
		Success:   "#a6e3a1",
		Warning:   "#f9e2af",
	}
}

// Latte is the light theme.
func Latte() Theme {
	return Theme{
		Text:      "#4c4f69",
		Subtext:   "#6c6f85",
		Primary:   "#1e66f5",
		Danger:    "#d20f39",
		Surface:   "#e6e9ef",
		Indicator: "#ccd0da",
		Border:    "#9ca0b0",
		Success:   "#40a02b",
		Warning:   "#df8e1d",
	}
}

// ThemeFor picks the palette for the configured appearance.
func ThemeFor(dark bool) Theme {
	if dark {
		return Mocha()
	}
	return Latte()
}

type styles struct {
	title     lipgloss.Style
	subtle    lipgloss.Style
	bar       lipgloss.Style
	tab       lipgloss.Style
	tabActive lipgloss.Style
	indicator lipgloss.Style
	panic     lipgloss.Style
	modal     lipgloss.Style
	danger    lipgloss.Style
	success   lipgloss.Style
	warning   lipgloss.Style
	status    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		subtle:    lipgloss.NewStyle().Foreground(t.Subtext),
		bar:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border),
		tab:       lipgloss.NewStyle().Foreground(t.Text),
		tabActive: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		indicator: lipgloss.NewStyle().Foreground(t.Indicator),
		panic:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(t.Danger).Padding(0, 2),
		modal:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Danger).Padding(0, 1),
		danger:    lipgloss.NewStyle().Bold(true).Foreground(t.Danger),
		success:   lipgloss.NewStyle().Foreground(t.Success),
		warning:   lipgloss.NewStyle().Foreground(t.Warning),
		status:    lipgloss.NewStyle().Foreground(t.Subtext).Background(t.Surface).Padding(0, 1),
	}
}
