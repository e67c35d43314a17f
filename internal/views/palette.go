package views

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/animtodo/internal/model"
	"github.com/sandeepkv93/animtodo/internal/theme"
)

// Palette is the colour set for one resolved theme.
type Palette struct {
	Name    theme.Name
	Primary lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Row     lipgloss.Color
	DoneRow lipgloss.Color
	Success lipgloss.Color
	Danger  lipgloss.Color
	High    lipgloss.Color
	Medium  lipgloss.Color
	Low     lipgloss.Color
}

var (
	lightPalette = Palette{
		Name:    theme.Light,
		Primary: lipgloss.Color("#18181B"),
		Text:    lipgloss.Color("#27272A"),
		Muted:   lipgloss.Color("#71717A"),
		Border:  lipgloss.Color("#D4D4D8"),
		Row:     lipgloss.Color("#F4F4F5"),
		DoneRow: lipgloss.Color("#DCFCE7"),
		Success: lipgloss.Color("#15803D"),
		Danger:  lipgloss.Color("#DC2626"),
		High:    lipgloss.Color("#EF4444"),
		Medium:  lipgloss.Color("#CA8A04"),
		Low:     lipgloss.Color("#16A34A"),
	}
	darkPalette = Palette{
		Name:    theme.Dark,
		Primary: lipgloss.Color("#FAFAFA"),
		Text:    lipgloss.Color("#E4E4E7"),
		Muted:   lipgloss.Color("#A1A1AA"),
		Border:  lipgloss.Color("#3F3F46"),
		Row:     lipgloss.Color("#27272A"),
		DoneRow: lipgloss.Color("#14532D"),
		Success: lipgloss.Color("#4ADE80"),
		Danger:  lipgloss.Color("#F87171"),
		High:    lipgloss.Color("#EF4444"),
		Medium:  lipgloss.Color("#EAB308"),
		Low:     lipgloss.Color("#22C55E"),
	}
)

// PaletteFor expects a resolved theme; system falls back to dark.
func PaletteFor(n theme.Name) Palette {
	if n == theme.Light {
		return lightPalette
	}
	return darkPalette
}

func (p Palette) PriorityColor(pr model.Priority) lipgloss.Color {
	switch pr {
	case model.PriorityHigh:
		return p.High
	case model.PriorityLow:
		return p.Low
	default:
		return p.Medium
	}
}

func PriorityIcon(pr model.Priority) string {
	switch pr {
	case model.PriorityHigh:
		return "▲"
	case model.PriorityLow:
		return "▼"
	default:
		return "▶"
	}
}

// ThemeIcon shows the moon while light is active and the sun otherwise.
func ThemeIcon(current theme.Name) string {
	if current == theme.Light {
		return "☾"
	}
	return "☀"
}
