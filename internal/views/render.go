package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/animtodo/internal/theme"
)

const panelWidth = 72

type AppData struct {
	Palette    Palette
	Title      string
	Subtitle   string
	ThemeIcon  string
	Counts     string
	InputBar   string
	SearchBar  string
	ListView   string
	Toasts     []ToastData
	Command    string
	HelpPanel  string
	StatusLine string
	StatusErr  bool
	Footer     string
}

func RenderApp(data AppData) string {
	p := data.Palette
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	mutedStyle := lipgloss.NewStyle().Foreground(p.Muted)
	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1).
		Width(panelWidth)

	titleLine := titleStyle.Render(data.Title)
	gap := panelWidth - 2 - lipgloss.Width(titleLine) - lipgloss.Width(data.ThemeIcon)
	if gap < 1 {
		gap = 1
	}
	header := titleLine + strings.Repeat(" ", gap) + data.ThemeIcon

	body := []string{
		header,
		mutedStyle.Render(data.Subtitle),
		mutedStyle.Render(data.Counts),
		"",
		data.InputBar,
		data.SearchBar,
		"",
		data.ListView,
	}
	lines := []string{panelStyle.Render(strings.Join(body, "\n"))}
	if len(data.Toasts) > 0 {
		lines = append(lines, RenderToasts(p, data.Toasts))
	}
	if data.Command != "" {
		lines = append(lines, data.Command)
	}
	if data.HelpPanel != "" {
		lines = append(lines, panelStyle.Render(data.HelpPanel))
	}
	if data.StatusLine != "" {
		statusStyle := lipgloss.NewStyle().Foreground(p.Success)
		if data.StatusErr {
			statusStyle = lipgloss.NewStyle().Foreground(p.Danger)
		}
		lines = append(lines, statusStyle.Render(data.StatusLine))
	}
	if data.Footer != "" {
		lines = append(lines, mutedStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders md with the glamour style matching the theme and
// falls back to the raw text if rendering fails.
func RenderMarkdown(md string, resolved theme.Name) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "dark"
	if resolved == theme.Light {
		style = "light"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
