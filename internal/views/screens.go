package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/animtodo/internal/model"
)

type RowData struct {
	Task     model.Task
	Selected bool
	// Indent is the animation offset in columns; zero once a row has settled.
	Indent int
	// Leaving marks a row sliding out after it was deleted or filtered away.
	Leaving bool
}

type ListData struct {
	Rows      []RowData
	EmptyText string
	Focused   bool
}

type InputBarData struct {
	InputView string
	Priority  model.Priority
	Focused   bool
}

type SearchBarData struct {
	InputView string
	SortLabel string
	Focused   bool
}

type ToastData struct {
	Level   string
	Message string
}

func RenderPriorityBadge(p Palette, pr model.Priority) string {
	return lipgloss.NewStyle().
		Foreground(p.PriorityColor(pr)).
		Render(PriorityIcon(pr) + " " + pr.Label())
}

func RenderTaskRow(p Palette, row RowData) string {
	check := "[ ]"
	if row.Task.Completed {
		check = "[x]"
	}
	cursor := "  "
	if row.Selected {
		cursor = "› "
	}

	titleStyle := lipgloss.NewStyle().Foreground(p.Text)
	bg := p.Row
	if row.Task.Completed {
		titleStyle = titleStyle.Foreground(p.Muted).Strikethrough(true).Faint(true)
		bg = p.DoneRow
	}
	if row.Selected {
		titleStyle = titleStyle.Bold(true)
	}
	if row.Leaving {
		titleStyle = titleStyle.Foreground(p.Muted).Faint(true)
	}

	badge := RenderPriorityBadge(p, row.Task.Priority)
	left := fmt.Sprintf("%s%s %s", cursor, check, titleStyle.Render(row.Task.Title))
	width := panelWidth - 4 - row.Indent
	gap := width - lipgloss.Width(left) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}
	line := lipgloss.NewStyle().Background(bg).Render(left + strings.Repeat(" ", gap) + badge)
	return strings.Repeat(" ", row.Indent) + line
}

func RenderTaskList(p Palette, data ListData) string {
	if len(data.Rows) == 0 {
		return lipgloss.NewStyle().Foreground(p.Muted).Italic(true).Render(data.EmptyText)
	}
	lines := make([]string, 0, len(data.Rows))
	for _, row := range data.Rows {
		lines = append(lines, RenderTaskRow(p, row))
	}
	return strings.Join(lines, "\n")
}

func RenderInputBar(p Palette, data InputBarData) string {
	label := lipgloss.NewStyle().Foreground(p.Muted).Render("new ")
	if data.Focused {
		label = lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Render("new ")
	}
	return label + data.InputView + "  " + RenderPriorityBadge(p, data.Priority)
}

func RenderSearchBar(p Palette, data SearchBarData) string {
	label := lipgloss.NewStyle().Foreground(p.Muted).Render("find ")
	if data.Focused {
		label = lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Render("find ")
	}
	sort := lipgloss.NewStyle().Foreground(p.Muted).Render("sort: " + data.SortLabel)
	return label + data.InputView + "  " + sort
}

func RenderToasts(p Palette, toasts []ToastData) string {
	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		lines = append(lines, RenderToast(p, t))
	}
	return strings.Join(lines, "\n")
}

func RenderToast(p Palette, t ToastData) string {
	color := p.Success
	icon := "✓"
	switch t.Level {
	case "error":
		color = p.Danger
		icon = "✗"
	case "info":
		color = p.Muted
		icon = "•"
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Foreground(color).
		Padding(0, 1).
		Render(icon + " " + t.Message)
}

func RenderCommandPalette(p Palette, active bool, inputView string) string {
	if !active {
		return ""
	}
	return lipgloss.NewStyle().Foreground(p.Primary).Render(":") + inputView
}
