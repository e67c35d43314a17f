package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/animtodo/internal/commands"
)

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active", IsError: false}
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m.closePalette()
	}

	prevErr := m.LastError
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, ok := m.addTask(a.Title, a.Priority)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "task title cannot be empty"}
			}
			return commands.Result{Message: fmt.Sprintf("added #%d %s", task.ID, task.Title)}, nil
		},
		Delete: func(t commands.TargetArgs) (commands.Result, error) {
			if !m.deleteTask(t.ID) {
				return commands.Result{Message: fmt.Sprintf("no task #%d", t.ID)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("deleted #%d", t.ID)}, nil
		},
		Toggle: func(t commands.TargetArgs) (commands.Result, error) {
			task, ok := m.toggleTask(t.ID)
			if !ok {
				return commands.Result{Message: fmt.Sprintf("no task #%d", t.ID)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("#%d completed=%t", task.ID, task.Completed)}, nil
		},
		Search: func(s commands.SearchArgs) (commands.Result, error) {
			m.setSearch(s.Query)
			if s.Query == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("search: %s (%d match)", s.Query, len(m.Visible))}, nil
		},
		Sort: func(s commands.SortArgs) (commands.Result, error) {
			m.setSort(s.Criterion)
			return commands.Result{Message: "sort: " + s.Criterion.Label()}, nil
		},
		Theme: func() (commands.Result, error) {
			next := m.toggleTheme()
			return commands.Result{Message: "theme: " + string(next)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else if m.LastError == prevErr {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}
	return m.closePalette()
}
