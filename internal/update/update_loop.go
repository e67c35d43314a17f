package update

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/animtodo/internal/projection"
	"github.com/sandeepkv93/animtodo/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.animating {
		cmds = append(cmds, animFrameCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			m = m.handlePaletteKey(typed)
			break
		}
		switch m.Focus {
		case FocusInput:
			m, cmd = m.handleInputKey(typed)
		case FocusSearch:
			m, cmd = m.handleSearchKey(typed)
		default:
			m, cmd = m.handleListKey(typed)
		}
	case AnimFrameMsg:
		return m.onAnimFrame()
	case ToastExpiredMsg:
		m.dismissToast(typed.ID)
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.setError(typed.Err)
		}
		return m, nil
	default:
		return m, nil
	}
	if m.Quitting {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.drainNotifications(), m.ensureAnimating())
}

func (m Model) setFocus(f Focus) Model {
	m.Focus = f
	m.taskInput.Blur()
	m.searchInput.Blur()
	switch f {
	case FocusInput:
		m.taskInput.Focus()
	case FocusSearch:
		m.searchInput.Focus()
	}
	return m
}

func nextFocus(f Focus) Focus {
	switch f {
	case FocusInput:
		return FocusSearch
	case FocusSearch:
		return FocusList
	default:
		return FocusInput
	}
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		if _, ok := m.addTask(m.taskInput.Value(), m.NewPriority); ok {
			m.taskInput.SetValue("")
		}
		return m, nil
	case key.Matches(msg, m.keys.Priority):
		m.NewPriority = m.NewPriority.Next()
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		return m.setFocus(nextFocus(m.Focus)), nil
	case key.Matches(msg, m.keys.Back):
		return m.setFocus(FocusList), nil
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Focus):
		return m.setFocus(nextFocus(m.Focus)), nil
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Submit):
		return m.setFocus(FocusList), nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if v := m.searchInput.Value(); v != m.Search {
		m.Search = v
		m.refresh()
	}
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Focus):
		return m.setFocus(nextFocus(m.Focus)), nil
	case key.Matches(msg, m.keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.Cursor < len(m.Visible)-1 {
			m.Cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.toggleSelected()
	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
	case key.Matches(msg, m.keys.Sort):
		m.setSort(m.Sort.Next())
		m.Status = StatusBar{Text: "sort: " + m.Sort.Label()}
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.Search):
		return m.setFocus(FocusSearch), nil
	case key.Matches(msg, m.keys.New):
		return m.setFocus(FocusInput), nil
	case key.Matches(msg, m.keys.Priority):
		m.NewPriority = m.NewPriority.Next()
	case key.Matches(msg, m.keys.Palette):
		return m.openPalette(), nil
	case key.Matches(msg, m.keys.Help):
		m.HelpVisible = !m.HelpVisible
		m.helpModel.ShowAll = m.HelpVisible
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	resolved := m.ResolvedTheme()
	p := views.PaletteFor(resolved)

	rows := m.listRows()
	emptyText := "No tasks yet. Add one above."
	if m.Search != "" {
		emptyText = fmt.Sprintf("No tasks match %q.", m.Search)
	}

	toasts := make([]views.ToastData, 0, len(m.Toasts))
	for _, t := range m.Toasts {
		toasts = append(toasts, views.ToastData{Level: string(t.Level), Message: t.Message})
	}

	return views.RenderApp(views.AppData{
		Palette:   p,
		Title:     appTitle,
		Subtitle:  appSubtitle,
		ThemeIcon: views.ThemeIcon(m.Theme),
		Counts:    countsLine(projection.Summarize(m.tasks()), len(m.Visible)),
		InputBar: views.RenderInputBar(p, views.InputBarData{
			InputView: m.taskInput.View(),
			Priority:  m.NewPriority,
			Focused:   m.Focus == FocusInput,
		}),
		SearchBar: views.RenderSearchBar(p, views.SearchBarData{
			InputView: m.searchInput.View(),
			SortLabel: m.Sort.Label(),
			Focused:   m.Focus == FocusSearch,
		}),
		ListView: views.RenderTaskList(p, views.ListData{
			Rows:      rows,
			EmptyText: emptyText,
			Focused:   m.Focus == FocusList,
		}),
		Toasts:     toasts,
		Command:    views.RenderCommandPalette(p, m.Palette.Active, m.commandInput.View()),
		HelpPanel:  m.renderHelpPanel(),
		StatusLine: m.Status.Text,
		StatusErr:  m.Status.IsError,
		Footer:     m.renderFooter(),
	})
}

// listRows lays out the visible tasks and slots each departing row back in
// at the position it last held.
func (m Model) listRows() []views.RowData {
	rows := make([]views.RowData, 0, len(m.Visible)+len(m.leaving))
	for i, task := range m.Visible {
		rows = append(rows, views.RowData{
			Task:     task,
			Selected: m.Focus == FocusList && i == m.Cursor,
			Indent:   m.rowIndent(task.ID),
		})
	}
	for _, row := range m.leaving {
		at := min(row.index, len(rows))
		rows = slices.Insert(rows, at, views.RowData{
			Task:    row.task,
			Indent:  row.anim.indent(),
			Leaving: true,
		})
	}
	return rows
}

func countsLine(s projection.Summary, shown int) string {
	noun := "tasks"
	if s.Total == 1 {
		noun = "task"
	}
	line := fmt.Sprintf("%d %s · %d done · %d left", s.Total, noun, s.Completed, s.Remaining())
	if shown != s.Total {
		line += fmt.Sprintf(" · showing %d", shown)
	}
	return line
}

