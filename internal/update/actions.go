package update

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/animtodo/internal/model"
	"github.com/sandeepkv93/animtodo/internal/projection"
	"github.com/sandeepkv93/animtodo/internal/theme"
)

func (m *Model) setError(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
}

// addTask submits title with the selected priority. On success the priority
// resets to the default, like a fresh form.
func (m *Model) addTask(title string, priority model.Priority) (model.Task, bool) {
	if m.svc == nil {
		return model.Task{}, false
	}
	task, err := m.svc.Add(m.ctx, title, priority)
	switch {
	case errors.Is(err, model.ErrEmptyTitle):
		return model.Task{}, false
	case err != nil:
		m.setError(err)
	}
	m.NewPriority = model.DefaultPriority
	m.refresh()
	m.selectTask(task.ID)
	return task, true
}

func (m *Model) deleteTask(id int64) bool {
	if m.svc == nil {
		return false
	}
	ok, err := m.svc.Delete(m.ctx, id)
	if err != nil {
		m.setError(err)
	}
	m.refresh()
	return ok
}

func (m *Model) toggleTask(id int64) (model.Task, bool) {
	if m.svc == nil {
		return model.Task{}, false
	}
	task, ok, err := m.svc.Toggle(m.ctx, id)
	if err != nil {
		m.setError(err)
	}
	m.refresh()
	m.selectTask(id)
	return task, ok
}

func (m *Model) deleteSelected() {
	if task, ok := m.currentTask(); ok {
		m.deleteTask(task.ID)
	}
}

func (m *Model) toggleSelected() {
	if task, ok := m.currentTask(); ok {
		m.toggleTask(task.ID)
	}
}

func (m *Model) setSearch(q string) {
	m.Search = q
	m.searchInput.SetValue(q)
	m.refresh()
}

func (m *Model) setSort(c projection.Criterion) {
	selected, hadSelection := m.currentTask()
	m.Sort = c
	m.refresh()
	if hadSelection {
		m.selectTask(selected.ID)
	}
}

func (m *Model) toggleTheme() theme.Name {
	next, err := m.pref.Toggle(m.ctx)
	m.Theme = next
	if err != nil {
		m.logger.Warn("persist theme failed", "err", err)
		m.setError(fmt.Errorf("save theme: %w", err))
	}
	return next
}

func (m *Model) selectTask(id int64) {
	for i, task := range m.Visible {
		if task.ID == id {
			m.Cursor = i
			return
		}
	}
	m.clampCursor()
}

// drainNotifications turns pending notifications into toasts, each with its
// own expiry timer.
func (m *Model) drainNotifications() tea.Cmd {
	pending := m.inbox.Drain()
	if len(pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(pending))
	for _, n := range pending {
		m.nextToastID++
		id := m.nextToastID
		m.Toasts = append(m.Toasts, Toast{ID: id, Level: n.Level, Message: n.Message})
		cmds = append(cmds, tea.Tick(m.toastTTL, func(time.Time) tea.Msg { return ToastExpiredMsg{ID: id} }))
	}
	if len(m.Toasts) > maxToasts {
		m.Toasts = m.Toasts[len(m.Toasts)-maxToasts:]
	}
	return tea.Batch(cmds...)
}

func (m *Model) dismissToast(id int) {
	for i, t := range m.Toasts {
		if t.ID == id {
			m.Toasts = append(m.Toasts[:i], m.Toasts[i+1:]...)
			return
		}
	}
}
