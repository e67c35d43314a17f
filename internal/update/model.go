package update

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/animtodo/internal/model"
	"github.com/sandeepkv93/animtodo/internal/notify"
	"github.com/sandeepkv93/animtodo/internal/projection"
	"github.com/sandeepkv93/animtodo/internal/tasklist"
	"github.com/sandeepkv93/animtodo/internal/theme"
)

type Focus string

const (
	FocusInput  Focus = "input"
	FocusSearch Focus = "search"
	FocusList   Focus = "list"
)

const (
	appTitle    = "Animated Todo List"
	appSubtitle = "Manage your tasks with style"
	maxToasts   = 3
)

type StatusBar struct {
	Text    string
	IsError bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Toast struct {
	ID      int
	Level   notify.Level
	Message string
}

// Deps are the collaborators the controller drives. Service and Theme are
// required; the rest have defaults.
type Deps struct {
	Service       *tasklist.Service
	Theme         *theme.Preference
	Notifications *notify.Recorder
	Logger        *log.Logger
	ToastDuration time.Duration
	SystemDark    bool
	Context       context.Context
}

// Model owns all transient view state: the search text, sort choice, theme,
// cursor and focus are plain fields here rather than globals.
type Model struct {
	Focus       Focus
	Search      string
	Sort        projection.Criterion
	NewPriority model.Priority
	Theme       theme.Name
	Cursor      int
	Visible     []model.Task
	Toasts      []Toast
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Quitting    bool
	LastError   error

	svc        *tasklist.Service
	pref       *theme.Preference
	inbox      *notify.Recorder
	logger     *log.Logger
	ctx        context.Context
	toastTTL   time.Duration
	systemDark bool

	taskInput    textinput.Model
	searchInput  textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
	keys         keyMap

	anims       map[int64]*rowAnim
	leaving     []leavingRow
	shown       map[int64]bool
	animating   bool
	nextToastID int
	helpCache   map[theme.Name]string
}

type ToastExpiredMsg struct {
	ID int
}

type AnimFrameMsg struct{}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(deps Deps) Model {
	if deps.Notifications == nil {
		deps.Notifications = notify.NewRecorder()
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.ToastDuration <= 0 {
		deps.ToastDuration = 3 * time.Second
	}
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	if deps.Theme == nil {
		deps.Theme = theme.NewPreference(nil, "", theme.System)
	}

	m := Model{
		Focus:       FocusInput,
		Sort:        projection.SortDefault,
		NewPriority: model.DefaultPriority,
		Theme:       deps.Theme.Current(),
		svc:         deps.Service,
		pref:        deps.Theme,
		inbox:       deps.Notifications,
		logger:      deps.Logger,
		ctx:         deps.Context,
		toastTTL:    deps.ToastDuration,
		systemDark:  deps.SystemDark,
		keys:        defaultKeyMap(),
		anims:       make(map[int64]*rowAnim),
		shown:       make(map[int64]bool),
		helpCache:   make(map[theme.Name]string),
	}
	m.initInputs()
	m.refresh()
	// Init starts the first frame for rows hydrated from storage.
	m.animating = m.hasMotion()
	return m
}

func (m *Model) initInputs() {
	m.taskInput = textinput.New()
	m.taskInput.Placeholder = "Enter a new task"
	m.taskInput.Prompt = "› "
	m.taskInput.Width = 40
	m.taskInput.Focus()

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Search tasks"
	m.searchInput.Prompt = "⌕ "
	m.searchInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "add high pay rent | sort priority | theme"
	m.commandInput.Prompt = ""
	m.commandInput.Width = 50

	m.helpModel = help.New()
}

// ResolvedTheme is the theme actually used for drawing.
func (m Model) ResolvedTheme() theme.Name {
	return theme.Resolve(m.Theme, m.systemDark)
}

func (m Model) tasks() []model.Task {
	if m.svc == nil {
		return nil
	}
	return m.svc.List()
}

// refresh recomputes the projection. Rows that were not visible before get
// an entry animation; rows that dropped out get an exit animation.
func (m *Model) refresh() {
	prev := m.Visible
	m.Visible = projection.Project(m.tasks(), m.Search, m.Sort)
	next := make(map[int64]bool, len(m.Visible))
	for _, task := range m.Visible {
		next[task.ID] = true
		if !m.shown[task.ID] {
			m.anims[task.ID] = newRowAnim()
		}
	}
	for id := range m.anims {
		if !next[id] {
			delete(m.anims, id)
		}
	}

	leaving := make([]leavingRow, 0, len(m.leaving))
	for _, row := range m.leaving {
		if !next[row.task.ID] {
			leaving = append(leaving, row)
		}
	}
	for i, task := range prev {
		if !next[task.ID] {
			leaving = append(leaving, leavingRow{task: task, index: i, anim: newExitAnim()})
		}
	}
	m.leaving = leaving

	m.shown = next
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.Cursor >= len(m.Visible) {
		m.Cursor = len(m.Visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) currentTask() (model.Task, bool) {
	if len(m.Visible) == 0 || m.Cursor < 0 || m.Cursor >= len(m.Visible) {
		return model.Task{}, false
	}
	return m.Visible[m.Cursor], true
}
