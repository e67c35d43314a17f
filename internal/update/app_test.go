package update

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/animtodo/internal/model"
	"github.com/sandeepkv93/animtodo/internal/notify"
	"github.com/sandeepkv93/animtodo/internal/projection"
	"github.com/sandeepkv93/animtodo/internal/storage"
	"github.com/sandeepkv93/animtodo/internal/tasklist"
	"github.com/sandeepkv93/animtodo/internal/theme"
)

type testEnv struct {
	slots storage.Store
	svc   *tasklist.Service
	pref  *theme.Preference
	inbox *notify.Recorder
}

func newTestEnv(slots storage.Store) testEnv {
	inbox := notify.NewRecorder()
	clock := func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	return testEnv{
		slots: slots,
		svc:   tasklist.NewService(slots, tasklist.Options{Notifier: inbox, Clock: clock}),
		pref:  theme.NewPreference(slots, "", theme.Light),
		inbox: inbox,
	}
}

func (e testEnv) model() Model {
	return NewModel(Deps{
		Service:       e.svc,
		Theme:         e.pref,
		Notifications: e.inbox,
		ToastDuration: time.Second,
	})
}

func newTestModel(t *testing.T) (Model, testEnv) {
	t.Helper()
	env := newTestEnv(storage.NewMemoryStore())
	return env.model(), env
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	return next, cmd
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = send(t, m, k)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyCtrlP = tea.KeyMsg{Type: tea.KeyCtrlP}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func settle(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < 10*animFPS && m.animating; i++ {
		m, _ = send(t, m, AnimFrameMsg{})
	}
	if m.animating {
		t.Fatalf("expected animations to settle")
	}
	return m
}

func addViaInput(t *testing.T, m Model, title string) Model {
	t.Helper()
	return press(t, m, runes(title), keyEnter)
}

type failingPuts struct {
	*storage.MemoryStore
}

func (failingPuts) Put(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t)
	if m.Focus != FocusInput {
		t.Fatalf("expected input focus, got %q", m.Focus)
	}
	if m.Sort != projection.SortDefault {
		t.Fatalf("expected default sort, got %q", m.Sort)
	}
	if m.NewPriority != model.PriorityMedium {
		t.Fatalf("expected medium priority, got %q", m.NewPriority)
	}
	if m.Theme != theme.Light {
		t.Fatalf("expected light theme, got %q", m.Theme)
	}
	if len(m.Visible) != 0 || m.Search != "" {
		t.Fatalf("expected empty projection, got %+v search=%q", m.Visible, m.Search)
	}
}

func TestAddTaskFromInput(t *testing.T) {
	m, env := newTestModel(t)
	m = addViaInput(t, m, "  Buy milk ")

	tasks := env.svc.List()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Title != "Buy milk" || tasks[0].Priority != model.PriorityMedium || tasks[0].Completed {
		t.Fatalf("unexpected task: %+v", tasks[0])
	}
	if got := m.taskInput.Value(); got != "" {
		t.Fatalf("expected input cleared, got %q", got)
	}
	if len(m.Toasts) != 1 || m.Toasts[0].Message != notify.MsgTaskAdded || m.Toasts[0].Level != notify.LevelSuccess {
		t.Fatalf("unexpected toasts: %+v", m.Toasts)
	}

	raw, err := env.slots.Get(t.Context(), tasklist.DefaultSlotKey)
	if err != nil {
		t.Fatalf("read slot: %v", err)
	}
	persisted, err := tasklist.DecodeSnapshot(raw)
	if err != nil {
		t.Fatalf("decode slot: %v", err)
	}
	if len(persisted) != 1 || persisted[0].ID != tasks[0].ID {
		t.Fatalf("unexpected persisted tasks: %+v", persisted)
	}
}

func TestAddUsesSelectedPriorityThenResets(t *testing.T) {
	m, env := newTestModel(t)
	m = press(t, m, keyCtrlP)
	if m.NewPriority != model.PriorityHigh {
		t.Fatalf("expected high after one cycle, got %q", m.NewPriority)
	}
	m = addViaInput(t, m, "Pay rent")

	tasks := env.svc.List()
	if len(tasks) != 1 || tasks[0].Priority != model.PriorityHigh {
		t.Fatalf("expected high priority task, got %+v", tasks)
	}
	if m.NewPriority != model.PriorityMedium {
		t.Fatalf("expected priority reset to medium, got %q", m.NewPriority)
	}
}

func TestEmptyTitleShowsErrorToast(t *testing.T) {
	m, env := newTestModel(t)
	m = addViaInput(t, m, "   ")

	if n := len(env.svc.List()); n != 0 {
		t.Fatalf("expected no tasks, got %d", n)
	}
	if len(m.Toasts) != 1 || m.Toasts[0].Level != notify.LevelError || m.Toasts[0].Message != notify.MsgEmptyTitle {
		t.Fatalf("unexpected toasts: %+v", m.Toasts)
	}
	if _, err := env.slots.Get(t.Context(), tasklist.DefaultSlotKey); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected nothing persisted, got err=%v", err)
	}
}

func TestListToggleAndDelete(t *testing.T) {
	m, env := newTestModel(t)
	m = addViaInput(t, m, "First")
	m = addViaInput(t, m, "Second")
	m = press(t, m, keyEsc)
	if m.Focus != FocusList {
		t.Fatalf("expected list focus, got %q", m.Focus)
	}
	if m.Cursor != 1 {
		t.Fatalf("expected newest task selected, got cursor %d", m.Cursor)
	}

	m = press(t, m, keySpace)
	second, _ := env.svc.Get(m.Visible[1].ID)
	if !second.Completed {
		t.Fatalf("expected second task completed, got %+v", second)
	}
	if last := m.Toasts[len(m.Toasts)-1]; last.Message != notify.MsgTaskCompleted {
		t.Fatalf("expected completed toast, got %+v", last)
	}

	m = press(t, m, runes("x"))
	second, _ = env.svc.Get(m.Visible[1].ID)
	if second.Completed {
		t.Fatalf("expected second task incomplete again, got %+v", second)
	}

	m = press(t, m, runes("k"), runes("d"))
	tasks := env.svc.List()
	if len(tasks) != 1 || tasks[0].Title != "Second" {
		t.Fatalf("expected only Second to remain, got %+v", tasks)
	}
	if last := m.Toasts[len(m.Toasts)-1]; last.Message != notify.MsgTaskDeleted {
		t.Fatalf("expected deleted toast, got %+v", last)
	}
	if len(m.Toasts) > maxToasts {
		t.Fatalf("expected at most %d toasts, got %d", maxToasts, len(m.Toasts))
	}
}

func TestDeleteOnEmptyListIsNoop(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyEsc, runes("d"), keySpace)
	if len(m.Toasts) != 0 {
		t.Fatalf("expected no toasts, got %+v", m.Toasts)
	}
}

func TestSortKeyCycles(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyEsc)
	want := []projection.Criterion{
		projection.SortCompleted,
		projection.SortIncomplete,
		projection.SortPriority,
		projection.SortDefault,
	}
	for _, c := range want {
		m = press(t, m, runes("s"))
		if m.Sort != c {
			t.Fatalf("expected sort %q, got %q", c, m.Sort)
		}
	}
}

func TestSortByPriorityKeepsSelection(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyCtrlP, keyCtrlP)
	m = addViaInput(t, m, "low one")
	m = press(t, m, keyCtrlP)
	m = addViaInput(t, m, "high one")
	m = press(t, m, keyEsc, runes("k"))
	selected, _ := m.currentTask()
	if selected.Title != "low one" {
		t.Fatalf("expected low one selected, got %+v", selected)
	}

	for m.Sort != projection.SortPriority {
		m = press(t, m, runes("s"))
	}
	if m.Visible[0].Title != "high one" {
		t.Fatalf("expected high priority first, got %+v", m.Visible)
	}
	if current, _ := m.currentTask(); current.ID != selected.ID {
		t.Fatalf("expected selection to follow task, got %+v", current)
	}
}

func TestSearchFiltersCaseInsensitive(t *testing.T) {
	m, _ := newTestModel(t)
	m = addViaInput(t, m, "Call mom")
	m = addViaInput(t, m, "Pay rent")
	m = press(t, m, keyTab)
	if m.Focus != FocusSearch {
		t.Fatalf("expected search focus, got %q", m.Focus)
	}

	m = press(t, m, runes("MOM"))
	if m.Search != "MOM" {
		t.Fatalf("expected search text, got %q", m.Search)
	}
	if len(m.Visible) != 1 || m.Visible[0].Title != "Call mom" {
		t.Fatalf("unexpected visible tasks: %+v", m.Visible)
	}
	m = settle(t, m)
	if !strings.Contains(m.View(), "Call mom") || strings.Contains(m.View(), "Pay rent") {
		t.Fatalf("expected view to show only the match")
	}

	m = press(t, m, runes("zzz"))
	if len(m.Visible) != 0 {
		t.Fatalf("expected no matches, got %+v", m.Visible)
	}
	m = settle(t, m)
	if !strings.Contains(m.View(), "No tasks match") {
		t.Fatalf("expected no-match text in view")
	}

	m = press(t, m, keyEnter)
	if m.Focus != FocusList {
		t.Fatalf("expected list focus after enter, got %q", m.Focus)
	}
}

func TestThemeTogglePersists(t *testing.T) {
	m, env := newTestModel(t)
	m = press(t, m, keyEsc, runes("t"))
	if m.Theme != theme.Dark {
		t.Fatalf("expected dark theme, got %q", m.Theme)
	}
	raw, err := env.slots.Get(t.Context(), theme.DefaultSlotKey)
	if err != nil {
		t.Fatalf("read theme slot: %v", err)
	}
	if string(raw) != `"dark"` {
		t.Fatalf("unexpected theme slot: %s", raw)
	}

	reloaded := theme.NewPreference(env.slots, "", theme.System)
	if got, err := reloaded.Load(t.Context()); err != nil || got != theme.Dark {
		t.Fatalf("expected reloaded dark, got %q err=%v", got, err)
	}

	m = press(t, m, runes("t"))
	if m.Theme != theme.Light {
		t.Fatalf("expected light theme, got %q", m.Theme)
	}
}

func TestResolvedThemeFollowsSystem(t *testing.T) {
	env := newTestEnv(storage.NewMemoryStore())
	m := NewModel(Deps{
		Service:    env.svc,
		Theme:      theme.NewPreference(env.slots, "", theme.System),
		SystemDark: true,
	})
	if got := m.ResolvedTheme(); got != theme.Dark {
		t.Fatalf("expected dark from system, got %q", got)
	}
}

func TestPaletteCommands(t *testing.T) {
	m, env := newTestModel(t)
	m = press(t, m, keyEsc, runes(":"))
	if !m.Palette.Active {
		t.Fatalf("expected palette active")
	}
	m = press(t, m, runes("add high Ship it"), keyEnter)
	if m.Palette.Active {
		t.Fatalf("expected palette closed after enter")
	}
	tasks := env.svc.List()
	if len(tasks) != 1 || tasks[0].Title != "Ship it" || tasks[0].Priority != model.PriorityHigh {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if m.Status.IsError || !strings.HasPrefix(m.Status.Text, "added #") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	m = press(t, m, runes(":"), runes("sort priority"), keyEnter)
	if m.Sort != projection.SortPriority {
		t.Fatalf("expected priority sort, got %q", m.Sort)
	}

	m = press(t, m, runes(":"), runes("search ship"), keyEnter)
	if m.Search != "ship" || len(m.Visible) != 1 {
		t.Fatalf("expected search applied, got %q %+v", m.Search, m.Visible)
	}

	m = press(t, m, runes(":"), runes("toggle 9"), keyEnter)
	if m.Status.IsError || m.Status.Text != "no task #9" {
		t.Fatalf("unexpected status for missing id: %+v", m.Status)
	}

	m = press(t, m, runes(":"), runes("bogus"), keyEnter)
	if !m.Status.IsError {
		t.Fatalf("expected error status for unknown command, got %+v", m.Status)
	}

	m = press(t, m, runes(":"), runes("theme"), keyEnter)
	if m.Theme != theme.Dark {
		t.Fatalf("expected theme toggled via palette, got %q", m.Theme)
	}
}

func TestPaletteEscapeCancels(t *testing.T) {
	m, env := newTestModel(t)
	m = press(t, m, keyEsc, runes(":"), runes("add nope"), keyEsc)
	if m.Palette.Active {
		t.Fatalf("expected palette closed")
	}
	if n := len(env.svc.List()); n != 0 {
		t.Fatalf("expected no tasks, got %d", n)
	}
}

func TestToastExpires(t *testing.T) {
	m, _ := newTestModel(t)
	m = addViaInput(t, m, "Buy milk")
	if len(m.Toasts) != 1 {
		t.Fatalf("expected one toast, got %d", len(m.Toasts))
	}
	m, _ = send(t, m, ToastExpiredMsg{ID: m.Toasts[0].ID + 100})
	if len(m.Toasts) != 1 {
		t.Fatalf("expected unrelated expiry ignored")
	}
	m, _ = send(t, m, ToastExpiredMsg{ID: m.Toasts[0].ID})
	if len(m.Toasts) != 0 {
		t.Fatalf("expected toast dismissed, got %+v", m.Toasts)
	}
}

func TestEntryAnimationSettles(t *testing.T) {
	m, _ := newTestModel(t)
	m = addViaInput(t, m, "Buy milk")
	id := m.Visible[0].ID
	if got := m.rowIndent(id); got != int(entryIndent) {
		t.Fatalf("expected initial indent %d, got %d", int(entryIndent), got)
	}
	if !m.animating {
		t.Fatalf("expected animation scheduled")
	}

	var cmd tea.Cmd
	for i := 0; i < 10*animFPS && m.animating; i++ {
		m, cmd = send(t, m, AnimFrameMsg{})
	}
	if m.animating || cmd != nil {
		t.Fatalf("expected animation to settle")
	}
	if got := m.rowIndent(id); got != 0 {
		t.Fatalf("expected settled indent 0, got %d", got)
	}
}

func TestDeletedRowSlidesOutBeforeDisappearing(t *testing.T) {
	m, _ := newTestModel(t)
	m = addViaInput(t, m, "Buy milk")
	m = addViaInput(t, m, "Call mom")
	m = settle(t, m)
	m = press(t, m, keyEsc, runes("k"), runes("d"))

	if len(m.Visible) != 1 || m.Visible[0].Title != "Call mom" {
		t.Fatalf("expected deleted task out of the projection, got %+v", m.Visible)
	}
	if len(m.leaving) != 1 || m.leaving[0].task.Title != "Buy milk" || m.leaving[0].index != 0 {
		t.Fatalf("expected one departing row at index 0, got %+v", m.leaving)
	}
	if !m.animating {
		t.Fatalf("expected exit animation scheduled")
	}
	rows := m.listRows()
	if len(rows) != 2 || !rows[0].Leaving || rows[0].Task.Title != "Buy milk" || rows[1].Leaving {
		t.Fatalf("expected departing row drawn in its old slot, got %+v", rows)
	}
	if !rows[1].Selected {
		t.Fatalf("expected cursor to stay on a live row, got %+v", rows)
	}

	m, _ = send(t, m, AnimFrameMsg{})
	if m.leaving[0].anim.indent() == 0 && m.leaving[0].anim.pos <= 0 {
		t.Fatalf("expected departing row to start moving")
	}

	m = settle(t, m)
	if len(m.leaving) != 0 {
		t.Fatalf("expected departing row removed once settled, got %+v", m.leaving)
	}
	if strings.Contains(m.View(), "Buy milk") {
		t.Fatalf("expected deleted task gone from the view")
	}
}

func TestFilteredRowReturnsMidExit(t *testing.T) {
	m, _ := newTestModel(t)
	m = addViaInput(t, m, "Call mom")
	m = addViaInput(t, m, "Pay rent")
	m = settle(t, m)
	m = press(t, m, keyTab, runes("mom"))
	if len(m.leaving) != 1 || m.leaving[0].task.Title != "Pay rent" {
		t.Fatalf("expected filtered row to slide out, got %+v", m.leaving)
	}
	rent := m.leaving[0].task.ID

	backspace := tea.KeyMsg{Type: tea.KeyBackspace}
	m = press(t, m, backspace, backspace, backspace)
	if m.Search != "" || len(m.Visible) != 2 {
		t.Fatalf("expected search cleared, got %q %+v", m.Search, m.Visible)
	}
	if len(m.leaving) != 0 {
		t.Fatalf("expected returning row to drop its exit animation, got %+v", m.leaving)
	}
	if _, ok := m.anims[rent]; !ok || len(m.anims) != 1 {
		t.Fatalf("expected only the returning row to spring back in, got %d anims", len(m.anims))
	}
}

func TestHydratedTasksAnimateOnInit(t *testing.T) {
	slots := storage.NewMemoryStore()
	seed := []model.Task{{ID: 1, Title: "Seeded", Priority: model.PriorityLow}}
	raw, err := tasklist.EncodeSnapshot(seed)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := slots.Put(t.Context(), tasklist.DefaultSlotKey, raw); err != nil {
		t.Fatalf("seed: %v", err)
	}
	env := newTestEnv(slots)
	env.svc.Hydrate(t.Context())

	m := env.model()
	if len(m.Visible) != 1 || !m.animating {
		t.Fatalf("expected hydrated row animating, got %+v animating=%t", m.Visible, m.animating)
	}
	if m.Init() == nil {
		t.Fatalf("expected init command")
	}
}

func TestPersistFailureKeepsTaskAndReportsError(t *testing.T) {
	env := newTestEnv(failingPuts{storage.NewMemoryStore()})
	m := env.model()
	m = addViaInput(t, m, "Buy milk")

	if n := len(env.svc.List()); n != 1 {
		t.Fatalf("expected in-memory task kept, got %d", n)
	}
	if m.LastError == nil || !m.Status.IsError {
		t.Fatalf("expected error status, got %+v err=%v", m.Status, m.LastError)
	}
	for _, toast := range m.Toasts {
		if toast.Level == notify.LevelSuccess {
			t.Fatalf("expected no success toast, got %+v", m.Toasts)
		}
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(t, m, SetStatusMsg{Text: "ready"})
	if m.Status.Text != "ready" || m.Status.IsError {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	m, _ = send(t, m, AppErrorMsg{Err: errors.New("boom")})
	if m.LastError == nil || m.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", m.LastError)
	}
	if !m.Status.IsError || m.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", m.Status)
	}

	m, _ = send(t, m, ClearStatusMsg{})
	if m.Status.Text != "" || m.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", m.Status)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyEsc, runes("?"))
	if !m.HelpVisible {
		t.Fatalf("expected help visible")
	}
	if m.renderHelpPanel() == "" {
		t.Fatalf("expected rendered help panel")
	}
	m = press(t, m, runes("?"))
	if m.HelpVisible || m.renderHelpPanel() != "" {
		t.Fatalf("expected help hidden")
	}
}

func TestViewShowsHeaderAndEmptyState(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	if !strings.Contains(view, appTitle) {
		t.Fatalf("expected title in view")
	}
	if !strings.Contains(view, "No tasks yet") {
		t.Fatalf("expected empty state in view")
	}

	m = addViaInput(t, m, "Buy milk")
	view = m.View()
	if !strings.Contains(view, "Buy milk") || !strings.Contains(view, "1 task") {
		t.Fatalf("expected task and counts in view:\n%s", view)
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t)
	typed := press(t, m, runes("q"))
	if typed.Quitting {
		t.Fatalf("expected q to be typed into the input, not quit")
	}

	next, cmd := send(t, m, keyCtrlC)
	if !next.Quitting || cmd == nil {
		t.Fatalf("expected ctrl+c to quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}

	m = press(t, m, keyEsc)
	next, cmd = send(t, m, runes("q"))
	if !next.Quitting || cmd == nil {
		t.Fatalf("expected q to quit from the list")
	}
	if next.View() != "" {
		t.Fatalf("expected empty view when quitting")
	}
}
