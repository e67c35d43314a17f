package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

const (
	MsgTaskAdded      = "Task added successfully!"
	MsgEmptyTitle     = "Task title cannot be empty!"
	MsgTaskDeleted    = "Task deleted successfully!"
	MsgTaskCompleted  = "Task completed!"
	MsgTaskIncomplete = "Task marked as incomplete"
)

type Notification struct {
	Level   Level
	Message string
	At      time.Time
}

type Notifier interface {
	Notify(Notification)
}

type Noop struct{}

func (Noop) Notify(Notification) {}

// Recorder buffers notifications until the presentation layer drains them.
type Recorder struct {
	mu      sync.Mutex
	pending []Notification
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, n)
}

func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.pending
	r.pending = nil
	return out
}

// Fanout delivers each notification to every non-nil notifier in order.
type Fanout []Notifier

func (f Fanout) Notify(n Notification) {
	for _, target := range f {
		if target != nil {
			target.Notify(n)
		}
	}
}

// Desktop forwards notifications to the OS notification daemon. Each send
// runs on its own goroutine so callers never wait on the daemon. Failures are
// reported through OnError and otherwise ignored.
type Desktop struct {
	Title   string
	OnError func(error)
	run     func(name string, args ...string) error
	wg      sync.WaitGroup
}

func NewDesktop(title string) *Desktop {
	return &Desktop{Title: title, run: runCommand}
}

func (d *Desktop) Notify(n Notification) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.send(n)
	}()
}

// Wait blocks until every pending send has finished.
func (d *Desktop) Wait() {
	d.wg.Wait()
}

func (d *Desktop) send(n Notification) {
	run := d.run
	if run == nil {
		run = runCommand
	}
	title := d.Title
	if n.Level == LevelError {
		title += " (error)"
	}
	var err error
	switch runtime.GOOS {
	case "linux":
		err = run("notify-send", title, n.Message)
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Message), escapeAppleScript(title))
		err = run("osascript", "-e", script)
	}
	if err != nil && d.OnError != nil {
		d.OnError(err)
	}
}

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

func Success(msg string, at time.Time) Notification {
	return Notification{Level: LevelSuccess, Message: msg, At: at}
}

func Error(msg string, at time.Time) Notification {
	return Notification{Level: LevelError, Message: msg, At: at}
}
