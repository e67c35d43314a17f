// Package logging sets up the file logger. The terminal belongs to the TUI,
// so log lines go to a file instead of stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps a charmbracelet logger together with the file it writes to.
type Logger struct {
	*log.Logger
	file *os.File
}

func ParseLevel(raw string) log.Level {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// New opens (or appends to) path and returns a leveled logger writing to it.
func New(path, level string) (*Logger, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("logging: ensure log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{Logger: NewWriter(f, level), file: f}, nil
}

// NewWriter builds a logger over any writer, used for tests and discard.
func NewWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Prefix:          "animtodo",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
}

func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
