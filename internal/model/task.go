package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyTitle      = errors.New("model: task title cannot be empty")
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidID       = errors.New("model: invalid task id")
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is what the new-task input starts with and resets to.
const DefaultPriority = PriorityMedium

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Rank orders priorities for sorting: high(3) > medium(2) > low(1).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

func (p Priority) Label() string {
	if !p.IsValid() {
		return string(p)
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

func ParsePriority(raw string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "l", "low":
		return PriorityLow, nil
	case "m", "medium":
		return PriorityMedium, nil
	case "h", "high":
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
}

type Task struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Completed bool     `json:"completed"`
	Priority  Priority `json:"priority"`
}

func (t Task) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, t.ID)
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	return nil
}

// NormalizeTitle returns the title as stored, or ErrEmptyTitle when nothing
// remains after trimming whitespace.
func NormalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrEmptyTitle
	}
	return trimmed, nil
}
