// Package projection derives the displayed task sequence from the canonical
// list, a search query and a sort criterion.
package projection

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sandeepkv93/animtodo/internal/model"
)

type Criterion string

const (
	SortDefault    Criterion = "default"
	SortCompleted  Criterion = "completed"
	SortIncomplete Criterion = "incomplete"
	SortPriority   Criterion = "priority"
)

var criteria = []Criterion{SortDefault, SortCompleted, SortIncomplete, SortPriority}

func Criteria() []Criterion { return slices.Clone(criteria) }

func (c Criterion) IsValid() bool {
	return slices.Contains(criteria, c)
}

func (c Criterion) Next() Criterion {
	idx := slices.Index(criteria, c)
	return criteria[(idx+1)%len(criteria)]
}

func (c Criterion) Label() string {
	switch c {
	case SortCompleted:
		return "Completed"
	case SortIncomplete:
		return "Incomplete"
	case SortPriority:
		return "Priority"
	default:
		return "Default"
	}
}

func ParseCriterion(raw string) (Criterion, error) {
	c := Criterion(strings.ToLower(strings.TrimSpace(raw)))
	if !c.IsValid() {
		return "", fmt.Errorf("projection: unknown sort criterion %q", raw)
	}
	return c, nil
}

// Project filters tasks by a case-insensitive title substring and stable-sorts
// the survivors by criterion. The input slice is never modified.
func Project(tasks []model.Task, query string, criterion Criterion) []model.Task {
	needle := strings.ToLower(query)
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if strings.Contains(strings.ToLower(task.Title), needle) {
			out = append(out, task)
		}
	}
	if cmp := compareFor(criterion); cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

func compareFor(c Criterion) func(a, b model.Task) int {
	switch c {
	case SortCompleted:
		return func(a, b model.Task) int { return boolRank(b.Completed) - boolRank(a.Completed) }
	case SortIncomplete:
		return func(a, b model.Task) int { return boolRank(a.Completed) - boolRank(b.Completed) }
	case SortPriority:
		return func(a, b model.Task) int { return b.Priority.Rank() - a.Priority.Rank() }
	default:
		return nil
	}
}

func boolRank(v bool) int {
	if v {
		return 1
	}
	return 0
}

type Summary struct {
	Total     int
	Completed int
}

func (s Summary) Remaining() int { return s.Total - s.Completed }

func Summarize(tasks []model.Task) Summary {
	out := Summary{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			out.Completed++
		}
	}
	return out
}
