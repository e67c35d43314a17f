// Package tasklist owns the canonical, insertion-ordered list of tasks.
package tasklist

import (
	"slices"
	"time"

	"github.com/sandeepkv93/animtodo/internal/model"
)

// Store holds tasks in creation order. It does no I/O; callers persist the
// lists its mutations return.
type Store struct {
	tasks  []model.Task
	lastID int64
	now    func() time.Time
}

func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

func NewStoreWithClock(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{now: now}
}

// nextID is millisecond based and strictly increasing for the life of the store.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) Add(title string, priority model.Priority) (model.Task, []model.Task, error) {
	trimmed, err := model.NormalizeTitle(title)
	if err != nil {
		return model.Task{}, s.List(), err
	}
	if !priority.IsValid() {
		priority = model.DefaultPriority
	}
	task := model.Task{
		ID:       s.nextID(),
		Title:    trimmed,
		Priority: priority,
	}
	s.tasks = append(s.tasks, task)
	return task, s.List(), nil
}

func (s *Store) Delete(id int64) ([]model.Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return s.List(), false
	}
	s.tasks = slices.Delete(s.tasks, idx, idx+1)
	return s.List(), true
}

func (s *Store) Toggle(id int64) (model.Task, []model.Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, s.List(), false
	}
	s.tasks[idx].Completed = !s.tasks[idx].Completed
	return s.tasks[idx], s.List(), true
}

func (s *Store) Get(id int64) (model.Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return s.tasks[idx], true
}

func (s *Store) List() []model.Task {
	return slices.Clone(s.tasks)
}

func (s *Store) Len() int { return len(s.tasks) }

// Replace swaps in a previously persisted list. Invalid records and repeated
// ids are dropped; the id counter moves past every id seen.
func (s *Store) Replace(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	seen := make(map[int64]bool, len(tasks))
	for _, task := range tasks {
		if task.Validate() != nil || seen[task.ID] {
			continue
		}
		seen[task.ID] = true
		if task.ID > s.lastID {
			s.lastID = task.ID
		}
		out = append(out, task)
	}
	s.tasks = out
	return s.List()
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}
