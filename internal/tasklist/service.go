package tasklist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/animtodo/internal/model"
	"github.com/sandeepkv93/animtodo/internal/notify"
	"github.com/sandeepkv93/animtodo/internal/storage"
)

const DefaultSlotKey = "animatedTasks"

// Service pairs a Store with its persisted slot and the notification
// collaborator. Every successful mutation rewrites the whole slot.
type Service struct {
	store    *Store
	slots    storage.Store
	key      string
	notifier notify.Notifier
	logger   *log.Logger
	now      func() time.Time
}

type Options struct {
	Key      string
	Notifier notify.Notifier
	Logger   *log.Logger
	Clock    func() time.Time
}

func NewService(slots storage.Store, opts Options) *Service {
	if opts.Key == "" {
		opts.Key = DefaultSlotKey
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Noop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Service{
		store:    NewStoreWithClock(opts.Clock),
		slots:    slots,
		key:      opts.Key,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		now:      opts.Clock,
	}
}

// Hydrate loads the persisted list once at startup. Any failure leaves the
// store empty.
func (s *Service) Hydrate(ctx context.Context) []model.Task {
	if s.slots == nil {
		return s.store.Replace(nil)
	}
	raw, err := s.slots.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("load tasks failed, starting empty", "key", s.key, "err", err)
		}
		return s.store.Replace(nil)
	}
	tasks, err := DecodeSnapshot(raw)
	if err != nil {
		s.logger.Warn("persisted tasks unreadable, starting empty", "key", s.key, "err", err)
		return s.store.Replace(nil)
	}
	out := s.store.Replace(tasks)
	if dropped := len(tasks) - len(out); dropped > 0 {
		s.logger.Warn("dropped invalid persisted tasks", "count", dropped)
	}
	s.logger.Info("hydrated tasks", "count", len(out))
	return out
}

func (s *Service) Add(ctx context.Context, title string, priority model.Priority) (model.Task, error) {
	task, tasks, err := s.store.Add(title, priority)
	if err != nil {
		s.notifier.Notify(notify.Error(notify.MsgEmptyTitle, s.now()))
		return model.Task{}, err
	}
	s.logger.Debug("task added", "id", task.ID, "priority", task.Priority)
	if err := s.persist(ctx, tasks); err != nil {
		return task, err
	}
	s.notifier.Notify(notify.Success(notify.MsgTaskAdded, s.now()))
	return task, nil
}

// Delete reports whether a task was removed. Unknown ids are a silent no-op.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	tasks, ok := s.store.Delete(id)
	if !ok {
		return false, nil
	}
	s.logger.Debug("task deleted", "id", id)
	if err := s.persist(ctx, tasks); err != nil {
		return true, err
	}
	s.notifier.Notify(notify.Success(notify.MsgTaskDeleted, s.now()))
	return true, nil
}

// Toggle flips completion and returns the updated task. Unknown ids are a
// silent no-op.
func (s *Service) Toggle(ctx context.Context, id int64) (model.Task, bool, error) {
	task, tasks, ok := s.store.Toggle(id)
	if !ok {
		return model.Task{}, false, nil
	}
	s.logger.Debug("task toggled", "id", id, "completed", task.Completed)
	if err := s.persist(ctx, tasks); err != nil {
		return task, true, err
	}
	msg := notify.MsgTaskIncomplete
	if task.Completed {
		msg = notify.MsgTaskCompleted
	}
	s.notifier.Notify(notify.Success(msg, s.now()))
	return task, true, nil
}

func (s *Service) List() []model.Task {
	return s.store.List()
}

func (s *Service) Get(id int64) (model.Task, bool) {
	return s.store.Get(id)
}

func (s *Service) persist(ctx context.Context, tasks []model.Task) error {
	if s.slots == nil {
		return nil
	}
	payload, err := EncodeSnapshot(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.slots.Put(ctx, s.key, payload); err != nil {
		s.logger.Error("persist tasks failed", "key", s.key, "err", err)
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}
