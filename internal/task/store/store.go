// Package store holds the in-memory task collection and its queries.
//
// Every method is safe for concurrent use: mutations take an exclusive
// lock and run to completion, queries share a read lock. Tasks handed to
// callers are deep copies, so the only way to change stored state is
// through the Store's own operations.
package store

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	domaintask "github.com/KasumiMercury/primind-tasktracker/internal/task/domain/task"
	"github.com/KasumiMercury/primind-tasktracker/internal/task/infra/clock"
)

type Store struct {
	mu     sync.RWMutex
	tasks  []*domaintask.Task
	index  map[domaintask.ID]int
	clock  clock.Clock
	logger *slog.Logger
}

type Option func(*Store)

func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		index:  make(map[domaintask.ID]int),
		clock:  &clock.RealClock{},
		logger: slog.Default().WithGroup("task").WithGroup("store"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AddOption sets an optional attribute of a task being added.
type AddOption func(*domaintask.Details)

func WithDescription(description string) AddOption {
	return func(d *domaintask.Details) {
		d.Description = description
	}
}

func WithCategory(category string) AddOption {
	return func(d *domaintask.Details) {
		d.Category = category
	}
}

func WithDueDate(due time.Time) AddOption {
	return func(d *domaintask.Details) {
		d.DueDate = &due
	}
}

func WithRecurrence(r domaintask.Recurrence) AddOption {
	return func(d *domaintask.Details) {
		d.Recurrence = r
	}
}

// Add creates an incomplete, untagged task and returns a copy of it.
func (s *Store) Add(title string, priority domaintask.Priority, opts ...AddOption) (*domaintask.Task, error) {
	var details domaintask.Details
	for _, opt := range opts {
		opt(&details)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := domaintask.CreateTask(title, priority, details, s.clock.Now())
	if err != nil {
		s.logger.Warn("rejected task", slog.String("error", err.Error()))

		return nil, err
	}

	s.insert(task)
	s.logger.Debug("task added", slog.String("task_id", task.ID().String()))

	return task.Clone(), nil
}

// Complete marks a task as completed. Completing a completed task is a no-op.
func (s *Store) Complete(id domaintask.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.lookup(id)
	if err != nil {
		return err
	}

	if task.Complete(s.clock.Now()) {
		s.logger.Debug("task completed", slog.String("task_id", id.String()))
	}

	return nil
}

// AddTags unions the comma-separated tags in input into the task's tags.
func (s *Store) AddTags(id domaintask.ID, input string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.lookup(id)
	if err != nil {
		return err
	}

	added := task.AddTags(domaintask.ParseTags(input)...)
	s.logger.Debug("tags added", slog.String("task_id", id.String()), slog.Int("added", added))

	return nil
}

// AddSubtask appends a subtask to the task and returns it.
func (s *Store) AddSubtask(id domaintask.ID, title string) (domaintask.Subtask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.lookup(id)
	if err != nil {
		return domaintask.Subtask{}, err
	}

	st, err := task.AddSubtask(title)
	if err != nil {
		return domaintask.Subtask{}, err
	}

	s.logger.Debug("subtask added", slog.String("task_id", id.String()), slog.Int("subtask_id", int(st.ID)))

	return st, nil
}

// CompleteSubtask marks one subtask as completed. Completing it twice is a
// no-op. The parent task's completion is unaffected.
func (s *Store) CompleteSubtask(id domaintask.ID, subtaskID domaintask.SubtaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.lookup(id)
	if err != nil {
		return err
	}

	changed, err := task.CompleteSubtask(subtaskID)
	if err != nil {
		return err
	}

	if changed {
		s.logger.Debug("subtask completed", slog.String("task_id", id.String()), slog.Int("subtask_id", int(subtaskID)))
	}

	return nil
}

// RollOver adds the next occurrence of a recurring task and returns it.
func (s *Store) RollOver(id domaintask.ID) (*domaintask.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	next, err := task.NextOccurrence(s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.insert(next)
	s.logger.Debug("task rolled over",
		slog.String("task_id", id.String()),
		slog.String("next_task_id", next.ID().String()),
	)

	return next.Clone(), nil
}

func (s *Store) Get(id domaintask.ID) (*domaintask.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	return task.Clone(), nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tasks)
}

// List returns every task in insertion order.
func (s *Store) List() []*domaintask.Task {
	return s.filter(func(*domaintask.Task) bool { return true })
}

func (s *Store) FilterByPriority(priority domaintask.Priority) []*domaintask.Task {
	return s.filter(func(t *domaintask.Task) bool { return t.Priority() == priority })
}

func (s *Store) FilterByCompletion(completed bool) []*domaintask.Task {
	return s.filter(func(t *domaintask.Task) bool { return t.Completed() == completed })
}

func (s *Store) FilterByCategory(category string) []*domaintask.Task {
	return s.filter(func(t *domaintask.Task) bool { return t.Category() == category })
}

func (s *Store) TasksByTag(tag string) []*domaintask.Task {
	return s.filter(func(t *domaintask.Task) bool { return t.HasTag(tag) })
}

// Search returns tasks whose title or description contains query,
// ignoring case. An empty query matches every task.
func (s *Store) Search(query string) []*domaintask.Task {
	return s.filter(func(t *domaintask.Task) bool { return t.Matches(query) })
}

// Overdue returns incomplete tasks due before today's date.
func (s *Store) Overdue() []*domaintask.Task {
	now := s.clock.Now()

	return s.filter(func(t *domaintask.Task) bool { return t.IsOverdue(now) })
}

// Snapshot returns copies of every task, for persistence.
func (s *Store) Snapshot() []*domaintask.Task {
	return s.List()
}

// Restore replaces the whole collection. Every task must satisfy the same
// invariants Add enforces. On error the store is unchanged.
func (s *Store) Restore(tasks []*domaintask.Task) error {
	restored := make([]*domaintask.Task, 0, len(tasks))
	index := make(map[domaintask.ID]int, len(tasks))

	for i, t := range tasks {
		if t == nil {
			return fmt.Errorf("%w: position %d", domaintask.ErrTaskNil, i)
		}

		if err := t.Validate(); err != nil {
			return fmt.Errorf("position %d: %w", i, err)
		}

		if _, dup := index[t.ID()]; dup {
			return fmt.Errorf("%w: %s", domaintask.ErrDuplicateTaskID, t.ID())
		}

		index[t.ID()] = len(restored)
		restored = append(restored, t.Clone())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = restored
	s.index = index
	s.logger.Info("store restored", slog.Int("tasks", len(restored)))

	return nil
}

func (s *Store) insert(task *domaintask.Task) {
	s.index[task.ID()] = len(s.tasks)
	s.tasks = append(s.tasks, task)
}

func (s *Store) lookup(id domaintask.ID) (*domaintask.Task, error) {
	i, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domaintask.ErrTaskNotFound, id)
	}

	return s.tasks[i], nil
}

func (s *Store) filter(keep func(*domaintask.Task) bool) []*domaintask.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domaintask.Task, 0)

	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}

	return out
}
