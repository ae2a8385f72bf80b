package repository

import (
	"context"
	"sync"

	domaintask "github.com/KasumiMercury/primind-tasktracker/internal/task/domain/task"
)

type inMemorySnapshotRepository struct {
	mu    sync.Mutex
	tasks []*domaintask.Task
}

// NewInMemorySnapshotRepository keeps the last saved snapshot in process
// memory. It backs the memory backend and tests.
func NewInMemorySnapshotRepository() domaintask.SnapshotRepository {
	return &inMemorySnapshotRepository{}
}

func (r *inMemorySnapshotRepository) SaveSnapshot(_ context.Context, tasks []*domaintask.Task) error {
	copied := make([]*domaintask.Task, 0, len(tasks))

	for _, task := range tasks {
		if task == nil {
			return ErrTaskRequired
		}

		copied = append(copied, task.Clone())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = copied

	return nil
}

func (r *inMemorySnapshotRepository) LoadSnapshot(_ context.Context) ([]*domaintask.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domaintask.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		out = append(out, task.Clone())
	}

	return out, nil
}
