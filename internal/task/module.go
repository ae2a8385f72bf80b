package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/primind-tasktracker/internal/observability/logging"
	domaintask "github.com/KasumiMercury/primind-tasktracker/internal/task/domain/task"
	"github.com/KasumiMercury/primind-tasktracker/internal/task/store"
)

const moduleName logging.Module = "task"

var (
	ErrSnapshotRepositoryMissing = errors.New("snapshot repository is not configured")
	ErrRestoreFailed             = errors.New("failed to restore task store")
)

type Repositories struct {
	Snapshots domaintask.SnapshotRepository
	// Cleanup releases connections held by Snapshots. Optional.
	Cleanup func() error
}

func (r *Repositories) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}

	return r.Cleanup()
}

// Module couples a task store with the repository that snapshots it.
type Module struct {
	store  *store.Store
	repos  Repositories
	logger *slog.Logger
}

// Open builds a store and fills it from the repository's last snapshot.
func Open(ctx context.Context, repos Repositories, opts ...store.Option) (*Module, error) {
	logger := logging.For(moduleName).WithGroup("task")

	if repos.Snapshots == nil {
		return nil, ErrSnapshotRepositoryMissing
	}

	tasks, err := repos.Snapshots.LoadSnapshot(ctx)
	if err != nil {
		logger.Error("failed to load snapshot", slog.String("error", err.Error()))

		return nil, fmt.Errorf("%w: %w", ErrRestoreFailed, err)
	}

	s := store.New(append([]store.Option{store.WithLogger(logger.WithGroup("store"))}, opts...)...)

	if err := s.Restore(tasks); err != nil {
		logger.Error("snapshot rejected", slog.String("error", err.Error()))

		return nil, fmt.Errorf("%w: %w", ErrRestoreFailed, err)
	}

	logger.Info("task module opened", slog.Int("tasks", s.Len()))

	return &Module{store: s, repos: repos, logger: logger}, nil
}

func (m *Module) Store() *store.Store {
	return m.store
}

// Flush saves the current store contents through the repository.
func (m *Module) Flush(ctx context.Context) error {
	tasks := m.store.Snapshot()

	if err := m.repos.Snapshots.SaveSnapshot(ctx, tasks); err != nil {
		m.logger.Error("failed to save snapshot", slog.String("error", err.Error()))

		return err
	}

	m.logger.Info("snapshot saved", slog.Int("tasks", len(tasks)))

	return nil
}

func (m *Module) Close() error {
	return m.repos.Close()
}
