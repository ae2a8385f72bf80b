package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	domaintask "github.com/KasumiMercury/primind-tasktracker/internal/task/domain/task"
	"github.com/KasumiMercury/primind-tasktracker/internal/task/infra/record"
)

type snapshotRepository struct {
	path   string
	logger *slog.Logger
}

// NewSnapshotRepository stores the task list as an indented JSON array at path.
func NewSnapshotRepository(path string) domaintask.SnapshotRepository {
	return &snapshotRepository{
		path:   path,
		logger: slog.Default().WithGroup("task").WithGroup("jsonfile"),
	}
}

// LoadSnapshot returns an empty list when the file is missing or is not
// syntactically valid JSON; the latter is logged. Files from the earlier
// tracker, with integer ids, are accepted. Any other decode failure is
// returned so that a later save cannot overwrite data it did not read.
func (r *snapshotRepository) LoadSnapshot(ctx context.Context) ([]*domaintask.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []*domaintask.Task{}, nil
	}

	if err != nil {
		return nil, err
	}

	var records []record.Task
	if err := json.Unmarshal(raw, &records); err != nil {
		var syntaxErr *json.SyntaxError
		if !errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("%w: %s: %w", ErrUnreadableFile, r.path, err)
		}

		r.logger.Warn("tasks file contains invalid JSON, starting with an empty list",
			slog.String("path", r.path),
			slog.String("error", err.Error()),
		)

		return []*domaintask.Task{}, nil
	}

	tasks, err := record.ToDomainList(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadableFile, r.path, err)
	}

	return tasks, nil
}

// SaveSnapshot writes to a temporary file in the same directory and renames
// it over the target, so readers never see a partial document.
func (r *snapshotRepository) SaveSnapshot(ctx context.Context, tasks []*domaintask.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	records, err := record.FromDomainList(tasks)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace tasks file: %w", err)
	}

	r.logger.Debug("tasks file saved", slog.String("path", r.path), slog.Int("tasks", len(records)))

	return nil
}
