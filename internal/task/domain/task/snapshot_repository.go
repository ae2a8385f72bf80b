package task

import "context"

//go:generate mockgen -source=snapshot_repository.go -destination=mock_snapshot_repository.go -package=task

// SnapshotRepository persists the full task collection in insertion order.
type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, tasks []*Task) error
	LoadSnapshot(ctx context.Context) ([]*Task, error)
}
