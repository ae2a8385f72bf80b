package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domaintask "github.com/KasumiMercury/primind-tasktracker/internal/task/domain/task"
	"github.com/KasumiMercury/primind-tasktracker/internal/task/infra/record"
	"github.com/redis/go-redis/v9"
)

const defaultKey = "tasktracker:snapshot"

type snapshotRepository struct {
	client *redis.Client
	key    string
}

type Option func(*snapshotRepository)

// WithKey overrides the key holding the snapshot document.
func WithKey(key string) Option {
	return func(r *snapshotRepository) {
		if key != "" {
			r.key = key
		}
	}
}

func NewSnapshotRepository(client *redis.Client, opts ...Option) domaintask.SnapshotRepository {
	r := &snapshotRepository{client: client, key: defaultKey}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *snapshotRepository) SaveSnapshot(ctx context.Context, tasks []*domaintask.Task) error {
	records, err := record.FromDomainList(tasks)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.key, payload, 0).Err()
}

func (r *snapshotRepository) LoadSnapshot(ctx context.Context) ([]*domaintask.Task, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []*domaintask.Task{}, nil
	}

	if err != nil {
		return nil, err
	}

	var records []record.Task
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptedSnapshot, err)
	}

	return record.ToDomainList(records)
}
