package graphstore

import (
	"context"
	"encoding/json"
	"fmt"

	domaintask "github.com/KasumiMercury/primind-tasktracker/internal/task/domain/task"
	"github.com/KasumiMercury/primind-tasktracker/internal/task/infra/record"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const (
	deleteTasksQuery = `
MATCH (t:Task)
OPTIONAL MATCH (t)-[:HAS_SUBTASK]->(s:Subtask)
DETACH DELETE t, s`

	createTasksQuery = `
UNWIND $tasks AS task
CREATE (t:Task)
SET t = task.props
WITH t, task
UNWIND task.subtasks AS subtask
CREATE (t)-[:HAS_SUBTASK]->(s:Subtask)
SET s = subtask`

	loadTasksQuery = `
MATCH (t:Task)
OPTIONAL MATCH (t)-[:HAS_SUBTASK]->(s:Subtask)
WITH t, s
ORDER BY t.position ASC, s.position ASC
WITH t, collect(properties(s)) AS subtasks
RETURN properties(t) AS props, subtasks
ORDER BY t.position ASC`
)

type snapshotRepository struct {
	driver   neo4j.DriverWithContext
	database string
}

type Option func(*snapshotRepository)

// WithDatabase selects a database other than the server default.
func WithDatabase(name string) Option {
	return func(r *snapshotRepository) {
		r.database = name
	}
}

// NewSnapshotRepository stores each task as a (:Task) node with a position
// property that preserves insertion order. Subtasks are (:Subtask) nodes
// linked by HAS_SUBTASK.
func NewSnapshotRepository(driver neo4j.DriverWithContext, opts ...Option) domaintask.SnapshotRepository {
	r := &snapshotRepository{driver: driver}

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

	rows := make([]any, 0, len(records))

	for i, rec := range records {
		props, err := toProperties(rec)
		if err != nil {
			return err
		}

		props["position"] = int64(i)
		rows = append(rows, map[string]any{
			"props":    props,
			"subtasks": subtaskProperties(rec.Subtasks),
		})
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: r.database,
	})
	defer session.Close(ctx)

	_, err = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx, deleteTasksQuery, nil); err != nil {
			return nil, err
		}

		if len(rows) == 0 {
			return nil, nil
		}

		_, err := tx.Run(ctx, createTasksQuery, map[string]any{"tasks": rows})

		return nil, err
	})

	return err
}

func (r *snapshotRepository) LoadSnapshot(ctx context.Context) ([]*domaintask.Task, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: r.database,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, loadTasksQuery, nil)
		if err != nil {
			return nil, err
		}

		var records []record.Task

		for res.Next(ctx) {
			props, ok := res.Record().Get("props")
			if !ok {
				return nil, fmt.Errorf("%w: missing props column", ErrUnexpectedResult)
			}

			subtasks, ok := res.Record().Get("subtasks")
			if !ok {
				return nil, fmt.Errorf("%w: missing subtasks column", ErrUnexpectedResult)
			}

			rec, err := fromProperties(props, subtasks)
			if err != nil {
				return nil, err
			}

			records = append(records, rec)
		}

		if err := res.Err(); err != nil {
			return nil, err
		}

		return records, nil
	})
	if err != nil {
		return nil, err
	}

	records, ok := result.([]record.Task)
	if !ok && result != nil {
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedResult, result)
	}

	return record.ToDomainList(records)
}

// toProperties flattens a record into Neo4j-compatible property values:
// strings, booleans and a list of strings. Absent optional fields are left
// out so the node does not carry them. Subtasks become their own nodes.
func toProperties(rec record.Task) (map[string]any, error) {
	rec.Subtasks = nil

	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}

	var props map[string]any
	if err := json.Unmarshal(raw, &props); err != nil {
		return nil, err
	}

	return props, nil
}

func subtaskProperties(subtasks []record.Subtask) []any {
	out := make([]any, 0, len(subtasks))

	for i, st := range subtasks {
		out = append(out, map[string]any{
			"id":        int64(st.ID),
			"title":     st.Title,
			"completed": st.Completed,
			"position":  int64(i),
		})
	}

	return out
}

func fromProperties(props, subtasks any) (record.Task, error) {
	var rec record.Task
	if err := remarshal(props, &rec); err != nil {
		return record.Task{}, err
	}

	if err := remarshal(subtasks, &rec.Subtasks); err != nil {
		return record.Task{}, err
	}

	if len(rec.Subtasks) == 0 {
		rec.Subtasks = nil
	}

	return rec, nil
}

// remarshal decodes driver values into dst through their JSON form.
func remarshal(src, dst any) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResult, err)
	}

	return nil
}
