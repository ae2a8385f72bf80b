// Package record maps domain tasks to the flat document shape shared by the
// document-oriented snapshot backends (JSON file, Redis, Neo4j).
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	domaintask "github.com/KasumiMercury/primind-tasktracker/internal/task/domain/task"
)

const (
	// DateLayout is the format of due dates in stored documents.
	DateLayout = "2006-01-02"
	// NaiveTimestampLayout is how the earlier tracker wrote created_at,
	// as local wall-clock time without a zone.
	NaiveTimestampLayout = "2006-01-02 15:04:05"
)

type Subtask struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Task struct {
	ID string `json:"id"`
	// NumericID is set when the document stored an integer id, as files
	// from the earlier tracker do. Such records get a fresh ID on load.
	NumericID   *int64     `json:"-"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Completed   bool       `json:"completed"`
	Tags        []string   `json:"tags"`
	Category    string     `json:"category,omitempty"`
	DueDate     string     `json:"due_date,omitempty"`
	Recurrence  string     `json:"recurrence,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Subtasks    []Subtask  `json:"subtasks,omitempty"`
}

// UnmarshalJSON accepts both the current document shape and the earlier
// tracker's, which used integer ids and naive created_at timestamps.
func (r *Task) UnmarshalJSON(data []byte) error {
	type plain Task

	var doc struct {
		plain
		ID        json.RawMessage `json:"id"`
		CreatedAt json.RawMessage `json:"created_at"`
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	rec := Task(doc.plain)

	if err := rec.decodeID(doc.ID); err != nil {
		return err
	}

	createdAt, err := decodeTimestamp(doc.CreatedAt)
	if err != nil {
		return err
	}

	rec.CreatedAt = createdAt
	*r = rec

	return nil
}

func (r *Task) decodeID(raw json.RawMessage) error {
	r.ID, r.NumericID = "", nil

	if isNull(raw) {
		return nil
	}

	if raw[0] == '"' {
		return json.Unmarshal(raw, &r.ID)
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("%w: id %s", ErrMalformedRecord, raw)
	}

	r.NumericID = &n

	return nil
}

func decodeTimestamp(raw json.RawMessage) (time.Time, error) {
	if isNull(raw) {
		return time.Time{}, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, fmt.Errorf("%w: created_at %s", ErrMalformedRecord, raw)
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}

	t, err := time.ParseInLocation(NaiveTimestampLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: created_at %q", ErrMalformedRecord, s)
	}

	return t, nil
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)

	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func FromDomain(t *domaintask.Task) Task {
	rec := Task{
		ID:          t.ID().String(),
		Title:       t.Title(),
		Description: t.Description(),
		Priority:    string(t.Priority()),
		Completed:   t.Completed(),
		Tags:        t.Tags(),
		Category:    t.Category(),
		Recurrence:  string(t.Recurrence()),
		CreatedAt:   t.CreatedAt(),
		CompletedAt: t.CompletedAt(),
	}

	if due := t.DueDate(); due != nil {
		rec.DueDate = due.Format(DateLayout)
	}

	for _, st := range t.Subtasks() {
		rec.Subtasks = append(rec.Subtasks, Subtask{
			ID:        int(st.ID),
			Title:     st.Title,
			Completed: st.Completed,
		})
	}

	return rec
}

func (r Task) ToDomain() (*domaintask.Task, error) {
	id, err := r.domainID()
	if err != nil {
		return nil, err
	}

	priority, err := domaintask.NewPriority(r.Priority)
	if err != nil {
		return nil, err
	}

	recurrence, err := domaintask.NewRecurrence(r.Recurrence)
	if err != nil {
		return nil, err
	}

	details := domaintask.Details{
		Description: r.Description,
		Category:    r.Category,
		Recurrence:  recurrence,
	}

	if r.DueDate != "" {
		due, err := time.Parse(DateLayout, r.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: due date %q: %v", ErrMalformedRecord, r.DueDate, err)
		}

		details.DueDate = &due
	}

	subtasks := make([]domaintask.Subtask, 0, len(r.Subtasks))
	for _, st := range r.Subtasks {
		subtasks = append(subtasks, domaintask.Subtask{
			ID:        domaintask.SubtaskID(st.ID),
			Title:     st.Title,
			Completed: st.Completed,
		})
	}

	return domaintask.NewTask(id, r.Title, priority, details, r.Completed, r.Tags, subtasks, r.CreatedAt, r.CompletedAt)
}

func (r Task) domainID() (domaintask.ID, error) {
	if r.NumericID != nil {
		return domaintask.NewID()
	}

	return domaintask.NewIDFromString(r.ID)
}

func FromDomainList(tasks []*domaintask.Task) ([]Task, error) {
	out := make([]Task, 0, len(tasks))

	for i, t := range tasks {
		if t == nil {
			return nil, fmt.Errorf("%w: position %d", ErrTaskRequired, i)
		}

		out = append(out, FromDomain(t))
	}

	return out, nil
}

func ToDomainList(records []Task) ([]*domaintask.Task, error) {
	out := make([]*domaintask.Task, 0, len(records))

	for i, r := range records {
		t, err := r.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		out = append(out, t)
	}

	return out, nil
}
