package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ID uuid.UUID

func NewID() (ID, error) {
	v7, err := uuid.NewV7()
	if err != nil {
		return ID{}, fmt.Errorf("%w: %v", ErrIDGeneration, err)
	}

	return ID(v7), nil
}

func NewIDFromString(idStr string) (ID, error) {
	uuidVal, err := uuid.Parse(idStr)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %v", ErrIDInvalidFormat, err)
	}

	if uuidVal.Version() != 7 {
		return ID{}, ErrIDInvalidV7
	}

	return ID(uuidVal), nil
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

// Details holds the optional attributes fixed at creation time.
type Details struct {
	Description string
	Category    string
	DueDate     *time.Time
	Recurrence  Recurrence
}

type Task struct {
	id          ID
	title       string
	description string
	priority    Priority
	completed   bool
	tags        Tags
	subtasks    []Subtask
	category    string
	dueDate     *time.Time
	recurrence  Recurrence
	createdAt   time.Time
	completedAt *time.Time
}

// NewTask reconstructs a task from stored state, validating every invariant.
func NewTask(
	id ID,
	title string,
	priority Priority,
	details Details,
	completed bool,
	tags []string,
	subtasks []Subtask,
	createdAt time.Time,
	completedAt *time.Time,
) (*Task, error) {
	var dueDate *time.Time
	if details.DueDate != nil {
		d := dateOf(*details.DueDate)
		dueDate = &d
	}

	var normalizedCompletedAt *time.Time
	if completed && completedAt != nil {
		c := completedAt.UTC().Truncate(time.Microsecond)
		normalizedCompletedAt = &c
	}

	t := &Task{
		id:          id,
		title:       title,
		description: details.Description,
		priority:    priority,
		completed:   completed,
		tags:        NewTags(tags...),
		subtasks:    copySubtasks(subtasks),
		category:    details.Category,
		dueDate:     dueDate,
		recurrence:  details.Recurrence,
		createdAt:   createdAt.UTC().Truncate(time.Microsecond),
		completedAt: normalizedCompletedAt,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate checks the invariants every stored task must hold.
func (t *Task) Validate() error {
	if t.id == (ID{}) {
		return ErrIDMissing
	}

	if strings.TrimSpace(t.title) == "" {
		return ErrTitleEmpty
	}

	if !t.priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.priority)
	}

	if !t.recurrence.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRecurrence, t.recurrence)
	}

	return validateSubtasks(t.subtasks)
}

// CreateTask builds a fresh, incomplete and untagged task with a new ID.
func CreateTask(title string, priority Priority, details Details, createdAt time.Time) (*Task, error) {
	id, err := NewID()
	if err != nil {
		return nil, err
	}

	return NewTask(id, title, priority, details, false, nil, nil, createdAt, nil)
}

func (t *Task) ID() ID {
	return t.id
}

func (t *Task) Title() string {
	return t.title
}

func (t *Task) Description() string {
	return t.description
}

func (t *Task) Priority() Priority {
	return t.priority
}

func (t *Task) Completed() bool {
	return t.completed
}

// Tags returns the task's tags in insertion order.
func (t *Task) Tags() []string {
	return t.tags.Values()
}

func (t *Task) HasTag(tag string) bool {
	return t.tags.Contains(tag)
}

func (t *Task) Category() string {
	return t.category
}

func (t *Task) DueDate() *time.Time {
	if t.dueDate == nil {
		return nil
	}

	d := *t.dueDate

	return &d
}

func (t *Task) Recurrence() Recurrence {
	return t.recurrence
}

func (t *Task) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Task) CompletedAt() *time.Time {
	if t.completedAt == nil {
		return nil
	}

	c := *t.completedAt

	return &c
}

func (t *Task) Details() Details {
	return Details{
		Description: t.description,
		Category:    t.category,
		DueDate:     t.DueDate(),
		Recurrence:  t.recurrence,
	}
}

// Complete marks the task as completed. Completing twice keeps the first
// completion time and reports false.
func (t *Task) Complete(at time.Time) bool {
	if t.completed {
		return false
	}

	c := at.UTC().Truncate(time.Microsecond)
	t.completed = true
	t.completedAt = &c

	return true
}

// AddTags unions tags into the task and reports how many were new.
func (t *Task) AddTags(tags ...string) int {
	return t.tags.Add(tags...)
}

// Matches reports whether query is a case-insensitive substring of the
// title or the description.
func (t *Task) Matches(query string) bool {
	q := strings.ToLower(query)

	return strings.Contains(strings.ToLower(t.title), q) ||
		strings.Contains(strings.ToLower(t.description), q)
}

// IsOverdue reports whether an incomplete task's due date falls strictly
// before the calendar date of now.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.completed || t.dueDate == nil {
		return false
	}

	return t.dueDate.Before(utcDate(now))
}

// NextOccurrence builds the follow-up of a recurring task: same attributes,
// tags and subtasks, a new ID, nothing completed, due on the next
// occurrence date.
func (t *Task) NextOccurrence(createdAt time.Time) (*Task, error) {
	if !t.recurrence.IsRecurring() || t.dueDate == nil {
		return nil, ErrNotRecurring
	}

	next, ok := t.recurrence.Next(*t.dueDate)
	if !ok {
		return nil, ErrNotRecurring
	}

	id, err := NewID()
	if err != nil {
		return nil, err
	}

	details := t.Details()
	details.DueDate = &next

	subtasks := t.Subtasks()
	for i := range subtasks {
		subtasks[i].Completed = false
	}

	return NewTask(id, t.title, t.priority, details, false, t.tags.Values(), subtasks, createdAt, nil)
}

// Clone returns a deep copy that shares no mutable state with t.
func (t *Task) Clone() *Task {
	c := *t
	c.tags = t.tags.clone()
	c.subtasks = copySubtasks(t.subtasks)
	c.dueDate = t.DueDate()
	c.completedAt = t.CompletedAt()

	return &c
}
