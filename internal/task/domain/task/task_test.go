package task

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestNewIDSuccess(t *testing.T) {
	id, err := NewID()
	if err != nil {
		t.Fatalf("NewID() unexpected error: %v", err)
	}

	if id.String() == "" {
		t.Error("NewID() returned empty ID")
	}

	if v := uuid.UUID(id).Version(); v != 7 {
		t.Errorf("NewID() returned UUIDv%d, want v7", v)
	}
}

func TestNewIDFromStringRoundTrip(t *testing.T) {
	originalID, err := NewID()
	if err != nil {
		t.Fatalf("NewID() error: %v", err)
	}

	parsedID, err := NewIDFromString(originalID.String())
	if err != nil {
		t.Fatalf("NewIDFromString(%q) error: %v", originalID.String(), err)
	}

	if parsedID != originalID {
		t.Errorf("round-trip failed: got %q, want %q", parsedID, originalID)
	}
}

func TestNewIDFromStringErrors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectedErr error
	}{
		{name: "empty string", input: "", expectedErr: ErrIDInvalidFormat},
		{name: "invalid UUID format", input: "not-a-uuid", expectedErr: ErrIDInvalidFormat},
		{name: "UUIDv4 instead of v7", input: uuid.New().String(), expectedErr: ErrIDInvalidV7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIDFromString(tt.input)
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("NewIDFromString(%q) error = %v, want %v", tt.input, err, tt.expectedErr)
			}

			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("NewIDFromString(%q) error = %v, want kind ErrInvalidInput", tt.input, err)
			}
		})
	}
}

func TestCreateTaskSuccess(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	due := time.Date(2026, 3, 10, 18, 45, 0, 0, time.FixedZone("JST", 9*60*60))

	tests := []struct {
		name     string
		title    string
		priority Priority
		details  Details
		wantDue  *time.Time
	}{
		{
			name:     "title and priority only",
			title:    "Buy groceries",
			priority: PriorityHigh,
		},
		{
			name:     "with description and category",
			title:    "Pay bills",
			priority: PriorityMedium,
			details:  Details{Description: "Electric and gas", Category: "home"},
		},
		{
			name:     "due date is normalized to a UTC date",
			title:    "Submit report",
			priority: PriorityLow,
			details:  Details{DueDate: &due, Recurrence: RecurrenceWeekly},
			wantDue: func() *time.Time {
				d := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
				return &d
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := CreateTask(tt.title, tt.priority, tt.details, createdAt)
			if err != nil {
				t.Fatalf("CreateTask() unexpected error: %v", err)
			}

			if task.Title() != tt.title {
				t.Errorf("Title() = %q, want %q", task.Title(), tt.title)
			}

			if task.Priority() != tt.priority {
				t.Errorf("Priority() = %q, want %q", task.Priority(), tt.priority)
			}

			if task.Completed() {
				t.Error("Completed() = true, want false")
			}

			if len(task.Tags()) != 0 {
				t.Errorf("Tags() = %v, want empty", task.Tags())
			}

			if task.Description() != tt.details.Description {
				t.Errorf("Description() = %q, want %q", task.Description(), tt.details.Description)
			}

			if diff := cmp.Diff(tt.wantDue, task.DueDate()); diff != "" {
				t.Errorf("DueDate() mismatch (-want +got):\n%s", diff)
			}

			if !task.CreatedAt().Equal(createdAt) {
				t.Errorf("CreatedAt() = %v, want %v", task.CreatedAt(), createdAt)
			}
		})
	}
}

func TestCreateTaskErrors(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		priority    Priority
		details     Details
		expectedErr error
	}{
		{name: "empty title", title: "", priority: PriorityHigh, expectedErr: ErrTitleEmpty},
		{name: "whitespace title", title: "   ", priority: PriorityHigh, expectedErr: ErrTitleEmpty},
		{name: "unknown priority", title: "Task", priority: Priority("Urgent"), expectedErr: ErrInvalidPriority},
		{name: "zero priority", title: "Task", priority: "", expectedErr: ErrInvalidPriority},
		{
			name:        "unknown recurrence",
			title:       "Task",
			priority:    PriorityLow,
			details:     Details{Recurrence: Recurrence("hourly")},
			expectedErr: ErrInvalidRecurrence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := CreateTask(tt.title, tt.priority, tt.details, time.Now())
			if err == nil {
				t.Fatalf("CreateTask() expected error, got %+v", task)
			}

			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("CreateTask() error = %v, want %v", err, tt.expectedErr)
			}

			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("CreateTask() error = %v, want kind ErrInvalidInput", err)
			}
		})
	}
}

func TestTaskComplete(t *testing.T) {
	task, err := CreateTask("Complete assignment", PriorityHigh, Details{}, time.Now())
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	first := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	if changed := task.Complete(first); !changed {
		t.Fatal("first Complete() reported no change")
	}

	if !task.Completed() {
		t.Fatal("Completed() = false after Complete()")
	}

	if changed := task.Complete(first.Add(time.Hour)); changed {
		t.Error("second Complete() reported a change")
	}

	if got := task.CompletedAt(); got == nil || !got.Equal(first) {
		t.Errorf("CompletedAt() = %v, want %v", got, first)
	}
}

func TestTaskAddTags(t *testing.T) {
	task, err := CreateTask("Project planning", PriorityMedium, Details{}, time.Now())
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if added := task.AddTags("work", "urgent", "work"); added != 2 {
		t.Errorf("AddTags() added %d, want 2", added)
	}

	if added := task.AddTags("urgent", "Urgent"); added != 1 {
		t.Errorf("AddTags() added %d, want 1", added)
	}

	if diff := cmp.Diff([]string{"work", "urgent", "Urgent"}, task.Tags()); diff != "" {
		t.Errorf("Tags() mismatch (-want +got):\n%s", diff)
	}
}

func TestTaskMatches(t *testing.T) {
	task, err := CreateTask("Buy milk", PriorityLow, Details{Description: "From the store"}, time.Now())
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	tests := []struct {
		query string
		want  bool
	}{
		{query: "milk", want: true},
		{query: "MILK", want: true},
		{query: "the st", want: true},
		{query: "", want: true},
		{query: "bread", want: false},
	}

	for _, tt := range tests {
		if got := task.Matches(tt.query); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2026, 5, 20, 8, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	today := now

	tests := []struct {
		name     string
		due      *time.Time
		complete bool
		want     bool
	}{
		{name: "no due date", due: nil, want: false},
		{name: "due yesterday", due: &yesterday, want: true},
		{name: "due today", due: &today, want: false},
		{name: "due yesterday but completed", due: &yesterday, complete: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := CreateTask("Task", PriorityHigh, Details{DueDate: tt.due}, now)
			if err != nil {
				t.Fatalf("setup failed: %v", err)
			}

			if tt.complete {
				task.Complete(now)
			}

			if got := task.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskNextOccurrence(t *testing.T) {
	due := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)

	task, err := CreateTask("Water plants", PriorityMedium, Details{
		Description: "Balcony",
		Category:    "home",
		DueDate:     &due,
		Recurrence:  RecurrenceMonthly,
	}, createdAt)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	task.AddTags("garden")
	task.Complete(createdAt)

	next, err := task.NextOccurrence(createdAt)
	if err != nil {
		t.Fatalf("NextOccurrence() unexpected error: %v", err)
	}

	if next.ID() == task.ID() {
		t.Error("NextOccurrence() reused the task ID")
	}

	if next.Completed() {
		t.Error("NextOccurrence() returned a completed task")
	}

	wantDue := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	if got := next.DueDate(); got == nil || !got.Equal(wantDue) {
		t.Errorf("DueDate() = %v, want %v", got, wantDue)
	}

	if diff := cmp.Diff(task.Tags(), next.Tags()); diff != "" {
		t.Errorf("Tags() mismatch (-want +got):\n%s", diff)
	}

	if next.Category() != "home" || next.Description() != "Balcony" {
		t.Errorf("NextOccurrence() did not copy details: %+v", next.Details())
	}
}

func TestTaskNextOccurrenceErrors(t *testing.T) {
	due := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		details Details
	}{
		{name: "no recurrence", details: Details{DueDate: &due}},
		{name: "no due date", details: Details{Recurrence: RecurrenceDaily}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := CreateTask("Task", PriorityLow, tt.details, time.Now())
			if err != nil {
				t.Fatalf("setup failed: %v", err)
			}

			if _, err := task.NextOccurrence(time.Now()); !errors.Is(err, ErrNotRecurring) {
				t.Errorf("NextOccurrence() error = %v, want %v", err, ErrNotRecurring)
			}
		})
	}
}

func TestTaskClone(t *testing.T) {
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	task, err := CreateTask("Original", PriorityHigh, Details{DueDate: &due}, time.Now())
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	task.AddTags("a")

	clone := task.Clone()
	clone.AddTags("b")
	clone.Complete(time.Now())

	if task.HasTag("b") {
		t.Error("tag added to clone leaked into original")
	}

	if task.Completed() {
		t.Error("completion of clone leaked into original")
	}

	if clone.ID() != task.ID() {
		t.Error("clone has a different ID")
	}
}

func TestCreateTaskKeepsLocalDueDate(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	est := time.FixedZone("EST", -5*60*60)

	tests := []struct {
		name string
		due  time.Time
		want time.Time
	}{
		{
			name: "local midnight east of UTC",
			due:  time.Date(2026, 10, 17, 0, 0, 0, 0, jst),
			want: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "late evening west of UTC",
			due:  time.Date(2026, 10, 17, 23, 30, 0, 0, est),
			want: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := CreateTask("Dentist", PriorityMedium, Details{DueDate: &tt.due}, time.Now())
			if err != nil {
				t.Fatalf("CreateTask() unexpected error: %v", err)
			}

			if got := task.DueDate(); got == nil || !got.Equal(tt.want) {
				t.Errorf("DueDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskValidate(t *testing.T) {
	valid, err := CreateTask("Valid", PriorityLow, Details{}, time.Now())
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	tests := []struct {
		name    string
		task    *Task
		wantErr error
	}{
		{name: "valid task", task: valid},
		{name: "zero value", task: &Task{}, wantErr: ErrIDMissing},
		{name: "blank title", task: &Task{id: valid.ID(), title: "  ", priority: PriorityLow}, wantErr: ErrTitleEmpty},
		{name: "unknown priority", task: &Task{id: valid.ID(), title: "x", priority: "Urgent"}, wantErr: ErrInvalidPriority},
		{
			name:    "unknown recurrence",
			task:    &Task{id: valid.ID(), title: "x", priority: PriorityLow, recurrence: "hourly"},
			wantErr: ErrInvalidRecurrence,
		},
		{
			name: "duplicate subtask IDs",
			task: &Task{
				id:       valid.ID(),
				title:    "x",
				priority: PriorityLow,
				subtasks: []Subtask{{ID: 1, Title: "a"}, {ID: 1, Title: "b"}},
			},
			wantErr: ErrDuplicateSubtaskID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}

			if tt.wantErr != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Validate() error = %v, want kind ErrInvalidInput", err)
			}
		})
	}
}

func TestTaskNextOccurrenceResetsSubtasks(t *testing.T) {
	due := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

	task, err := CreateTask("Weekly review", PriorityHigh, Details{DueDate: &due, Recurrence: RecurrenceWeekly}, time.Now())
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	first, _ := task.AddSubtask("Inbox zero")
	_, _ = task.AddSubtask("Plan week")

	if _, err := task.CompleteSubtask(first.ID); err != nil {
		t.Fatalf("CompleteSubtask() unexpected error: %v", err)
	}

	next, err := task.NextOccurrence(time.Now())
	if err != nil {
		t.Fatalf("NextOccurrence() unexpected error: %v", err)
	}

	want := []Subtask{
		{ID: 1, Title: "Inbox zero"},
		{ID: 2, Title: "Plan week"},
	}
	if diff := cmp.Diff(want, next.Subtasks()); diff != "" {
		t.Errorf("Subtasks() mismatch (-want +got):\n%s", diff)
	}

	if !task.Subtasks()[0].Completed {
		t.Error("NextOccurrence() reset the original task's subtasks")
	}
}
