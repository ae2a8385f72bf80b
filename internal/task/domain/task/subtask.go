package task

import (
	"fmt"
	"strings"
)

// SubtaskID numbers a subtask within its parent task, starting at 1.
type SubtaskID int

type Subtask struct {
	ID        SubtaskID
	Title     string
	Completed bool
}

func validateSubtasks(subtasks []Subtask) error {
	seen := make(map[SubtaskID]struct{}, len(subtasks))

	for _, st := range subtasks {
		if st.ID <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidSubtaskID, st.ID)
		}

		if _, dup := seen[st.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateSubtaskID, st.ID)
		}

		seen[st.ID] = struct{}{}
	}

	return nil
}

func copySubtasks(subtasks []Subtask) []Subtask {
	if len(subtasks) == 0 {
		return nil
	}

	out := make([]Subtask, len(subtasks))
	copy(out, subtasks)

	return out
}

// AddSubtask appends a subtask numbered one past the highest existing ID.
func (t *Task) AddSubtask(title string) (Subtask, error) {
	if strings.TrimSpace(title) == "" {
		return Subtask{}, ErrSubtaskTitleEmpty
	}

	var next SubtaskID
	for _, st := range t.subtasks {
		next = max(next, st.ID)
	}

	st := Subtask{ID: next + 1, Title: title}
	t.subtasks = append(t.subtasks, st)

	return st, nil
}

// CompleteSubtask marks a subtask as completed. It reports false when the
// subtask was already completed.
func (t *Task) CompleteSubtask(id SubtaskID) (bool, error) {
	for i := range t.subtasks {
		if t.subtasks[i].ID != id {
			continue
		}

		if t.subtasks[i].Completed {
			return false, nil
		}

		t.subtasks[i].Completed = true

		return true, nil
	}

	return false, fmt.Errorf("%w: %d", ErrSubtaskNotFound, id)
}

// Subtasks returns a copy of the task's subtasks in insertion order.
func (t *Task) Subtasks() []Subtask {
	out := make([]Subtask, len(t.subtasks))
	copy(out, t.subtasks)

	return out
}
