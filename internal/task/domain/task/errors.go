package task

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is the kind shared by every validation failure.
	ErrInvalidInput = errors.New("invalid input")
	// ErrTaskNotFound is returned when an ID does not reference a stored task.
	ErrTaskNotFound = errors.New("task not found")

	// ErrSubtaskNotFound is returned when a subtask ID is unknown to its task.
	ErrSubtaskNotFound = errors.New("subtask not found")

	ErrIDGeneration    = errors.New("failed to generate task ID")
	ErrIDInvalidFormat = fmt.Errorf("%w: task ID must be a valid UUID", ErrInvalidInput)
	ErrIDInvalidV7     = fmt.Errorf("%w: task ID must be a UUIDv7", ErrInvalidInput)

	ErrTitleEmpty        = fmt.Errorf("%w: task title cannot be empty", ErrInvalidInput)
	ErrInvalidPriority   = fmt.Errorf("%w: invalid task priority", ErrInvalidInput)
	ErrInvalidRecurrence = fmt.Errorf("%w: invalid recurrence pattern", ErrInvalidInput)
	ErrNotRecurring      = fmt.Errorf("%w: task has no recurrence or no due date", ErrInvalidInput)
	ErrDuplicateTaskID   = fmt.Errorf("%w: duplicate task ID", ErrInvalidInput)
	ErrTaskNil           = fmt.Errorf("%w: task is nil", ErrInvalidInput)
	ErrIDMissing         = fmt.Errorf("%w: task ID is missing", ErrInvalidInput)

	ErrSubtaskTitleEmpty  = fmt.Errorf("%w: subtask title cannot be empty", ErrInvalidInput)
	ErrInvalidSubtaskID   = fmt.Errorf("%w: subtask ID must be positive", ErrInvalidInput)
	ErrDuplicateSubtaskID = fmt.Errorf("%w: duplicate subtask ID", ErrInvalidInput)
)
