package task

import (
	"fmt"
	"strings"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists every priority from most to least urgent.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// NewPriority parses a priority name. Matching ignores case and surrounding
// whitespace; the result is always the canonical value.
func NewPriority(p string) (Priority, error) {
	v := strings.TrimSpace(p)

	for _, candidate := range Priorities() {
		if strings.EqualFold(v, string(candidate)) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, p)
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

func (p Priority) String() string {
	return string(p)
}
