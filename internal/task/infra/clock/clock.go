package clock

import (
	"sync"
	"time"
)

// Clock provides the current time to the task store, which stamps
// creation and completion times and decides what is overdue.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time in UTC.
type RealClock struct{}

func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock returns a time that only changes when the test moves it.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t.UTC()}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// Today returns midnight UTC of the clock's current calendar date.
func Today(c Clock) time.Time {
	y, m, d := c.Now().UTC().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
