package testutil

import (
	"sync"
	"time"
)

// FixedClock is a wall clock for tests that only moves when told to.
//
// Date validation compares against "today"; pinning it keeps tests
// independent of when they run.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock that reports now until advanced.
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

// Now returns the pinned time.
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
