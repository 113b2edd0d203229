package mocks

import (
	"sort"
	"sync"
	"time"

	"github.com/mfreeman/sketchdash/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing.
// Timers scheduled with AfterFunc fire synchronously from Advance,
// in deadline order, which makes timer-driven state transitions
// deterministic in tests.
type MockClock struct {
	mu      sync.Mutex
	current time.Time
	timers  []*mockTimer
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

type mockTimer struct {
	clock    *MockClock
	deadline time.Time
	f        func()
	stopped  bool
	fired    bool
}

// Stop prevents the timer from firing
func (t *mockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// AfterFunc registers f to fire once the clock advances past d
func (c *MockClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &mockTimer{
		clock:    c,
		deadline: c.current.Add(d),
		f:        f,
	}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by the given duration, firing every
// pending timer whose deadline is reached, in deadline order. Timer
// callbacks run without the clock lock held, so they may schedule
// further timers; those fire too if they fall within the window.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.current.Add(d)
	c.mu.Unlock()

	for {
		t := c.popDue(target)
		if t == nil {
			break
		}
		t.f()
	}

	c.mu.Lock()
	c.current = target
	c.mu.Unlock()
}

// popDue removes and returns the earliest pending timer due at or
// before target, advancing the clock to its deadline. Returns nil
// when no timer is due.
func (c *MockClock) popDue(target time.Time) *mockTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	var due *mockTimer
	for _, t := range c.timers {
		if t.stopped || t.fired {
			continue
		}
		if t.deadline.After(target) {
			continue
		}
		if due == nil || t.deadline.Before(due.deadline) {
			due = t
		}
	}
	if due == nil {
		return nil
	}

	due.fired = true
	if due.deadline.After(c.current) {
		c.current = due.deadline
	}
	return due
}

// Set sets the clock to the given time without firing timers
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// PendingTimers returns the deadlines of all timers that have not
// fired or been stopped, sorted ascending
func (c *MockClock) PendingTimers() []time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	var deadlines []time.Time
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			deadlines = append(deadlines, t.deadline)
		}
	}
	sort.Slice(deadlines, func(i, j int) bool { return deadlines[i].Before(deadlines[j]) })
	return deadlines
}
