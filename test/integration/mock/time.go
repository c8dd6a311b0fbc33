package mock

import (
	"sync"
	"time"
)

// Clock is a settable clock. Until Set is called it follows the wall clock.
type Clock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewClock creates a clock following the wall clock.
func NewClock() *Clock {
	return &Clock{}
}

// Set freezes the clock at t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// Reset returns the clock to the wall clock.
func (c *Clock) Reset() {
	c.Set(time.Time{})
}

// Now implements adapter.Clock.
func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current.IsZero() {
		return time.Now()
	}
	return c.current
}
