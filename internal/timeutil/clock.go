// Package timeutil provides a testable clock and a frame-rate limiter for
// paced rendering. Simulation time never reads this clock; only the frame
// writer does.
package timeutil

import (
	"sync"
	"time"
)

// Clock abstracts wall-clock reads and sleeps.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep pauses for the specified duration.
	Sleep(d time.Duration)
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// Sleep pauses the current goroutine for at least the duration d.
func (RealClock) Sleep(d time.Duration) { time.Sleep(d) }

// MockClock is a manually driven Clock. Sleep returns immediately, records
// the duration and advances the clock by it.
type MockClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

// NewMockClock creates a MockClock set to t.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

// Now returns the mocked current time.
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Sleep records d and advances the clock by it.
func (c *MockClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

// Sleeps returns all recorded sleep durations.
func (c *MockClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]time.Duration, len(c.sleeps))
	copy(result, c.sleeps)
	return result
}

// Limiter caps a loop at a fixed number of ticks per second.
type Limiter struct {
	clock    Clock
	interval time.Duration
	last     time.Time
}

// NewLimiter returns a limiter for fps ticks per second. fps <= 0 disables
// limiting.
func NewLimiter(clock Clock, fps int) *Limiter {
	if clock == nil {
		clock = RealClock{}
	}
	l := &Limiter{clock: clock}
	if fps > 0 {
		l.interval = time.Second / time.Duration(fps)
	}
	return l
}

// Tick sleeps for whatever is left of the frame interval since the previous
// tick and returns the time slept. The first tick never sleeps.
func (l *Limiter) Tick() time.Duration {
	now := l.clock.Now()
	if l.interval == 0 || l.last.IsZero() {
		l.last = now
		return 0
	}
	wait := l.interval - now.Sub(l.last)
	if wait > 0 {
		l.clock.Sleep(wait)
		now = now.Add(wait)
	} else {
		wait = 0
	}
	l.last = now
	return wait
}
