// Package timeline provides the lazily-started frame clocks that drive the story render loop.
package timeline

import (
	"sync"
	"time"
)

// DefaultMaxDelta is the largest frame delta a Clock reports unless configured otherwise.
// Frames resumed after the host suspended the loop (hidden window, debugger pause) would
// otherwise produce a single arbitrarily large step.
const DefaultMaxDelta = 250 * time.Millisecond

// Frame is the timing information for one tick of the render loop.
type Frame struct {
	// Delta is the time since the previous tick in seconds.
	Delta float32

	// Elapsed is the time since the clock's first tick in seconds.
	Elapsed float32

	// Now is the timestamp the tick was taken at.
	Now time.Time
}

// Clock measures elapsed and delta time from consecutive frame timestamps.
// The first Tick only records the baseline; every later Tick reports a Frame.
type Clock struct {
	mu *sync.Mutex

	start    time.Time
	last     time.Time
	maxDelta time.Duration
}

// ClockOption is a functional option for configuring a Clock.
type ClockOption func(c *Clock)

// WithMaxDelta sets the upper bound for reported frame deltas. Zero disables the bound.
//
// Parameters:
//   - d: the maximum delta
//
// Returns:
//   - ClockOption: option function to apply
func WithMaxDelta(d time.Duration) ClockOption {
	return func(c *Clock) {
		if d < 0 {
			d = 0
		}
		c.maxDelta = d
	}
}

// NewClock creates a Clock that has not started yet.
//
// Parameters:
//   - options: functional options for the clock
//
// Returns:
//   - *Clock: the clock
func NewClock(options ...ClockOption) *Clock {
	c := &Clock{
		mu:       &sync.Mutex{},
		maxDelta: DefaultMaxDelta,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Started reports whether the baseline tick has happened.
func (c *Clock) Started() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.start.IsZero()
}

// Tick advances the clock to now.
// On the first call it only establishes the baseline and returns false.
// Deltas are never negative: a timestamp older than the previous one yields a zero delta
// and does not move the clock backwards.
//
// Parameters:
//   - now: the frame timestamp
//
// Returns:
//   - Frame: the timing for this tick (zero value on the baseline tick)
//   - bool: false on the baseline tick, true afterwards
func (c *Clock) Tick(now time.Time) (Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.start.IsZero() {
		c.start = now
		c.last = now
		return Frame{Now: now}, false
	}

	delta := now.Sub(c.last)
	if delta < 0 {
		delta = 0
		now = c.last
	}
	if c.maxDelta > 0 && delta > c.maxDelta {
		delta = c.maxDelta
	}
	c.last = now

	return Frame{
		Delta:   float32(delta.Seconds()),
		Elapsed: float32(now.Sub(c.start).Seconds()),
		Now:     now,
	}, true
}

// Elapsed returns the seconds between the baseline tick and now, or 0 before the baseline.
//
// Parameters:
//   - now: the reference timestamp
//
// Returns:
//   - float32: elapsed seconds
func (c *Clock) Elapsed(now time.Time) float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.start.IsZero() {
		return 0
	}
	e := now.Sub(c.start)
	if e < 0 {
		return 0
	}
	return float32(e.Seconds())
}

// Reset returns the clock to its unstarted state.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = time.Time{}
	c.last = time.Time{}
}
