package core

import "time"

// DefaultMaxCatchUp bounds how many fixed steps one Advance call may return.
const DefaultMaxCatchUp = 8

// Clock turns variable wall-clock frame deltas into a whole number of fixed
// simulation steps. Leftover time carries over to the next frame.
type Clock struct {
	step       time.Duration
	acc        time.Duration
	tick       uint64
	MaxCatchUp int
}

// NewClock creates a clock that runs tickRate fixed steps per second.
func NewClock(tickRate int) *Clock {
	if tickRate <= 0 {
		tickRate = 64
	}
	return &Clock{
		step:       time.Second / time.Duration(tickRate),
		MaxCatchUp: DefaultMaxCatchUp,
	}
}

// Step returns the fixed step duration.
func (c *Clock) Step() time.Duration {
	return c.step
}

// Seconds returns the fixed step in seconds, the dt handed to the integrator.
func (c *Clock) Seconds() float64 {
	return c.step.Seconds()
}

// Tick returns the number of fixed steps produced so far.
func (c *Clock) Tick() uint64 {
	return c.tick
}

// Advance accumulates elapsed time and returns how many fixed steps to run.
// When the backlog exceeds MaxCatchUp steps the excess is dropped.
func (c *Clock) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	c.acc += elapsed

	n := int(c.acc / c.step)
	c.acc -= time.Duration(n) * c.step
	if c.MaxCatchUp > 0 && n > c.MaxCatchUp {
		n = c.MaxCatchUp
		c.acc = 0
	}
	c.tick += uint64(n)
	return n
}

// Reset drops any accumulated time.
func (c *Clock) Reset() {
	c.acc = 0
}
