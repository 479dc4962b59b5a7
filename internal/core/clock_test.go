package core

import (
	"testing"
	"time"
)

func TestClockAdvance(t *testing.T) {
	c := NewClock(50) // 20ms steps

	tests := []struct {
		name     string
		elapsed  time.Duration
		expected int
	}{
		{"less than one step", 15 * time.Millisecond, 0},
		{"carry completes a step", 5 * time.Millisecond, 1},
		{"exactly two steps", 40 * time.Millisecond, 2},
		{"negative elapsed ignored", -time.Second, 0},
	}

	for _, tc := range tests {
		if got := c.Advance(tc.elapsed); got != tc.expected {
			t.Errorf("%s: Advance(%v) = %d, expected %d", tc.name, tc.elapsed, got, tc.expected)
		}
	}

	if c.Tick() != 3 {
		t.Errorf("Tick() = %d, expected 3", c.Tick())
	}
}

func TestClockCatchUpCap(t *testing.T) {
	c := NewClock(100)
	c.MaxCatchUp = 4

	if got := c.Advance(time.Second); got != 4 {
		t.Errorf("Advance after a stall = %d, expected cap of 4", got)
	}
	if got := c.Advance(5 * time.Millisecond); got != 0 {
		t.Errorf("backlog should be dropped after the cap, got %d steps", got)
	}
}

func TestClockSeconds(t *testing.T) {
	c := NewClock(64)
	if c.Seconds() != 1.0/64.0 {
		t.Errorf("Seconds() = %f, expected %f", c.Seconds(), 1.0/64.0)
	}

	if NewClock(0).Step() != time.Second/64 {
		t.Error("non-positive tick rate should fall back to 64 Hz")
	}
}
