package pong

import (
	"fmt"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Side identifies one half of the court.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

// String returns a human-readable side name.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Opponent returns the other side. SideNone has no opponent.
func (s Side) Opponent() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return SideNone
	}
}

// Player returns the actor that owns the paddle on this side.
func (s Side) Player() core.PlayerID {
	if s == SideRight {
		return core.Player2
	}
	return core.Player1
}

// Paddle is a player-controlled rectangle. Pos is its center.
type Paddle struct {
	Side Side
	Pos  core.Vec2
	Size core.Vec2
}

// Box returns the paddle's collision rectangle.
func (p Paddle) Box() core.Box {
	return core.NewBox(p.Pos, p.Size)
}

// Debounce remembers the tick of the last accepted trigger and suppresses
// further triggers for a grace window of ticks after it.
type Debounce struct {
	LastTick uint64
	Armed    bool
}

// Suppressed reports whether tick still falls inside the grace window:
// tick - LastTick < grace. Grace 1 blocks only the recorded tick itself.
func (d Debounce) Suppressed(tick, grace uint64) bool {
	if !d.Armed || grace == 0 || tick < d.LastTick {
		return false
	}
	return tick-d.LastTick < grace
}

// Record arms the window at tick.
func (d *Debounce) Record(tick uint64) {
	d.LastTick = tick
	d.Armed = true
}

// Disarm forgets the last trigger.
func (d *Debounce) Disarm() {
	*d = Debounce{}
}

// Ball is the single moving body. Vel is in units per second.
type Ball struct {
	Pos     core.Vec2
	Vel     core.Vec2
	Radius  float64
	Contact Debounce // last collision tick
}

// Box returns the ball's collision square, half extent equal to the radius.
func (b Ball) Box() core.Box {
	return core.Box{Center: b.Pos, Half: core.V(b.Radius, b.Radius)}
}

// Speed returns the ball's speed in units per second.
func (b Ball) Speed() float64 {
	return b.Vel.Len()
}

// Scoreboard holds the session tallies. It only ever grows.
type Scoreboard struct {
	Left  uint32
	Right uint32
}

// Award adds one point to side.
func (s *Scoreboard) Award(side Side) {
	switch side {
	case SideLeft:
		s.Left++
	case SideRight:
		s.Right++
	}
}

// String formats the board the way the header shows it.
func (s Scoreboard) String() string {
	return fmt.Sprintf("%d - %d", s.Left, s.Right)
}

// Court is the playfield boundary derived from the display each tick.
type Court struct {
	Ceiling float64 // |y| limit
	Wall    float64 // |x| limit
}

// CourtFrom derives the court from viewport extents.
func CourtFrom(d Display) Court {
	w, h := d.Viewport()
	return Court{Ceiling: h / 2, Wall: w / 2}
}

// Rally summarizes play since the last kickoff.
type Rally struct {
	Bounces   int     // Paddle bounces
	PeakSpeed float64 // Highest ball speed seen
	Ticks     uint64  // Duration in ticks
}
