package pong

import (
	"math/rand"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Phase is the scoring state machine's state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseScored
	PhaseResetting
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseScored:
		return "scored"
	case PhaseResetting:
		return "resetting"
	default:
		return "unknown"
	}
}

// Referee detects goals and walks Playing -> Scored -> Resetting -> Playing.
// Exactly one point is awarded per pass: once a goal is recorded, further
// observations are ignored until the reset completes and the grace window
// has elapsed, no matter how many detectors report the same ball.
type Referee struct {
	goalLine float64
	grace    uint64
	phase    Phase
	scorer   Side
	guard    Debounce
}

// NewReferee creates a referee for the given rules.
func NewReferee(r Rules) *Referee {
	return &Referee{goalLine: r.GoalLine(), grace: r.GraceTicks}
}

// Phase returns the current state.
func (r *Referee) Phase() Phase {
	return r.phase
}

// Scorer returns the side of the pending goal, or SideNone while playing.
func (r *Referee) Scorer() Side {
	return r.scorer
}

// Observe checks the ball against both goal lines. A ball past the right
// goal line is a point for the left side and vice versa.
func (r *Referee) Observe(ball Ball, board *Scoreboard, tick uint64) (ScoreEvent, bool) {
	if r.phase != PhasePlaying || r.guard.Suppressed(tick, r.grace) {
		return ScoreEvent{}, false
	}

	var side Side
	switch {
	case ball.Pos.X > r.goalLine:
		side = SideLeft
	case ball.Pos.X < -r.goalLine:
		side = SideRight
	default:
		return ScoreEvent{}, false
	}

	board.Award(side)
	r.phase = PhaseScored
	r.scorer = side
	r.guard.Record(tick)

	return ScoreEvent{Tick: tick, Scorer: side, Board: *board}, true
}

// BeginReset moves Scored to Resetting and reports whether a reset is due.
func (r *Referee) BeginReset() bool {
	if r.phase != PhaseScored {
		return false
	}
	r.phase = PhaseResetting
	return true
}

// FinishReset returns to Playing once the scene has been reset.
func (r *Referee) FinishReset() {
	if r.phase == PhaseResetting {
		r.phase = PhasePlaying
		r.scorer = SideNone
	}
}

// KickoffVelocity draws a serve velocity: |vx| = speed, |vy| = speed/2,
// each sign chosen independently and uniformly.
func KickoffVelocity(rng *rand.Rand, speed float64) core.Vec2 {
	return core.V(randomSign(rng)*speed, randomSign(rng)*speed/2)
}

func randomSign(rng *rand.Rand) float64 {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}
