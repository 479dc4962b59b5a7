package pong

import (
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
	engine "github.com/vovakirdan/tui-pong/internal/pong"
)

// Tracker drives a paddle by holding Up or Down toward the ball.
// It only reacts while the ball is heading its way, like a human would.
type Tracker struct {
	Side     engine.Side
	Deadzone float64 // No key is held while |ball.y - paddle.y| is within this
}

// NewTracker creates a tracker for side with a deadzone suited to the rules.
func NewTracker(side engine.Side, r engine.Rules) Tracker {
	return Tracker{Side: side, Deadzone: r.PaddleSpeed}
}

// Input returns the keys the tracker holds for the current scene.
func (t Tracker) Input(ball engine.Ball, paddles [2]engine.Paddle) core.InputFrame {
	frame := core.NewInputFrame()

	var paddle engine.Paddle
	for _, p := range paddles {
		if p.Side == t.Side {
			paddle = p
		}
	}

	// Only move if ball is coming towards us
	incoming := (t.Side == engine.SideRight && ball.Vel.X > 0) ||
		(t.Side == engine.SideLeft && ball.Vel.X < 0)
	if !incoming {
		return frame
	}

	diff := ball.Pos.Y - paddle.Pos.Y
	if math.Abs(diff) <= t.Deadzone {
		return frame
	}
	if diff > 0 {
		frame.Set(core.ActionUp)
	} else {
		frame.Set(core.ActionDown)
	}
	return frame
}

// Drive merges tracker input for its side into in, replacing whatever that player held.
func (t Tracker) Drive(in *core.MultiInputFrame, r *engine.Round) {
	in.SetPlayer(t.Side.Player(), t.Input(r.Ball(), r.Paddles()))
}
