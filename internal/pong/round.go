// Package pong implements the two-paddle ball simulation: paddle input,
// ball integration, collision resolution and the scoring state machine,
// orchestrated tick by tick by a Round.
//
// The package does no I/O. Rendering, audio, input polling and the display
// are reached through the small interfaces in ports.go.
package pong

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-pong/internal/core"
)

var (
	// ErrNoBall is returned when a scene carries no ball.
	ErrNoBall = errors.New("pong: scene has no ball")
	// ErrExtraBalls is returned when a scene carries more than one ball.
	ErrExtraBalls = errors.New("pong: scene has more than one ball")
	// ErrBoardRegression is returned when a scene would lower a tally.
	ErrBoardRegression = errors.New("pong: scoreboard cannot decrease")
)

// Scene is the full mutable state of a round: two paddles, the ball and the board.
type Scene struct {
	Tick    uint64
	Paddles [2]Paddle
	Balls   []Ball
	Board   Scoreboard
}

// StepResult reports what happened during one tick.
type StepResult struct {
	Tick         uint64
	Events       []Event
	Goal         *ScoreEvent
	ScoreChanged bool
	Board        Scoreboard
}

// Option configures a Round.
type Option func(*Round)

// WithAudio routes bounce and goal events to an audio sink.
func WithAudio(a AudioCue) Option {
	return func(r *Round) { r.audio = a }
}

// WithScoreDisplay registers a sink refreshed whenever the board changes.
func WithScoreDisplay(d ScoreDisplay) Option {
	return func(r *Round) { r.scores = d }
}

// Round owns the entities and runs the per-tick pipeline:
// input -> integrate -> collide -> score -> reset.
type Round struct {
	rules    Rules
	display  Display
	rng      *rand.Rand
	resolver *Resolver
	referee  *Referee

	paddles [2]Paddle
	ball    Ball
	board   Scoreboard
	tick    uint64
	rally   Rally
	queue   EventQueue

	audio  AudioCue
	scores ScoreDisplay
}

// NewRound validates rules and sets up a fresh kickoff with a 0-0 board.
func NewRound(rules Rules, display Display, rng *rand.Rand, opts ...Option) (*Round, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if display == nil {
		return nil, fmt.Errorf("%w: display is required", ErrInvalidRules)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: random source is required", ErrInvalidRules)
	}

	r := &Round{
		rules:    rules,
		display:  display,
		rng:      rng,
		resolver: NewResolver(rules),
		referee:  NewReferee(rules),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.paddles = [2]Paddle{
		{Side: SideLeft, Pos: core.V(-rules.PaddleOffset, 0), Size: rules.PaddleSize},
		{Side: SideRight, Pos: core.V(rules.PaddleOffset, 0), Size: rules.PaddleSize},
	}
	r.ball = Ball{Radius: rules.BallRadius}
	r.kickoff()

	if r.scores != nil {
		r.scores.ShowScore(r.board)
	}
	return r, nil
}

// Rules returns the round's constants.
func (r *Round) Rules() Rules {
	return r.rules
}

// Tick returns the number of ticks simulated.
func (r *Round) Tick() uint64 {
	return r.tick
}

// Board returns a copy of the scoreboard.
func (r *Round) Board() Scoreboard {
	return r.board
}

// Ball returns a copy of the ball.
func (r *Round) Ball() Ball {
	return r.ball
}

// Paddles returns copies of both paddles, left first.
func (r *Round) Paddles() [2]Paddle {
	return r.paddles
}

// Rally returns the stats of the rally in progress.
func (r *Round) Rally() Rally {
	return r.rally
}

// Phase returns the referee's state. Outside of Step it is always Playing.
func (r *Round) Phase() Phase {
	return r.referee.Phase()
}

// Step runs one tick with the given held keys and fixed step dt (seconds).
func (r *Round) Step(in core.MultiInputFrame, dt float64) StepResult {
	r.tick++

	for i := range r.paddles {
		p := &r.paddles[i]
		p.Pos.Y = MovePaddle(p.Pos.Y, in.Player(p.Side.Player()), r.rules.PaddleSpeed, r.rules.MaxHeight)
	}

	r.ball.Pos = Integrate(r.ball.Pos, r.ball.Vel, dt)
	r.rally.Ticks++

	for _, ev := range r.resolver.Resolve(&r.ball, r.paddles[:], CourtFrom(r.display), r.tick) {
		if ev.Kind == EventPaddleBounce {
			r.rally.Bounces++
		}
		r.queue.Push(ev)
	}
	r.rally.PeakSpeed = max(r.rally.PeakSpeed, r.ball.Speed())

	res := StepResult{Tick: r.tick}
	if goal, ok := r.referee.Observe(r.ball, &r.board, r.tick); ok {
		goal.Rally = r.rally
		r.queue.Push(Event{Kind: EventGoal, Tick: r.tick, Side: goal.Scorer, Speed: r.ball.Speed()})
		if r.referee.BeginReset() {
			r.kickoff()
			r.referee.FinishReset()
		}
		res.Goal = &goal
		res.ScoreChanged = true
	}

	res.Events = r.queue.Drain()
	res.Board = r.board
	r.notify(res)
	return res
}

func (r *Round) notify(res StepResult) {
	if r.audio != nil {
		for _, ev := range res.Events {
			r.audio.Play(ev.Kind)
		}
	}
	if res.ScoreChanged && r.scores != nil {
		r.scores.ShowScore(res.Board)
	}
}

// kickoff centers the ball with a fresh random velocity, recenters both
// paddles and starts a new rally. The board is untouched.
func (r *Round) kickoff() {
	r.ball.Pos = core.Vec2{}
	r.ball.Vel = KickoffVelocity(r.rng, r.rules.StartingSpeed)
	r.ball.Contact.Disarm()
	for i := range r.paddles {
		r.paddles[i].Pos.Y = 0
	}
	r.rally = Rally{PeakSpeed: r.ball.Speed()}
}

// Scene captures the round's state.
func (r *Round) Scene() Scene {
	return Scene{
		Tick:    r.tick,
		Paddles: r.paddles,
		Balls:   []Ball{r.ball},
		Board:   r.board,
	}
}

// Load replaces the round's state with a scene. The model has exactly one
// ball: an empty scene fails with ErrNoBall and extra balls are rejected with
// ErrExtraBalls rather than silently dropped. Tallies never go down within a
// session, so a scene with a lower board fails with ErrBoardRegression.
func (r *Round) Load(s Scene) error {
	switch {
	case len(s.Balls) == 0:
		return ErrNoBall
	case len(s.Balls) > 1:
		return fmt.Errorf("%w: got %d", ErrExtraBalls, len(s.Balls))
	case s.Board.Left < r.board.Left || s.Board.Right < r.board.Right:
		return fmt.Errorf("%w: %s -> %s", ErrBoardRegression, r.board, s.Board)
	}

	ball := s.Balls[0]
	if !ball.Pos.IsFinite() || !ball.Vel.IsFinite() {
		return fmt.Errorf("%w: ball state is not finite", ErrDegenerateGeometry)
	}
	if ball.Radius <= 0 {
		ball.Radius = r.rules.BallRadius
	}

	changed := s.Board != r.board
	r.tick = s.Tick
	r.paddles = s.Paddles
	r.paddles[0].Side, r.paddles[1].Side = SideLeft, SideRight
	for i := range r.paddles {
		if r.paddles[i].Size == (core.Vec2{}) {
			r.paddles[i].Size = r.rules.PaddleSize
		}
	}
	r.ball = ball
	r.board = s.Board
	r.rally = Rally{PeakSpeed: ball.Speed()}
	r.queue.Drain()

	if changed && r.scores != nil {
		r.scores.ShowScore(r.board)
	}
	return nil
}

// Draw hands the paddles and the ball to a renderer.
func (r *Round) Draw(dst Renderer) {
	for _, p := range r.paddles {
		dst.DrawRect(p.Pos, p.Size, core.ColorBrightWhite)
	}
	dst.DrawCircle(r.ball.Pos, r.ball.Radius, core.ColorBrightYellow)
}
