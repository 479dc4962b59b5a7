// Package pong adapts the two-paddle simulation to the arcade platform.
// Player 1 controls the left paddle, Player 2 the right one.
//
// Two variants are registered: "pong" resolves paddle contacts by face with
// a bounce multiplier, "pong-proximity" uses the padded proximity box with a
// fixed speed increment.
package pong

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	engine "github.com/vovakirdan/tui-pong/internal/pong"
	"github.com/vovakirdan/tui-pong/internal/registry"
)

// Variant IDs
const (
	IDClassic   = "pong"
	IDProximity = "pong-proximity"
)

var (
	settingsMu sync.RWMutex
	configPath string
	logger     = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path for subsequent resets.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetLogger sets the logger used for match events. Goals and rallies are logged at debug level.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func settings() (string, *log.Logger) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return configPath, logger
}

// Game implements registry.Game on top of a Round.
type Game struct {
	id    string
	title string
	model engine.CollisionModel

	cfg     config.PongConfig
	runtime core.RuntimeConfig
	round   *engine.Round
	log     *log.Logger
	paused  bool

	// Filled by the round's audio and score ports during a step.
	cues         []core.Cue
	scoreChanged bool
}

// New creates a variant using the given collision model.
func New(id, title string, model engine.CollisionModel) *Game {
	return &Game{id: id, title: title, model: model, log: log.New(io.Discard)}
}

// ID returns the unique identifier for this variant.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this variant.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the configuration and starts a new match.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	path, l := settings()
	g.log = l.With("variant", g.id)

	cfg, err := config.LoadPong(path)
	if err != nil {
		return err
	}
	cfg = cfg.WithDefaultCollision(g.model)

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	round, err := engine.NewRound(cfg.SimRules(), cfg.Viewport(), rand.New(rand.NewSource(seed)),
		engine.WithAudio(engine.AudioCueFunc(g.queueCue)),
		engine.WithScoreDisplay(engine.ScoreDisplayFunc(g.showScore)),
	)
	if err != nil {
		return fmt.Errorf("pong: cannot start %s: %w", g.id, err)
	}

	g.cfg = cfg
	g.runtime = runtime
	g.round = round
	g.paused = false
	g.cues = nil
	g.scoreChanged = false

	g.log.Debug("match reset", "seed", seed, "tick_rate", runtime.TickRate, "goal_line", cfg.SimRules().GoalLine())
	return nil
}

// Step advances the match by one fixed tick. A held Pause toggles pausing;
// paused ticks do not advance the simulation.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	if g.round == nil {
		return core.StepResult{}
	}

	if in.Any(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	res := g.round.Step(in, g.runtime.FixedStep())

	out := core.StepResult{
		State:        g.State(),
		Cues:         g.cues,
		ScoreChanged: g.scoreChanged,
		BallSpeed:    g.round.Ball().Speed(),
	}
	g.cues = nil
	g.scoreChanged = false

	if goal := res.Goal; goal != nil {
		out.Rally = &core.RallyReport{
			Bounces:   goal.Rally.Bounces,
			PeakSpeed: goal.Rally.PeakSpeed,
			Ticks:     goal.Rally.Ticks,
			Conceded:  goal.Scorer.Opponent().Player(),
		}
		g.log.Debug("goal",
			"tick", goal.Tick,
			"scorer", goal.Scorer,
			"score", goal.Board,
			"bounces", goal.Rally.Bounces,
			"peak_speed", goal.Rally.PeakSpeed,
		)
	}
	return out
}

func (g *Game) queueCue(kind engine.EventKind) {
	switch kind {
	case engine.EventPaddleBounce:
		g.cues = append(g.cues, core.CueBounce)
	case engine.EventWallBounce:
		g.cues = append(g.cues, core.CueWall)
	case engine.EventGoal:
		g.cues = append(g.cues, core.CueGoal)
	}
}

func (g *Game) showScore(engine.Scoreboard) {
	g.scoreChanged = true
}

// Render draws the court, both paddles and the ball.
func (g *Game) Render(dst *core.Screen) {
	if g.round == nil {
		return
	}
	dst.Clear()

	court := newCourtView(dst, g.cfg.Court.ViewportWidth, g.cfg.Court.ViewportHeight)
	court.drawNet()
	g.round.Draw(court)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// State returns the current scores and pause flag.
func (g *Game) State() core.GameState {
	if g.round == nil {
		return core.GameState{Paused: g.paused}
	}
	board := g.round.Board()
	return core.GameState{
		LeftScore:  int(board.Left),
		RightScore: int(board.Right),
		Paused:     g.paused,
	}
}

// Round exposes the underlying simulation, or nil before the first Reset.
func (g *Game) Round() *engine.Round {
	return g.round
}

// Register the variants with the registry
func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New(IDClassic, "Pong", engine.CollisionBox)
	})
	registry.Register(IDProximity, func() registry.Game {
		return New(IDProximity, "Pong (proximity paddles)", engine.CollisionProximity)
	})
}
