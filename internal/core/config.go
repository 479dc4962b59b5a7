package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	TickRate  int   // Fixed simulation ticks per second
	FrameRate int   // Render frames per second
	Seed      int64 // RNG seed, 0 means time-based
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		TickRate:  64,
		FrameRate: 60,
	}
}

// FixedStep returns the simulation step in seconds.
func (c RuntimeConfig) FixedStep() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 64.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game, reported to the platform.
type GameState struct {
	LeftScore  int
	RightScore int
	Paused     bool
}

// Cue is a discrete audio feedback request.
type Cue int

const (
	CueBounce Cue = iota + 1 // Ball hit a paddle
	CueWall                  // Ball hit the ceiling, floor or a side wall
	CueGoal                  // Ball crossed a goal line
)

// String returns a human-readable cue name.
func (c Cue) String() string {
	switch c {
	case CueBounce:
		return "bounce"
	case CueWall:
		return "wall"
	case CueGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// RallyReport describes a rally that a goal just ended.
type RallyReport struct {
	Bounces   int      // Paddle bounces
	PeakSpeed float64  // Highest ball speed, world units per second
	Ticks     uint64   // Duration
	Conceded  PlayerID // Player who let the ball through
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State        GameState
	Cues         []Cue
	ScoreChanged bool         // The scoreboard differs from the previous tick
	BallSpeed    float64      // After the tick, world units per second
	Rally        *RallyReport // Set on the tick a goal ended a rally
}
