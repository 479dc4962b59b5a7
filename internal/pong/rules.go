package pong

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// MinGoalBuffer is the smallest distance past the paddle line that still
// separates a grazing touch from a clean pass.
const MinGoalBuffer = 50.0

var (
	// ErrDegenerateGeometry reports a shape with zero, negative or non-finite extent.
	ErrDegenerateGeometry = errors.New("pong: degenerate geometry")
	// ErrInvalidRules reports any other out-of-range constant.
	ErrInvalidRules = errors.New("pong: invalid rules")
)

// CollisionModel selects how paddle contacts are detected and resolved.
type CollisionModel string

const (
	// CollisionBox classifies the contact face and reflects the inbound component.
	CollisionBox CollisionModel = "box"
	// CollisionProximity reflects on any overlap of a padded proximity box,
	// using the speed/direction form with a fixed speed increment.
	CollisionProximity CollisionModel = "proximity"
)

// Rules holds every constant of a match. World units, +Y up, origin at court center.
type Rules struct {
	PaddleSize       core.Vec2      // Full width and height of a paddle
	PaddleOffset     float64        // Horizontal distance of each paddle from center
	PaddleSpeed      float64        // Units moved per tick while a key is held
	MaxHeight        float64        // Paddle center is kept within [-MaxHeight, MaxHeight]
	BallRadius       float64        // Ball collision half extent
	StartingSpeed    float64        // Horizontal speed at kickoff; vertical is half of it
	BounceMultiplier float64        // Applied to the reflected component (box model)
	SpeedIncrement   float64        // Added to speed on every bounce (proximity model)
	MaxSpeed         float64        // 0 disables the cap
	GoalBuffer       float64        // Distance beyond the paddle line that scores
	GraceTicks       uint64         // Ticks after a contact during which contacts are ignored
	Collision        CollisionModel // Paddle contact model
}

// DefaultRules returns the canonical constants.
func DefaultRules() Rules {
	return Rules{
		PaddleSize:       core.V(20, 150),
		PaddleOffset:     450,
		PaddleSpeed:      5,
		MaxHeight:        260,
		BallRadius:       10,
		StartingSpeed:    175,
		BounceMultiplier: 1.1,
		SpeedIncrement:   25,
		MaxSpeed:         0,
		GoalBuffer:       75,
		GraceTicks:       1,
		Collision:        CollisionBox,
	}
}

// GoalLine returns |x| beyond which the ball counts as a goal.
func (r Rules) GoalLine() float64 {
	return r.PaddleOffset + r.GoalBuffer
}

// Validate checks the constants once at startup. A non-nil error means the
// simulation could produce non-finite positions and must not run.
func (r Rules) Validate() error {
	var errs []error

	positive := func(name string, v float64, sentinel error) {
		if !finite(v) || v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive and finite, got %v", sentinel, name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if !finite(v) || v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be non-negative and finite, got %v", ErrInvalidRules, name, v))
		}
	}

	positive("paddle width", r.PaddleSize.X, ErrDegenerateGeometry)
	positive("paddle height", r.PaddleSize.Y, ErrDegenerateGeometry)
	positive("ball radius", r.BallRadius, ErrDegenerateGeometry)
	positive("paddle offset", r.PaddleOffset, ErrDegenerateGeometry)
	positive("paddle speed", r.PaddleSpeed, ErrInvalidRules)
	positive("starting speed", r.StartingSpeed, ErrInvalidRules)
	nonNegative("max height", r.MaxHeight)
	nonNegative("speed increment", r.SpeedIncrement)
	nonNegative("max speed", r.MaxSpeed)

	if !finite(r.BounceMultiplier) || r.BounceMultiplier < 1 {
		errs = append(errs, fmt.Errorf("%w: bounce multiplier must be >= 1, got %v", ErrInvalidRules, r.BounceMultiplier))
	}
	if !finite(r.GoalBuffer) || r.GoalBuffer < MinGoalBuffer {
		errs = append(errs, fmt.Errorf("%w: goal buffer must be >= %v, got %v", ErrInvalidRules, MinGoalBuffer, r.GoalBuffer))
	}
	if r.MaxSpeed > 0 && r.MaxSpeed < r.StartingSpeed {
		errs = append(errs, fmt.Errorf("%w: max speed %v is below starting speed %v", ErrInvalidRules, r.MaxSpeed, r.StartingSpeed))
	}
	switch r.Collision {
	case CollisionBox, CollisionProximity:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown collision model %q", ErrInvalidRules, r.Collision))
	}

	return errors.Join(errs...)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
