// Package config provides YAML-based configuration loading for pong:
// court extents, paddle and ball constants and the match rules.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/pong"
)

// ErrInvalidViewport is returned when the court has no area.
var ErrInvalidViewport = errors.New("config: viewport must be positive")

// PongConfig contains all configuration for a pong match.
type PongConfig struct {
	Court  CourtConfig  `yaml:"court"`
	Paddle PaddleConfig `yaml:"paddle"`
	Ball   BallConfig   `yaml:"ball"`
	Rules  RulesConfig  `yaml:"rules"`
}

// CourtConfig defines the viewport in world units.
type CourtConfig struct {
	ViewportWidth  float64 `yaml:"viewport_width"`
	ViewportHeight float64 `yaml:"viewport_height"`
}

// PaddleConfig defines paddle geometry and movement.
type PaddleConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Offset    float64 `yaml:"offset"`     // Distance of each paddle from center
	Speed     float64 `yaml:"speed"`      // Units per tick
	MaxHeight float64 `yaml:"max_height"` // Vertical travel limit of the paddle center
}

// BallConfig defines ball geometry and speed.
type BallConfig struct {
	Radius           float64 `yaml:"radius"`
	StartingSpeed    float64 `yaml:"starting_speed"`
	BounceMultiplier float64 `yaml:"bounce_multiplier"`
	SpeedIncrement   float64 `yaml:"speed_increment"`
	MaxSpeed         float64 `yaml:"max_speed"` // 0 = uncapped
}

// RulesConfig defines scoring and collision settings.
type RulesConfig struct {
	GoalBuffer float64 `yaml:"goal_buffer"`
	GraceTicks int     `yaml:"grace_ticks"`
	Collision  string  `yaml:"collision"` // "box" or "proximity"; empty lets the variant choose
}

// SimRules converts the configuration to simulation rules.
// An unset collision model means the box model.
func (c PongConfig) SimRules() pong.Rules {
	collision := pong.CollisionModel(c.Rules.Collision)
	if collision == "" {
		collision = pong.CollisionBox
	}
	return pong.Rules{
		PaddleSize:       core.V(c.Paddle.Width, c.Paddle.Height),
		PaddleOffset:     c.Paddle.Offset,
		PaddleSpeed:      c.Paddle.Speed,
		MaxHeight:        c.Paddle.MaxHeight,
		BallRadius:       c.Ball.Radius,
		StartingSpeed:    c.Ball.StartingSpeed,
		BounceMultiplier: c.Ball.BounceMultiplier,
		SpeedIncrement:   c.Ball.SpeedIncrement,
		MaxSpeed:         c.Ball.MaxSpeed,
		GoalBuffer:       c.Rules.GoalBuffer,
		GraceTicks:       uint64(max(c.Rules.GraceTicks, 0)),
		Collision:        collision,
	}
}

// Viewport returns the court as a fixed display.
func (c PongConfig) Viewport() pong.StaticDisplay {
	return pong.StaticDisplay{W: c.Court.ViewportWidth, H: c.Court.ViewportHeight}
}

// Validate checks the whole configuration. It is run once at startup.
func (c PongConfig) Validate() error {
	var errs []error
	if c.Court.ViewportWidth <= 0 || c.Court.ViewportHeight <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %vx%v", ErrInvalidViewport, c.Court.ViewportWidth, c.Court.ViewportHeight))
	}
	if c.Rules.GraceTicks < 0 {
		errs = append(errs, fmt.Errorf("%w: grace ticks must be non-negative, got %d", pong.ErrInvalidRules, c.Rules.GraceTicks))
	}
	if err := c.SimRules().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// WithDefaultCollision returns a copy using model unless the file already
// names a collision model.
func (c PongConfig) WithDefaultCollision(model pong.CollisionModel) PongConfig {
	if c.Rules.Collision == "" {
		c.Rules.Collision = string(model)
	}
	return c
}
