package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-pong/internal/pong"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// DefaultPongConfig returns the hardcoded pong configuration.
func DefaultPongConfig() PongConfig {
	r := pong.DefaultRules()
	return PongConfig{
		Court: CourtConfig{
			ViewportWidth:  1000,
			ViewportHeight: 600,
		},
		Paddle: PaddleConfig{
			Width:     r.PaddleSize.X,
			Height:    r.PaddleSize.Y,
			Offset:    r.PaddleOffset,
			Speed:     r.PaddleSpeed,
			MaxHeight: r.MaxHeight,
		},
		Ball: BallConfig{
			Radius:           r.BallRadius,
			StartingSpeed:    r.StartingSpeed,
			BounceMultiplier: r.BounceMultiplier,
			SpeedIncrement:   r.SpeedIncrement,
			MaxSpeed:         r.MaxSpeed,
		},
		Rules: RulesConfig{
			GoalBuffer: r.GoalBuffer,
			GraceTicks: int(r.GraceTicks),
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPongYAML
}
