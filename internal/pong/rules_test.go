package pong

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/core"
)

func TestDefaultRulesValid(t *testing.T) {
	r := DefaultRules()
	if err := r.Validate(); err != nil {
		t.Fatalf("DefaultRules().Validate() = %v", err)
	}
	if r.GoalLine() != 525 {
		t.Errorf("GoalLine() = %v, want 525", r.GoalLine())
	}
}

func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rules)
		want   error
	}{
		{"zero paddle height", func(r *Rules) { r.PaddleSize = core.V(20, 0) }, ErrDegenerateGeometry},
		{"negative radius", func(r *Rules) { r.BallRadius = -1 }, ErrDegenerateGeometry},
		{"nan offset", func(r *Rules) { r.PaddleOffset = math.NaN() }, ErrDegenerateGeometry},
		{"zero starting speed", func(r *Rules) { r.StartingSpeed = 0 }, ErrInvalidRules},
		{"infinite paddle speed", func(r *Rules) { r.PaddleSpeed = math.Inf(1) }, ErrInvalidRules},
		{"damping multiplier", func(r *Rules) { r.BounceMultiplier = 0.9 }, ErrInvalidRules},
		{"narrow goal buffer", func(r *Rules) { r.GoalBuffer = 10 }, ErrInvalidRules},
		{"cap below serve", func(r *Rules) { r.MaxSpeed = 100 }, ErrInvalidRules},
		{"unknown model", func(r *Rules) { r.Collision = "sticky" }, ErrInvalidRules},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRules()
			tt.mutate(&r)
			err := r.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRulesValidateCollectsAll(t *testing.T) {
	r := DefaultRules()
	r.BallRadius = 0
	r.GoalBuffer = 0

	err := r.Validate()
	if !errors.Is(err, ErrDegenerateGeometry) || !errors.Is(err, ErrInvalidRules) {
		t.Errorf("Validate() = %v, want both sentinels", err)
	}
}
