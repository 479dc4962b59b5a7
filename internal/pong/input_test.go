package pong

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/core"
)

func TestMovePaddle(t *testing.T) {
	const speed, limit = 5.0, 260.0

	tests := []struct {
		name string
		y    float64
		in   core.InputFrame
		want float64
	}{
		{"idle", 12, core.NewInputFrame(), 12},
		{"up", 0, core.Held(core.ActionUp), 5},
		{"down", 0, core.Held(core.ActionDown), -5},
		{"both keys favour up", 0, core.Held(core.ActionUp, core.ActionDown), 5},
		{"up clamps at limit", 258, core.Held(core.ActionUp), 260},
		{"up at limit stays", 260, core.Held(core.ActionUp), 260},
		{"down clamps at limit", -258, core.Held(core.ActionDown), -260},
		{"down at limit stays", -260, core.Held(core.ActionDown), -260},
		{"both keys at top fall through to down", 260, core.Held(core.ActionUp, core.ActionDown), 255},
		{"pause is not movement", 0, core.Held(core.ActionPause), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MovePaddle(tt.y, tt.in, speed, limit)
			if got != tt.want {
				t.Errorf("MovePaddle(%v) = %v, want %v", tt.y, got, tt.want)
			}
		})
	}
}

func TestMovePaddleStaysInBounds(t *testing.T) {
	const speed, limit = 7.0, 260.0
	rng := rand.New(rand.NewSource(3))
	frames := []core.InputFrame{
		core.NewInputFrame(),
		core.Held(core.ActionUp),
		core.Held(core.ActionDown),
		core.Held(core.ActionUp, core.ActionDown),
	}

	y := 0.0
	for i := 0; i < 5000; i++ {
		y = MovePaddle(y, frames[rng.Intn(len(frames))], speed, limit)
		if y > limit || y < -limit {
			t.Fatalf("step %d: paddle at %v left [-%v, %v]", i, y, limit, limit)
		}
	}
}
