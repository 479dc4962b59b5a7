package pong

import "github.com/vovakirdan/tui-pong/internal/core"

// MovePaddle maps held keys to a new vertical paddle position.
// Up is checked first and wins when both keys are held; that precedence is
// intentional. The result never leaves [-maxHeight, maxHeight].
func MovePaddle(y float64, in core.InputFrame, speed, maxHeight float64) float64 {
	switch {
	case in.Has(core.ActionUp) && y < maxHeight:
		return min(y+speed, maxHeight)
	case in.Has(core.ActionDown) && y > -maxHeight:
		return max(y-speed, -maxHeight)
	}
	return y
}
