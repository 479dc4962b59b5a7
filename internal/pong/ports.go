package pong

import "github.com/vovakirdan/tui-pong/internal/core"

// Display reports the viewport extents in world units.
type Display interface {
	Viewport() (width, height float64)
}

// StaticDisplay is a Display with fixed extents.
type StaticDisplay struct {
	W, H float64
}

// Viewport implements Display.
func (d StaticDisplay) Viewport() (float64, float64) {
	return d.W, d.H
}

// Renderer draws shapes at world positions.
type Renderer interface {
	DrawRect(center, size core.Vec2, c core.Color)
	DrawCircle(center core.Vec2, radius float64, c core.Color)
}

// AudioCue accepts fire-and-forget tone requests.
type AudioCue interface {
	Play(kind EventKind)
}

// AudioCueFunc adapts a function to AudioCue.
type AudioCueFunc func(kind EventKind)

// Play implements AudioCue.
func (f AudioCueFunc) Play(kind EventKind) {
	f(kind)
}

// ScoreDisplay is refreshed only when the scoreboard changes.
type ScoreDisplay interface {
	ShowScore(board Scoreboard)
}

// ScoreDisplayFunc adapts a function to ScoreDisplay.
type ScoreDisplayFunc func(board Scoreboard)

// ShowScore implements ScoreDisplay.
func (f ScoreDisplayFunc) ShowScore(board Scoreboard) {
	f(board)
}
