package pong

import (
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '│'
)

// courtView maps world coordinates (origin at center, +Y up) onto screen
// cells (origin top-left, +Y down) and implements the round's Renderer.
type courtView struct {
	dst  *core.Screen
	w, h float64 // World viewport
}

func newCourtView(dst *core.Screen, worldW, worldH float64) courtView {
	return courtView{dst: dst, w: worldW, h: worldH}
}

// cell returns the screen cell containing world point p.
// Points outside the viewport map to cells outside the screen.
func (v courtView) cell(p core.Vec2) (int, int) {
	x := math.Floor((p.X + v.w/2) / v.w * float64(v.dst.Width()))
	y := math.Floor((v.h/2 - p.Y) / v.h * float64(v.dst.Height()))
	return int(x), int(y)
}

// DrawRect fills every cell the rectangle touches, at least one.
func (v courtView) DrawRect(center, size core.Vec2, c core.Color) {
	half := size.Half()
	x0, y0 := v.cell(core.V(center.X-half.X, center.Y+half.Y))
	x1, y1 := v.cell(core.V(center.X+half.X, center.Y-half.Y))
	// The far edge is exclusive; keep a thin shape at least one cell wide.
	x1 = max(x1-1, x0)
	y1 = max(y1-1, y0)
	v.dst.FillRect(core.NewRect(x0, y0, x1-x0+1, y1-y0+1), PaddleChar, c)
}

// DrawCircle marks the cell under the center. A terminal cell is wider
// than the ball at any practical scale.
func (v courtView) DrawCircle(center core.Vec2, _ float64, c core.Color) {
	x, y := v.cell(center)
	v.dst.SetColored(x, y, BallChar, c)
}

func (v courtView) drawNet() {
	x, _ := v.cell(core.Vec2{})
	for y := 0; y < v.dst.Height(); y += 2 {
		v.dst.SetColored(x, y, NetChar, core.ColorGray)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	dst.DrawTextColored(box.X+(boxW-len(title))/2, box.Y+1, title, core.ColorBrightCyan)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}
