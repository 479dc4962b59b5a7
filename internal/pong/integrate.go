package pong

import (
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Integrate advances a position by velocity over dt seconds.
// It knows nothing about boundaries; collisions are resolved afterwards.
func Integrate(pos, vel core.Vec2, dt float64) core.Vec2 {
	return pos.Add(vel.Scale(dt))
}

// Heading is the speed/direction encoding of a velocity.
type Heading struct {
	Speed float64 // Units per second, never negative
	Angle float64 // Radians from +X
}

// HeadingOf converts a velocity vector to its polar form.
func HeadingOf(v core.Vec2) Heading {
	return Heading{Speed: v.Len(), Angle: v.Angle()}
}

// Velocity converts the heading back to a vector.
func (h Heading) Velocity() core.Vec2 {
	return core.FromPolar(h.Speed, h.Angle)
}

// Integrate advances pos along the heading over dt seconds.
func (h Heading) Integrate(pos core.Vec2, dt float64) core.Vec2 {
	return Integrate(pos, h.Velocity(), dt)
}

// ReflectX mirrors the heading across the vertical axis (negates vx).
func (h Heading) ReflectX() Heading {
	h.Angle = normalizeAngle(math.Pi - h.Angle)
	return h
}

// ReflectY mirrors the heading across the horizontal axis (negates vy).
func (h Heading) ReflectY() Heading {
	h.Angle = normalizeAngle(-h.Angle)
	return h
}

// Accelerate adds a fixed increment to the speed.
func (h Heading) Accelerate(inc float64) Heading {
	h.Speed += inc
	return h
}

func normalizeAngle(a float64) float64 {
	return math.Remainder(a, 2*math.Pi)
}
