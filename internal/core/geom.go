// Package core provides fundamental types and utilities shared by the simulation
// and the terminal platform. It has no external dependencies (especially no
// Bubble Tea) to keep game logic pure and testable.
package core

import "math"

// Vec2 is a 2D vector in world units. +Y points up, the origin is the court center.
type Vec2 struct {
	X, Y float64
}

// V builds a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Half returns v / 2.
func (v Vec2) Half() Vec2 {
	return v.Scale(0.5)
}

// Len returns the Euclidean length.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle returns the direction of v in radians, measured from +X.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

// FromPolar converts a speed and a direction (radians) to a velocity vector.
func FromPolar(speed, angle float64) Vec2 {
	return Vec2{X: speed * math.Cos(angle), Y: speed * math.Sin(angle)}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Box is an axis-aligned rectangle described by its center and half extents.
type Box struct {
	Center Vec2
	Half   Vec2
}

// NewBox creates a box from a center point and a full size.
func NewBox(center, size Vec2) Box {
	return Box{Center: center, Half: size.Half()}
}

// Min returns the bottom-left corner.
func (b Box) Min() Vec2 {
	return b.Center.Sub(b.Half)
}

// Max returns the top-right corner.
func (b Box) Max() Vec2 {
	return b.Center.Add(b.Half)
}

// Overlaps reports whether two boxes intersect. Touching edges do not count.
func (b Box) Overlaps(o Box) bool {
	d := b.Center.Sub(o.Center)
	return math.Abs(d.X) < b.Half.X+o.Half.X && math.Abs(d.Y) < b.Half.Y+o.Half.Y
}

// Face names the side of an obstacle that a moving box ran into.
type Face int

const (
	FaceNone   Face = iota
	FaceLeft        // mover is left of the obstacle
	FaceRight       // mover is right of the obstacle
	FaceTop         // mover is above the obstacle
	FaceBottom      // mover is below the obstacle
	FaceInside      // mover is fully inside on both axes
)

// String returns a human-readable face name.
func (f Face) String() string {
	switch f {
	case FaceNone:
		return "None"
	case FaceLeft:
		return "Left"
	case FaceRight:
		return "Right"
	case FaceTop:
		return "Top"
	case FaceBottom:
		return "Bottom"
	case FaceInside:
		return "Inside"
	default:
		return "Unknown"
	}
}

// Collide classifies the contact between mover and obstacle.
// It returns FaceNone when the boxes do not overlap. Otherwise the axis with the
// shallower penetration wins; an axis where the mover straddles neither edge
// counts as infinitely deep, so a fully contained mover reports FaceInside.
func Collide(mover, obstacle Box) Face {
	if !mover.Overlaps(obstacle) {
		return FaceNone
	}

	aMin, aMax := mover.Min(), mover.Max()
	bMin, bMax := obstacle.Min(), obstacle.Max()

	xFace, xDepth := FaceInside, math.Inf(1)
	switch {
	case aMin.X < bMin.X && aMax.X > bMin.X && aMax.X < bMax.X:
		xFace, xDepth = FaceLeft, aMax.X-bMin.X
	case aMin.X > bMin.X && aMin.X < bMax.X && aMax.X > bMax.X:
		xFace, xDepth = FaceRight, bMax.X-aMin.X
	}

	yFace, yDepth := FaceInside, math.Inf(1)
	switch {
	case aMin.Y < bMin.Y && aMax.Y > bMin.Y && aMax.Y < bMax.Y:
		yFace, yDepth = FaceBottom, aMax.Y-bMin.Y
	case aMin.Y > bMin.Y && aMin.Y < bMax.Y && aMax.Y > bMax.Y:
		yFace, yDepth = FaceTop, bMax.Y-aMin.Y
	}

	if yDepth < xDepth {
		return yFace
	}
	return xFace
}

// Rect is an integer rectangle in screen cells, used by the renderer.
type Rect struct {
	X, Y int // Top-left cell
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
