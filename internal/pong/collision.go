package pong

import (
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Collider detects a ball/paddle contact and mutates the ball's velocity.
// It returns true only when the velocity was changed.
type Collider interface {
	Bounce(ball *Ball, paddle Paddle) bool
	// Rebound reflects the ball off a court boundary: the vertical
	// component when vertical is set, the horizontal one otherwise.
	// Nothing happens unless the ball is inbound.
	Rebound(ball *Ball, vertical, inbound bool) bool
}

// BoxCollider classifies the contact face with an AABB test and reflects
// only the velocity component heading into that face.
type BoxCollider struct {
	Multiplier float64
}

// Bounce implements Collider.
func (c BoxCollider) Bounce(ball *Ball, paddle Paddle) bool {
	switch core.Collide(ball.Box(), paddle.Box()) {
	case core.FaceLeft:
		return reflectInto(&ball.Vel.X, ball.Vel.X > 0, c.Multiplier)
	case core.FaceRight:
		return reflectInto(&ball.Vel.X, ball.Vel.X < 0, c.Multiplier)
	case core.FaceBottom:
		return reflectInto(&ball.Vel.Y, ball.Vel.Y > 0, c.Multiplier)
	case core.FaceTop:
		return reflectInto(&ball.Vel.Y, ball.Vel.Y < 0, c.Multiplier)
	}
	return false
}

// Rebound implements Collider by scaling the reflected component.
func (c BoxCollider) Rebound(ball *Ball, vertical, inbound bool) bool {
	if vertical {
		return reflectInto(&ball.Vel.Y, inbound, c.Multiplier)
	}
	return reflectInto(&ball.Vel.X, inbound, c.Multiplier)
}

// ProximityCollider uses a looser padded box and does not distinguish faces.
// Any overlap while the ball approaches the paddle reflects the horizontal
// direction and adds a fixed speed increment in speed/direction form.
type ProximityCollider struct {
	Increment float64
}

// Bounce implements Collider.
func (c ProximityCollider) Bounce(ball *Ball, paddle Paddle) bool {
	d := ball.Pos.Sub(paddle.Pos)
	half := paddle.Size.Half()
	if math.Abs(d.X) >= ball.Radius+half.X || math.Abs(d.Y) >= ball.Radius+half.Y {
		return false
	}
	// Already receding: leave it alone so sustained overlap cannot keep flipping it.
	if ball.Vel.X*d.X >= 0 {
		return false
	}
	ball.Vel = HeadingOf(ball.Vel).ReflectX().Accelerate(c.Increment).Velocity()
	return true
}

// Rebound implements Collider in speed/direction form.
func (c ProximityCollider) Rebound(ball *Ball, vertical, inbound bool) bool {
	if !inbound {
		return false
	}
	h := HeadingOf(ball.Vel)
	if vertical {
		h = h.ReflectY()
	} else {
		h = h.ReflectX()
	}
	ball.Vel = h.Accelerate(c.Increment).Velocity()
	return true
}

// ColliderFor returns the collider configured by rules.
func ColliderFor(r Rules) Collider {
	if r.Collision == CollisionProximity {
		return ProximityCollider{Increment: r.SpeedIncrement}
	}
	return BoxCollider{Multiplier: r.BounceMultiplier}
}

// Resolver applies paddle and boundary collisions once per tick.
// Paddles are evaluated before walls; both may fire in the same tick.
type Resolver struct {
	rules    Rules
	collider Collider
}

// NewResolver creates a resolver for the given rules.
func NewResolver(r Rules) *Resolver {
	return &Resolver{rules: r, collider: ColliderFor(r)}
}

// Resolve checks the ball against every paddle and the four court
// boundaries, mutates its velocity and returns one event per contact.
// It does nothing while the ball's contact grace window is open.
func (r *Resolver) Resolve(ball *Ball, paddles []Paddle, court Court, tick uint64) []Event {
	if ball.Contact.Suppressed(tick, r.rules.GraceTicks) {
		return nil
	}

	var events []Event
	for _, p := range paddles {
		if r.collider.Bounce(ball, p) {
			events = append(events, Event{Kind: EventPaddleBounce, Tick: tick, Side: p.Side})
		}
	}

	wall := func(hit bool) {
		if hit {
			events = append(events, Event{Kind: EventWallBounce, Tick: tick})
		}
	}

	switch {
	case ball.Pos.Y > court.Ceiling:
		wall(r.collider.Rebound(ball, true, ball.Vel.Y > 0))
	case ball.Pos.Y < -court.Ceiling:
		wall(r.collider.Rebound(ball, true, ball.Vel.Y < 0))
	}

	// Side walls only matter when they sit beyond the goal line; otherwise
	// the ball has to be free to leave the court and score.
	if court.Wall > r.rules.GoalLine() {
		switch {
		case ball.Pos.X > court.Wall:
			wall(r.collider.Rebound(ball, false, ball.Vel.X > 0))
		case ball.Pos.X < -court.Wall:
			wall(r.collider.Rebound(ball, false, ball.Vel.X < 0))
		}
	}

	if len(events) == 0 {
		return nil
	}

	r.capSpeed(ball)
	ball.Contact.Record(tick)
	speed := ball.Speed()
	for i := range events {
		events[i].Speed = speed
	}
	return events
}

func (r *Resolver) capSpeed(ball *Ball) {
	limit := r.rules.MaxSpeed
	if limit <= 0 {
		return
	}
	if s := ball.Speed(); s > limit {
		ball.Vel = ball.Vel.Scale(limit / s)
	}
}

// reflectInto negates and scales *v when inbound is true.
func reflectInto(v *float64, inbound bool, mult float64) bool {
	if !inbound {
		return false
	}
	*v = -*v * mult
	return true
}
