package pong

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/core"
)

func rightPaddle() Paddle {
	return Paddle{Side: SideRight, Pos: core.V(450, 0), Size: core.V(20, 150)}
}

func ballAt(x, y, vx, vy float64) Ball {
	return Ball{Pos: core.V(x, y), Vel: core.V(vx, vy), Radius: 10}
}

func TestBoxColliderReflectsInbound(t *testing.T) {
	c := BoxCollider{Multiplier: 1.1}

	tests := []struct {
		name    string
		ball    Ball
		want    core.Vec2
		bounced bool
	}{
		{"left face inbound", ballAt(432, 0, 100, 30), core.V(-110, 30), true},
		{"left face receding", ballAt(432, 0, -100, 30), core.V(-100, 30), false},
		{"right face inbound", ballAt(468, 0, -100, 0), core.V(110, 0), true},
		{"top face inbound", ballAt(450, 83, 20, -100), core.V(20, 110), true},
		{"top face receding", ballAt(450, 83, 20, 100), core.V(20, 100), false},
		{"bottom face inbound", ballAt(450, -83, 0, 100), core.V(0, -110), true},
		{"inside leaves velocity", ballAt(450, 0, 100, 0), core.V(100, 0), false},
		{"clear of paddle", ballAt(300, 0, 100, 0), core.V(100, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.ball
			got := c.Bounce(&b, rightPaddle())
			if got != tt.bounced {
				t.Errorf("Bounce() = %v, want %v", got, tt.bounced)
			}
			if !nearVec(b.Vel, tt.want) {
				t.Errorf("Vel = %v, want %v", b.Vel, tt.want)
			}
		})
	}
}

func TestProximityCollider(t *testing.T) {
	c := ProximityCollider{Increment: 25}

	b := ballAt(432, 0, 100, 0)
	if !c.Bounce(&b, rightPaddle()) {
		t.Fatal("approaching ball did not bounce")
	}
	if !nearVec(b.Vel, core.V(-125, 0)) {
		t.Errorf("Vel = %v, want (-125, 0)", b.Vel)
	}

	// Still overlapping but now receding.
	if c.Bounce(&b, rightPaddle()) {
		t.Error("receding ball bounced again")
	}

	b = ballAt(440, 60, 100, 100)
	if !c.Bounce(&b, rightPaddle()) {
		t.Fatal("diagonal approach did not bounce")
	}
	if b.Vel.X >= 0 || b.Vel.Y <= 0 {
		t.Errorf("Vel = %v, want vx < 0 and vy > 0", b.Vel)
	}
	if !near(b.Speed(), math.Hypot(100, 100)+25) {
		t.Errorf("Speed = %v, want %v", b.Speed(), math.Hypot(100, 100)+25)
	}

	b = ballAt(400, 0, 100, 0)
	if c.Bounce(&b, rightPaddle()) {
		t.Error("ball outside the proximity box bounced")
	}
}

func TestColliderFor(t *testing.T) {
	r := DefaultRules()
	if _, ok := ColliderFor(r).(BoxCollider); !ok {
		t.Errorf("ColliderFor(box) = %T", ColliderFor(r))
	}
	r.Collision = CollisionProximity
	if _, ok := ColliderFor(r).(ProximityCollider); !ok {
		t.Errorf("ColliderFor(proximity) = %T", ColliderFor(r))
	}
}

func TestResolverGraceWindow(t *testing.T) {
	court := Court{Ceiling: 300, Wall: 500}
	paddles := []Paddle{rightPaddle()}

	tests := []struct {
		name     string
		grace    uint64
		resolves []bool // Paddle contact at ticks 1, 2, 3 after a ceiling hit at tick 0
	}{
		{"grace 0 never suppresses", 0, []bool{true, true, true}},
		{"grace 1 resolves the next tick", 1, []bool{true, true, true}},
		{"grace 2 suppresses one tick", 2, []bool{false, true, true}},
		{"grace 3 suppresses two ticks", 3, []bool{false, false, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRules()
			r.GraceTicks = tt.grace
			res := NewResolver(r)

			for i, want := range tt.resolves {
				b := ballAt(0, 305, 0, 100)
				if ev := res.Resolve(&b, paddles, court, 0); len(ev) != 1 {
					t.Fatalf("ceiling hit: got %d events, want 1", len(ev))
				}

				// Same ball, now inbound on the paddle's left face.
				b.Pos = core.V(432, 0)
				b.Vel = core.V(100, 0)
				tick := uint64(i + 1)
				ev := res.Resolve(&b, paddles, court, tick)
				if got := len(ev) == 1; got != want {
					t.Errorf("tick %d: resolved = %v, want %v", tick, got, want)
				}
				if want && !near(b.Vel.X, -110) {
					t.Errorf("tick %d: vx = %v, want -110", tick, b.Vel.X)
				}
				if !want && b.Vel.X != 100 {
					t.Errorf("tick %d: vx = %v, want unchanged", tick, b.Vel.X)
				}
			}
		})
	}
}

func TestResolverSameTickIsSuppressed(t *testing.T) {
	res := NewResolver(DefaultRules())
	court := Court{Ceiling: 300, Wall: 500}
	paddles := []Paddle{rightPaddle()}
	b := ballAt(432, 0, 100, 0)

	if ev := res.Resolve(&b, paddles, court, 7); len(ev) != 1 {
		t.Fatalf("first contact: got %d events, want 1", len(ev))
	}
	b.Vel.X = 100
	if ev := res.Resolve(&b, paddles, court, 7); ev != nil {
		t.Errorf("second pass in the same tick: got %v, want none", ev)
	}
}

func TestResolverSustainedOverlapBouncesOnce(t *testing.T) {
	res := NewResolver(DefaultRules())
	court := Court{Ceiling: 300, Wall: 500}
	paddles := []Paddle{rightPaddle()}
	b := ballAt(432, 0, 100, 0)

	total := 0
	for tick := uint64(1); tick <= 5; tick++ {
		total += len(res.Resolve(&b, paddles, court, tick))
	}
	if total != 1 {
		t.Errorf("got %d bounces across overlapping ticks, want 1", total)
	}
	if b.Vel.X >= 0 {
		t.Errorf("vx = %v, want negative", b.Vel.X)
	}
}

func TestResolverWalls(t *testing.T) {
	res := NewResolver(DefaultRules())

	t.Run("ceiling", func(t *testing.T) {
		b := ballAt(0, 305, 100, 50)
		ev := res.Resolve(&b, nil, Court{Ceiling: 300, Wall: 500}, 1)
		if len(ev) != 1 || ev[0].Kind != EventWallBounce {
			t.Fatalf("events = %v, want one wall bounce", ev)
		}
		if !nearVec(b.Vel, core.V(100, -55)) {
			t.Errorf("Vel = %v, want (100, -55)", b.Vel)
		}
	})

	t.Run("floor receding", func(t *testing.T) {
		b := ballAt(0, -305, 100, 50)
		if ev := res.Resolve(&b, nil, Court{Ceiling: 300, Wall: 500}, 1); ev != nil {
			t.Errorf("events = %v, want none", ev)
		}
	})

	t.Run("side wall beyond goal line", func(t *testing.T) {
		b := ballAt(605, 0, 100, 0)
		ev := res.Resolve(&b, nil, Court{Ceiling: 300, Wall: 600}, 1)
		if len(ev) != 1 {
			t.Fatalf("events = %v, want one wall bounce", ev)
		}
		if !near(b.Vel.X, -110) {
			t.Errorf("vx = %v, want -110", b.Vel.X)
		}
	})

	t.Run("side wall inside goal line is open", func(t *testing.T) {
		b := ballAt(505, 0, 100, 0)
		if ev := res.Resolve(&b, nil, Court{Ceiling: 300, Wall: 500}, 1); ev != nil {
			t.Errorf("events = %v, want none", ev)
		}
		if b.Vel.X != 100 {
			t.Errorf("vx = %v, want unchanged", b.Vel.X)
		}
	})
}

func TestResolverProximityWalls(t *testing.T) {
	r := DefaultRules()
	r.Collision = CollisionProximity
	res := NewResolver(r)

	t.Run("ceiling", func(t *testing.T) {
		b := ballAt(0, 305, 100, 50)
		before := b.Speed()
		if ev := res.Resolve(&b, nil, Court{Ceiling: 300, Wall: 500}, 1); len(ev) != 1 {
			t.Fatalf("events = %v, want one wall bounce", ev)
		}
		if !near(b.Speed(), before+25) {
			t.Errorf("speed = %v, want %v", b.Speed(), before+25)
		}
		if b.Vel.X <= 0 || b.Vel.Y >= 0 || !near(b.Vel.Y/b.Vel.X, -0.5) {
			t.Errorf("Vel = %v, want the heading mirrored across the horizontal", b.Vel)
		}
	})

	t.Run("side wall", func(t *testing.T) {
		b := ballAt(605, 0, 100, 0)
		if ev := res.Resolve(&b, nil, Court{Ceiling: 300, Wall: 600}, 1); len(ev) != 1 {
			t.Fatalf("events = %v, want one wall bounce", ev)
		}
		if !nearVec(b.Vel, core.V(-125, 0)) {
			t.Errorf("Vel = %v, want (-125, 0)", b.Vel)
		}
	})

	t.Run("receding", func(t *testing.T) {
		b := ballAt(0, -305, 100, 50)
		if ev := res.Resolve(&b, nil, Court{Ceiling: 300, Wall: 500}, 1); ev != nil {
			t.Errorf("events = %v, want none", ev)
		}
	})
}

func TestResolverPaddleBeforeWall(t *testing.T) {
	res := NewResolver(DefaultRules())
	paddle := Paddle{Side: SideRight, Pos: core.V(450, 260), Size: core.V(20, 150)}
	b := ballAt(432, 305, 100, 50)

	ev := res.Resolve(&b, []Paddle{paddle}, Court{Ceiling: 300, Wall: 500}, 7)
	if len(ev) != 2 {
		t.Fatalf("got %d events, want 2", len(ev))
	}
	if ev[0].Kind != EventPaddleBounce || ev[0].Side != SideRight {
		t.Errorf("first event = %+v, want right paddle bounce", ev[0])
	}
	if ev[1].Kind != EventWallBounce {
		t.Errorf("second event = %+v, want wall bounce", ev[1])
	}
	want := math.Hypot(110, 55)
	for _, e := range ev {
		if e.Tick != 7 || !near(e.Speed, want) {
			t.Errorf("event %+v, want tick 7 speed %v", e, want)
		}
	}
}

func TestResolverSpeedCap(t *testing.T) {
	r := DefaultRules()
	r.MaxSpeed = 180
	res := NewResolver(r)
	b := ballAt(432, 0, 175, 0)

	res.Resolve(&b, []Paddle{rightPaddle()}, Court{Ceiling: 300, Wall: 500}, 1)
	if !near(b.Speed(), 180) {
		t.Errorf("Speed = %v, want capped at 180", b.Speed())
	}
	if b.Vel.X >= 0 {
		t.Errorf("vx = %v, want negative", b.Vel.X)
	}
}
