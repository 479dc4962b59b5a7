package pong

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	engine "github.com/vovakirdan/tui-pong/internal/pong"
	"github.com/vovakirdan/tui-pong/internal/registry"
)

func TestMain(m *testing.M) {
	// Pin the config to the embedded defaults so a user's file cannot leak in.
	dir, err := os.MkdirTemp("", "pong-config")
	if err != nil {
		panic(err)
	}
	path := filepath.Join(dir, "pong.yaml")
	if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
		panic(err)
	}
	SetConfigPath(path)

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 64, FrameRate: 60, Seed: seed}
}

func newClassic(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New(IDClassic, "Pong", engine.CollisionBox)
	if err := g.Reset(testRuntime(seed)); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	return g
}

func TestGameDeterminism(t *testing.T) {
	play := func() Snapshot {
		g := newClassic(t, 12345)
		left := NewTracker(engine.SideLeft, g.Round().Rules())
		for i := 0; i < 3000; i++ {
			in := core.NewMultiInputFrame()
			left.Drive(&in, g.Round())
			if i%7 == 0 {
				in.SetPlayer(core.Player2, core.Held(core.ActionUp))
			}
			g.Step(in)
		}
		return g.Snapshot()
	}

	s1, s2 := play(), play()
	if s1.Tick != s2.Tick || s1.Score != s2.Score || s1.Left != s2.Left || s1.Right != s2.Right {
		t.Errorf("Determinism failed:\n%+v\n%+v", s1, s2)
	}
	if !slices.Equal(s1.Balls, s2.Balls) {
		t.Errorf("Determinism failed: balls differ %v vs %v", s1.Balls, s2.Balls)
	}
	if s1.Tick != 3000 {
		t.Errorf("Tick = %d, want 3000", s1.Tick)
	}
}

func TestGameGoalReportsRally(t *testing.T) {
	g := newClassic(t, 1)

	snap := g.Snapshot()
	snap.Balls = []BallDTO{{X: 524, Y: 0, VX: 175, VY: 0}}
	if err := g.ApplySnapshot(snap); err != nil {
		t.Fatalf("ApplySnapshot() failed: %v", err)
	}

	res := g.Step(core.NewMultiInputFrame())

	if !res.ScoreChanged {
		t.Error("ScoreChanged = false on a goal")
	}
	if !slices.Contains(res.Cues, core.CueGoal) {
		t.Errorf("Cues = %v, want a goal cue", res.Cues)
	}
	if res.State.LeftScore != 1 || res.State.RightScore != 0 {
		t.Errorf("score = %d - %d, want 1 - 0", res.State.LeftScore, res.State.RightScore)
	}
	if res.Rally == nil {
		t.Fatal("Rally = nil on a goal")
	}
	if res.Rally.Conceded != core.Player2 {
		t.Errorf("Conceded = %v, want P2", res.Rally.Conceded)
	}
	if res.Rally.Ticks != 1 {
		t.Errorf("Rally.Ticks = %d, want 1", res.Rally.Ticks)
	}

	// The next tick is a fresh serve with nothing to report.
	next := g.Step(core.NewMultiInputFrame())
	if next.ScoreChanged || next.Rally != nil || len(next.Cues) != 0 {
		t.Errorf("unexpected report after the goal: %+v", next)
	}
}

func TestGamePause(t *testing.T) {
	g := newClassic(t, 2)
	g.Step(core.NewMultiInputFrame())

	pause := core.NewMultiInputFrame()
	pause.SetPlayer(core.Player1, core.Held(core.ActionPause))

	res := g.Step(pause)
	if !res.State.Paused {
		t.Fatal("Paused = false after pause input")
	}

	before := g.Snapshot()
	for i := 0; i < 10; i++ {
		g.Step(core.NewMultiInputFrame())
	}
	after := g.Snapshot()
	if before.Tick != after.Tick || !slices.Equal(before.Balls, after.Balls) {
		t.Error("simulation advanced while paused")
	}

	res = g.Step(pause)
	if res.State.Paused {
		t.Error("Paused = true after second pause input")
	}
}

func TestGameRender(t *testing.T) {
	g := newClassic(t, 3)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if got := screen.Get(40, 12); got != BallChar {
		t.Errorf("cell (40,12) = %q, want ball", got)
	}
	for y := 9; y <= 14; y++ {
		if screen.Get(3, y) != PaddleChar {
			t.Errorf("left paddle missing at row %d", y)
		}
		if screen.Get(75, y) != PaddleChar {
			t.Errorf("right paddle missing at row %d", y)
		}
	}
	if screen.Get(3, 8) == PaddleChar || screen.Get(3, 15) == PaddleChar {
		t.Error("left paddle drawn outside its rows")
	}
	if screen.Get(40, 0) != NetChar {
		t.Errorf("cell (40,0) = %q, want net", screen.Get(40, 0))
	}
}

func TestApplySnapshotErrors(t *testing.T) {
	g := newClassic(t, 4)

	two := g.Snapshot()
	two.Balls = append(two.Balls, BallDTO{X: 1, Y: 1, VX: 1, VY: 1})
	if err := g.ApplySnapshot(two); !errors.Is(err, engine.ErrExtraBalls) {
		t.Errorf("ApplySnapshot(two balls) = %v, want ErrExtraBalls", err)
	}

	none := g.Snapshot()
	none.Balls = nil
	if err := g.ApplySnapshot(none); !errors.Is(err, engine.ErrNoBall) {
		t.Errorf("ApplySnapshot(no ball) = %v, want ErrNoBall", err)
	}

	other := g.Snapshot()
	other.Variant = IDProximity
	if err := g.ApplySnapshot(other); err == nil {
		t.Error("ApplySnapshot(other variant) = nil error")
	}

	fresh := New(IDClassic, "Pong", engine.CollisionBox)
	if err := fresh.ApplySnapshot(Snapshot{}); err == nil {
		t.Error("ApplySnapshot before Reset = nil error")
	}
}

func TestSnapshotYAML(t *testing.T) {
	g := newClassic(t, 5)
	for i := 0; i < 40; i++ {
		g.Step(core.NewMultiInputFrame())
	}

	data, err := MarshalSnapshot(g.Snapshot())
	if err != nil {
		t.Fatalf("MarshalSnapshot() failed: %v", err)
	}
	snap, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("UnmarshalSnapshot() failed: %v", err)
	}

	replay := newClassic(t, 99)
	if err := replay.ApplySnapshot(snap); err != nil {
		t.Fatalf("ApplySnapshot() failed: %v", err)
	}
	for i := 0; i < 40; i++ {
		g.Step(core.NewMultiInputFrame())
		replay.Step(core.NewMultiInputFrame())
	}
	if !slices.Equal(g.Snapshot().Balls, replay.Snapshot().Balls) {
		t.Errorf("replay diverged: %v vs %v", g.Snapshot().Balls, replay.Snapshot().Balls)
	}

	if _, err := UnmarshalSnapshot([]byte("balls: {")); err == nil {
		t.Error("UnmarshalSnapshot(malformed) = nil error")
	}
}

func TestSnapshotKeepsContactWindow(t *testing.T) {
	g := newClassic(t, 8)
	snap := g.Snapshot()
	snap.Tick = 30
	snap.Balls[0].ContactTick = 30
	snap.Balls[0].ContactArmed = true

	data, err := MarshalSnapshot(snap)
	if err != nil {
		t.Fatalf("MarshalSnapshot() failed: %v", err)
	}
	decoded, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("UnmarshalSnapshot() failed: %v", err)
	}

	replay := newClassic(t, 9)
	if err := replay.ApplySnapshot(decoded); err != nil {
		t.Fatalf("ApplySnapshot() failed: %v", err)
	}
	want := engine.Debounce{LastTick: 30, Armed: true}
	if got := replay.Round().Ball().Contact; got != want {
		t.Errorf("Contact = %+v, want %+v", got, want)
	}
	if got := replay.Snapshot().Balls[0]; !got.ContactArmed || got.ContactTick != 30 {
		t.Errorf("Snapshot() ball = %+v, want the contact window kept", got)
	}
}

func TestVariantsRegistered(t *testing.T) {
	tests := []struct {
		id   string
		want engine.CollisionModel
	}{
		{IDClassic, engine.CollisionBox},
		{IDProximity, engine.CollisionProximity},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			rg, err := registry.Create(tt.id)
			if err != nil {
				t.Fatalf("Create() failed: %v", err)
			}
			g, ok := rg.(*Game)
			if !ok {
				t.Fatalf("Create() = %T", rg)
			}
			if err := g.Reset(testRuntime(6)); err != nil {
				t.Fatalf("Reset() failed: %v", err)
			}
			if got := g.Round().Rules().Collision; got != tt.want {
				t.Errorf("Collision = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfiguredCollisionOverridesVariant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pong.yaml")
	if err := os.WriteFile(path, []byte("rules:\n  collision: box\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	old, _ := settings()
	SetConfigPath(path)
	defer SetConfigPath(old)

	g := New(IDProximity, "Pong (proximity paddles)", engine.CollisionProximity)
	if err := g.Reset(testRuntime(6)); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if got := g.Round().Rules().Collision; got != engine.CollisionBox {
		t.Errorf("Collision = %q, want the configured box model", got)
	}
}

func TestTrackerInput(t *testing.T) {
	tr := NewTracker(engine.SideRight, engine.DefaultRules())
	paddles := [2]engine.Paddle{
		{Side: engine.SideLeft, Pos: core.V(-450, 0)},
		{Side: engine.SideRight, Pos: core.V(450, 0)},
	}

	tests := []struct {
		name string
		ball engine.Ball
		want core.Action
	}{
		{"incoming above", engine.Ball{Pos: core.V(0, 100), Vel: core.V(175, 0)}, core.ActionUp},
		{"incoming below", engine.Ball{Pos: core.V(0, -100), Vel: core.V(175, 0)}, core.ActionDown},
		{"incoming level", engine.Ball{Pos: core.V(0, 3), Vel: core.V(175, 0)}, core.ActionNone},
		{"receding", engine.Ball{Pos: core.V(0, 100), Vel: core.V(-175, 0)}, core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tr.Input(tt.ball, paddles)
			up, down := in.Has(core.ActionUp), in.Has(core.ActionDown)
			switch tt.want {
			case core.ActionUp:
				if !up || down {
					t.Errorf("held up=%v down=%v, want up", up, down)
				}
			case core.ActionDown:
				if up || !down {
					t.Errorf("held up=%v down=%v, want down", up, down)
				}
			default:
				if up || down {
					t.Errorf("held up=%v down=%v, want nothing", up, down)
				}
			}
		})
	}
}
