package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	engine "github.com/vovakirdan/tui-pong/internal/pong"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagTicks  int
	flagDump   string
	flagLoad   string
	flagRecord bool
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Run a headless match between two trackers",
	Long: `Run a match without a terminal UI. Both paddles are driven by trackers
that follow the ball while it is incoming. With a fixed --seed the run is
fully reproducible.

The final state can be dumped as YAML and loaded again to continue the
match from the same tick. The random source is not dumped: serves after
the next goal follow the --seed of the loading run.

Examples:
  pong sim --ticks 6400 --seed 7
  pong sim --ticks 6400 --seed 7 --dump end.yaml
  pong sim --load end.yaml --ticks 640
  pong sim pong-proximity --record --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 6400, "Number of ticks to simulate")
	simCmd.Flags().StringVar(&flagDump, "dump", "", "Write the final snapshot as YAML to this file (- for stdout)")
	simCmd.Flags().StringVar(&flagLoad, "load", "", "Start from a YAML snapshot")
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Write finished rallies to the rally log")
}

// simSummary accumulates what a headless run saw.
type simSummary struct {
	bounces   int
	walls     int
	goals     int
	bestRally int
	peakSpeed float64
}

func (s *simSummary) add(res core.StepResult) {
	for _, c := range res.Cues {
		switch c {
		case core.CueBounce:
			s.bounces++
		case core.CueWall:
			s.walls++
		case core.CueGoal:
			s.goals++
		}
	}
	if r := res.Rally; r != nil {
		s.bestRally = max(s.bestRally, r.Bounces)
		s.peakSpeed = max(s.peakSpeed, r.PeakSpeed)
	}
}

func runSim(_ *cobra.Command, args []string) {
	logger, err := newLogger(os.Stderr, "pong-sim")
	if err != nil {
		fail("%v", err)
	}

	variant := pong.IDClassic
	if len(args) == 1 {
		variant = args[0]
	}
	if flagTicks < 0 {
		fail("--ticks must not be negative")
	}

	game, err := registry.Create(variant)
	if err != nil {
		fail("%v", err)
	}
	g, ok := game.(*pong.Game)
	if !ok {
		fail("variant %q cannot be simulated", variant)
	}

	if err := g.Reset(runtimeConfig(80, 24)); err != nil {
		fail("%v", err)
	}

	if flagLoad != "" {
		data, readErr := os.ReadFile(flagLoad)
		if readErr != nil {
			fail("reading snapshot: %v", readErr)
		}
		snap, parseErr := pong.UnmarshalSnapshot(data)
		if parseErr != nil {
			fail("%v", parseErr)
		}
		if err := g.ApplySnapshot(snap); err != nil {
			fail("%v", err)
		}
		logger.Info("snapshot loaded", "path", flagLoad, "tick", snap.Tick)
	}

	var onRally func(core.RallyReport)
	var store *storage.Store
	if flagRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fail("opening rally log: %v", err)
		}
		sessionID := uuid.NewString()
		onRally = func(r core.RallyReport) {
			recordRally(store, sessionID, variant, r, logger)
		}
	}

	sum := simulate(g, flagTicks, logger, onRally)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	round := g.Round()
	board := round.Board()
	logger.Info("simulation finished",
		"variant", variant,
		"ticks", round.Tick(),
		"goals", sum.goals,
		"paddle_bounces", sum.bounces,
		"wall_bounces", sum.walls,
		"best_rally", sum.bestRally,
		"top_speed", fmt.Sprintf("%.1f", sum.peakSpeed),
	)
	fmt.Printf("%s after %d ticks: %d - %d\n", game.Title(), round.Tick(), board.Left, board.Right)

	if flagDump != "" {
		if err := writeSnapshot(g.Snapshot(), flagDump, os.Stdout); err != nil {
			fail("%v", err)
		}
		if flagDump != "-" {
			logger.Info("snapshot written", "path", flagDump)
		}
	}
}

// simulate runs ticks steps with trackers on both paddles. onRally may be nil.
func simulate(g *pong.Game, ticks int, logger *log.Logger, onRally func(core.RallyReport)) simSummary {
	round := g.Round()
	left := pong.NewTracker(engine.SideLeft, round.Rules())
	right := pong.NewTracker(engine.SideRight, round.Rules())

	var sum simSummary
	for range ticks {
		in := core.NewMultiInputFrame()
		left.Drive(&in, round)
		right.Drive(&in, round)

		res := g.Step(in)
		sum.add(res)

		if r := res.Rally; r != nil {
			logger.Info("goal",
				"tick", round.Tick(),
				"score", round.Board(),
				"bounces", r.Bounces,
				"peak_speed", fmt.Sprintf("%.1f", r.PeakSpeed),
			)
			if onRally != nil {
				onRally(*r)
			}
		}
	}
	return sum
}

// writeSnapshot encodes snap to path, or to stdout when path is "-".
func writeSnapshot(snap pong.Snapshot, path string, stdout io.Writer) error {
	data, err := pong.MarshalSnapshot(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if path == "-" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
