package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	engine "github.com/vovakirdan/tui-pong/internal/pong"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var flagCPU bool

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a local two-player match",
	Long: `Start a match in the terminal. Both players share the keyboard.

Controls:
  W/S        - Left paddle
  Up/Down    - Right paddle
  P/Esc      - Pause
  M          - Mute the bell
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Each goal ends a rally; rallies are written to the rally log.
Logs go to ~/.arcade-pong/pong.log while the match runs.

Examples:
  pong play
  pong play pong-proximity
  pong play --cpu
  pong play --config ./my-pong.yaml --tick-rate 120`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagCPU, "cpu", false, "Let the computer play the right paddle")
}

func runPlay(_ *cobra.Command, args []string) {
	variant := pong.IDClassic
	if len(args) == 1 {
		variant = args[0]
	}

	if !registry.Exists(variant) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
		fmt.Fprintln(os.Stderr, "Run 'pong list' to see available variants.")
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	game, err := registry.Create(variant)
	if err != nil {
		fail("%v", err)
	}

	logger, logFile := openMatchLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open rally log: %v\n", err)
		store = nil
	}

	opts := tui.Options{
		Store:     store,
		Logger:    logger,
		SessionID: uuid.NewString(),
		Mute:      flagMute,
	}
	if flagCPU {
		opts.Autopilot = rightTracker(game)
	}

	logger.Info("match started", "variant", variant, "session", opts.SessionID)
	runErr := tui.Run(game, runtimeConfig(width, height), opts)
	logger.Info("match ended", "variant", variant, "score", fmt.Sprintf("%+v", game.State()))

	if store != nil {
		store.Close()
	}
	if logFile != nil {
		logFile.Close()
	}

	if runErr != nil {
		fail("running match: %v", runErr)
	}
}

// openMatchLog sends logs to the match log file, or discards them when it
// cannot be opened.
func openMatchLog() (*log.Logger, *os.File) {
	path := logPath()
	var f *os.File
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		f, _ = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	}

	var logger *log.Logger
	var err error
	if f != nil {
		logger, err = newLogger(f, "pong")
	} else {
		logger, err = newLogger(io.Discard, "pong")
	}
	if err != nil {
		if f != nil {
			f.Close()
		}
		fail("%v", err)
	}
	return logger, f
}

// rightTracker returns an autopilot for the right paddle, or nil if the
// game is not a pong variant.
func rightTracker(game registry.Game) func(*core.MultiInputFrame) {
	g, ok := game.(*pong.Game)
	if !ok {
		return nil
	}
	return func(in *core.MultiInputFrame) {
		if r := g.Round(); r != nil {
			pong.NewTracker(engine.SideRight, r.Rules()).Drive(in, r)
		}
	}
}
