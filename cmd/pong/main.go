// pong is a two-paddle Pong match that runs in the terminal.
//
// Usage:
//
//	pong list               - List available variants
//	pong play [variant]     - Play a local two-player match
//	pong sim                - Run a headless match between two trackers
//	pong serve              - Start SSH server for remote play
//	pong rallies [variant]  - Show the longest rallies
//
// Global flags:
//
//	--tick-rate <hz>   - Simulation rate (default: 64)
//	--fps <rate>       - Render rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible serves
//	--config <path>    - Custom pong config YAML
//	--db <path>        - Set rally log path (default: ~/.arcade-pong/rallies.db)
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

var (
	// Global flags
	flagTickRate int
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagMute     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pong",
	Short: "Pong - a two-paddle match in your terminal",
	Long: `Pong runs a fixed-step two-paddle simulation in the terminal.

Available commands:
  list     - Show all variants
  play     - Play a local two-player match
  sim      - Run a headless match between two trackers
  serve    - Start SSH server for remote play
  rallies  - View the longest rallies

Examples:
  pong play
  pong play pong-proximity --seed 42
  pong sim --ticks 20000 --dump end.yaml
  pong serve --ssh :2222 --metrics :9464
  pong rallies pong`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		pong.SetConfigPath(flagConfig)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagTickRate, "tick-rate", 64, "Simulation ticks per second")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Render frames per second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom pong config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade-pong/rallies.db", "Path to rally log database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Start with the bell muted")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ralliesCmd)
}

// newLogger builds the process logger writing to w at --log-level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	pong.SetLogger(l)
	return l, nil
}

// runtimeConfig returns the runtime settings shared by every command.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		TickRate:  flagTickRate,
		FrameRate: flagFPS,
		Seed:      flagSeed,
	}
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// logPath is where a match logs while the TUI owns the terminal.
func logPath() string {
	return config.UserPath("pong.log")
}
