package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagLimit  int
	flagBrowse bool
	flagClear  bool
)

var ralliesCmd = &cobra.Command{
	Use:   "rallies [variant]",
	Short: "Show the longest rallies",
	Long: `Display the longest rallies recorded for a variant, ranked by paddle
bounces, with aggregate statistics.

Examples:
  pong rallies
  pong rallies pong-proximity --limit 25
  pong rallies --browse
  pong rallies pong --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRallies,
}

func init() {
	ralliesCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rallies to show")
	ralliesCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive rally browser")
	ralliesCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the variant's rallies")
}

func runRallies(_ *cobra.Command, args []string) {
	variant := pong.IDClassic
	if len(args) == 1 {
		variant = args[0]
	}

	if !registry.Exists(variant) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
		fmt.Fprintln(os.Stderr, "Run 'pong list' to see available variants.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening rally log: %v", err)
	}

	if flagBrowse && !flagClear {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		err = tui.RunRallyBrowser(store, variant, width, height)
	} else {
		err = showRallies(os.Stdout, store, variant, flagLimit, flagClear)
	}

	// Close store before potential exit
	store.Close()
	if err != nil {
		fail("%v", err)
	}
}

// showRallies prints the ranking and stats for variant, or clears its rallies.
func showRallies(w io.Writer, store *storage.Store, variant string, limit int, clearAll bool) error {
	if clearAll {
		if err := store.ClearRallies(variant); err != nil {
			return err
		}
		fmt.Fprintf(w, "Cleared rallies for %s.\n", variant)
		return nil
	}

	rallies, err := store.LongestRallies(variant, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Longest Rallies - %s\n", variant)
	fmt.Fprintln(w)

	if len(rallies) == 0 {
		fmt.Fprintln(w, "No rallies recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'pong play %s' and score a goal to log one!\n", variant)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-7s  %-10s  %-6s  %-8s  %s\n", "Rank", "Bounces", "Peak speed", "Ticks", "Conceded", "Date")
	fmt.Fprintf(w, "  %-4s  %-7s  %-10s  %-6s  %-8s  %s\n", "----", "-------", "----------", "-----", "--------", "----")
	for i, r := range rallies {
		fmt.Fprintf(w, "  %-4d  %-7d  %-10.1f  %-6d  %-8s  %s\n",
			i+1, r.Bounces, r.PeakSpeed, r.Ticks, r.Conceded, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.RallyStats(variant)
	if err == nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Rallies: %d  Best: %d bounces  Average: %.1f  Top speed: %.1f\n",
			stats.Rallies, stats.MostBounces, stats.AvgBounces, stats.TopSpeed)
	}
	return nil
}

// recordRally writes a finished rally, logging instead of failing.
func recordRally(store *storage.Store, sessionID, variant string, r core.RallyReport, logger *log.Logger) {
	_, err := store.SaveRally(storage.NewRallyRecord(sessionID, variant, r))
	if err != nil {
		logger.Warn("rally not saved", "err", err)
	}
}
