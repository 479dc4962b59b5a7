package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/telemetry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagMetricsAddr string
	flagIdleTimeout int
	flagVariant     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pong SSH server",
	Long: `Start an SSH server that gives every connection its own local match.
Both paddles are played from the connecting keyboard.

Rallies from every session go to the server's rally log. With --metrics
the server also exposes Prometheus metrics at /metrics.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade-pong/host_key

Examples:
  pong serve                           # Listen on :23235 with auto-generated key
  pong serve --ssh :2222               # Listen on port 2222
  pong serve --metrics :9464           # Also serve metrics
  pong serve --variant pong-proximity  # Proximity paddles for everyone

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Prometheus metrics address (host:port), disabled if empty")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagVariant, "variant", "pong", "Variant every session plays")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr, "pong-ssh")
	if err != nil {
		fail("%v", err)
	}

	if !registry.Exists(flagVariant) {
		fail("unknown variant %q", flagVariant)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rec := telemetry.NewRecorder(reg)

	cfg := tui.SSHServerConfig{
		Address:        flagSSHAddr,
		HostKeyPath:    flagHostKey,
		DBPath:         flagDBPath,
		MetricsAddress: flagMetricsAddr,
		IdleTimeout:    time.Duration(flagIdleTimeout) * time.Minute,
		Variant:        flagVariant,
		TickRate:       flagTickRate,
		FrameRate:      flagFPS,
	}

	server, err := tui.NewSSHServer(cfg, rec, logger)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting pong SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}

// port returns the port part of a listen address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
