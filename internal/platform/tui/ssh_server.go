package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
	"github.com/vovakirdan/tui-pong/internal/telemetry"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade-pong/host_key.
	HostKeyPath string

	// DBPath is the path to the rally log.
	DBPath string

	// MetricsAddress serves Prometheus metrics over HTTP when set.
	MetricsAddress string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Variant is the game every session plays.
	Variant string

	TickRate  int
	FrameRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      config.UserPath("rallies.db"),
		IdleTimeout: 30 * time.Minute,
		Variant:     "pong",
		TickRate:    64,
		FrameRate:   60,
	}
}

// SSHServer serves one local two-player match per SSH session.
type SSHServer struct {
	config    SSHServerConfig
	server    *ssh.Server
	metrics   *http.Server
	store     *storage.Store
	telemetry *telemetry.Recorder
	logger    *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// A nil recorder disables metrics.
func NewSSHServer(cfg SSHServerConfig, rec *telemetry.Recorder, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "pong-ssh",
		})
	}

	if !registry.Exists(cfg.Variant) {
		return nil, fmt.Errorf("%w %q", registry.ErrUnknownGame, cfg.Variant)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open rally log", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config:    cfg,
		store:     store,
		telemetry: rec,
		logger:    logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = config.UserPath("host_key")
	}
	hostKeyPath = config.ExpandPath(hostKeyPath)

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server

	if cfg.MetricsAddress != "" && rec != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", rec.Handler())
		srv.metrics = &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return srv, nil
}

// teaHandler starts a fresh match for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	game, err := registry.Create(s.config.Variant)
	if err != nil {
		s.logger.Error("cannot create game", "error", err)
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:   pty.Window.Width,
		ScreenH:   pty.Window.Height,
		TickRate:  s.config.TickRate,
		FrameRate: s.config.FrameRate,
		Seed:      time.Now().UnixNano(),
	}
	if err := game.Reset(cfg); err != nil {
		s.logger.Error("cannot start match", "error", err)
		return nil, nil
	}

	sessionID := uuid.NewString()
	model := NewModel(game, cfg, Options{
		Store:     s.store,
		Telemetry: s.telemetry,
		Logger:    s.logger.With("user", sshSession.User(), "session", sessionID),
		SessionID: sessionID,
		Output:    sshSession,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events and tracks active matches.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		s.telemetry.SessionStarted()
		next(sshSession)
		s.telemetry.SessionEnded()
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "variant", s.config.Variant)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	if s.metrics != nil {
		s.logger.Info("serving metrics", "address", s.metrics.Addr)
		go func() {
			if err := s.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("metrics server error", "error", err)
			}
		}()
	}

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if s.metrics != nil {
		errs = append(errs, s.metrics.Shutdown(ctx))
	}
	errs = append(errs, s.server.Shutdown(ctx))
	s.closeStore()
	return errors.Join(errs...)
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("could not close rally log", "error", err)
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
