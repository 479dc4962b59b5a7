package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
	"github.com/vovakirdan/tui-pong/internal/telemetry"
)

// Options wires a match into the rest of the platform. Every field is optional.
type Options struct {
	Store     *storage.Store
	Telemetry *telemetry.Recorder
	Logger    *log.Logger
	SessionID string
	Output    io.Writer // Bell target, stdout when nil
	Mute      bool

	// Autopilot adds computer-controlled input before each step.
	Autopilot func(in *core.MultiInputFrame)
}

// Model is the Bubble Tea model running one local match.
// Frames arrive at the render rate; the simulation runs at the fixed tick
// rate in between, as many steps per frame as the clock hands out.
type Model struct {
	game   registry.Game
	screen *core.Screen
	config core.RuntimeConfig
	opts   Options
	log    *log.Logger

	keys  KeyMap
	held  *HeldKeys
	clock *core.Clock
	bell  *Bell
	help  help.Model
	now   func() time.Time

	state        core.GameState
	header       string
	width        int
	lastFrame    time.Time
	pausePending bool
	quitting     bool
}

// NewModel creates a model for a game that has already been Reset.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	l := opts.Logger
	if l == nil {
		l = log.New(io.Discard)
	}

	m := Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH)),
		config: cfg,
		opts:   opts,
		log:    l.With("variant", game.ID()),
		keys:   DefaultKeyMap(),
		held:   NewHeldKeys(),
		clock:  core.NewClock(cfg.TickRate),
		bell:   NewBell(out, opts.Mute),
		help:   help.New(),
		now:    time.Now,
		state:  game.State(),
		width:  cfg.ScreenW,
	}
	m.help.Width = cfg.ScreenW
	m.header = m.renderHeader()
	return m
}

// playfieldHeight leaves a row for the header and one for the help line.
func playfieldHeight(h int) int {
	return max(h-2, 1)
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.FrameRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Movement keys are held until their
// window expires; pause and mute act once per press.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	ctl := m.keys.Map(msg)
	switch ctl.Action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionUp, core.ActionDown:
		m.held.Press(ctl.Player, ctl.Action, m.now())
	case core.ActionPause:
		m.pausePending = true
	case core.ActionMute:
		m.bell.Toggle()
		m.header = m.renderHeader()
	}

	return m, nil
}

// handleResize rescales the court. The world keeps its size, so the match
// carries on untouched.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.width = msg.Width
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	m.help.Width = msg.Width
	m.header = m.renderHeader()
	return m, nil
}

// handleTick runs the fixed steps that fit into the time since the last frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.lastFrame.IsZero() {
		m.lastFrame = now
		return m, tickCmd(m.config.FrameRate)
	}

	steps := m.clock.Advance(now.Sub(m.lastFrame))
	m.lastFrame = now

	for range steps {
		in := m.held.Frame(now)
		if m.pausePending {
			p1 := in.Player(core.Player1)
			p1.Set(core.ActionPause)
			in.SetPlayer(core.Player1, p1)
			m.pausePending = false
		}
		if m.opts.Autopilot != nil {
			m.opts.Autopilot(&in)
		}
		m.apply(m.game.Step(in))
	}
	m.bell.Flush()

	return m, tickCmd(m.config.FrameRate)
}

// apply feeds one step's outcome to the bell, the header, telemetry and the rally log.
func (m *Model) apply(res core.StepResult) {
	dirty := res.ScoreChanged || res.State.Paused != m.state.Paused
	m.state = res.State

	for _, c := range res.Cues {
		m.bell.Play(c)
	}
	m.opts.Telemetry.Observe(m.game.ID(), res)
	if res.Rally != nil {
		m.saveRally(*res.Rally)
	}

	if dirty {
		m.header = m.renderHeader()
	}
}

func (m *Model) saveRally(r core.RallyReport) {
	if m.opts.Store == nil {
		return
	}
	_, err := m.opts.Store.SaveRally(storage.NewRallyRecord(m.opts.SessionID, m.game.ID(), r))
	if err != nil {
		m.log.Warn("rally not saved", "err", err)
	}
}

func (m Model) renderHeader() string {
	return RenderHeader(m.game.Title(), m.state, m.bell.Muted(), m.width)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := config.UserPath("screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("screenshot failed", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("screenshot failed", "err", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the header, the court and the key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.header + "\n" + RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run resets the game and runs a match until the player quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	if err := game.Reset(cfg); err != nil {
		return err
	}
	opts.Telemetry.SessionStarted()
	defer opts.Telemetry.SessionEnded()

	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
