package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Default hold windows. Terminals report key presses and auto-repeats but
// never releases, so a key counts as held until its window runs out.
const (
	DefaultInitialHold = 400 * time.Millisecond // Covers the usual auto-repeat delay
	DefaultRepeatHold  = 180 * time.Millisecond // Between auto-repeats
)

// KeyMap holds the key bindings of a local match.
type KeyMap struct {
	LeftUp     key.Binding
	LeftDown   key.Binding
	RightUp    key.Binding
	RightDown  key.Binding
	Pause      key.Binding
	Mute       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the bindings for two players on one keyboard:
// W/S drive the left paddle, the arrow keys drive the right one.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		LeftUp: key.NewBinding(
			key.WithKeys("w", "W"),
			key.WithHelp("w/s", "left paddle"),
		),
		LeftDown: key.NewBinding(
			key.WithKeys("s", "S"),
		),
		RightUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "right paddle"),
		),
		RightDown: key.NewBinding(
			key.WithKeys("down"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.LeftUp, k.RightUp, k.Pause, k.Mute, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LeftUp, k.RightUp},
		{k.Pause, k.Mute, k.Screenshot, k.Quit},
	}
}

// Control is what a key press means for a match.
type Control struct {
	Player core.PlayerID // Set for paddle movement
	Action core.Action
}

// Map translates a key message. Movement keys carry the owning player;
// pause, mute and quit are match-wide. Unknown keys map to ActionNone.
func (k KeyMap) Map(msg tea.KeyMsg) Control {
	switch {
	case key.Matches(msg, k.Quit):
		return Control{Action: core.ActionQuit}
	case key.Matches(msg, k.LeftUp):
		return Control{Player: core.Player1, Action: core.ActionUp}
	case key.Matches(msg, k.LeftDown):
		return Control{Player: core.Player1, Action: core.ActionDown}
	case key.Matches(msg, k.RightUp):
		return Control{Player: core.Player2, Action: core.ActionUp}
	case key.Matches(msg, k.RightDown):
		return Control{Player: core.Player2, Action: core.ActionDown}
	case key.Matches(msg, k.Pause):
		return Control{Action: core.ActionPause}
	case key.Matches(msg, k.Mute):
		return Control{Action: core.ActionMute}
	}
	return Control{Action: core.ActionNone}
}

type heldKey struct {
	player core.PlayerID
	action core.Action
}

type press struct {
	first time.Time
	last  time.Time
}

// HeldKeys turns a stream of key presses into per-tick held state.
// A freshly pressed key is held for InitialHold; once the terminal starts
// auto-repeating it stays held while repeats arrive within RepeatHold.
// Pressing the opposite direction releases the other one at once.
type HeldKeys struct {
	InitialHold time.Duration
	RepeatHold  time.Duration

	presses map[heldKey]press
}

// NewHeldKeys creates a tracker with the default hold windows.
func NewHeldKeys() *HeldKeys {
	return &HeldKeys{
		InitialHold: DefaultInitialHold,
		RepeatHold:  DefaultRepeatHold,
		presses:     make(map[heldKey]press),
	}
}

// Press records a movement key press at time now.
func (h *HeldKeys) Press(player core.PlayerID, action core.Action, now time.Time) {
	if h.presses == nil {
		h.presses = make(map[heldKey]press)
	}
	switch action {
	case core.ActionUp:
		delete(h.presses, heldKey{player, core.ActionDown})
	case core.ActionDown:
		delete(h.presses, heldKey{player, core.ActionUp})
	default:
		return
	}

	k := heldKey{player, action}
	p, ok := h.presses[k]
	if !ok || !h.alive(p, now) {
		p = press{first: now}
	}
	p.last = now
	h.presses[k] = p
}

func (h *HeldKeys) alive(p press, now time.Time) bool {
	window := h.RepeatHold
	if p.last.Equal(p.first) {
		window = h.InitialHold
	}
	return now.Sub(p.last) < window
}

// Frame returns the keys held at time now and forgets expired ones.
func (h *HeldKeys) Frame(now time.Time) core.MultiInputFrame {
	frame := core.NewMultiInputFrame()
	for k, p := range h.presses {
		if !h.alive(p, now) {
			delete(h.presses, k)
			continue
		}
		f := frame.Player(k.player)
		f.Set(k.action)
		frame.SetPlayer(k.player, f)
	}
	return frame
}

// Release forgets every held key.
func (h *HeldKeys) Release() {
	clear(h.presses)
}
