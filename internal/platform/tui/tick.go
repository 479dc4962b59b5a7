// Package tui provides the Bubble Tea integration for pong.
// It handles the terminal UI loop, held-key tracking, fixed-step timing
// and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per rendered frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick message after one frame at the given rate.
func tickCmd(frameRate int) tea.Cmd {
	if frameRate <= 0 {
		frameRate = 60
	}
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
