package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pong/internal/core"
)

var (
	headerTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	headerScoreStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	headerSideStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerFlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// RenderHeader draws the one-line scoreboard shown above the court.
// It is only rebuilt when something on it changes.
func RenderHeader(title string, st core.GameState, muted bool, width int) string {
	score := fmt.Sprintf("%d  :  %d", st.LeftScore, st.RightScore)
	line := headerTitleStyle.Render(title) + "   " +
		headerSideStyle.Render(core.Player1.String()) + "  " +
		headerScoreStyle.Render(score) + "  " +
		headerSideStyle.Render(core.Player2.String())

	if st.Paused {
		line += "   " + headerFlagStyle.Render("PAUSED")
	}
	if muted {
		line += "   " + headerFlagStyle.Render("MUTED")
	}

	if width <= 0 {
		return line
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

// Bell plays audio cues as the terminal bell. Cues raised during one frame
// ring once.
type Bell struct {
	w       io.Writer
	muted   bool
	pending bool
}

// NewBell creates a bell writing to w.
func NewBell(w io.Writer, muted bool) *Bell {
	return &Bell{w: w, muted: muted}
}

// Play queues a ring unless the bell is muted.
func (b *Bell) Play(core.Cue) {
	if !b.muted {
		b.pending = true
	}
}

// Flush rings once if any cue was played since the last flush.
func (b *Bell) Flush() {
	if !b.pending {
		return
	}
	b.pending = false
	//nolint:errcheck // A lost bell is harmless
	io.WriteString(b.w, "\a")
}

// Toggle flips muting and drops a pending ring when muting.
func (b *Bell) Toggle() {
	b.muted = !b.muted
	if b.muted {
		b.pending = false
	}
}

// Muted reports whether cues are silenced.
func (b *Bell) Muted() bool {
	return b.muted
}
