// Package tui runs races in the terminal with Bubble Tea: the race loop,
// key mapping, the mode menu, the results board and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick. It carries the wall time
// the tick fired at; the model steps the race by the time between ticks.
type TickMsg time.Time

// tickCmd returns a command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// maxFrameGap caps the step after a stall, e.g. a suspended terminal.
const maxFrameGap = 250 * time.Millisecond

// frameDelta returns the seconds between two ticks. The first tick steps
// by zero.
func frameDelta(prev, now time.Time) float64 {
	if prev.IsZero() || !now.After(prev) {
		return 0
	}
	gap := now.Sub(prev)
	if gap > maxFrameGap {
		gap = maxFrameGap
	}
	return gap.Seconds()
}
