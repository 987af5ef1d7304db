package tui

import (
	"time"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// Terminals report key presses and auto-repeat, never releases. HoldTracker
// turns presses into held controls: a fresh press holds its action for
// Initial, which covers the auto-repeat delay, and each repeat extends it
// by Repeat.
type HoldTracker struct {
	Initial time.Duration
	Repeat  time.Duration
	until   map[core.Action]time.Time
}

// opposing actions cancel each other on press.
var opposing = map[core.Action]core.Action{
	core.ActionAccelerate: core.ActionBrake,
	core.ActionBrake:      core.ActionAccelerate,
	core.ActionSteerLeft:  core.ActionSteerRight,
	core.ActionSteerRight: core.ActionSteerLeft,
}

// NewHoldTracker creates a tracker with the default hold windows.
func NewHoldTracker() *HoldTracker {
	return &HoldTracker{
		Initial: 500 * time.Millisecond,
		Repeat:  180 * time.Millisecond,
		until:   make(map[core.Action]time.Time),
	}
}

// Press records a key press at now. Non-driving actions are ignored.
func (h *HoldTracker) Press(a core.Action, now time.Time) {
	if !a.IsDriving() {
		return
	}
	if other, ok := opposing[a]; ok {
		delete(h.until, other)
	}
	window := h.Initial
	if h.held(a, now) {
		window = h.Repeat
	}
	if end := now.Add(window); end.After(h.until[a]) {
		h.until[a] = end
	}
}

func (h *HoldTracker) held(a core.Action, now time.Time) bool {
	end, ok := h.until[a]
	return ok && now.Before(end)
}

// Frame returns the actions held at now and forgets expired ones.
func (h *HoldTracker) Frame(now time.Time) core.InputFrame {
	frame := core.NewInputFrame()
	for a, end := range h.until {
		if now.Before(end) {
			frame.Set(a)
		} else {
			delete(h.until, a)
		}
	}
	return frame
}

// Reset releases every action.
func (h *HoldTracker) Reset() {
	for a := range h.until {
		delete(h.until, a)
	}
}
