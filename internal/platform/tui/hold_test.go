package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-racer/internal/core"
)

func TestHoldTracker(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ms := func(n int) time.Time { return start.Add(time.Duration(n) * time.Millisecond) }

	testCases := []struct {
		name    string
		presses []int // press times in ms, all ActionAccelerate
		at      int
		held    bool
	}{
		{"fresh press", []int{0}, 100, true},
		{"covers the repeat delay", []int{0}, 450, true},
		{"released after the initial window", []int{0}, 520, false},
		{"repeat extends the hold", []int{0, 400}, 560, true},
		{"repeats stop", []int{0, 400, 430}, 650, false},
		{"nothing pressed", nil, 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHoldTracker()
			for _, p := range tc.presses {
				h.Press(core.ActionAccelerate, ms(p))
			}
			if got := h.Frame(ms(tc.at)).Has(core.ActionAccelerate); got != tc.held {
				t.Errorf("held at %dms = %v, expected %v", tc.at, got, tc.held)
			}
		})
	}
}

func TestHoldTrackerOpposites(t *testing.T) {
	now := time.Now()
	h := NewHoldTracker()
	h.Press(core.ActionAccelerate, now)
	h.Press(core.ActionSteerLeft, now)
	h.Press(core.ActionBrake, now)
	h.Press(core.ActionSteerRight, now)

	f := h.Frame(now)
	if f.Has(core.ActionAccelerate) || f.Has(core.ActionSteerLeft) {
		t.Error("opposing actions should be released")
	}
	if !f.Has(core.ActionBrake) || !f.Has(core.ActionSteerRight) {
		t.Error("latest actions should be held")
	}
}

func TestHoldTrackerIgnoresNonDriving(t *testing.T) {
	now := time.Now()
	h := NewHoldTracker()
	h.Press(core.ActionPause, now)
	h.Press(core.ActionPit, now)

	f := h.Frame(now)
	if f.Has(core.ActionPause) {
		t.Error("pause should not be held")
	}
	if !f.Has(core.ActionPit) {
		t.Error("pit should be held")
	}

	h.Reset()
	if h.Frame(now).Has(core.ActionPit) {
		t.Error("Reset() should release everything")
	}
}
