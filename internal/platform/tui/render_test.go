package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-racer/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(0, 0, "LAP 1/3")
	s.DrawTextColor(0, 1, "FUEL", core.ColorGreen)
	s.DrawTextColor(5, 1, "LOW", core.ColorRed)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, expected 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "LAP 1/3") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "FUEL") || !strings.Contains(lines[1], "LOW") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestFrameDelta(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name     string
		prev     time.Time
		now      time.Time
		expected float64
	}{
		{"first tick", time.Time{}, now, 0},
		{"normal", now, now.Add(20 * time.Millisecond), 0.02},
		{"clock went back", now, now.Add(-time.Second), 0},
		{"stall is capped", now, now.Add(5 * time.Second), 0.25},
	}

	for _, tc := range testCases {
		if got := frameDelta(tc.prev, tc.now); got != tc.expected {
			t.Errorf("%s: frameDelta() = %v, expected %v", tc.name, got, tc.expected)
		}
	}
}
