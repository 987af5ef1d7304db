package racer

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/games/racer/sim"
)

func TestHeadlessRace(t *testing.T) {
	plan, err := BuildPlan(config.DefaultRaceConfig(), Options{Track: "monaco", Laps: 2, Weather: "rain"}, ModeRace, 11)
	if err != nil {
		t.Fatalf("BuildPlan() error: %v", err)
	}
	h, err := NewHeadless(plan)
	if err != nil {
		t.Fatalf("NewHeadless() error: %v", err)
	}

	frames := 0
	var prev sim.RaceFrame
	h.Observe = func(f sim.RaceFrame) {
		frames++
		if f.Player.Distance < prev.Player.Distance {
			t.Errorf("tick %d: distance went back from %v to %v", f.Tick, prev.Player.Distance, f.Player.Distance)
		}
		prev = f
	}

	res, err := h.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.FinalPosition < 1 || res.FinalPosition > 5 {
		t.Errorf("FinalPosition = %d, expected 1..5", res.FinalPosition)
	}
	if len(res.LapRecords) > 2 {
		t.Errorf("got %d lap records in a 2 lap race", len(res.LapRecords))
	}
	if frames == 0 || !prev.Finished {
		t.Error("observer did not see the finish")
	}
}

func TestHeadlessTickBudget(t *testing.T) {
	plan, _ := BuildPlan(config.DefaultRaceConfig(), Options{Track: "spa", Weather: "clear"}, ModeRace, 1)
	h, err := NewHeadless(plan)
	if err != nil {
		t.Fatalf("NewHeadless() error: %v", err)
	}
	h.MaxTicks = 10
	if _, err := h.Run(context.Background()); !errors.Is(err, ErrRaceUnfinished) {
		t.Errorf("Run() error = %v, expected ErrRaceUnfinished", err)
	}
}

func TestHeadlessCancelled(t *testing.T) {
	plan, _ := BuildPlan(config.DefaultRaceConfig(), Options{Weather: "clear"}, ModeRace, 1)
	h, err := NewHeadless(plan)
	if err != nil {
		t.Fatalf("NewHeadless() error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := h.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
}
