package racer

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-racer/internal/games/racer/sim"
)

// ErrRaceUnfinished is returned when a headless race runs out of ticks.
var ErrRaceUnfinished = errors.New("racer: race did not finish")

// Headless runs a race without a terminal, driven by an Autopilot at a fixed step.
type Headless struct {
	Sim      *sim.Simulation
	Pilot    *Autopilot
	Step     float64 // seconds per tick
	MaxTicks int
	// Observe, when set, is called with every frame.
	Observe func(sim.RaceFrame)
}

// NewHeadless prepares a headless race from a plan at 60 ticks per second.
func NewHeadless(plan Plan) (*Headless, error) {
	s, err := sim.New(plan.Setup)
	if err != nil {
		return nil, fmt.Errorf("racer: %w", err)
	}
	tuning := sim.DefaultTuning()
	if plan.Setup.Tuning != nil {
		tuning = *plan.Setup.Tuning
	}
	return &Headless{
		Sim:      s,
		Pilot:    NewAutopilot(s.PitZone(), tuning),
		Step:     1.0 / 60.0,
		MaxTicks: 60 * 60 * 60,
	}, nil
}

// Run ticks until the race finishes, the tick budget is spent or ctx is done.
func (h *Headless) Run(ctx context.Context) (sim.RaceResult, error) {
	frame := h.Sim.Snapshot()
	for i := 0; i < h.MaxTicks; i++ {
		if err := ctx.Err(); err != nil {
			return sim.RaceResult{}, err
		}
		next, err := h.Sim.Tick(h.Step, h.Pilot.Intents(frame, h.Step))
		if err != nil {
			return sim.RaceResult{}, err
		}
		frame = next
		if h.Observe != nil {
			h.Observe(frame)
		}
		if frame.Finished {
			res, _ := h.Sim.Result()
			return res, nil
		}
	}
	return sim.RaceResult{}, fmt.Errorf("%w after %d ticks", ErrRaceUnfinished, h.MaxTicks)
}
