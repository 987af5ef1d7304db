package racer

import (
	"math"

	"github.com/vovakirdan/tui-racer/internal/games/racer/sim"
)

// Autopilot drives the player's car from the last frame. It keeps to the
// racing line, dodges slower cars ahead and pits when the advisor or its own
// thresholds say so. It is used by headless races and tests.
type Autopilot struct {
	Zone       sim.PitZone
	PitGate    float64 // pit entry speed limit
	Line       float64 // preferred lateral position
	PitBelow   float64 // fuel or tire level that triggers a stop
	LookAhead  float64 // metres scanned for traffic
	Deadband   float64 // lateral slack before steering
	pitPlanned bool
}

// NewAutopilot returns an autopilot tuned for the given pit zone and tuning.
func NewAutopilot(zone sim.PitZone, t sim.Tuning) *Autopilot {
	return &Autopilot{
		Zone:      zone,
		PitGate:   t.PitSpeedGate,
		Line:      50,
		PitBelow:  20,
		LookAhead: 60,
		Deadband:  2,
	}
}

// PitPlanned reports whether the autopilot intends to stop this lap.
func (a *Autopilot) PitPlanned() bool {
	return a.pitPlanned
}

// Intents chooses the controls for the next tick of length dt.
func (a *Autopilot) Intents(f sim.RaceFrame, dt float64) sim.Intents {
	if f.Pit.Mode == sim.PitPitting || f.Finished {
		return sim.Intents{}
	}
	a.plan(f)

	in := sim.Intents{Accelerate: true}
	if a.pitPlanned {
		a.approachPit(f, dt, &in)
	}

	target := a.Line
	if lat, ok := a.avoid(f); ok {
		target = lat
	}
	switch {
	case f.Player.Lateral < target-a.Deadband:
		in.SteerRight = true
	case f.Player.Lateral > target+a.Deadband:
		in.SteerLeft = true
	}
	return in
}

// plan updates the pit decision from the resources and the advisor.
func (a *Autopilot) plan(f sim.RaceFrame) {
	if f.Fuel >= 99.9 && f.TireWear >= 99.9 {
		a.pitPlanned = false
	}
	finalLap := f.LapIndex >= f.LapCount
	if !finalLap && (f.Fuel < a.PitBelow || f.TireWear < a.PitBelow) {
		a.pitPlanned = true
	}
	if f.Strategy == nil {
		return
	}
	switch f.Strategy.Category {
	case sim.CategoryPitNowFuel, sim.CategoryPitNowTires, sim.CategoryPitThisLap, sim.CategoryPlanStop:
		a.pitPlanned = true
	case sim.CategorySkipPit, sim.CategoryPushToFinish:
		a.pitPlanned = false
	}
}

// approachPit brakes early enough to be under the gate inside the zone and
// requests the stop once there.
func (a *Autopilot) approachPit(f sim.RaceFrame, dt float64, in *sim.Intents) {
	if f.LapCount <= 0 {
		return
	}
	lapLength := f.TotalDistance / float64(f.LapCount)
	gate := a.PitGate * 0.9

	if f.InPitZone {
		in.RequestPit = true
		if f.Player.Speed >= gate {
			in.Accelerate = false
			in.Brake = true
		}
		return
	}

	toZone := a.Zone.DistanceTo(f.LapProgress) * lapLength
	if toZone < brakingDistance(f.Player.Speed, gate, dt)+lapLength*0.01 {
		in.Accelerate = false
		in.Brake = f.Player.Speed > gate
	}
}

// brakingDistance estimates the metres needed to slow from v to target with
// brake and drag applied every tick of length dt.
func brakingDistance(v, target, dt float64) float64 {
	if v <= target || dt <= 0 {
		return 0
	}
	decel := 1.3 / dt
	return (v*v - target*target) / (2 * decel)
}

// avoid returns a lateral target that clears the nearest car ahead in the
// player's lane.
func (a *Autopilot) avoid(f sim.RaceFrame) (float64, bool) {
	best := math.Inf(1)
	var lane float64
	for _, op := range f.Opponents {
		gap := op.Distance - f.Player.Distance
		if gap <= 0 || gap > a.LookAhead || op.Finished {
			continue
		}
		if math.Abs(op.Lateral-f.Player.Lateral) >= 12 {
			continue
		}
		if gap < best {
			best = gap
			lane = op.Lateral
		}
	}
	if math.IsInf(best, 1) {
		return 0, false
	}
	if lane < 50 {
		return math.Min(lane+16, 88), true
	}
	return math.Max(lane-16, 12), true
}
