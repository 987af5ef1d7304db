package sim

import (
	"fmt"
	"math"
)

// PitMode is the state of the pit-stop machine.
type PitMode int

const (
	PitRacing PitMode = iota
	PitPitting
)

func (m PitMode) String() string {
	if m == PitPitting {
		return "pitting"
	}
	return "racing"
}

// PitZone is the window [Start, End) of lap progress where pitting is allowed.
type PitZone struct {
	Start float64
	End   float64
}

// DefaultPitZone covers the run-in to the start/finish line.
func DefaultPitZone() PitZone {
	return PitZone{Start: 0.85, End: 0.95}
}

// Contains reports whether the lap progress lies inside the zone.
func (z PitZone) Contains(progress float64) bool {
	return progress >= z.Start && progress < z.End
}

// DistanceTo returns the lap fraction from progress to the next zone start.
// Inside the zone it returns 0.
func (z PitZone) DistanceTo(progress float64) float64 {
	if z.Contains(progress) {
		return 0
	}
	d := z.Start - progress
	if d < 0 {
		d++
	}
	return d
}

func (z PitZone) validate() error {
	if z.Start < 0 || z.End > 1 || z.Start >= z.End || math.IsNaN(z.Start) || math.IsNaN(z.End) {
		return fmt.Errorf("%w: got [%v, %v)", ErrInvalidPitZone, z.Start, z.End)
	}
	return nil
}

// PitState is the externally visible pit-stop state.
type PitState struct {
	Mode     PitMode
	Progress float64 // [0,100] while pitting
}

// pitMachine gates player control during a pit visit.
// Racing -> Pitting on a pit request inside the zone below the speed gate.
// Pitting -> Racing when progress reaches 100, refilling fuel and tires.
type pitMachine struct {
	state  PitState
	zone   PitZone
	tuning Tuning
}

// pitOutcome reports what the machine did this tick.
type pitOutcome int

const (
	pitIdle pitOutcome = iota
	pitEntered
	pitServicing
	pitCompleted
)

// canEnter reports whether a pit request would be accepted now.
func (p *pitMachine) canEnter(inZone bool, speed float64) bool {
	return p.state.Mode == PitRacing && inZone && speed < p.tuning.PitSpeedGate
}

// update advances the machine. It returns pitServicing or pitEntered when
// control processing must be skipped this tick.
func (p *pitMachine) update(dt float64, request, inZone bool, car *VehicleState, res *ResourceState) pitOutcome {
	switch p.state.Mode {
	case PitRacing:
		if !request || !p.canEnter(inZone, car.Speed) {
			return pitIdle
		}
		p.state = PitState{Mode: PitPitting, Progress: 0}
		car.Speed = 0
		return pitEntered

	case PitPitting:
		car.Speed = 0
		duration := p.tuning.PitDuration
		if duration <= 0 {
			duration = math.SmallestNonzeroFloat64
		}
		p.state.Progress = clampF(p.state.Progress+dt/duration*100, 0, 100)
		if p.state.Progress >= 100 {
			res.Refill()
			p.state = PitState{Mode: PitRacing, Progress: 0}
			return pitCompleted
		}
		return pitServicing
	}
	return pitIdle
}
