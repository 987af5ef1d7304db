package sim

import (
	"fmt"
	"math"
)

// Urgency ranks advisor messages.
type Urgency int

const (
	UrgencyInfo Urgency = iota
	UrgencyWarn
	UrgencyCritical
)

func (u Urgency) String() string {
	switch u {
	case UrgencyWarn:
		return "warn"
	case UrgencyCritical:
		return "critical"
	default:
		return "info"
	}
}

// Category identifies which advisor rule produced a message.
type Category int

const (
	CategoryPitNowFuel Category = iota + 1
	CategoryPitNowTires
	CategoryPushToFinish
	CategoryPitThisLap
	CategorySkipPit
	CategoryPlanStop
	CategoryLowFuel
	CategoryLowTires
	CategoryFinalLap
	CategoryLeaderGap
	CategoryChase
)

func (c Category) String() string {
	switch c {
	case CategoryPitNowFuel:
		return "pit-now-fuel"
	case CategoryPitNowTires:
		return "pit-now-tires"
	case CategoryPushToFinish:
		return "push-to-finish"
	case CategoryPitThisLap:
		return "pit-this-lap"
	case CategorySkipPit:
		return "skip-pit"
	case CategoryPlanStop:
		return "plan-stop"
	case CategoryLowFuel:
		return "low-fuel"
	case CategoryLowTires:
		return "low-tires"
	case CategoryFinalLap:
		return "final-lap"
	case CategoryLeaderGap:
		return "leader-gap"
	case CategoryChase:
		return "chase"
	default:
		return "unknown"
	}
}

// StrategyMessage is a rate-limited piece of advice for the driver.
type StrategyMessage struct {
	Category Category
	Urgency  Urgency
	Text     string
}

// AdvisorInput is everything the advisor looks at for one evaluation.
type AdvisorInput struct {
	Resources   ResourceState
	Lap         int
	LapCount    int
	LapProgress float64 // [0,1)
	LapLength   float64
	Remaining   float64 // metres to the finish
	MaxSpeed    float64
	InPitZone   bool
	Zone        PitZone
	Position    int
	GapAhead    float64 // metres to the car ahead, or to P2 when leading
}

// Advisor evaluates the prioritized rule list at most once per interval.
type Advisor struct {
	tuning    Tuning
	sinceLast float64
}

// NewAdvisor returns an advisor whose first window has already elapsed.
func NewAdvisor(t Tuning) *Advisor {
	return &Advisor{tuning: t, sinceLast: t.AdvisorInterval}
}

// Advance moves the rate-limit clock and, if the window has elapsed and
// advice is allowed, evaluates the rules. started is false before the race
// clock has moved; pitting suppresses advice.
func (a *Advisor) Advance(dt float64, started, pitting bool, in AdvisorInput) (StrategyMessage, bool) {
	a.sinceLast += dt
	if !started || pitting || a.sinceLast < a.tuning.AdvisorInterval {
		return StrategyMessage{}, false
	}
	msg := Evaluate(a.tuning, in)
	a.sinceLast = 0
	return msg, true
}

// Evaluate runs the rules top to bottom; the first match wins. The last rule
// always matches.
func Evaluate(t Tuning, in AdvisorInput) StrategyMessage {
	res := in.Resources
	finalLap := in.Lap >= in.LapCount
	fuelNeed, tireNeed := projectNeed(t, in.Remaining, in.MaxSpeed)
	short := fuelNeed > res.Fuel || tireNeed > res.TireWear

	switch {
	case res.Fuel < t.CriticalFuel:
		return StrategyMessage{CategoryPitNowFuel, UrgencyCritical,
			fmt.Sprintf("BOX BOX! Fuel critical (%.0f%%), pit now", res.Fuel)}

	case res.TireWear < t.CriticalTires:
		return StrategyMessage{CategoryPitNowTires, UrgencyCritical,
			fmt.Sprintf("BOX BOX! Tires gone (%.0f%%), pit now", res.TireWear)}

	case in.InPitZone:
		switch {
		case finalLap:
			return StrategyMessage{CategoryPushToFinish, UrgencyInfo, "Final lap, stay out and push to the flag"}
		case short:
			return StrategyMessage{CategoryPitThisLap, UrgencyWarn,
				fmt.Sprintf("Pit this lap: need %.0f%% fuel / %.0f%% tires to finish", fuelNeed, tireNeed)}
		default:
			return StrategyMessage{CategorySkipPit, UrgencyInfo, "Resources are fine, skip the pit"}
		}

	case in.Zone.DistanceTo(in.LapProgress) < t.ApproachMargin && short && !finalLap:
		return StrategyMessage{CategoryPlanStop, UrgencyWarn,
			fmt.Sprintf("Pit window in %.0fm, plan your stop", in.Zone.DistanceTo(in.LapProgress)*in.LapLength)}

	case res.Fuel < t.LowFuel:
		return StrategyMessage{CategoryLowFuel, UrgencyWarn,
			fmt.Sprintf("Fuel low (%.0f%%), next pit window in %.0fm", res.Fuel, in.Zone.DistanceTo(in.LapProgress)*in.LapLength)}

	case res.TireWear < t.LowTires:
		return StrategyMessage{CategoryLowTires, UrgencyWarn,
			fmt.Sprintf("Tires worn (%.0f%%), next pit window in %.0fm", res.TireWear, in.Zone.DistanceTo(in.LapProgress)*in.LapLength)}

	case finalLap:
		return StrategyMessage{CategoryFinalLap, UrgencyInfo, "Final lap, give it everything"}

	case in.Position == 1:
		return StrategyMessage{CategoryLeaderGap, UrgencyInfo,
			fmt.Sprintf("P1, gap to P2 %.0fm, manage the lead", in.GapAhead)}

	default:
		return StrategyMessage{CategoryChase, UrgencyInfo,
			fmt.Sprintf("P%d, %.0fm to the car ahead", in.Position, in.GapAhead)}
	}
}

// projectNeed estimates the fuel and tire percentage required to cover the
// remaining distance at full speed.
func projectNeed(t Tuning, remaining, maxSpeed float64) (fuel, tire float64) {
	if maxSpeed <= 0 {
		return 0, 0
	}
	remaining = math.Max(0, remaining)
	fuel = remaining * t.FuelRate / maxSpeed
	tire = remaining * t.TireRate / maxSpeed * t.CorneringReserve
	return fuel, tire
}
