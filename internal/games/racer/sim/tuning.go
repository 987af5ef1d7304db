package sim

import (
	"fmt"
	"math"
)

// Tuning holds every constant the simulation uses.
// DefaultTuning returns the values the game ships with; config files may override them.
type Tuning struct {
	// Ticks
	FirstTickDelta float64 // dt used for the very first tick
	MaxTickDelta   float64 // larger intervals are clamped to this

	// Player control
	Drag               float64 // passive speed loss per tick without throttle
	BrakeDecel         float64 // speed loss per tick while braking
	CollisionAccel     float64 // acceleration multiplier while colliding
	CollisionTravel    float64 // distance multiplier while colliding
	CollisionPush      float64 // lateral push per tick per unit severity
	HandlingRecovery   float64 // handling penalty recovered per second
	PenaltyHandling    float64 // weight of handling penalty on steering
	PlayerLateralMin   float64
	PlayerLateralMax   float64
	PlayerStartLateral float64

	// Collisions
	DistanceThreshold    float64 // D_THRESH, metres
	WidthThreshold       float64 // W_THRESH, percent
	PlayerCooldown       float64 // seconds
	OpponentCooldown     float64 // seconds
	PenaltyPerSeverity   float64 // handling penalty added per unit severity
	SpeedLossPerSeverity float64 // fraction of speed lost per unit severity
	OpponentPush         float64 // lateral push applied to the opponent per unit severity

	// AI
	OpponentLateralMin   float64
	OpponentLateralMax   float64
	GridSpacing          float64 // metres between starting slots
	OpponentMinSpeed     float64
	OpponentJitter       float64 // total width of the uniform speed jitter
	OpponentCollision    float64 // speed multiplier while colliding
	WeaveBaseFrequency   float64
	WeaveFrequencyAggr   float64
	WeaveBaseAmplitude   float64
	WeaveAmplitudeAggr   float64
	WeaveBlend           float64
	RivalChance          float64
	RivalSkillBoost      float64
	RivalSkillCap        float64
	RivalAggressionBoost float64

	// Resources
	FuelRate         float64 // per second at max speed
	TireRate         float64 // per second at max speed, before cornering
	FuelPenaltyBelow float64
	FuelPenaltyFloor float64
	TirePenaltyBelow float64
	TirePenaltyFloor float64

	// Pit
	PitSpeedGate float64
	PitDuration  float64 // seconds

	// Strategy
	AdvisorInterval  float64 // seconds between messages
	CriticalFuel     float64
	CriticalTires    float64
	LowFuel          float64
	LowTires         float64
	ApproachMargin   float64 // lap fraction
	CorneringReserve float64 // tire projection multiplier
}

// DefaultTuning returns the shipped tuning values.
func DefaultTuning() Tuning {
	return Tuning{
		FirstTickDelta: 0.016,
		MaxTickDelta:   0.1,

		Drag:               0.3,
		BrakeDecel:         1.0,
		CollisionAccel:     0.3,
		CollisionTravel:    0.7,
		CollisionPush:      1.5,
		HandlingRecovery:   0.5,
		PenaltyHandling:    0.5,
		PlayerLateralMin:   10,
		PlayerLateralMax:   90,
		PlayerStartLateral: 50,

		DistanceThreshold:    30,
		WidthThreshold:       8,
		PlayerCooldown:       0.3,
		OpponentCooldown:     0.2,
		PenaltyPerSeverity:   0.5,
		SpeedLossPerSeverity: 0.5,
		OpponentPush:         5,

		OpponentLateralMin:   15,
		OpponentLateralMax:   85,
		GridSpacing:          40,
		OpponentMinSpeed:     50,
		OpponentJitter:       20,
		OpponentCollision:    0.5,
		WeaveBaseFrequency:   0.001,
		WeaveFrequencyAggr:   0.002,
		WeaveBaseAmplitude:   10,
		WeaveAmplitudeAggr:   15,
		WeaveBlend:           0.05,
		RivalChance:          0.3,
		RivalSkillBoost:      1.1,
		RivalSkillCap:        1.2,
		RivalAggressionBoost: 0.3,

		FuelRate:         1.5,
		TireRate:         1.0,
		FuelPenaltyBelow: 20,
		FuelPenaltyFloor: 0.4,
		TirePenaltyBelow: 30,
		TirePenaltyFloor: 0.5,

		PitSpeedGate: 80,
		PitDuration:  3.0,

		AdvisorInterval:  2.0,
		CriticalFuel:     10,
		CriticalTires:    10,
		LowFuel:          25,
		LowTires:         25,
		ApproachMargin:   0.15,
		CorneringReserve: 1.25,
	}
}

// Validate rejects tuning that would break the race invariants: negative
// rates, multipliers outside [0,1], inverted lateral bounds or tick deltas.
func (t Tuning) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"first tick delta", t.FirstTickDelta},
		{"max tick delta", t.MaxTickDelta},
		{"distance threshold", t.DistanceThreshold},
		{"width threshold", t.WidthThreshold},
		{"grid spacing", t.GridSpacing},
		{"weave blend", t.WeaveBlend},
		{"rival skill boost", t.RivalSkillBoost},
		{"rival skill cap", t.RivalSkillCap},
		{"fuel rate", t.FuelRate},
		{"tire rate", t.TireRate},
		{"pit speed gate", t.PitSpeedGate},
		{"pit duration", t.PitDuration},
		{"cornering reserve", t.CorneringReserve},
	}
	for _, f := range positive {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidTuning, f.name, f.v)
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"drag", t.Drag},
		{"brake decel", t.BrakeDecel},
		{"collision push", t.CollisionPush},
		{"handling recovery", t.HandlingRecovery},
		{"penalty handling", t.PenaltyHandling},
		{"player cooldown", t.PlayerCooldown},
		{"opponent cooldown", t.OpponentCooldown},
		{"penalty per severity", t.PenaltyPerSeverity},
		{"opponent push", t.OpponentPush},
		{"opponent min speed", t.OpponentMinSpeed},
		{"opponent jitter", t.OpponentJitter},
		{"weave base frequency", t.WeaveBaseFrequency},
		{"weave frequency aggression", t.WeaveFrequencyAggr},
		{"weave base amplitude", t.WeaveBaseAmplitude},
		{"weave amplitude aggression", t.WeaveAmplitudeAggr},
		{"fuel penalty threshold", t.FuelPenaltyBelow},
		{"tire penalty threshold", t.TirePenaltyBelow},
		{"advisor interval", t.AdvisorInterval},
		{"critical fuel", t.CriticalFuel},
		{"critical tires", t.CriticalTires},
		{"low fuel", t.LowFuel},
		{"low tires", t.LowTires},
	}
	for _, f := range nonNegative {
		if !(f.v >= 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidTuning, f.name, f.v)
		}
	}

	fractions := []struct {
		name string
		v    float64
	}{
		{"collision accel", t.CollisionAccel},
		{"collision travel", t.CollisionTravel},
		{"speed loss per severity", t.SpeedLossPerSeverity},
		{"opponent collision", t.OpponentCollision},
		{"weave blend", t.WeaveBlend},
		{"rival chance", t.RivalChance},
		{"rival aggression boost", t.RivalAggressionBoost},
		{"fuel penalty floor", t.FuelPenaltyFloor},
		{"tire penalty floor", t.TirePenaltyFloor},
		{"approach margin", t.ApproachMargin},
	}
	for _, f := range fractions {
		if !(f.v >= 0 && f.v <= 1) {
			return fmt.Errorf("%w: %s %v outside [0,1]", ErrInvalidTuning, f.name, f.v)
		}
	}

	if t.FirstTickDelta > t.MaxTickDelta {
		return fmt.Errorf("%w: first tick delta %v above max tick delta %v", ErrInvalidTuning, t.FirstTickDelta, t.MaxTickDelta)
	}
	if !lateralBounds(t.PlayerLateralMin, t.PlayerLateralMax) ||
		t.PlayerStartLateral < t.PlayerLateralMin || t.PlayerStartLateral > t.PlayerLateralMax {
		return fmt.Errorf("%w: player lateral bounds [%v, %v] start %v", ErrInvalidTuning,
			t.PlayerLateralMin, t.PlayerLateralMax, t.PlayerStartLateral)
	}
	if !lateralBounds(t.OpponentLateralMin, t.OpponentLateralMax) {
		return fmt.Errorf("%w: opponent lateral bounds [%v, %v]", ErrInvalidTuning,
			t.OpponentLateralMin, t.OpponentLateralMax)
	}
	return nil
}

// lateralBounds reports whether [lo, hi] is a non-empty window of the road.
func lateralBounds(lo, hi float64) bool {
	return lo >= 0 && hi <= 100 && lo < hi
}
