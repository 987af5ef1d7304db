package sim

import (
	"fmt"
	"math"
)

// Intents are the player's held controls for one tick.
type Intents struct {
	Accelerate bool
	Brake      bool
	SteerLeft  bool
	SteerRight bool
	RequestPit bool
}

// PlayerStats are the driver's static ratings, 0..100.
type PlayerStats struct {
	Speed        float64
	Handling     float64
	Acceleration float64
}

// VehicleSpec is the derived per-race performance of the player's car.
type VehicleSpec struct {
	MaxSpeed     float64
	Acceleration float64 // speed gained per tick at full throttle
	Handling     float64 // lateral percent per tick at full lock
}

// Spec derives the vehicle performance from the ratings.
func (s PlayerStats) Spec() VehicleSpec {
	return VehicleSpec{
		MaxSpeed:     200 + s.Speed*2,
		Acceleration: 0.5 + s.Acceleration*0.02,
		Handling:     0.3 + s.Handling*0.02,
	}
}

func (s PlayerStats) validate() error {
	for name, v := range map[string]float64{"speed": s.Speed, "handling": s.Handling, "acceleration": s.Acceleration} {
		if v < 0 || v > 100 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s rating %v outside [0,100]", ErrInvalidStats, name, v)
		}
	}
	return nil
}

func (v VehicleSpec) validate() error {
	if !(v.MaxSpeed > 0) || math.IsInf(v.MaxSpeed, 0) {
		return fmt.Errorf("%w: max speed %v", ErrInvalidStats, v.MaxSpeed)
	}
	if !(v.Acceleration > 0) || math.IsInf(v.Acceleration, 0) {
		return fmt.Errorf("%w: acceleration %v", ErrInvalidStats, v.Acceleration)
	}
	if v.Handling < 0 || math.IsNaN(v.Handling) || math.IsInf(v.Handling, 0) {
		return fmt.Errorf("%w: handling %v", ErrInvalidStats, v.Handling)
	}
	return nil
}

// playerModel integrates the player's car.
type playerModel struct {
	spec    VehicleSpec
	weather Weather
	tuning  Tuning
	lastHit CollisionEvent // most recent resolved impact, drives the push while cooling down
}

// integrateControl applies throttle, brake and steering for one tick.
func (m *playerModel) integrateControl(s *VehicleState, in Intents, res ResourceState) {
	t := m.tuning

	collisionPenalty := 1.0
	if s.Colliding {
		collisionPenalty = t.CollisionAccel
	}
	accel := m.spec.Acceleration * collisionPenalty * FuelPenalty(t, res.Fuel)

	if in.Accelerate {
		s.Speed = math.Min(s.Speed+accel, m.spec.MaxSpeed)
	} else {
		s.Speed -= t.Drag
	}
	if in.Brake {
		s.Speed -= t.BrakeDecel
	}
	s.Speed = clampF(s.Speed, 0, m.spec.MaxSpeed)

	handling := m.spec.Handling *
		m.weather.HandlingModifier *
		(1 - s.HandlingPenalty*t.PenaltyHandling) *
		TirePenalty(t, res.TireWear)

	steer := 0.0
	if in.SteerLeft {
		steer -= handling
	}
	if in.SteerRight {
		steer += handling
	}
	if s.Colliding {
		steer += pushDirection(m.lastHit.Direction) * m.lastHit.Severity * t.CollisionPush
	}
	s.Lateral = clampF(s.Lateral+steer, t.PlayerLateralMin, t.PlayerLateralMax)
}

// recover decays collision timers and the handling penalty.
func (m *playerModel) recover(s *VehicleState, dt float64) {
	s.CollisionCooldown = math.Max(0, s.CollisionCooldown-dt)
	s.Colliding = s.CollisionCooldown > 0
	s.HandlingPenalty = clampF(s.HandlingPenalty-m.tuning.HandlingRecovery*dt, 0, 1)
}

// integrateDistance moves the car along the track and reports whether it
// reached the finish.
func (m *playerModel) integrateDistance(s *VehicleState, dt, total float64) bool {
	if s.Finished {
		return true
	}
	mult := 1.0
	if s.Colliding {
		mult = m.tuning.CollisionTravel
	}
	s.Distance = math.Min(s.Distance+s.Speed*mult*dt, total)
	if s.Distance >= total {
		s.Finished = true
	}
	return s.Finished
}
