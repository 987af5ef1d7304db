package sim

import "math"

const (
	resourceFull = 100.0
	trackCenter  = 50.0
	// lateralHalfWidth is the distance from the centerline to the player's lateral limit.
	lateralHalfWidth = 40.0
)

// FullResources returns a full tank on new tires.
func FullResources() ResourceState {
	return ResourceState{Fuel: resourceFull, TireWear: resourceFull}
}

// Deplete burns fuel and wears tires for one tick.
// Consumption scales with speed/maxSpeed; tire wear also grows with distance
// from the centerline.
func (r *ResourceState) Deplete(t Tuning, dt, speed, maxSpeed, lateral float64) {
	if maxSpeed <= 0 || dt <= 0 {
		return
	}
	load := clampF(speed/maxSpeed, 0, 1)
	cornering := CorneringFactor(lateral)

	r.Fuel = clampF(r.Fuel-dt*t.FuelRate*load, 0, resourceFull)
	r.TireWear = clampF(r.TireWear-dt*t.TireRate*load*(1+cornering), 0, resourceFull)
}

// Refill restores both resources. Only a completed pit stop calls this.
func (r *ResourceState) Refill() {
	r.Fuel = resourceFull
	r.TireWear = resourceFull
}

// CorneringFactor is 0 on the centerline and 1 at the player's lateral limits.
func CorneringFactor(lateral float64) float64 {
	return clampF(math.Abs(lateral-trackCenter)/lateralHalfWidth, 0, 1)
}

// FuelPenalty is the acceleration multiplier for the given fuel level.
func FuelPenalty(t Tuning, fuel float64) float64 {
	return penaltyCurve(fuel, t.FuelPenaltyBelow, t.FuelPenaltyFloor)
}

// TirePenalty is the handling multiplier for the given tire level.
func TirePenalty(t Tuning, tire float64) float64 {
	return penaltyCurve(tire, t.TirePenaltyBelow, t.TirePenaltyFloor)
}

// penaltyCurve is 1 at or above threshold and falls linearly to floor at 0.
func penaltyCurve(level, threshold, floor float64) float64 {
	if threshold <= 0 || level >= threshold {
		return 1
	}
	level = clampF(level, 0, threshold)
	return floor + (1-floor)*(level/threshold)
}

// clampF restricts a float64 to [min, max]. NaN collapses to min.
func clampF(val, min, max float64) float64 {
	if val < min || math.IsNaN(val) {
		return min
	}
	if val > max {
		return max
	}
	return val
}
