package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// Condition is the weather tag chosen for a race.
type Condition string

const (
	ConditionClear Condition = "clear"
	ConditionRain  Condition = "rain"
	ConditionNight Condition = "night"
	ConditionStorm Condition = "storm"
)

// Conditions lists every supported condition in selection order.
var Conditions = []Condition{ConditionClear, ConditionRain, ConditionNight, ConditionStorm}

// Weather is selected once at race start and never changes during the race.
// VisibilityModifier is only consumed by renderers.
type Weather struct {
	Condition          Condition
	Intensity          float64 // [0,1]
	HandlingModifier   float64
	VisibilityModifier float64
}

// weatherPreset holds the modifiers at full intensity.
type weatherPreset struct {
	handling   float64
	visibility float64
}

var weatherPresets = map[Condition]weatherPreset{
	ConditionClear: {handling: 1.00, visibility: 1.00},
	ConditionRain:  {handling: 0.80, visibility: 0.70},
	ConditionNight: {handling: 0.95, visibility: 0.50},
	ConditionStorm: {handling: 0.65, visibility: 0.40},
}

const (
	minSelectedIntensity = 0.3
	maxSelectedIntensity = 1.0
)

// NewWeather builds a Weather for the condition at the given intensity.
// Modifiers interpolate from 1 (intensity 0) to the preset (intensity 1).
func NewWeather(cond Condition, intensity float64) (Weather, error) {
	preset, ok := weatherPresets[cond]
	if !ok {
		return Weather{}, fmt.Errorf("%w: unknown condition %q", ErrInvalidWeather, cond)
	}
	if intensity < 0 || intensity > 1 || math.IsNaN(intensity) {
		return Weather{}, fmt.Errorf("%w: intensity %v outside [0,1]", ErrInvalidWeather, intensity)
	}
	return Weather{
		Condition:          cond,
		Intensity:          intensity,
		HandlingModifier:   1 - (1-preset.handling)*intensity,
		VisibilityModifier: 1 - (1-preset.visibility)*intensity,
	}, nil
}

// ClearWeather returns calm, full-visibility conditions.
func ClearWeather() Weather {
	return Weather{Condition: ConditionClear, Intensity: 0, HandlingModifier: 1, VisibilityModifier: 1}
}

// SelectWeather picks a condition and intensity from rng.
func SelectWeather(rng *rand.Rand) Weather {
	cond := Conditions[rng.Intn(len(Conditions))]
	intensity := minSelectedIntensity + rng.Float64()*(maxSelectedIntensity-minSelectedIntensity)
	w, _ := NewWeather(cond, intensity)
	return w
}

// ParseCondition converts a name to a Condition.
func ParseCondition(s string) (Condition, bool) {
	c := Condition(s)
	_, ok := weatherPresets[c]
	return c, ok
}

func (w Weather) validate() error {
	if _, ok := weatherPresets[w.Condition]; !ok {
		return fmt.Errorf("%w: unknown condition %q", ErrInvalidWeather, w.Condition)
	}
	if !(w.HandlingModifier > 0) || math.IsInf(w.HandlingModifier, 0) {
		return fmt.Errorf("%w: handling modifier %v", ErrInvalidWeather, w.HandlingModifier)
	}
	if !(w.VisibilityModifier >= 0 && w.VisibilityModifier <= 1) {
		return fmt.Errorf("%w: visibility modifier %v outside [0,1]", ErrInvalidWeather, w.VisibilityModifier)
	}
	if !(w.Intensity >= 0 && w.Intensity <= 1) {
		return fmt.Errorf("%w: intensity %v outside [0,1]", ErrInvalidWeather, w.Intensity)
	}
	return nil
}
