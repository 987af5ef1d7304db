package sim

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestNewWeather(t *testing.T) {
	testCases := []struct {
		cond       Condition
		intensity  float64
		handling   float64
		visibility float64
	}{
		{ConditionClear, 1, 1, 1},
		{ConditionRain, 1, 0.8, 0.7},
		{ConditionRain, 0.5, 0.9, 0.85},
		{ConditionStorm, 1, 0.65, 0.4},
		{ConditionNight, 0, 1, 1},
	}
	for _, tc := range testCases {
		w, err := NewWeather(tc.cond, tc.intensity)
		if err != nil {
			t.Fatalf("NewWeather(%s, %v) error: %v", tc.cond, tc.intensity, err)
		}
		if !approx(w.HandlingModifier, tc.handling) || !approx(w.VisibilityModifier, tc.visibility) {
			t.Errorf("NewWeather(%s, %v) = %v/%v, expected %v/%v",
				tc.cond, tc.intensity, w.HandlingModifier, w.VisibilityModifier, tc.handling, tc.visibility)
		}
	}
}

func TestNewWeatherRejects(t *testing.T) {
	bad := []struct {
		cond      Condition
		intensity float64
	}{
		{"fog", 0.5},
		{ConditionRain, -0.1},
		{ConditionRain, 1.5},
		{ConditionRain, math.NaN()},
	}
	for _, tc := range bad {
		if _, err := NewWeather(tc.cond, tc.intensity); !errors.Is(err, ErrInvalidWeather) {
			t.Errorf("NewWeather(%s, %v) error = %v, expected ErrInvalidWeather", tc.cond, tc.intensity, err)
		}
	}
}

func TestWeatherValidate(t *testing.T) {
	rain, err := NewWeather(ConditionRain, 0.5)
	if err != nil {
		t.Fatalf("NewWeather() error: %v", err)
	}
	if err := rain.validate(); err != nil {
		t.Errorf("validate() error = %v, expected nil", err)
	}

	testCases := []struct {
		name   string
		mutate func(*Weather)
	}{
		{"zero handling", func(w *Weather) { w.HandlingModifier = 0 }},
		{"NaN handling", func(w *Weather) { w.HandlingModifier = math.NaN() }},
		{"infinite handling", func(w *Weather) { w.HandlingModifier = math.Inf(1) }},
		{"negative visibility", func(w *Weather) { w.VisibilityModifier = -0.1 }},
		{"visibility above one", func(w *Weather) { w.VisibilityModifier = 1.5 }},
		{"NaN visibility", func(w *Weather) { w.VisibilityModifier = math.NaN() }},
		{"NaN intensity", func(w *Weather) { w.Intensity = math.NaN() }},
	}
	for _, tc := range testCases {
		w := rain
		tc.mutate(&w)
		if err := w.validate(); !errors.Is(err, ErrInvalidWeather) {
			t.Errorf("%s: validate() error = %v, expected ErrInvalidWeather", tc.name, err)
		}
	}
}

func TestSelectWeather(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		w := SelectWeather(rng)
		if _, ok := ParseCondition(string(w.Condition)); !ok {
			t.Fatalf("selected unknown condition %q", w.Condition)
		}
		if w.Intensity < 0.3 || w.Intensity > 1 {
			t.Errorf("intensity %v outside [0.3,1]", w.Intensity)
		}
		if w.HandlingModifier <= 0 || w.HandlingModifier > 1 {
			t.Errorf("handling modifier %v outside (0,1]", w.HandlingModifier)
		}
	}
}
