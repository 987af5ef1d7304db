package sim

import (
	"errors"
	"math"
	"testing"
)

func TestTuningValidate(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("DefaultTuning().Validate() error = %v, expected nil", err)
	}

	testCases := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"negative collision travel", func(t *Tuning) { t.CollisionTravel = -2 }},
		{"collision accel above one", func(t *Tuning) { t.CollisionAccel = 1.2 }},
		{"negative fuel rate", func(t *Tuning) { t.FuelRate = -1 }},
		{"zero tire rate", func(t *Tuning) { t.TireRate = 0 }},
		{"zero pit duration", func(t *Tuning) { t.PitDuration = 0 }},
		{"NaN first tick", func(t *Tuning) { t.FirstTickDelta = math.NaN() }},
		{"infinite max tick", func(t *Tuning) { t.MaxTickDelta = math.Inf(1) }},
		{"first tick above max", func(t *Tuning) { t.FirstTickDelta = 0.5 }},
		{"zero weave blend", func(t *Tuning) { t.WeaveBlend = 0 }},
		{"weave blend above one", func(t *Tuning) { t.WeaveBlend = 1.5 }},
		{"negative drag", func(t *Tuning) { t.Drag = -0.1 }},
		{"inverted player bounds", func(t *Tuning) { t.PlayerLateralMin, t.PlayerLateralMax = 90, 10 }},
		{"start outside bounds", func(t *Tuning) { t.PlayerStartLateral = 95 }},
		{"opponent bounds off road", func(t *Tuning) { t.OpponentLateralMax = 120 }},
	}
	for _, tc := range testCases {
		tun := DefaultTuning()
		tc.mutate(&tun)
		if err := tun.Validate(); !errors.Is(err, ErrInvalidTuning) {
			t.Errorf("%s: Validate() error = %v, expected ErrInvalidTuning", tc.name, err)
		}
	}
}
