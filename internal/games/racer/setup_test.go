package racer

import (
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/games/racer/sim"
)

func TestBuildPlanDefaults(t *testing.T) {
	plan, err := BuildPlan(config.DefaultRaceConfig(), Options{}, ModeRace, 42)
	if err != nil {
		t.Fatalf("BuildPlan() error: %v", err)
	}

	cfg := plan.Setup.Config
	if plan.Track.ID != "monza" {
		t.Errorf("Track = %q, expected the configured default monza", plan.Track.ID)
	}
	if math.Abs(cfg.LapLength-5793) > 1e-6 || cfg.LapCount != 3 {
		t.Errorf("race = %v m x %d, expected 5793 m x 3", cfg.LapLength, cfg.LapCount)
	}
	if cfg.Difficulty != sim.DifficultyMedium {
		t.Errorf("Difficulty = %v, expected Monza's Medium", cfg.Difficulty)
	}
	if plan.Setup.PitZone != sim.DefaultPitZone() {
		t.Errorf("PitZone = %+v, expected the default", plan.Setup.PitZone)
	}
	if plan.Setup.Seed != 42 || plan.Driver != "You" {
		t.Errorf("seed %d driver %q", plan.Setup.Seed, plan.Driver)
	}
	if len(plan.Setup.Opponents.Roster) != 4 || len(plan.Setup.Opponents.Rivals) != 0 {
		t.Errorf("opponents = %+v", plan.Setup.Opponents)
	}
	if _, err := sim.New(plan.Setup); err != nil {
		t.Errorf("sim.New() rejected the plan: %v", err)
	}
}

func TestBuildPlanRandomWeatherIsSeeded(t *testing.T) {
	a, _ := BuildPlan(config.DefaultRaceConfig(), Options{}, ModeRace, 99)
	b, _ := BuildPlan(config.DefaultRaceConfig(), Options{}, ModeRace, 99)
	if !reflect.DeepEqual(a.Setup.Config.Weather, b.Setup.Config.Weather) {
		t.Errorf("same seed gave %+v and %+v", a.Setup.Config.Weather, b.Setup.Config.Weather)
	}
	w := a.Setup.Config.Weather
	if w.Intensity < 0.3 || w.Intensity > 1 {
		t.Errorf("random intensity %v outside [0.3, 1]", w.Intensity)
	}
}

func TestBuildPlanOptions(t *testing.T) {
	opts := Options{
		Track:      "Spa",
		Laps:       5,
		Difficulty: config.DifficultyEasy,
		Weather:    "rain",
		Driver:     "senna",
		Opponents:  2,
		Rivals:     []string{"The Baron"},
	}
	plan, err := BuildPlan(config.DefaultRaceConfig(), opts, ModeEndurance, 1)
	if err != nil {
		t.Fatalf("BuildPlan() error: %v", err)
	}

	cfg := plan.Setup.Config
	if plan.Track.ID != "spa" || cfg.LapCount != 10 {
		t.Errorf("track %q laps %d, expected spa over 10 endurance laps", plan.Track.ID, cfg.LapCount)
	}
	if cfg.Difficulty != sim.DifficultyEasy {
		t.Errorf("Difficulty = %v, expected the Easy preset over Spa's Hard", cfg.Difficulty)
	}
	if cfg.Weather.Condition != sim.ConditionRain || cfg.Weather.Intensity != 0.6 {
		t.Errorf("Weather = %+v, expected rain at the configured 0.6", cfg.Weather)
	}
	if plan.Setup.Stats != (sim.PlayerStats{Speed: 98, Handling: 95, Acceleration: 92}) || plan.Driver != "Ayrton Senna" {
		t.Errorf("driver %q stats %+v", plan.Driver, plan.Setup.Stats)
	}
	if plan.Setup.Opponents.Count != 2 || !reflect.DeepEqual(plan.Setup.Opponents.Rivals, []string{"The Baron"}) {
		t.Errorf("opponents = %+v", plan.Setup.Opponents)
	}
	if plan.Setup.Tuning == nil || plan.Setup.Tuning.RivalChance != 0.1 {
		t.Error("expected the Easy preset tuning to be carried")
	}
}

func TestBuildPlanClearWeather(t *testing.T) {
	plan, err := BuildPlan(config.DefaultRaceConfig(), Options{Weather: "clear"}, ModeRace, 3)
	if err != nil {
		t.Fatalf("BuildPlan() error: %v", err)
	}
	if plan.Setup.Config.Weather != sim.ClearWeather() {
		t.Errorf("Weather = %+v, expected clear", plan.Setup.Config.Weather)
	}
}

func TestBuildPlanErrors(t *testing.T) {
	testCases := []struct {
		name string
		opts Options
	}{
		{"unknown track", Options{Track: "atlantis"}},
		{"unknown driver", Options{Driver: "nobody"}},
		{"unknown weather", Options{Weather: "fog"}},
	}
	for _, tc := range testCases {
		if _, err := BuildPlan(config.DefaultRaceConfig(), tc.opts, ModeRace, 1); err == nil {
			t.Errorf("%s: BuildPlan() succeeded, expected an error", tc.name)
		}
	}
}

func TestOptionsAreCopied(t *testing.T) {
	prev := CurrentOptions()
	t.Cleanup(func() { SetOptions(prev) })

	rivals := []string{"Max Power"}
	SetOptions(Options{Rivals: rivals})
	rivals[0] = "changed"
	if got := CurrentOptions().Rivals[0]; got != "Max Power" {
		t.Errorf("Rivals[0] = %q, expected SetOptions to copy", got)
	}
}
