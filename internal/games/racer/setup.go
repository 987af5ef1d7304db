package racer

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/games/racer/sim"
)

// Mode is the kind of race.
type Mode string

const (
	ModeRace      Mode = "race"
	ModeEndurance Mode = "endurance"
)

// Options are the race choices made on the command line or in the menu.
// Zero values fall back to the race configuration.
type Options struct {
	ConfigPath string
	Track      string
	Laps       int
	Difficulty config.DifficultyPreset
	Weather    string // "random", a condition, or empty for the config default
	Driver     string // legend ID whose ratings the player borrows
	Opponents  int
	Rivals     []string
}

// Package-level options, shared by every game the registry creates.
var (
	optionsMu sync.RWMutex
	options   Options
)

// SetOptions replaces the options used by the next Reset.
func SetOptions(o Options) {
	optionsMu.Lock()
	defer optionsMu.Unlock()
	o.Rivals = append([]string(nil), o.Rivals...)
	options = o
}

// CurrentOptions returns a copy of the active options.
func CurrentOptions() Options {
	optionsMu.RLock()
	defer optionsMu.RUnlock()
	o := options
	o.Rivals = append([]string(nil), options.Rivals...)
	return o
}

// Plan is a race ready to be started.
type Plan struct {
	Setup  sim.Setup
	Track  config.TrackConfig
	Mode   Mode
	Driver string // display name of the player
}

// BuildPlan resolves options against the configuration into a simulation setup.
func BuildPlan(cfg config.RaceFileConfig, opts Options, mode Mode, seed int64) (Plan, error) {
	config.ApplyDifficultyPreset(&cfg, opts.Difficulty)

	track := cfg.DefaultTrack()
	if opts.Track != "" {
		t, ok := cfg.Track(opts.Track)
		if !ok {
			return Plan{}, fmt.Errorf("racer: unknown track %q", opts.Track)
		}
		track = t
	}
	if track.ID == "" {
		return Plan{}, fmt.Errorf("racer: no track configured")
	}

	laps := cfg.Race.Laps
	if opts.Laps > 0 {
		laps = opts.Laps
	}
	if mode == ModeEndurance {
		factor := cfg.Race.EnduranceFactor
		if factor < 2 {
			factor = 2
		}
		laps *= factor
	}

	stats := cfg.Player.Stats()
	driver := "You"
	if opts.Driver != "" {
		legend, ok := cfg.Legend(opts.Driver)
		if !ok {
			return Plan{}, fmt.Errorf("racer: unknown driver %q", opts.Driver)
		}
		stats = legend.Stats.Stats()
		driver = legend.Name
	}

	weatherName := cfg.Race.Weather
	if opts.Weather != "" {
		weatherName = opts.Weather
	}
	weather, err := pickWeather(weatherName, cfg.Race.WeatherIntensity, rand.New(rand.NewSource(seed)))
	if err != nil {
		return Plan{}, err
	}

	count := cfg.Race.Opponents
	if opts.Opponents > 0 {
		count = opts.Opponents
	}
	rivals := cfg.Rivals
	if len(opts.Rivals) > 0 {
		rivals = opts.Rivals
	}

	tuning := cfg.SimTuning()
	return Plan{
		Setup: sim.Setup{
			Config: sim.RaceConfig{
				LapLength:  track.LapLength(),
				LapCount:   laps,
				Difficulty: cfg.RaceDifficulty(track),
				Weather:    weather,
			},
			Stats: stats,
			Opponents: sim.OpponentRequest{
				Count:  count,
				Roster: cfg.Roster(),
				Rivals: append([]string(nil), rivals...),
			},
			PitZone:  cfg.PitZoneFor(track),
			Tuning:   &tuning,
			Seed:     seed,
			PlayerID: sim.PlayerID,
		},
		Track:  track,
		Mode:   mode,
		Driver: driver,
	}, nil
}

// pickWeather resolves a weather name. Empty and "random" draw from rng.
func pickWeather(name string, intensity float64, rng *rand.Rand) (sim.Weather, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == config.WeatherRandom {
		return sim.SelectWeather(rng), nil
	}
	cond, ok := sim.ParseCondition(name)
	if !ok {
		return sim.Weather{}, fmt.Errorf("racer: unknown weather %q", name)
	}
	if cond == sim.ConditionClear {
		return sim.ClearWeather(), nil
	}
	if intensity <= 0 {
		intensity = 1
	}
	w, err := sim.NewWeather(cond, intensity)
	if err != nil {
		return sim.Weather{}, fmt.Errorf("racer: %w", err)
	}
	return w, nil
}
