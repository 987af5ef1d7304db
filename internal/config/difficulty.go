package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-racer/internal/games/racer/sim"
)

// DifficultyPreset is a named difficulty chosen on the command line.
type DifficultyPreset string

const (
	DifficultyTrack   DifficultyPreset = "track" // use the track's own tier
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyMedium  DifficultyPreset = "medium"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyExtreme DifficultyPreset = "extreme"
)

// Presets lists the accepted presets in menu order.
var Presets = []DifficultyPreset{DifficultyTrack, DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExtreme}

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DifficultyTrack, nil
	}
	if p == "normal" {
		return DifficultyMedium, nil
	}
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q", s)
}

// presetScaling adjusts how punishing resources and rivals are per preset.
type presetScaling struct {
	resourceRate float64
	rivalChance  float64
	jitter       float64
}

var presetScales = map[DifficultyPreset]presetScaling{
	DifficultyEasy:    {resourceRate: 0.7, rivalChance: 0.1, jitter: 24},
	DifficultyMedium:  {resourceRate: 1.0, rivalChance: 0.3, jitter: 20},
	DifficultyHard:    {resourceRate: 1.15, rivalChance: 0.4, jitter: 16},
	DifficultyExtreme: {resourceRate: 1.3, rivalChance: 0.5, jitter: 12},
}

// ApplyDifficultyPreset sets the race tier and scales resource drain, rival
// frequency and AI consistency. DifficultyTrack leaves the config untouched.
func ApplyDifficultyPreset(cfg *RaceFileConfig, preset DifficultyPreset) {
	scale, ok := presetScales[preset]
	if !ok {
		return
	}
	tier, _ := sim.ParseDifficulty(string(preset))
	cfg.Race.Difficulty = string(tier)

	base := cfg.SimTuning()
	cfg.Tuning.Resources.FuelRate = base.FuelRate * scale.resourceRate
	cfg.Tuning.Resources.TireRate = base.TireRate * scale.resourceRate
	cfg.Tuning.AI.RivalChance = scale.rivalChance
	cfg.Tuning.AI.Jitter = scale.jitter
}

// RaceDifficulty resolves the tier for a race on the given track.
func (c RaceFileConfig) RaceDifficulty(t TrackConfig) sim.Difficulty {
	if d, ok := sim.ParseDifficulty(c.Race.Difficulty); ok {
		return d
	}
	return t.Tier()
}
