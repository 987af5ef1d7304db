// Package config loads the YAML race configuration: simulation tuning, race
// defaults, tracks, the opponent roster and driver presets.
package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-racer/internal/games/racer/sim"
)

// RaceFileConfig is the whole race.yaml document.
type RaceFileConfig struct {
	Tuning    TuningConfig     `yaml:"tuning"`
	Race      RaceDefaults     `yaml:"race"`
	PitZone   PitZoneConfig    `yaml:"pit_zone"`
	Player    StatsConfig      `yaml:"player"`
	Opponents []OpponentConfig `yaml:"opponents"`
	Rivals    []string         `yaml:"rivals"`
	Tracks    []TrackConfig    `yaml:"tracks"`
	Legends   []LegendConfig   `yaml:"legends"`
}

// RaceDefaults are used when the command line does not say otherwise.
type RaceDefaults struct {
	Track            string  `yaml:"track"`
	Laps             int     `yaml:"laps"`
	EnduranceFactor  int     `yaml:"endurance_factor"` // endurance mode runs Laps × factor
	Opponents        int     `yaml:"opponents"`        // 0 = whole roster
	Difficulty       string  `yaml:"difficulty"`       // empty = the track's own tier
	Weather          string  `yaml:"weather"`          // "random" or a condition
	WeatherIntensity float64 `yaml:"weather_intensity"`
}

// PitZoneConfig is a lap-progress window.
type PitZoneConfig struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// Zone converts to the simulation type.
func (p PitZoneConfig) Zone() sim.PitZone {
	return sim.PitZone{Start: p.Start, End: p.End}
}

// StatsConfig are 0..100 driver ratings.
type StatsConfig struct {
	Speed        float64 `yaml:"speed"`
	Handling     float64 `yaml:"handling"`
	Acceleration float64 `yaml:"acceleration"`
}

// Stats converts to the simulation type.
func (s StatsConfig) Stats() sim.PlayerStats {
	return sim.PlayerStats{Speed: s.Speed, Handling: s.Handling, Acceleration: s.Acceleration}
}

// OpponentConfig is one roster entry.
type OpponentConfig struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	Tier       string  `yaml:"tier"`
	Skill      float64 `yaml:"skill"`
	Aggression float64 `yaml:"aggression"`
	Lane       float64 `yaml:"lane"`
}

// TrackConfig is one circuit.
type TrackConfig struct {
	ID         string         `yaml:"id"`
	Name       string         `yaml:"name"`
	Country    string         `yaml:"country"`
	LengthKm   float64        `yaml:"length_km"`
	Difficulty string         `yaml:"difficulty"`
	PitZone    *PitZoneConfig `yaml:"pit_zone,omitempty"`
}

// LapLength returns the lap length in metres.
func (t TrackConfig) LapLength() float64 {
	return t.LengthKm * 1000
}

// Tier returns the track's difficulty tier, Medium when unknown.
func (t TrackConfig) Tier() sim.Difficulty {
	if d, ok := sim.ParseDifficulty(t.Difficulty); ok {
		return d
	}
	return sim.DifficultyMedium
}

// LegendConfig is a driver whose ratings the player can borrow.
type LegendConfig struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Nationality string      `yaml:"nationality"`
	Stats       StatsConfig `yaml:"stats"`
}

// Track looks a circuit up by ID, case-insensitively.
func (c RaceFileConfig) Track(id string) (TrackConfig, bool) {
	for _, t := range c.Tracks {
		if strings.EqualFold(t.ID, id) {
			return t, true
		}
	}
	return TrackConfig{}, false
}

// DefaultTrack returns the configured default track, or the first one.
func (c RaceFileConfig) DefaultTrack() TrackConfig {
	if t, ok := c.Track(c.Race.Track); ok {
		return t
	}
	if len(c.Tracks) > 0 {
		return c.Tracks[0]
	}
	return TrackConfig{}
}

// Legend looks a driver preset up by ID, case-insensitively.
func (c RaceFileConfig) Legend(id string) (LegendConfig, bool) {
	for _, l := range c.Legends {
		if strings.EqualFold(l.ID, id) {
			return l, true
		}
	}
	return LegendConfig{}, false
}

// Roster converts the opponent list into simulation profiles.
func (c RaceFileConfig) Roster() []sim.OpponentProfile {
	out := make([]sim.OpponentProfile, len(c.Opponents))
	for i, o := range c.Opponents {
		out[i] = sim.OpponentProfile{
			ID:         o.ID,
			Name:       o.Name,
			Tier:       sim.SkillTier(o.Tier),
			Skill:      o.Skill,
			Aggression: o.Aggression,
			StartLane:  o.Lane,
		}
	}
	return out
}

// PitZoneFor returns the track's own pit zone or the global one.
func (c RaceFileConfig) PitZoneFor(t TrackConfig) sim.PitZone {
	if t.PitZone != nil {
		return t.PitZone.Zone()
	}
	return c.PitZone.Zone()
}

// Validate rejects configurations no race can be built from.
func (c RaceFileConfig) Validate() error {
	if len(c.Tracks) == 0 {
		return fmt.Errorf("config: no tracks defined")
	}
	seen := make(map[string]bool, len(c.Tracks))
	for _, t := range c.Tracks {
		if t.ID == "" {
			return fmt.Errorf("config: track %q has no id", t.Name)
		}
		if seen[strings.ToLower(t.ID)] {
			return fmt.Errorf("config: duplicate track %q", t.ID)
		}
		seen[strings.ToLower(t.ID)] = true
		if !(t.LengthKm > 0) {
			return fmt.Errorf("config: track %q has non-positive length %v", t.ID, t.LengthKm)
		}
	}
	if len(c.Opponents) == 0 {
		return fmt.Errorf("config: opponent roster is empty")
	}
	for _, o := range c.Opponents {
		if o.Skill <= 0 {
			return fmt.Errorf("config: opponent %q has non-positive skill", o.Name)
		}
	}
	if c.Race.Laps < 1 {
		return fmt.Errorf("config: race.laps must be at least 1, got %d", c.Race.Laps)
	}
	if c.Race.Opponents < 0 || c.Race.Opponents > len(c.Opponents) {
		return fmt.Errorf("config: race.opponents %d outside 0..%d", c.Race.Opponents, len(c.Opponents))
	}
	if c.Race.Difficulty != "" {
		if _, ok := sim.ParseDifficulty(c.Race.Difficulty); !ok {
			return fmt.Errorf("config: unknown difficulty %q", c.Race.Difficulty)
		}
	}
	if w := c.Race.Weather; w != "" && w != WeatherRandom {
		if _, ok := sim.ParseCondition(w); !ok {
			return fmt.Errorf("config: unknown weather %q", w)
		}
	}
	if z := c.PitZone; z.Start < 0 || z.End > 1 || z.Start >= z.End {
		return fmt.Errorf("config: pit_zone [%v, %v) is not a window inside a lap", z.Start, z.End)
	}
	if err := c.SimTuning().Validate(); err != nil {
		return fmt.Errorf("config: tuning: %w", err)
	}
	return nil
}

// WeatherRandom selects a condition from the race seed.
const WeatherRandom = "random"

// TuningConfig overrides simulation constants. Zero values keep the built-in default.
type TuningConfig struct {
	Physics   PhysicsTuning   `yaml:"physics"`
	Collision CollisionTuning `yaml:"collision"`
	AI        AITuning        `yaml:"ai"`
	Resources ResourceTuning  `yaml:"resources"`
	Pit       PitTuning       `yaml:"pit"`
	Strategy  StrategyTuning  `yaml:"strategy"`
}

// PhysicsTuning covers player control.
type PhysicsTuning struct {
	Drag             float64 `yaml:"drag"`
	BrakeDecel       float64 `yaml:"brake_decel"`
	CollisionAccel   float64 `yaml:"collision_accel"`
	CollisionTravel  float64 `yaml:"collision_travel"`
	CollisionPush    float64 `yaml:"collision_push"`
	HandlingRecovery float64 `yaml:"handling_recovery"`
}

// CollisionTuning covers detection gates and impact effects.
type CollisionTuning struct {
	DistanceThreshold    float64 `yaml:"distance_threshold"`
	WidthThreshold       float64 `yaml:"width_threshold"`
	PlayerCooldown       float64 `yaml:"player_cooldown"`
	OpponentCooldown     float64 `yaml:"opponent_cooldown"`
	PenaltyPerSeverity   float64 `yaml:"penalty_per_severity"`
	SpeedLossPerSeverity float64 `yaml:"speed_loss_per_severity"`
	OpponentPush         float64 `yaml:"opponent_push"`
}

// AITuning covers opponent behaviour.
type AITuning struct {
	GridSpacing  float64 `yaml:"grid_spacing"`
	MinSpeed     float64 `yaml:"min_speed"`
	Jitter       float64 `yaml:"jitter"`
	Collision    float64 `yaml:"collision_penalty"`
	WeaveBlend   float64 `yaml:"weave_blend"`
	RivalChance  float64 `yaml:"rival_chance"`
	RivalBoost   float64 `yaml:"rival_skill_boost"`
	RivalCap     float64 `yaml:"rival_skill_cap"`
	RivalAggrAdd float64 `yaml:"rival_aggression_boost"`
}

// ResourceTuning covers fuel and tires.
type ResourceTuning struct {
	FuelRate         float64 `yaml:"fuel_rate"`
	TireRate         float64 `yaml:"tire_rate"`
	FuelPenaltyBelow float64 `yaml:"fuel_penalty_below"`
	FuelPenaltyFloor float64 `yaml:"fuel_penalty_floor"`
	TirePenaltyBelow float64 `yaml:"tire_penalty_below"`
	TirePenaltyFloor float64 `yaml:"tire_penalty_floor"`
}

// PitTuning covers the pit stop.
type PitTuning struct {
	SpeedGate float64 `yaml:"speed_gate"`
	Duration  float64 `yaml:"duration"`
}

// StrategyTuning covers the advisor.
type StrategyTuning struct {
	Interval       float64 `yaml:"interval"`
	CriticalFuel   float64 `yaml:"critical_fuel"`
	CriticalTires  float64 `yaml:"critical_tires"`
	LowFuel        float64 `yaml:"low_fuel"`
	LowTires       float64 `yaml:"low_tires"`
	ApproachMargin float64 `yaml:"approach_margin"`
}

// Apply overlays the non-zero values onto base.
func (t TuningConfig) Apply(base sim.Tuning) sim.Tuning {
	set := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}

	set(&base.Drag, t.Physics.Drag)
	set(&base.BrakeDecel, t.Physics.BrakeDecel)
	set(&base.CollisionAccel, t.Physics.CollisionAccel)
	set(&base.CollisionTravel, t.Physics.CollisionTravel)
	set(&base.CollisionPush, t.Physics.CollisionPush)
	set(&base.HandlingRecovery, t.Physics.HandlingRecovery)

	set(&base.DistanceThreshold, t.Collision.DistanceThreshold)
	set(&base.WidthThreshold, t.Collision.WidthThreshold)
	set(&base.PlayerCooldown, t.Collision.PlayerCooldown)
	set(&base.OpponentCooldown, t.Collision.OpponentCooldown)
	set(&base.PenaltyPerSeverity, t.Collision.PenaltyPerSeverity)
	set(&base.SpeedLossPerSeverity, t.Collision.SpeedLossPerSeverity)
	set(&base.OpponentPush, t.Collision.OpponentPush)

	set(&base.GridSpacing, t.AI.GridSpacing)
	set(&base.OpponentMinSpeed, t.AI.MinSpeed)
	set(&base.OpponentJitter, t.AI.Jitter)
	set(&base.OpponentCollision, t.AI.Collision)
	set(&base.WeaveBlend, t.AI.WeaveBlend)
	set(&base.RivalChance, t.AI.RivalChance)
	set(&base.RivalSkillBoost, t.AI.RivalBoost)
	set(&base.RivalSkillCap, t.AI.RivalCap)
	set(&base.RivalAggressionBoost, t.AI.RivalAggrAdd)

	set(&base.FuelRate, t.Resources.FuelRate)
	set(&base.TireRate, t.Resources.TireRate)
	set(&base.FuelPenaltyBelow, t.Resources.FuelPenaltyBelow)
	set(&base.FuelPenaltyFloor, t.Resources.FuelPenaltyFloor)
	set(&base.TirePenaltyBelow, t.Resources.TirePenaltyBelow)
	set(&base.TirePenaltyFloor, t.Resources.TirePenaltyFloor)

	set(&base.PitSpeedGate, t.Pit.SpeedGate)
	set(&base.PitDuration, t.Pit.Duration)

	set(&base.AdvisorInterval, t.Strategy.Interval)
	set(&base.CriticalFuel, t.Strategy.CriticalFuel)
	set(&base.CriticalTires, t.Strategy.CriticalTires)
	set(&base.LowFuel, t.Strategy.LowFuel)
	set(&base.LowTires, t.Strategy.LowTires)
	set(&base.ApproachMargin, t.Strategy.ApproachMargin)

	return base
}

// SimTuning returns the effective simulation tuning.
func (c RaceFileConfig) SimTuning() sim.Tuning {
	return c.Tuning.Apply(sim.DefaultTuning())
}
