// Package sim implements the race simulation engine: vehicle integration,
// collisions, fuel and tire depletion, pit stops, lap and position tracking,
// weather and the strategy advisor.
//
// The package is pure. It never reads the clock, renders, logs or persists.
// A host advances a Simulation with Tick and reads back an immutable RaceFrame.
package sim

// Difficulty is the race difficulty tier. It scales opponent skill.
type Difficulty string

const (
	DifficultyEasy    Difficulty = "Easy"
	DifficultyMedium  Difficulty = "Medium"
	DifficultyHard    Difficulty = "Hard"
	DifficultyExtreme Difficulty = "Extreme"
)

// SkillMultiplier returns the opponent skill multiplier for the tier.
// Unknown tiers count as Hard (1.0).
func (d Difficulty) SkillMultiplier() float64 {
	switch d {
	case DifficultyEasy:
		return 0.8
	case DifficultyMedium:
		return 0.9
	case DifficultyHard:
		return 1.0
	case DifficultyExtreme:
		return 1.1
	default:
		return 1.0
	}
}

// ParseDifficulty converts a case-insensitive name into a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch s {
	case "easy", "Easy":
		return DifficultyEasy, true
	case "medium", "Medium", "normal":
		return DifficultyMedium, true
	case "hard", "Hard":
		return DifficultyHard, true
	case "extreme", "Extreme":
		return DifficultyExtreme, true
	}
	return "", false
}

// RaceConfig is fixed for the duration of a race.
type RaceConfig struct {
	LapLength  float64 // metres
	LapCount   int
	Difficulty Difficulty
	Weather    Weather
}

// TotalDistance is the race distance in metres.
func (c RaceConfig) TotalDistance() float64 {
	return c.LapLength * float64(c.LapCount)
}

// VehicleState is the per-vehicle physical state.
type VehicleState struct {
	ID                string
	Distance          float64 // metres travelled, never decreases
	Lateral           float64 // percent of track width
	Speed             float64
	HandlingPenalty   float64 // [0,1]
	Colliding         bool
	CollisionCooldown float64 // seconds
	Finished          bool
}

// ResourceState holds the player's consumables. 100 means full tank / new tires.
type ResourceState struct {
	Fuel     float64
	TireWear float64
}

// Direction classifies where an impact came from, relative to the player.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
	DirectionFront
	DirectionRear
)

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionFront:
		return "front"
	case DirectionRear:
		return "rear"
	default:
		return "none"
	}
}

// CollisionEvent describes the collision reported for one tick.
type CollisionEvent struct {
	OpponentID string
	Severity   float64 // [0,1)
	Direction  Direction
}

// LapRecord is the time taken for one completed lap.
type LapRecord struct {
	Lap  int
	Time float64 // seconds
}

// Standing is one row of the position ranking.
type Standing struct {
	ID       string
	Position int
	Distance float64
	Player   bool
}
