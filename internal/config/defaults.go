package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-racer/internal/games/racer/sim"
)

//go:embed defaults/race.yaml
var defaultRaceYAML []byte

// DefaultRaceConfig returns the built-in configuration used when no YAML can be read.
func DefaultRaceConfig() RaceFileConfig {
	roster := sim.DefaultRoster()
	opponents := make([]OpponentConfig, len(roster))
	for i, p := range roster {
		opponents[i] = OpponentConfig{
			ID:         p.ID,
			Name:       p.Name,
			Tier:       string(p.Tier),
			Skill:      p.Skill,
			Aggression: p.Aggression,
			Lane:       p.StartLane,
		}
	}
	zone := sim.DefaultPitZone()

	return RaceFileConfig{
		Race: RaceDefaults{
			Track:            "monza",
			Laps:             3,
			EnduranceFactor:  2,
			Weather:          WeatherRandom,
			WeatherIntensity: 0.6,
		},
		PitZone:   PitZoneConfig{Start: zone.Start, End: zone.End},
		Player:    StatsConfig{Speed: 50, Handling: 50, Acceleration: 50},
		Opponents: opponents,
		Tracks: []TrackConfig{
			{ID: "monaco", Name: "Monaco Grand Prix", Country: "Monaco", LengthKm: 3.337, Difficulty: "Extreme"},
			{ID: "monza", Name: "Monza Circuit", Country: "Italy", LengthKm: 5.793, Difficulty: "Medium"},
			{ID: "silverstone", Name: "Silverstone", Country: "UK", LengthKm: 5.891, Difficulty: "Medium"},
			{ID: "spa", Name: "Spa-Francorchamps", Country: "Belgium", LengthKm: 7.004, Difficulty: "Hard"},
		},
		Legends: []LegendConfig{
			{ID: "senna", Name: "Ayrton Senna", Nationality: "Brazil", Stats: StatsConfig{98, 95, 92}},
			{ID: "prost", Name: "Alain Prost", Nationality: "France", Stats: StatsConfig{94, 97, 90}},
		},
	}
}
