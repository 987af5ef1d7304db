package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// raceFile is the configuration file name in every search location.
const raceFile = "race.yaml"

// LoadRace loads the race configuration.
// Search order: customPath -> ~/.racer/configs/race.yaml -> ./configs/race.yaml -> embedded default.
// A custom path that cannot be read, parsed or validated is an error; the
// other locations are skipped silently when unusable.
func LoadRace(customPath string) (RaceFileConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RaceFileConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseRace(data)
		if err != nil {
			return RaceFileConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(raceFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseRace(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", raceFile)); err == nil {
		if cfg, err := parseRace(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parseRace(defaultRaceYAML); err == nil {
		return cfg, nil
	}
	return DefaultRaceConfig(), nil
}

// parseRace decodes a YAML document on top of the built-in defaults, so a
// file only needs the keys it changes, and validates the result.
func parseRace(data []byte) (RaceFileConfig, error) {
	cfg := DefaultRaceConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RaceFileConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RaceFileConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".racer", "configs", filename)
}
