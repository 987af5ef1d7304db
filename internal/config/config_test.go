package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-racer/internal/games/racer/sim"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadRaceEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadRace("")
	if err != nil {
		t.Fatalf("LoadRace() error: %v", err)
	}
	if len(cfg.Tracks) != 8 {
		t.Errorf("got %d tracks, expected the 8 of the world tour", len(cfg.Tracks))
	}
	if len(cfg.Legends) != 4 {
		t.Errorf("got %d legends, expected 4", len(cfg.Legends))
	}
	if len(cfg.Opponents) != 4 {
		t.Errorf("got %d opponents, expected 4", len(cfg.Opponents))
	}

	monaco, ok := cfg.Track("Monaco")
	if !ok {
		t.Fatal("Track(Monaco) not found")
	}
	if monaco.LapLength() != 3337 {
		t.Errorf("Monaco LapLength() = %v, expected 3337", monaco.LapLength())
	}
	if z := cfg.PitZoneFor(monaco); z.Start != 0.88 {
		t.Errorf("Monaco pit zone = %+v, expected its own start 0.88", z)
	}
	monza, _ := cfg.Track("monza")
	if z := cfg.PitZoneFor(monza); z != sim.DefaultPitZone() {
		t.Errorf("Monza pit zone = %+v, expected the global zone", z)
	}
}

func TestLoadRaceCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "race.yaml")
	writeFile(t, path, "race:\n  laps: 5\n  weather: rain\n")

	cfg, err := LoadRace(path)
	if err != nil {
		t.Fatalf("LoadRace() error: %v", err)
	}
	if cfg.Race.Laps != 5 || cfg.Race.Weather != "rain" {
		t.Errorf("race = %+v, expected laps 5 in the rain", cfg.Race)
	}
	if len(cfg.Tracks) != len(DefaultRaceConfig().Tracks) {
		t.Errorf("tracks not inherited from defaults: got %d", len(cfg.Tracks))
	}
}

func TestLoadRaceCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadRace(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadRace() on a missing file should fail")
	}

	broken := filepath.Join(dir, "broken.yaml")
	writeFile(t, broken, "race: [unclosed")
	if _, err := LoadRace(broken); err == nil {
		t.Error("LoadRace() on invalid YAML should fail")
	}

	badTuning := filepath.Join(dir, "tuning.yaml")
	writeFile(t, badTuning, "tuning:\n  physics:\n    collision_travel: -2\n  resources:\n    fuel_rate: -1\n")
	if _, err := LoadRace(badTuning); !errors.Is(err, sim.ErrInvalidTuning) {
		t.Errorf("LoadRace() error = %v, expected ErrInvalidTuning", err)
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "race:\n  laps: 0\n")
	if _, err := LoadRace(invalid); err == nil || !strings.Contains(err.Error(), "laps") {
		t.Errorf("LoadRace() error = %v, expected a laps validation error", err)
	}
}

func TestLoadRaceUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, filepath.Join(home, ".racer", "configs", "race.yaml"), "race:\n  laps: 7\n")

	cfg, err := LoadRace("")
	if err != nil {
		t.Fatalf("LoadRace() error: %v", err)
	}
	if cfg.Race.Laps != 7 {
		t.Errorf("Laps = %d, expected 7 from the user config", cfg.Race.Laps)
	}
}

func TestLoadRaceSkipsInvalidUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, filepath.Join(home, ".racer", "configs", "race.yaml"), "tracks: []\n")

	cfg, err := LoadRace("")
	if err != nil {
		t.Fatalf("LoadRace() error: %v", err)
	}
	if len(cfg.Tracks) != 8 {
		t.Errorf("got %d tracks, expected the embedded file after skipping the user one", len(cfg.Tracks))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RaceFileConfig)
		ok     bool
	}{
		{"defaults", func(*RaceFileConfig) {}, true},
		{"no tracks", func(c *RaceFileConfig) { c.Tracks = nil }, false},
		{"zero length", func(c *RaceFileConfig) { c.Tracks[0].LengthKm = 0 }, false},
		{"NaN length", func(c *RaceFileConfig) { c.Tracks[0].LengthKm = math.NaN() }, false},
		{"duplicate track", func(c *RaceFileConfig) { c.Tracks[1].ID = strings.ToUpper(c.Tracks[0].ID) }, false},
		{"empty roster", func(c *RaceFileConfig) { c.Opponents = nil }, false},
		{"zero laps", func(c *RaceFileConfig) { c.Race.Laps = 0 }, false},
		{"too many opponents", func(c *RaceFileConfig) { c.Race.Opponents = 9 }, false},
		{"unknown difficulty", func(c *RaceFileConfig) { c.Race.Difficulty = "insane" }, false},
		{"unknown weather", func(c *RaceFileConfig) { c.Race.Weather = "fog" }, false},
		{"fixed weather", func(c *RaceFileConfig) { c.Race.Weather = "storm" }, true},
		{"inverted pit zone", func(c *RaceFileConfig) { c.PitZone = PitZoneConfig{Start: 0.9, End: 0.2} }, false},
		{"negative collision travel", func(c *RaceFileConfig) { c.Tuning.Physics.CollisionTravel = -2 }, false},
		{"negative fuel rate", func(c *RaceFileConfig) { c.Tuning.Resources.FuelRate = -1 }, false},
		{"collision accel above one", func(c *RaceFileConfig) { c.Tuning.Physics.CollisionAccel = 1.5 }, false},
		{"zero weave blend keeps default", func(c *RaceFileConfig) { c.Tuning.AI.WeaveBlend = 0 }, true},
		{"weave blend above one", func(c *RaceFileConfig) { c.Tuning.AI.WeaveBlend = 2 }, false},
	}

	for _, tt := range tests {
		cfg := DefaultRaceConfig()
		tt.mutate(&cfg)
		err := cfg.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("%s: Validate() = %v, expected ok=%v", tt.name, err, tt.ok)
		}
	}
}

func TestTuningApply(t *testing.T) {
	var tc TuningConfig
	got := tc.Apply(sim.DefaultTuning())
	if got != sim.DefaultTuning() {
		t.Error("empty TuningConfig changed the defaults")
	}

	tc.Pit.Duration = 5
	tc.Collision.WidthThreshold = 10
	got = tc.Apply(sim.DefaultTuning())
	if got.PitDuration != 5 || got.WidthThreshold != 10 {
		t.Errorf("Apply() = duration %v width %v, expected 5 and 10", got.PitDuration, got.WidthThreshold)
	}
	if got.Drag != sim.DefaultTuning().Drag {
		t.Error("Apply() touched an unset value")
	}
}

func TestApplyDifficultyPreset(t *testing.T) {
	cfg := DefaultRaceConfig()
	ApplyDifficultyPreset(&cfg, DifficultyEasy)

	if cfg.Race.Difficulty != string(sim.DifficultyEasy) {
		t.Errorf("Difficulty = %q, expected Easy", cfg.Race.Difficulty)
	}
	tun := cfg.SimTuning()
	if math.Abs(tun.FuelRate-1.05) > 1e-9 {
		t.Errorf("FuelRate = %v, expected 1.05", tun.FuelRate)
	}
	if tun.RivalChance != 0.1 {
		t.Errorf("RivalChance = %v, expected 0.1", tun.RivalChance)
	}

	untouched := DefaultRaceConfig()
	ApplyDifficultyPreset(&untouched, DifficultyTrack)
	if untouched.Race.Difficulty != "" || untouched.SimTuning() != sim.DefaultTuning() {
		t.Error("DifficultyTrack modified the config")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
		ok       bool
	}{
		{"", DifficultyTrack, true},
		{"Easy", DifficultyEasy, true},
		{"normal", DifficultyMedium, true},
		{" extreme ", DifficultyExtreme, true},
		{"track", DifficultyTrack, true},
		{"nightmare", "", false},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err == nil) != tt.ok || got != tt.expected {
			t.Errorf("ParsePreset(%q) = %q, %v, expected %q ok=%v", tt.in, got, err, tt.expected, tt.ok)
		}
	}
}

func TestRaceDifficulty(t *testing.T) {
	cfg := DefaultRaceConfig()
	monaco, _ := cfg.Track("monaco")
	if got := cfg.RaceDifficulty(monaco); got != sim.DifficultyExtreme {
		t.Errorf("RaceDifficulty(monaco) = %v, expected the track tier Extreme", got)
	}
	cfg.Race.Difficulty = "easy"
	if got := cfg.RaceDifficulty(monaco); got != sim.DifficultyEasy {
		t.Errorf("RaceDifficulty(monaco) = %v, expected the override Easy", got)
	}
}

func TestRosterAndLegends(t *testing.T) {
	cfg := DefaultRaceConfig()
	roster := cfg.Roster()
	if len(roster) != 4 || roster[0].Name != "Speed Demon" || roster[0].StartLane != 30 {
		t.Errorf("Roster() = %+v", roster)
	}

	senna, ok := cfg.Legend("SENNA")
	if !ok || senna.Stats.Stats() != (sim.PlayerStats{Speed: 98, Handling: 95, Acceleration: 92}) {
		t.Errorf("Legend(SENNA) = %+v, %v", senna, ok)
	}
	if _, ok := cfg.Legend("nobody"); ok {
		t.Error("Legend() found an unknown driver")
	}

	cfg.Race.Track = "nowhere"
	if cfg.DefaultTrack().ID != cfg.Tracks[0].ID {
		t.Error("DefaultTrack() should fall back to the first track")
	}
}
