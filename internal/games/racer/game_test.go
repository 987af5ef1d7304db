package racer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/games/racer/sim"
	"github.com/vovakirdan/tui-racer/internal/registry"
)

const frameDelta = 1.0 / 60.0

func startedGame(t *testing.T, opts Options) *Game {
	t.Helper()
	plan, err := BuildPlan(config.DefaultRaceConfig(), opts, ModeRace, 42)
	if err != nil {
		t.Fatalf("BuildPlan() error: %v", err)
	}
	g := New()
	if err := g.Start(plan); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	return g
}

func held(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{"race", "endurance"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) error: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestIntentsFrom(t *testing.T) {
	got := IntentsFrom(held(core.ActionAccelerate, core.ActionSteerLeft, core.ActionPit, core.ActionPause))
	expected := sim.Intents{Accelerate: true, SteerLeft: true, RequestPit: true}
	if got != expected {
		t.Errorf("IntentsFrom() = %+v, expected %+v", got, expected)
	}
}

func TestStepAccelerates(t *testing.T) {
	g := startedGame(t, Options{Track: "monaco", Weather: "clear"})
	if g.State().Position != 5 || g.State().Lap != 1 {
		t.Errorf("initial state = %+v, expected P5 on lap 1", g.State())
	}

	for i := 0; i < 30; i++ {
		g.Step(frameDelta, held(core.ActionAccelerate))
	}
	if g.Frame().Player.Speed <= 0 {
		t.Errorf("Speed = %v after 30 ticks of throttle", g.Frame().Player.Speed)
	}
	if g.Frame().Tick != 30 {
		t.Errorf("Tick = %d, expected 30", g.Frame().Tick)
	}
}

func TestPauseFreezesRace(t *testing.T) {
	g := startedGame(t, Options{Track: "monaco", Weather: "clear"})
	g.Step(frameDelta, held(core.ActionAccelerate))

	res := g.Step(frameDelta, held(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected the race to pause")
	}
	clock := g.Frame().Clock
	for i := 0; i < 10; i++ {
		g.Step(frameDelta, held(core.ActionAccelerate))
	}
	if g.Frame().Clock != clock {
		t.Errorf("Clock moved from %v to %v while paused", clock, g.Frame().Clock)
	}

	res = g.Step(frameDelta, held(core.ActionPause))
	if res.State.Paused || g.Frame().Clock <= clock {
		t.Error("expected the second pause press to resume the race")
	}
}

func TestRaceToFinishThroughGame(t *testing.T) {
	g := startedGame(t, Options{Track: "monaco", Laps: 1, Weather: "clear"})
	if _, ok := g.Record(); ok {
		t.Error("Record() available before the finish")
	}

	var notices []string
	for i := 0; i < 20000 && !g.State().GameOver; i++ {
		res := g.Step(frameDelta, held(core.ActionAccelerate))
		notices = append(notices, res.Notices...)
	}

	st := g.State()
	if !st.GameOver {
		t.Fatal("race did not finish")
	}
	res, ok := g.Result()
	if !ok {
		t.Fatal("Result() not available")
	}
	if st.Score != res.PrizeMoney || st.Position != res.FinalPosition {
		t.Errorf("state %+v does not match result %+v", st, res)
	}

	rec, ok := g.Record()
	if !ok {
		t.Fatal("Record() not available after the finish")
	}
	if rec.Track != "monaco" || rec.Mode != "race" || rec.Position != res.FinalPosition || rec.Laps != 1 {
		t.Errorf("Record() = %+v", rec)
	}

	found := false
	for _, n := range notices {
		if strings.HasPrefix(n, "Chequered flag!") {
			found = true
		}
	}
	if !found {
		t.Errorf("no finish notice among %q", notices)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "RACE FINISHED") {
		t.Error("results overlay not drawn after the finish")
	}
}

func TestRender(t *testing.T) {
	g := startedGame(t, Options{Track: "monaco", Laps: 2, Weather: "clear"})
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if row := screen.Row(0); !strings.Contains(row, "P5/5") || !strings.Contains(row, "LAP 1/2") {
		t.Errorf("HUD row = %q", row)
	}
	if !strings.Contains(screen.Row(0), "Monaco Grand Prix") {
		t.Errorf("HUD row = %q, expected the track name", screen.Row(0))
	}
	if !strings.Contains(screen.Row(1), "FUEL") || !strings.Contains(screen.Row(1), "TIRE") {
		t.Errorf("gauge row = %q", screen.Row(1))
	}
	if !strings.Contains(screen.Row(2), "STANDINGS") {
		t.Errorf("standings panel missing: %q", screen.Row(2))
	}
	out := screen.String()
	if !strings.Contains(out, "█") || !strings.Contains(out, "Speed Demon") {
		t.Error("player car or opponent names not drawn")
	}

	small := core.NewScreen(30, 10)
	g.Render(small)
	if !strings.Contains(small.Row(5), "Terminal too small") {
		t.Errorf("small screen row = %q", small.Row(5))
	}
}

func TestResetLoadsConfigFile(t *testing.T) {
	prev := CurrentOptions()
	t.Cleanup(func() { SetOptions(prev) })

	path := filepath.Join(t.TempDir(), "race.yaml")
	yaml := "race:\n  track: short\n  laps: 2\n  weather: night\ntracks:\n  - id: short\n    name: Short Oval\n    length_km: 1.2\n    difficulty: Hard\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	SetOptions(Options{ConfigPath: path})

	g := NewEndurance()
	if err := g.Reset(core.RuntimeConfig{Seed: 5}); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	cfg := g.sim.Config()
	if g.Track().Name != "Short Oval" || cfg.LapCount != 4 || cfg.Difficulty != sim.DifficultyHard {
		t.Errorf("race = %s %d laps %v, expected Short Oval over 4 endurance laps at Hard", g.Track().Name, cfg.LapCount, cfg.Difficulty)
	}
	if cfg.Weather.Condition != sim.ConditionNight {
		t.Errorf("Weather = %v, expected night", cfg.Weather.Condition)
	}

	SetOptions(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	if err := g.Reset(core.RuntimeConfig{}); err == nil {
		t.Error("Reset() with a missing config file should fail")
	}
}

func TestSelectTrack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	prev := CurrentOptions()
	t.Cleanup(func() { SetOptions(prev) })
	SetOptions(Options{Weather: "clear"})

	g := New()
	g.SelectTrack("spa")
	if err := g.Reset(core.RuntimeConfig{Seed: 3}); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	if g.Track().ID != "spa" {
		t.Errorf("Track() = %q, expected spa", g.Track().ID)
	}
	if CurrentOptions().Track != "" {
		t.Error("SelectTrack() changed the shared options")
	}

	other := New()
	if err := other.Reset(core.RuntimeConfig{Seed: 3}); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	if other.Track().ID == "spa" {
		t.Error("SelectTrack() leaked into another game")
	}
}
