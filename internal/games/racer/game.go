// Package racer adapts the race simulation to the platform: it builds races
// from the configuration, turns held actions into driving intents and draws
// each frame onto a core.Screen.
package racer

import (
	"fmt"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/games/racer/sim"
	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

const (
	noticeTTL = 2.5 // seconds a notice stays on the HUD
	adviceTTL = 4.0 // seconds advice stays on the HUD
)

// Game is one race. It implements registry.Game.
type Game struct {
	mode  Mode
	track string // overrides the configured track when set
	plan Plan
	sim  *sim.Simulation

	frame  sim.RaceFrame
	state  core.GameState
	paused bool

	names  map[string]string
	rivals map[string]bool

	notice     string
	noticeLeft float64
	advice     *sim.StrategyMessage
	adviceLeft float64
}

// New creates a grand prix race.
func New() *Game {
	return &Game{mode: ModeRace}
}

// NewEndurance creates an endurance race.
func NewEndurance() *Game {
	return &Game{mode: ModeEndurance}
}

func init() {
	registry.Register(string(ModeRace), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeEndurance), func() registry.Game {
		return NewEndurance()
	})
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndurance {
		return "Endurance"
	}
	return "Grand Prix"
}

// Reset loads the configuration and lines up a new race.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	opts := CurrentOptions()
	if g.track != "" {
		opts.Track = g.track
	}
	raceCfg, err := config.LoadRace(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("racer: %w", err)
	}
	plan, err := BuildPlan(raceCfg, opts, g.mode, cfg.Seed)
	if err != nil {
		return err
	}
	return g.Start(plan)
}

// SelectTrack picks the circuit for the next Reset of this game only.
func (g *Game) SelectTrack(id string) {
	g.track = id
}

// Start lines up the race described by plan.
func (g *Game) Start(plan Plan) error {
	s, err := sim.New(plan.Setup)
	if err != nil {
		return fmt.Errorf("racer: %w", err)
	}

	g.plan = plan
	g.mode = plan.Mode
	if g.mode == "" {
		g.mode = ModeRace
	}
	g.sim = s
	g.frame = s.Snapshot()
	g.paused = false
	g.notice, g.noticeLeft = "", 0
	g.advice, g.adviceLeft = nil, 0

	g.names = map[string]string{plan.Setup.PlayerID: plan.Driver}
	if plan.Setup.PlayerID == "" {
		g.names[sim.PlayerID] = plan.Driver
	}
	g.rivals = make(map[string]bool)
	for _, p := range s.Profiles() {
		g.names[p.ID] = p.Name
		if p.Rival {
			g.rivals[p.ID] = true
		}
	}

	g.updateState()
	return nil
}

// Step advances the race by dt seconds with the held actions.
func (g *Game) Step(dt float64, in core.InputFrame) core.StepResult {
	if g.sim == nil {
		return core.StepResult{State: g.state}
	}

	if in.Has(core.ActionPause) && !g.frame.Finished {
		g.paused = !g.paused
	}
	if g.paused {
		g.updateState()
		return core.StepResult{State: g.state}
	}

	frame, err := g.sim.Tick(dt, IntentsFrom(in))
	if err != nil {
		return core.StepResult{State: g.state}
	}
	elapsed := frame.Clock - g.frame.Clock
	g.frame = frame

	g.noticeLeft -= elapsed
	g.adviceLeft -= elapsed

	if frame.Strategy != nil {
		msg := *frame.Strategy
		g.advice = &msg
		g.adviceLeft = adviceTTL
	}
	notices := g.describe(frame.Events)
	if len(notices) > 0 {
		g.notice = notices[len(notices)-1]
		g.noticeLeft = noticeTTL
	}

	g.updateState()
	return core.StepResult{State: g.state, Notices: notices}
}

func (g *Game) updateState() {
	g.state = core.GameState{
		Position: g.frame.Position,
		Lap:      g.frame.LapIndex,
		GameOver: g.frame.Finished,
		Paused:   g.paused,
	}
	if res, ok := g.sim.Result(); ok {
		g.state.Score = res.PrizeMoney
	}
}

// State returns the current summary.
func (g *Game) State() core.GameState {
	return g.state
}

// Frame returns the latest race frame.
func (g *Game) Frame() sim.RaceFrame {
	return g.frame
}

// Result returns the race result once the race is over.
func (g *Game) Result() (sim.RaceResult, bool) {
	return g.sim.Result()
}

// Record returns the finished race as a storable record.
func (g *Game) Record() (storage.RaceRecord, bool) {
	if g.sim == nil {
		return storage.RaceRecord{}, false
	}
	res, ok := g.sim.Result()
	if !ok {
		return storage.RaceRecord{}, false
	}
	return storage.RecordFromResult(g.plan.Track.ID, string(g.mode), g.plan.Driver, g.sim.Config(), g.plan.Setup.Seed, res), true
}

// Plan returns the race being run.
func (g *Game) Plan() Plan {
	return g.plan
}

// Track returns the circuit being raced.
func (g *Game) Track() config.TrackConfig {
	return g.plan.Track
}

// DisplayName returns the driver name for a vehicle ID.
func (g *Game) DisplayName(id string) string {
	if name, ok := g.names[id]; ok && name != "" {
		return name
	}
	return id
}

// IntentsFrom maps held actions onto driving intents.
func IntentsFrom(in core.InputFrame) sim.Intents {
	return sim.Intents{
		Accelerate: in.Has(core.ActionAccelerate),
		Brake:      in.Has(core.ActionBrake),
		SteerLeft:  in.Has(core.ActionSteerLeft),
		SteerRight: in.Has(core.ActionSteerRight),
		RequestPit: in.Has(core.ActionPit),
	}
}
