package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// Setup is everything New needs to build a race.
type Setup struct {
	Config RaceConfig
	Stats  PlayerStats
	// Spec overrides the vehicle derived from Stats when non-nil.
	Spec      *VehicleSpec
	Opponents OpponentRequest
	// PitZone defaults to DefaultPitZone when zero.
	PitZone PitZone
	// Tuning defaults to DefaultTuning when nil.
	Tuning   *Tuning
	Seed     int64
	PlayerID string
}

// PlayerID is used when Setup.PlayerID is empty.
const PlayerID = "player"

// Simulation owns the whole race state and advances it one tick at a time.
// It is not safe for concurrent use.
type Simulation struct {
	cfg    RaceConfig
	tuning Tuning
	rng    *rand.Rand

	player    VehicleState
	model     playerModel
	res       ResourceState
	opponents []Opponent

	zone    PitZone
	pit     pitMachine
	laps    *LapTracker
	advisor *Advisor

	clock     float64
	ticks     uint64
	finished  bool
	standings []Standing
	final     RaceFrame
	result    RaceResult
}

// New validates the setup and places every car on the grid.
func New(setup Setup) (*Simulation, error) {
	cfg := setup.Config
	if !(cfg.LapLength > 0) || math.IsInf(cfg.LapLength, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidLapLength, cfg.LapLength)
	}
	if cfg.LapCount < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoLaps, cfg.LapCount)
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = DifficultyMedium
	}
	if cfg.Weather.Condition == "" {
		cfg.Weather = ClearWeather()
	}
	if err := cfg.Weather.validate(); err != nil {
		return nil, err
	}

	zone := setup.PitZone
	if zone == (PitZone{}) {
		zone = DefaultPitZone()
	}
	if err := zone.validate(); err != nil {
		return nil, err
	}

	var spec VehicleSpec
	if setup.Spec != nil {
		spec = *setup.Spec
	} else {
		if err := setup.Stats.validate(); err != nil {
			return nil, err
		}
		spec = setup.Stats.Spec()
	}
	if err := spec.validate(); err != nil {
		return nil, err
	}

	tuning := DefaultTuning()
	if setup.Tuning != nil {
		tuning = *setup.Tuning
	}
	if err := tuning.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(setup.Seed))
	opponents, err := GenerateOpponents(tuning, rng, setup.Opponents, cfg.Difficulty)
	if err != nil {
		return nil, err
	}

	id := setup.PlayerID
	if id == "" {
		id = PlayerID
	}

	s := &Simulation{
		cfg:       cfg,
		tuning:    tuning,
		rng:       rng,
		player:    VehicleState{ID: id, Lateral: tuning.PlayerStartLateral},
		model:     playerModel{spec: spec, weather: cfg.Weather, tuning: tuning},
		res:       FullResources(),
		opponents: opponents,
		zone:      zone,
		pit:       pitMachine{zone: zone, tuning: tuning},
		laps:      NewLapTracker(cfg.LapLength, cfg.LapCount),
		advisor:   NewAdvisor(tuning),
	}
	s.standings = rank(s.field())
	return s, nil
}

// sanitizeDelta replaces the first, non-finite or non-positive deltas with
// FirstTickDelta and caps the rest at MaxTickDelta.
func (s *Simulation) sanitizeDelta(dt float64) float64 {
	if s.ticks == 0 || !(dt > 0) || math.IsInf(dt, 0) {
		return s.tuning.FirstTickDelta
	}
	if dt > s.tuning.MaxTickDelta {
		return s.tuning.MaxTickDelta
	}
	return dt
}

// Tick advances the race by dt seconds. The order inside a tick is fixed:
// resources, laps and pit zone, pit machine, control, distance and clock,
// collisions, opponents, ranking, advice, frame.
// Once the race is finished Tick keeps returning the final frame.
func (s *Simulation) Tick(dt float64, in Intents) (RaceFrame, error) {
	if s == nil || s.laps == nil {
		return RaceFrame{}, ErrNotInitialized
	}
	if s.finished {
		f := s.final.clone()
		f.Events = nil
		return f, nil
	}

	dt = s.sanitizeDelta(dt)
	started := s.clock > 0
	s.ticks++
	var events []Event
	total := s.cfg.TotalDistance()
	spec := s.model.spec

	s.res.Deplete(s.tuning, dt, s.player.Speed, spec.MaxSpeed, s.player.Lateral)

	for _, rec := range s.laps.Update(s.player.Distance, s.clock) {
		events = append(events, LapCompleted{Record: rec, Personal: s.laps.PersonalBest(rec)})
	}
	progress := s.laps.Progress(s.player.Distance)
	inZone := s.zone.Contains(progress)

	s.model.recover(&s.player, dt)
	switch s.pit.update(dt, in.RequestPit, inZone, &s.player, &s.res) {
	case pitEntered:
		events = append(events, PitEntered{Lap: s.laps.Lap()})
	case pitCompleted:
		events = append(events, PitCompleted{Lap: s.laps.Lap()})
		s.model.integrateControl(&s.player, in, s.res)
	case pitIdle:
		s.model.integrateControl(&s.player, in, s.res)
	}

	playerDone := s.model.integrateDistance(&s.player, dt, total)
	s.clock += dt

	var collision *CollisionEvent
	if s.pit.state.Mode == PitRacing {
		if ev, idx, ok := s.detect(); ok {
			collision = &ev
			if s.player.CollisionCooldown == 0 {
				Resolve(s.tuning, ev, &s.player, &s.opponents[idx].State)
				s.model.lastHit = ev
				events = append(events, CollisionStarted{Collision: ev})
			}
		}
	}

	for i := range s.opponents {
		s.opponents[i].Update(s.tuning, s.rng, dt, spec.MaxSpeed, total)
	}

	s.standings = rank(s.field())
	position := s.position()

	if playerDone {
		if rec, ok := s.laps.Finish(s.clock); ok {
			events = append(events, LapCompleted{Record: rec, Personal: s.laps.PersonalBest(rec)})
		}
	}

	var strategy *StrategyMessage
	if msg, ok := s.advisor.Advance(dt, started, s.pit.state.Mode == PitPitting, s.advisorInput(progress, inZone, position)); ok {
		strategy = &msg
	}

	if winner, ok := s.winner(); ok {
		s.finish(position)
		events = append(events, RaceFinished{WinnerID: winner, Position: position})
	}

	frame := s.frame(progress, inZone, position, collision, strategy, events)
	if s.finished {
		s.final = frame.clone()
	}
	return frame, nil
}

// detect runs Detect against the current opponent states and returns the
// index of the opponent hit.
func (s *Simulation) detect() (CollisionEvent, int, bool) {
	states := make([]VehicleState, len(s.opponents))
	for i := range s.opponents {
		states[i] = s.opponents[i].State
	}
	ev, ok := Detect(s.tuning, s.player.Distance, s.player.Lateral, states)
	if !ok {
		return CollisionEvent{}, -1, false
	}
	for i := range states {
		if states[i].ID == ev.OpponentID {
			return ev, i, true
		}
	}
	return CollisionEvent{}, -1, false
}

// field lists the player first, then opponents in roster order.
func (s *Simulation) field() []competitor {
	out := make([]competitor, 0, len(s.opponents)+1)
	out = append(out, competitor{id: s.player.ID, distance: s.player.Distance, player: true})
	for _, op := range s.opponents {
		out = append(out, competitor{id: op.State.ID, distance: op.State.Distance})
	}
	return out
}

func (s *Simulation) position() int {
	for _, st := range s.standings {
		if st.Player {
			return st.Position
		}
	}
	return len(s.standings)
}

// gapAhead is the distance to the car ahead, or the lead over P2 when leading.
func (s *Simulation) gapAhead(position int) float64 {
	if len(s.standings) < 2 {
		return 0
	}
	if position <= 1 {
		return s.player.Distance - s.standings[1].Distance
	}
	return s.standings[position-2].Distance - s.player.Distance
}

func (s *Simulation) advisorInput(progress float64, inZone bool, position int) AdvisorInput {
	return AdvisorInput{
		Resources:   s.res,
		Lap:         s.laps.LapIndex(s.player.Distance),
		LapCount:    s.cfg.LapCount,
		LapProgress: progress,
		LapLength:   s.cfg.LapLength,
		Remaining:   s.cfg.TotalDistance() - s.player.Distance,
		MaxSpeed:    s.model.spec.MaxSpeed,
		InPitZone:   inZone,
		Zone:        s.zone,
		Position:    position,
		GapAhead:    s.gapAhead(position),
	}
}

// winner reports the first vehicle across the line, if any.
func (s *Simulation) winner() (string, bool) {
	if !s.player.Finished && !s.anyOpponentFinished() {
		return "", false
	}
	return s.standings[0].ID, true
}

func (s *Simulation) anyOpponentFinished() bool {
	for _, op := range s.opponents {
		if op.State.Finished {
			return true
		}
	}
	return false
}

func (s *Simulation) finish(position int) {
	s.finished = true
	s.result = RaceResult{
		FinalPosition: position,
		PrizeMoney:    PrizeFor(position),
		LapRecords:    s.laps.Records(),
		TotalTime:     s.clock,
		BestLap:       s.laps.BestLap(),
		WinnerID:      s.standings[0].ID,
		Standings:     append([]Standing(nil), s.standings...),
	}
}

func (s *Simulation) frame(progress float64, inZone bool, position int, collision *CollisionEvent, strategy *StrategyMessage, events []Event) RaceFrame {
	ops := make([]VehicleState, len(s.opponents))
	for i := range s.opponents {
		ops[i] = s.opponents[i].State
	}
	return RaceFrame{
		Tick:           s.ticks,
		Clock:          s.clock,
		Player:         s.player,
		Opponents:      ops,
		Standings:      append([]Standing(nil), s.standings...),
		Position:       position,
		LapIndex:       s.laps.LapIndex(s.player.Distance),
		LapCount:       s.cfg.LapCount,
		LapProgress:    progress,
		CurrentLapTime: s.clock - s.laps.LapStart(),
		BestLapTime:    s.laps.BestLap(),
		LastLapTime:    s.laps.LastLap(),
		Fuel:           s.res.Fuel,
		TireWear:       s.res.TireWear,
		Pit:            s.pit.state,
		InPitZone:      inZone,
		TotalDistance:  s.cfg.TotalDistance(),
		Weather:        s.cfg.Weather,
		Collision:      collision,
		Strategy:       strategy,
		Events:         events,
		Finished:       s.finished,
	}
}

// Snapshot returns the current state without advancing the race. It carries
// no collision, advice or events.
func (s *Simulation) Snapshot() RaceFrame {
	if s == nil || s.laps == nil {
		return RaceFrame{}
	}
	if s.finished {
		f := s.final.clone()
		f.Events = nil
		return f
	}
	progress := s.laps.Progress(s.player.Distance)
	return s.frame(progress, s.zone.Contains(progress), s.position(), nil, nil, nil)
}

// Result returns the race result once the race has finished.
func (s *Simulation) Result() (RaceResult, bool) {
	if s == nil || !s.finished {
		return RaceResult{}, false
	}
	r := s.result
	r.LapRecords = append([]LapRecord(nil), s.result.LapRecords...)
	r.Standings = append([]Standing(nil), s.result.Standings...)
	return r, true
}

// Finished reports whether the race is over.
func (s *Simulation) Finished() bool { return s != nil && s.finished }

// Config returns the race configuration with defaults applied.
func (s *Simulation) Config() RaceConfig { return s.cfg }

// Spec returns the player's vehicle performance.
func (s *Simulation) Spec() VehicleSpec { return s.model.spec }

// PitZone returns the active pit zone.
func (s *Simulation) PitZone() PitZone { return s.zone }

// Profiles returns the opponent profiles in roster order.
func (s *Simulation) Profiles() []OpponentProfile {
	out := make([]OpponentProfile, len(s.opponents))
	for i, op := range s.opponents {
		out[i] = op.Profile
	}
	return out
}

// CanPit reports whether a pit request would be accepted on the next tick
// given the player's current position and speed.
func (s *Simulation) CanPit() bool {
	if s == nil || s.laps == nil {
		return false
	}
	return s.pit.canEnter(s.zone.Contains(s.laps.Progress(s.player.Distance)), s.player.Speed)
}
