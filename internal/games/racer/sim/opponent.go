package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// SkillTier is the cosmetic class of an AI driver.
type SkillTier string

const (
	TierRookie  SkillTier = "Rookie"
	TierAmateur SkillTier = "Amateur"
	TierPro     SkillTier = "Pro"
	TierLegend  SkillTier = "Legend"
)

// OpponentProfile describes an AI driver. Only Skill and Aggression feed the physics.
type OpponentProfile struct {
	ID         string
	Name       string
	Tier       SkillTier
	Skill      float64 // fraction of max speed the driver sustains
	Aggression float64 // [0,1], drives weaving
	StartLane  float64 // starting lateral position
	Rival      bool
}

// OpponentRequest asks the simulation to build the field.
// An empty Roster means DefaultRoster. Rivals are the player's known rival names;
// one may replace a roster slot at setup.
type OpponentRequest struct {
	Count  int
	Roster []OpponentProfile
	Rivals []string
}

// Opponent is an AI car: its profile plus its physical state.
type Opponent struct {
	Profile OpponentProfile
	State   VehicleState
}

// DefaultRoster returns the stock field of four drivers.
func DefaultRoster() []OpponentProfile {
	return []OpponentProfile{
		{ID: "ai1", Name: "Speed Demon", Tier: TierLegend, Skill: 0.95, Aggression: 0.8, StartLane: 30},
		{ID: "ai2", Name: "Road Runner", Tier: TierPro, Skill: 0.85, Aggression: 0.6, StartLane: 70},
		{ID: "ai3", Name: "Night Rider", Tier: TierAmateur, Skill: 0.75, Aggression: 0.4, StartLane: 50},
		{ID: "ai4", Name: "Turbo Kid", Tier: TierRookie, Skill: 0.65, Aggression: 0.2, StartLane: 40},
	}
}

// GenerateOpponents builds the starting field: it takes the first Count
// profiles, scales their skill by the difficulty tier and, with probability
// RivalChance, turns one slot into a rival. Opponents line up ahead of the
// player, GridSpacing metres apart, the first profile on pole.
func GenerateOpponents(t Tuning, rng *rand.Rand, req OpponentRequest, diff Difficulty) ([]Opponent, error) {
	roster := req.Roster
	if len(roster) == 0 {
		roster = DefaultRoster()
	}
	count := req.Count
	if count == 0 {
		count = len(roster)
	}
	if count < 1 {
		return nil, ErrNoOpponents
	}
	if count > len(roster) {
		return nil, fmt.Errorf("%w: requested %d opponents, roster has %d", ErrNoOpponents, count, len(roster))
	}

	profiles := make([]OpponentProfile, count)
	copy(profiles, roster[:count])

	mult := diff.SkillMultiplier()
	for i := range profiles {
		if profiles[i].ID == "" {
			profiles[i].ID = fmt.Sprintf("ai%d", i+1)
		}
		profiles[i].Skill *= mult
		profiles[i].Aggression = clampF(profiles[i].Aggression, 0, 1)
	}

	if len(req.Rivals) > 0 && rng.Float64() < t.RivalChance {
		slot := rng.Intn(len(profiles))
		name := req.Rivals[rng.Intn(len(req.Rivals))]
		profiles[slot] = rivalProfile(t, profiles[slot], name)
	}

	opponents := make([]Opponent, len(profiles))
	for i, p := range profiles {
		lane := p.StartLane
		if lane == 0 {
			lane = trackCenter
		}
		opponents[i] = Opponent{
			Profile: p,
			State: VehicleState{
				ID:       p.ID,
				Distance: float64(len(profiles)-i) * t.GridSpacing,
				Lateral:  clampF(lane, t.OpponentLateralMin, t.OpponentLateralMax),
			},
		}
	}
	return opponents, nil
}

// rivalProfile upgrades a slot into the player's rival, keeping its ID and lane.
func rivalProfile(t Tuning, base OpponentProfile, name string) OpponentProfile {
	base.Name = name
	base.Rival = true
	base.Skill = math.Min(base.Skill*t.RivalSkillBoost, t.RivalSkillCap)
	base.Aggression = clampF(base.Aggression+t.RivalAggressionBoost, 0, 1)
	return base
}

// Update advances one opponent by dt. Finished opponents do not move.
func (o *Opponent) Update(t Tuning, rng *rand.Rand, dt, maxSpeed, totalDistance float64) {
	s := &o.State
	s.CollisionCooldown = math.Max(0, s.CollisionCooldown-dt)
	s.Colliding = s.CollisionCooldown > 0
	if s.Finished {
		s.Speed = 0
		return
	}

	penalty := 1.0
	if s.Colliding {
		penalty = t.OpponentCollision
	}
	jitter := (rng.Float64() - 0.5) * t.OpponentJitter
	s.Speed = math.Max(t.OpponentMinSpeed, maxSpeed*o.Profile.Skill*penalty+jitter)

	s.Distance = math.Min(s.Distance+s.Speed*dt, totalDistance)
	if s.Distance >= totalDistance {
		s.Finished = true
	}

	aggr := o.Profile.Aggression
	freq := t.WeaveBaseFrequency + aggr*t.WeaveFrequencyAggr
	amp := t.WeaveBaseAmplitude + aggr*t.WeaveAmplitudeAggr
	target := trackCenter + math.Sin(s.Distance*freq)*amp
	s.Lateral = clampF(s.Lateral+(target-s.Lateral)*t.WeaveBlend, t.OpponentLateralMin, t.OpponentLateralMax)
}
