package sim

import (
	"errors"
	"math/rand"
	"testing"
)

func TestGenerateOpponentsGrid(t *testing.T) {
	tun := DefaultTuning()
	ops, err := GenerateOpponents(tun, rand.New(rand.NewSource(1)), OpponentRequest{}, DifficultyEasy)
	if err != nil {
		t.Fatalf("GenerateOpponents() error: %v", err)
	}
	if len(ops) != 4 {
		t.Fatalf("got %d opponents, expected the full roster of 4", len(ops))
	}

	roster := DefaultRoster()
	for i, op := range ops {
		expected := float64(len(ops)-i) * tun.GridSpacing
		if op.State.Distance != expected {
			t.Errorf("%s grid distance = %v, expected %v", op.Profile.ID, op.State.Distance, expected)
		}
		if !approx(op.Profile.Skill, roster[i].Skill*0.8) {
			t.Errorf("%s skill = %v, expected %v", op.Profile.ID, op.Profile.Skill, roster[i].Skill*0.8)
		}
		if op.State.ID != op.Profile.ID {
			t.Errorf("state ID %q differs from profile ID %q", op.State.ID, op.Profile.ID)
		}
	}
}

func TestGenerateOpponentsCount(t *testing.T) {
	tun := DefaultTuning()
	rng := rand.New(rand.NewSource(1))

	ops, err := GenerateOpponents(tun, rng, OpponentRequest{Count: 2}, DifficultyHard)
	if err != nil || len(ops) != 2 {
		t.Fatalf("GenerateOpponents(2) = %d, %v, expected 2 opponents", len(ops), err)
	}

	for _, count := range []int{-1, 5} {
		_, err := GenerateOpponents(tun, rng, OpponentRequest{Count: count}, DifficultyHard)
		if !errors.Is(err, ErrNoOpponents) {
			t.Errorf("GenerateOpponents(%d) error = %v, expected ErrNoOpponents", count, err)
		}
	}
}

func TestGenerateOpponentsRival(t *testing.T) {
	tun := DefaultTuning()
	tun.RivalChance = 1
	req := OpponentRequest{Rivals: []string{"Ayrton"}}

	ops, err := GenerateOpponents(tun, rand.New(rand.NewSource(3)), req, DifficultyHard)
	if err != nil {
		t.Fatalf("GenerateOpponents() error: %v", err)
	}
	rivals := 0
	for _, op := range ops {
		if !op.Profile.Rival {
			continue
		}
		rivals++
		if op.Profile.Name != "Ayrton" {
			t.Errorf("rival name = %q, expected Ayrton", op.Profile.Name)
		}
		if op.Profile.Skill > tun.RivalSkillCap {
			t.Errorf("rival skill %v above cap %v", op.Profile.Skill, tun.RivalSkillCap)
		}
	}
	if rivals != 1 {
		t.Errorf("got %d rivals, expected 1", rivals)
	}

	tun.RivalChance = 0
	ops, _ = GenerateOpponents(tun, rand.New(rand.NewSource(3)), req, DifficultyHard)
	for _, op := range ops {
		if op.Profile.Rival {
			t.Error("rival chosen with RivalChance 0")
		}
	}
}

func TestOpponentUpdate(t *testing.T) {
	tun := DefaultTuning()
	rng := rand.New(rand.NewSource(9))

	slow := Opponent{
		Profile: OpponentProfile{ID: "slow", Skill: 0.01, Aggression: 1},
		State:   VehicleState{ID: "slow", Lateral: 84},
	}
	prev := slow.State.Distance
	for i := 0; i < 2000; i++ {
		slow.Update(tun, rng, 0.016, 250, 1e9)
		if slow.State.Speed < tun.OpponentMinSpeed {
			t.Fatalf("speed %v below the minimum", slow.State.Speed)
		}
		if slow.State.Lateral < tun.OpponentLateralMin || slow.State.Lateral > tun.OpponentLateralMax {
			t.Fatalf("lateral %v outside [%v,%v]", slow.State.Lateral, tun.OpponentLateralMin, tun.OpponentLateralMax)
		}
		if slow.State.Distance < prev {
			t.Fatalf("distance went backwards: %v -> %v", prev, slow.State.Distance)
		}
		prev = slow.State.Distance
	}
}

func TestOpponentStopsAtFinish(t *testing.T) {
	tun := DefaultTuning()
	rng := rand.New(rand.NewSource(1))
	op := Opponent{
		Profile: OpponentProfile{ID: "ai1", Skill: 1},
		State:   VehicleState{ID: "ai1", Distance: 999, Lateral: 50},
	}
	op.Update(tun, rng, 0.1, 250, 1000)
	if op.State.Distance != 1000 || !op.State.Finished {
		t.Fatalf("distance=%v finished=%v, expected 1000/true", op.State.Distance, op.State.Finished)
	}
	op.Update(tun, rng, 0.1, 250, 1000)
	if op.State.Distance != 1000 {
		t.Errorf("finished opponent moved to %v", op.State.Distance)
	}
}

func TestOpponentCollisionCooldown(t *testing.T) {
	tun := DefaultTuning()
	op := Opponent{
		Profile: OpponentProfile{ID: "ai1", Skill: 0.9},
		State:   VehicleState{ID: "ai1", Lateral: 50, Colliding: true, CollisionCooldown: 0.2},
	}
	op.Update(tun, rand.New(rand.NewSource(1)), 0.1, 250, 1e6)
	if !op.State.Colliding {
		t.Error("opponent stopped colliding with cooldown left")
	}
	op.Update(tun, rand.New(rand.NewSource(1)), 0.1, 250, 1e6)
	if op.State.Colliding || op.State.CollisionCooldown != 0 {
		t.Errorf("colliding=%v cooldown=%v, expected cleared", op.State.Colliding, op.State.CollisionCooldown)
	}
}
