package sim

// RaceFrame is the snapshot produced by every Tick. It owns all of its
// slices; mutating a frame never affects the simulation.
type RaceFrame struct {
	Tick  uint64
	Clock float64 // race clock, seconds

	Player    VehicleState
	Opponents []VehicleState
	Standings []Standing
	Position  int

	LapIndex       int
	LapCount       int
	LapProgress    float64
	CurrentLapTime float64
	BestLapTime    float64
	LastLapTime    float64

	Fuel      float64
	TireWear  float64
	Pit       PitState
	InPitZone bool

	TotalDistance float64
	Weather       Weather

	Collision *CollisionEvent
	Strategy  *StrategyMessage
	Events    []Event
	Finished  bool
}

// clone returns a deep copy of the frame.
func (f RaceFrame) clone() RaceFrame {
	out := f
	out.Opponents = append([]VehicleState(nil), f.Opponents...)
	out.Standings = append([]Standing(nil), f.Standings...)
	out.Events = append([]Event(nil), f.Events...)
	if f.Collision != nil {
		c := *f.Collision
		out.Collision = &c
	}
	if f.Strategy != nil {
		m := *f.Strategy
		out.Strategy = &m
	}
	return out
}

// RaceResult is handed to the host once the race is over.
type RaceResult struct {
	FinalPosition int
	PrizeMoney    int
	LapRecords    []LapRecord
	TotalTime     float64
	BestLap       float64
	WinnerID      string
	Standings     []Standing
}

// prizeTable pays the top five; everyone else gets the consolation prize.
var prizeTable = []int{50000, 25000, 10000, 5000, 2000}

const consolationPrize = 1000

// PrizeFor returns the prize money for a finishing position.
func PrizeFor(position int) int {
	if position >= 1 && position <= len(prizeTable) {
		return prizeTable[position-1]
	}
	return consolationPrize
}
