package sim

// Event is something that happened during a tick, for hosts that drive
// audio or visual effects. The set of events is closed.
type Event interface {
	raceEvent()
}

// CollisionStarted is emitted when a new collision is resolved.
type CollisionStarted struct {
	Collision CollisionEvent
}

func (CollisionStarted) raceEvent() {}

// LapCompleted is emitted when the player completes a lap.
type LapCompleted struct {
	Record   LapRecord
	Personal bool // new best lap
}

func (LapCompleted) raceEvent() {}

// PitEntered is emitted when the car stops in the pit.
type PitEntered struct {
	Lap int
}

func (PitEntered) raceEvent() {}

// PitCompleted is emitted when servicing finishes and the car is released.
type PitCompleted struct {
	Lap int
}

func (PitCompleted) raceEvent() {}

// RaceFinished is emitted once, on the tick the race ends.
type RaceFinished struct {
	WinnerID string
	Position int
}

func (RaceFinished) raceEvent() {}
