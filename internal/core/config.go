package core

// RuntimeConfig is handed to a game mode when a race is (re)started.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host frames per second (default 60)
	Seed     int64 // RNG seed; 0 means the host picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// GameState is the summary a game mode reports to the platform.
type GameState struct {
	Score    int  // prize money once finished
	Position int  // current race position, 1-indexed
	Lap      int  // current lap
	GameOver bool // race finished
	Paused   bool
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
	// Notices are short, human-readable event descriptions for the HUD.
	Notices []string
}
