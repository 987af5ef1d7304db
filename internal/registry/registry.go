// Package registry keeps the race modes available to the platform.
// Modes register themselves in init() functions so the CLI and the TUI can
// list and create them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// Game is a playable race mode. Implementations hold no terminal state; the
// platform handles key mapping, timing and drawing the screen.
type Game interface {
	// ID returns a unique identifier (e.g. "race", "endurance"), used by the
	// CLI and as the mode column of stored results.
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Reset builds a fresh race. It fails when the race configuration is invalid.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the race by dt seconds of wall time with the held actions.
	Step(dt float64, in core.InputFrame) core.StepResult

	// Render draws the current race into dst. The screen is pre-cleared.
	Render(dst *core.Screen)

	// State returns the current summary.
	State() core.GameState
}

// GameInfo contains metadata about a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a mode.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a mode factory. Panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered modes sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a mode by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists checks whether a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
