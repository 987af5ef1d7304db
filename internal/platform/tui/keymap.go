package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// RaceKeyMap defines the key bindings used while racing.
type RaceKeyMap struct {
	Accelerate key.Binding
	Brake      key.Binding
	Left       key.Binding
	Right      key.Binding
	Pit        key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Back       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RaceKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accelerate, k.Brake, k.Left, k.Right, k.Pit, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RaceKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Accelerate, k.Brake, k.Left, k.Right, k.Pit},
		{k.Pause, k.Restart, k.Back, k.Screenshot, k.Quit},
	}
}

// DefaultRaceKeyMap returns default key bindings.
func DefaultRaceKeyMap() RaceKeyMap {
	return RaceKeyMap{
		Accelerate: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "throttle"),
		),
		Brake: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "brake"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "steer left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "steer right"),
		),
		Pit: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pit"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	Keys RaceKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{Keys: DefaultRaceKeyMap()}
}

// MapKey translates a key message to a race action.
// Screenshot requests map to ActionNone; check them with IsScreenshot.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	k := km.Keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Accelerate):
		return core.ActionAccelerate
	case key.Matches(msg, k.Brake):
		return core.ActionBrake
	case key.Matches(msg, k.Left):
		return core.ActionSteerLeft
	case key.Matches(msg, k.Right):
		return core.ActionSteerRight
	case key.Matches(msg, k.Pit):
		return core.ActionPit
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
}

// IsScreenshot reports whether the key asks for a screenshot.
func (km *KeyMapper) IsScreenshot(msg tea.KeyMsg) bool {
	return key.Matches(msg, km.Keys.Screenshot)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionResults
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionResults
	}
	return MenuActionNone
}
