package core

// Action is a semantic control, decoupled from the physical key that produced it.
type Action int

const (
	ActionNone       Action = iota
	ActionAccelerate        // W, Up arrow
	ActionBrake             // S, Down arrow
	ActionSteerLeft         // A, Left arrow
	ActionSteerRight        // D, Right arrow
	ActionPit               // Space - request a pit stop
	ActionBack              // Escape
	ActionRestart           // R
	ActionPause             // P
	ActionQuit              // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionAccelerate:
		return "Accelerate"
	case ActionBrake:
		return "Brake"
	case ActionSteerLeft:
		return "SteerLeft"
	case ActionSteerRight:
		return "SteerRight"
	case ActionPit:
		return "Pit"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// DrivingActions are the actions that map onto held vehicle controls.
var DrivingActions = []Action{ActionAccelerate, ActionBrake, ActionSteerLeft, ActionSteerRight, ActionPit}

// IsDriving reports whether the action is a held vehicle control.
func (a Action) IsDriving() bool {
	for _, d := range DrivingActions {
		if a == d {
			return true
		}
	}
	return false
}

// InputFrame is the set of actions held during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Merge adds every action held in other to f.
func (f *InputFrame) Merge(other InputFrame) {
	for k, v := range other.Actions {
		if v {
			f.Set(k)
		}
	}
}
