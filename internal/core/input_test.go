package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionAccelerate) {
		t.Error("new frame should be empty")
	}

	f.Set(ActionAccelerate)
	f.Set(ActionSteerLeft)
	if !f.Has(ActionAccelerate) || !f.Has(ActionSteerLeft) {
		t.Error("Set actions not reported by Has")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionAccelerate) {
		t.Error("Clear left actions behind")
	}
	if !clone.Has(ActionAccelerate) {
		t.Error("Clone shares state with the original")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionBrake) {
		t.Error("zero frame reports a held action")
	}
	f.Set(ActionBrake)
	if !f.Has(ActionBrake) {
		t.Error("Set on a zero frame was lost")
	}
}

func TestInputFrameMerge(t *testing.T) {
	a := NewInputFrame()
	a.Set(ActionAccelerate)
	b := NewInputFrame()
	b.Set(ActionPit)
	b.Actions[ActionBrake] = false

	a.Merge(b)
	if !a.Has(ActionAccelerate) || !a.Has(ActionPit) {
		t.Error("Merge dropped actions")
	}
	if a.Has(ActionBrake) {
		t.Error("Merge copied a released action")
	}
}

func TestActionIsDriving(t *testing.T) {
	tests := []struct {
		action   Action
		expected bool
	}{
		{ActionAccelerate, true},
		{ActionPit, true},
		{ActionSteerRight, true},
		{ActionPause, false},
		{ActionQuit, false},
		{ActionNone, false},
	}
	for _, tt := range tests {
		if got := tt.action.IsDriving(); got != tt.expected {
			t.Errorf("%v.IsDriving() = %v, expected %v", tt.action, got, tt.expected)
		}
	}
}
