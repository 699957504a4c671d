package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame // zero value must be usable

	if f.Has(ActionJump) {
		t.Error("zero frame should not report actions")
	}
	if !f.Empty() {
		t.Error("zero frame should be empty")
	}

	f.Set(ActionJump)
	if !f.Has(ActionJump) {
		t.Error("Set(ActionJump) should be visible through Has")
	}
	if f.Has(ActionStart) {
		t.Error("unrelated action should not be set")
	}
	if f.Empty() {
		t.Error("frame with an action should not be empty")
	}

	f.Clear()
	if f.Has(ActionJump) || !f.Empty() {
		t.Error("Clear should drop all actions")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:    "None",
		ActionJump:    "Jump",
		ActionStart:   "Start",
		ActionPause:   "Pause",
		ActionQuit:    "Quit",
		ActionCapture: "Capture",
		Action(99):    "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", a, got, want)
		}
	}
}
