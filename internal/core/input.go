package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the runner to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone   Action = iota
	ActionJump          // Space, W, Up - jump
	ActionStart         // Enter, R - start a run or restart after game over
	ActionPause         // P - pause/unpause (frontend only)
	ActionQuit          // Q, Ctrl+C - exit
	ActionCapture       // Ctrl+S - save a text screenshot (terminal only)
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	case ActionCapture:
		return "Capture"
	default:
		return "Unknown"
	}
}

// InputFrame represents the actions triggered between two frames.
// Actions are edge-triggered: a held key is only reported once.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
