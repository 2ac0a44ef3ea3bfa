package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionBomb           // Space - tap for a freeze bomb, hold for a regular bomb
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B - go back to menu
	ActionRestart        // R key - restart game after it ended
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P, Escape - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionBomb:
		return "Bomb"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// KeyState is a snapshot of which actions are currently held down.
// The host refreshes it before every simulation step.
type KeyState map[Action]bool

// Held returns true if the action is held in this snapshot.
func (k KeyState) Held(a Action) bool {
	if k == nil {
		return false
	}
	return k[a]
}

// Clone creates a copy of this key state.
func (k KeyState) Clone() KeyState {
	clone := make(KeyState, len(k))
	for a, v := range k {
		clone[a] = v
	}
	return clone
}

// InputFrame represents the input state for one simulation tick.
// Actions holds one-shot triggers (pause, restart); Held holds the
// continuous key state used for movement and the bomb gesture.
type InputFrame struct {
	Actions map[Action]bool
	Held    KeyState
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(KeyState),
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

// Clear resets the one-shot actions for the next frame.
// Held keys are owned by the host's latch and survive the clear.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
