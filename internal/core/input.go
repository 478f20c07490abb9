package core

// Action is a semantic player action, decoupled from physical keys.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // A, Left arrow - move piece left
	ActionRight            // D, Right arrow - move piece right
	ActionSoftDrop         // S, Down arrow - drop one row
	ActionHardDrop         // Space - drop and lock
	ActionRotateCW         // W, X, Up arrow
	ActionRotateCCW        // Z
	ActionHold             // C, Shift+Tab
	ActionPause            // P, Escape
	ActionRestart          // R - new game after game over
	ActionBack             // B - back to menu when paused or over
	ActionConfirm          // Enter - menu selection
	ActionQuit             // Q, Ctrl+C
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionSoftDrop:  "SoftDrop",
	ActionHardDrop:  "HardDrop",
	ActionRotateCW:  "RotateCW",
	ActionRotateCCW: "RotateCCW",
	ActionHold:      "Hold",
	ActionPause:     "Pause",
	ActionRestart:   "Restart",
	ActionBack:      "Back",
	ActionConfirm:   "Confirm",
	ActionQuit:      "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame collects everything the player did between two ticks.
// Actions keep their arrival order so the game can apply them in sequence.
// Keys holds raw key names (ArrowUp, a, b, ...) for sequence detection.
type InputFrame struct {
	Actions []Action
	Keys    []string
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends an action for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// AddKey records a raw key name.
func (f *InputFrame) AddKey(key string) {
	if key == "" {
		return
	}
	f.Keys = append(f.Keys, key)
}

// Has returns true if the action occurred at least once this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Empty reports whether nothing happened this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Keys) == 0
}

// Clear resets the frame, keeping the allocated storage.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
	f.Keys = f.Keys[:0]
}

// Clone creates an independent copy of the frame.
func (f InputFrame) Clone() InputFrame {
	return InputFrame{
		Actions: append([]Action(nil), f.Actions...),
		Keys:    append([]string(nil), f.Keys...),
	}
}
