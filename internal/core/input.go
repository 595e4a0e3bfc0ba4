package core

// Action represents a semantic game action, abstracted from physical key presses.
// Backends translate raw key events into actions; the game loop only sees these.
type Action int

const (
	ActionNone  Action = iota
	ActionLeft         // Left arrow, A, H - move the player left
	ActionRight        // Right arrow, D, L - move the player right
	ActionFire         // Space, Enter - shoot
	ActionQuit         // Q, Esc, Ctrl+C - abandon the game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
