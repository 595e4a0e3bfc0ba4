package game

import "time"

// State is where a session is in its lifecycle.
type State int

const (
	Running State = iota
	WonExit
	LostExit
)

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case WonExit:
		return "Won"
	case LostExit:
		return "Lost"
	default:
		return "Unknown"
	}
}

// Result summarises a finished session.
type Result struct {
	State         State
	Destroyed     int           // enemies shot down
	Ticks         int           // logic ticks run
	Elapsed       time.Duration // game time, the sum of tick deltas
	DroppedFrames int64         // frames the render pipeline did not accept
}
