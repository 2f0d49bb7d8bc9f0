package timer

import (
	"fmt"
	"strings"
)

// State of the timer
type State int

const (
	Idle State = iota
	Started
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Started:
		return "started"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Action is a named command sent to the engine from outside its loop
type Action string

const (
	ActionStart  Action = "start"
	ActionStop   Action = "stop"
	ActionCancel Action = "cancel"
)

// ParseAction maps a command name to its action
func ParseAction(name string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(name))); a {
	case ActionStart, ActionStop, ActionCancel:
		return a, nil
	default:
		return "", fmt.Errorf("unknown timer action %q, use start, stop or cancel", name)
	}
}

// Snapshot is what observers of the engine see
type Snapshot struct {
	State    State
	Duration int64 // accumulated seconds

	// Zero padded display components of Duration
	Hours   string
	Minutes string
	Seconds string
}

// NewSnapshot builds the snapshot for a state and accumulated duration
func NewSnapshot(state State, duration int64) Snapshot {
	h, m, s := Decompose(duration)
	return Snapshot{
		State:    state,
		Duration: duration,
		Hours:    pad(h),
		Minutes:  pad(m),
		Seconds:  pad(s),
	}
}

// Clock renders the snapshot as hh:mm:ss
func (s Snapshot) Clock() string {
	return s.Hours + ":" + s.Minutes + ":" + s.Seconds
}

// Decompose splits seconds into whole hours, minutes and seconds
func Decompose(seconds int64) (h, m, s int64) {
	if seconds < 0 {
		seconds = 0
	}
	return seconds / 3600, seconds % 3600 / 60, seconds % 60
}

func pad(n int64) string {
	return fmt.Sprintf("%02d", n)
}

// transition applies an action and reports whether anything changed.
// Actions that are not valid from the current state are no-ops.
func (s Snapshot) transition(a Action) (Snapshot, bool) {
	switch a {
	case ActionStart:
		if s.State == Started {
			return s, false
		}
		return NewSnapshot(Started, s.Duration), true
	case ActionStop:
		if s.State != Started {
			return s, false
		}
		return NewSnapshot(Stopped, s.Duration), true
	case ActionCancel:
		if s.State == Idle {
			return s, false
		}
		return NewSnapshot(Idle, 0), true
	}
	return s, false
}

// tick adds one second to a running timer
func (s Snapshot) tick() (Snapshot, bool) {
	if s.State != Started {
		return s, false
	}
	return NewSnapshot(Started, s.Duration+1), true
}
