package structs

import (
	"strings"
)

type State string

const (
	// transient states
	RUNNING   State = "RUNNING"
	SUSPENDED State = "SUSPENDED"

	// end states
	COMPLETED State = "COMPLETED"
	FAILED    State = "FAILED"
	CANCELED  State = "CANCELED"
)

// TerminalStates are those a task never leaves (save by deletion)
var TerminalStates = []State{COMPLETED, FAILED, CANCELED}

func IsTerminalState(state State) bool {
	switch state {
	case COMPLETED, FAILED, CANCELED:
		return true
	default:
		return false
	}
}

// IsValidStateForProcess returns if a task in this state may be handed to a processor.
func IsValidStateForProcess(state State) bool {
	return state == RUNNING
}

// IsValidStateForCancel returns if a task in this state may be canceled.
// A suspended task is still in flight, it's merely waiting on someone else.
func IsValidStateForCancel(state State) bool {
	return state == RUNNING || state == SUSPENDED
}

// IsValidStateForDelete returns if a task in this state may be deleted.
func IsValidStateForDelete(state State) bool {
	return IsTerminalState(state)
}

func ToState(s string) State {
	switch strings.ToUpper(s) {
	case "RUNNING":
		return RUNNING
	case "SUSPENDED":
		return SUSPENDED
	case "COMPLETED":
		return COMPLETED
	case "FAILED":
		return FAILED
	case "CANCELED", "CANCELLED":
		return CANCELED
	default:
		return ""
	}
}
