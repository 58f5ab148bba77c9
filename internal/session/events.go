package session

import (
	"autoshot/internal/capture"
	"autoshot/internal/config"
)

type State int

const (
	StateStopped State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "stopped"
}

// Outcome tells the caller of ToggleRun what happened.
type Outcome int

const (
	// OutcomeNone is returned alongside an error; nothing changed.
	OutcomeNone Outcome = iota
	OutcomeStarted
	OutcomeStopped
	// OutcomeSingleShot means one capture was taken and the session is
	// stopped again.
	OutcomeSingleShot
	// OutcomeDeclined means the zero-interval prompt was refused.
	OutcomeDeclined
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStarted:
		return "started"
	case OutcomeStopped:
		return "stopped"
	case OutcomeSingleShot:
		return "single_shot"
	case OutcomeDeclined:
		return "declined"
	default:
		return "none"
	}
}

type EventKind int

const (
	// EventStarted: clear the log, lock the settings, show the stop label
	// and the busy indicator.
	EventStarted EventKind = iota + 1
	// EventCaptured: append Record to the log.
	EventCaptured
	// EventStopped: unlock the settings and show the completion notice, or
	// Err if the run ended because a capture failed.
	EventStopped
	// EventFailed: a capture that was still in flight when the run was
	// stopped failed afterwards.
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventCaptured:
		return "captured"
	case EventStopped:
		return "stopped"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is a notification for the shell. Events are delivered in the order
// they happened.
type Event struct {
	Kind     EventKind
	RunID    string
	Settings config.Settings
	Record   capture.Record
	Err      error
}
