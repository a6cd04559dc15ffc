package gesture

import "picturereel/internal/domain"

// ConfidenceThreshold is the swipe power a drag must exceed to change page
const ConfidenceThreshold = 1000.0

// Phase is the state of the drag session
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseCommitting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseCommitting:
		return "committing"
	default:
		return "unknown"
	}
}

// Canceler is the pointer source of a drag session.
// Canceled reports whether the session was already terminated.
type Canceler interface {
	Cancel()
	Canceled() bool
}

// Outcome is what a single sample did to the session
type Outcome struct {
	Offset  domain.DragState
	Power   float64
	Commit  bool
	Delta   int
	Ignored bool // sample arrived outside an active drag
}
