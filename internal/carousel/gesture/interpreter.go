package gesture

import (
	"math"

	"picturereel/internal/domain"
)

// SwipePower scores a drag by its horizontal travel and speed
func SwipePower(movementX, velocity float64) float64 {
	return math.Abs(movementX) * velocity
}

// CommitDelta maps horizontal travel to a page step. Dragging right pulls the
// previous picture into view, dragging left pulls in the next one.
func CommitDelta(movementX float64) int {
	if movementX > 0 {
		return -1
	}
	return 1
}

// Evaluate decides whether sample commits a page change under threshold.
// The threshold is exclusive.
func Evaluate(sample domain.GestureSample, threshold float64) (commit bool, delta int, power float64) {
	power = SwipePower(sample.MovementX, sample.Velocity)
	if power > threshold {
		return true, CommitDelta(sample.MovementX), power
	}
	return false, 0, power
}

// Interpreter turns drag samples into live offsets and commit decisions.
//
//	Idle --Begin--> Dragging --Sample over threshold--> Committing --Settle--> Idle
//	                Dragging --End--> Idle
type Interpreter struct {
	phase     Phase
	threshold float64
}

// NewInterpreter creates an idle interpreter using ConfidenceThreshold
func NewInterpreter() *Interpreter {
	return &Interpreter{threshold: ConfidenceThreshold}
}

// Phase returns the current session phase
func (in *Interpreter) Phase() Phase {
	return in.phase
}

// Begin opens a drag session on pointer-down. A session that was still open is
// replaced.
func (in *Interpreter) Begin() {
	in.phase = PhaseDragging
}

// Sample consumes one motion sample. While dragging the offset follows the
// cumulative movement; once the swipe power passes the threshold the session
// is cancelled and the outcome carries the page delta. src may be nil.
func (in *Interpreter) Sample(sample domain.GestureSample, src Canceler) Outcome {
	if in.phase != PhaseDragging {
		return Outcome{Ignored: true}
	}

	out := Outcome{
		Offset: domain.DragState{OffsetX: sample.MovementX, OffsetY: sample.MovementY},
	}

	commit, delta, power := Evaluate(sample, in.threshold)
	out.Power = power
	if !commit {
		return out
	}

	if src != nil {
		terminated := src.Canceled()
		src.Cancel()
		if terminated {
			in.phase = PhaseIdle
			return out
		}
	}
	if !in.Cancel() {
		return out
	}

	out.Commit = true
	out.Delta = delta
	return out
}

// Cancel moves an open session to Committing. It reports false when the
// session had already terminated, so a second call never commits twice.
func (in *Interpreter) Cancel() bool {
	if in.phase != PhaseDragging {
		return false
	}
	in.phase = PhaseCommitting
	return true
}

// Settle closes a committed session after navigation has run
func (in *Interpreter) Settle() {
	if in.phase == PhaseCommitting {
		in.phase = PhaseIdle
	}
}

// End closes the session on pointer-up. It reports whether the picture must
// snap back, which is the case when the drag ended without a commit.
func (in *Interpreter) End() bool {
	snapBack := in.phase == PhaseDragging
	in.phase = PhaseIdle
	return snapBack
}
