package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picturereel/internal/domain"
)

type fakeSource struct {
	canceled bool
	calls    int
}

func (f *fakeSource) Cancel()        { f.calls++; f.canceled = true }
func (f *fakeSource) Canceled() bool { return f.canceled }

func TestSwipePowerIsAbsolute(t *testing.T) {
	assert.Equal(t, 1010.0, SwipePower(-10, 101))
	assert.Equal(t, 1010.0, SwipePower(10, 101))
	assert.Equal(t, 0.0, SwipePower(0, 50))
}

func TestCommitDeltaPullsOppositeNeighbour(t *testing.T) {
	assert.Equal(t, -1, CommitDelta(25))
	assert.Equal(t, 1, CommitDelta(-25))
}

func TestEvaluateThresholdIsExclusive(t *testing.T) {
	commit, _, power := Evaluate(domain.GestureSample{MovementX: 10, Velocity: 100}, ConfidenceThreshold)
	assert.False(t, commit)
	assert.Equal(t, 1000.0, power)

	commit, delta, _ := Evaluate(domain.GestureSample{MovementX: 1, Velocity: 1000.0001}, ConfidenceThreshold)
	assert.True(t, commit)
	assert.Equal(t, -1, delta)
}

func TestLeftwardSwipeCommitsForward(t *testing.T) {
	in := NewInterpreter()
	in.Begin()

	out := in.Sample(domain.GestureSample{MovementX: -10, Velocity: 101}, nil)

	require.True(t, out.Commit)
	assert.Equal(t, 1, out.Delta)
	assert.Equal(t, 1010.0, out.Power)
	assert.Equal(t, PhaseCommitting, in.Phase())
}

func TestSampleFollowsCumulativeMovement(t *testing.T) {
	in := NewInterpreter()
	in.Begin()

	in.Sample(domain.GestureSample{DeltaX: 4, MovementX: 4, MovementY: 1, Velocity: 1}, nil)
	out := in.Sample(domain.GestureSample{DeltaX: 3, MovementX: 7, MovementY: 2, Velocity: 1}, nil)

	assert.False(t, out.Commit)
	assert.Equal(t, domain.DragState{OffsetX: 7, OffsetY: 2}, out.Offset)
	assert.Equal(t, PhaseDragging, in.Phase())
}

func TestSampleOutsideSessionIsIgnored(t *testing.T) {
	in := NewInterpreter()
	out := in.Sample(domain.GestureSample{MovementX: -500, Velocity: 50}, nil)
	assert.True(t, out.Ignored)
	assert.False(t, out.Commit)
}

func TestCommitCancelsSourceOnce(t *testing.T) {
	in := NewInterpreter()
	src := &fakeSource{}
	in.Begin()

	out := in.Sample(domain.GestureSample{MovementX: 200, Velocity: 10}, src)
	require.True(t, out.Commit)
	assert.Equal(t, -1, out.Delta)
	assert.Equal(t, 1, src.calls)

	again := in.Sample(domain.GestureSample{MovementX: 220, Velocity: 10}, src)
	assert.True(t, again.Ignored)
	assert.False(t, again.Commit)
}

func TestAlreadyTerminatedSourceDoesNotCommit(t *testing.T) {
	in := NewInterpreter()
	src := &fakeSource{canceled: true}
	in.Begin()

	out := in.Sample(domain.GestureSample{MovementX: -300, Velocity: 20}, src)

	assert.False(t, out.Commit)
	assert.Equal(t, PhaseIdle, in.Phase())
}

func TestCancelIsIdempotent(t *testing.T) {
	in := NewInterpreter()
	assert.False(t, in.Cancel(), "idle session cannot be cancelled")

	in.Begin()
	assert.True(t, in.Cancel())
	assert.False(t, in.Cancel())
}

func TestEndWithoutCommitSnapsBack(t *testing.T) {
	in := NewInterpreter()
	in.Begin()
	out := in.Sample(domain.GestureSample{MovementX: 50, Velocity: 1}, nil)
	require.False(t, out.Commit)

	assert.True(t, in.End())
	assert.Equal(t, PhaseIdle, in.Phase())
}

func TestEndAfterCommitDoesNotSnapBack(t *testing.T) {
	in := NewInterpreter()
	in.Begin()
	in.Sample(domain.GestureSample{MovementX: -100, Velocity: 11}, nil)
	in.Settle()

	assert.False(t, in.End())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "dragging", PhaseDragging.String())
	assert.Equal(t, "committing", PhaseCommitting.String())
	assert.Equal(t, "unknown", Phase(9).String())
}
