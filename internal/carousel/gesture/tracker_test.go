package gesture

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestRubberbandIsLinearInsideBounds(t *testing.T) {
	assert.Equal(t, 40.0, RubberbandIfOutOfBounds(40, -100, 100, 0.15))
	assert.Equal(t, -100.0, RubberbandIfOutOfBounds(-100, -100, 100, 0.15))
}

func TestRubberbandDampsOutsideBounds(t *testing.T) {
	got := RubberbandIfOutOfBounds(300, -100, 100, 0.15)
	assert.Greater(t, got, 100.0)
	assert.Less(t, got, 300.0)

	mirrored := RubberbandIfOutOfBounds(-300, -100, 100, 0.15)
	assert.InDelta(t, -got, mirrored, 1e-9)
}

func TestRubberbandUnboundedDimension(t *testing.T) {
	assert.InDelta(t, 16.0, Rubberband(16, math.Inf(1), 0.2), 1e-9)
	assert.InDelta(t, -16.0, Rubberband(-16, math.Inf(1), 0.2), 1e-9)
	assert.InDelta(t, 4.0, Rubberband(16, 0, 0.1), 1e-9)
}

func TestRubberbandZeroConstantClamps(t *testing.T) {
	assert.Equal(t, 100.0, RubberbandIfOutOfBounds(300, -100, 100, 0))
}

func TestTrackerMoveWithoutPressIsIgnored(t *testing.T) {
	tr := NewTracker(TrackerOptions{})
	_, ok := tr.Move(3, 3, t0)
	assert.False(t, ok)
}

func TestTrackerReportsCumulativeMovementInPixels(t *testing.T) {
	tr := NewTracker(TrackerOptions{CellWidth: 10, CellHeight: 20})
	tr.Press(10, 5, t0)

	s, ok := tr.Move(8, 5, t0.Add(10*time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, -20.0, s.MovementX)
	assert.Equal(t, -20.0, s.DeltaX)
	assert.InDelta(t, 2.0, s.Velocity, 1e-9)

	s, ok = tr.Move(5, 6, t0.Add(20*time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, -50.0, s.MovementX)
	assert.Equal(t, 20.0, s.MovementY)
	assert.Equal(t, -30.0, s.DeltaX)
}

func TestTrackerClampsElapsedToOneMillisecond(t *testing.T) {
	tr := NewTracker(TrackerOptions{CellWidth: 8})
	tr.Press(0, 0, t0)

	s, ok := tr.Move(2, 0, t0)
	require.True(t, ok)
	assert.Equal(t, 16.0, s.Velocity)
}

func TestTrackerAppliesRubberband(t *testing.T) {
	tr := NewTracker(TrackerOptions{CellWidth: 10, CellHeight: 10, Rubberband: 0.15})
	tr.SetBounds(5, 5)
	tr.Press(0, 0, t0)

	s, ok := tr.Move(20, 0, t0.Add(time.Millisecond))
	require.True(t, ok)
	assert.Greater(t, s.MovementX, 50.0)
	assert.Less(t, s.MovementX, 200.0)
}

func TestTrackerCancelStopsSamples(t *testing.T) {
	tr := NewTracker(TrackerOptions{})
	tr.Press(0, 0, t0)
	assert.False(t, tr.Canceled())

	tr.Cancel()
	assert.True(t, tr.Canceled())
	_, ok := tr.Move(4, 0, t0.Add(time.Millisecond))
	assert.False(t, ok)

	assert.True(t, tr.Release())
	assert.False(t, tr.Active())

	tr.Press(1, 1, t0)
	assert.False(t, tr.Canceled(), "a new press opens a fresh session")
}
