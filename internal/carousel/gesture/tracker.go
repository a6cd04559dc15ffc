package gesture

import (
	"math"
	"time"

	"picturereel/internal/domain"
)

const (
	defaultCellWidth  = 8.0
	defaultCellHeight = 16.0
	// DefaultRubberband is the resistance applied past the drag bounds
	DefaultRubberband = 0.15
)

// Rubberband damps distance travelled past a bound of size dimension.
// The result approaches dimension asymptotically.
func Rubberband(distance, dimension, constant float64) float64 {
	if dimension == 0 || math.IsInf(dimension, 0) {
		return math.Pow(math.Abs(distance), constant*5) * sign(distance)
	}
	return (distance * dimension * constant) / (dimension + constant*distance)
}

// RubberbandIfOutOfBounds keeps position linear inside [min, max] and damps
// whatever lies beyond.
func RubberbandIfOutOfBounds(position, min, max, constant float64) float64 {
	if constant == 0 {
		return clamp(position, min, max)
	}
	if position < min {
		return -Rubberband(min-position, max-min, constant) + min
	}
	if position > max {
		return Rubberband(position-max, max-min, constant) + max
	}
	return position
}

// TrackerOptions configures a Tracker
type TrackerOptions struct {
	CellWidth  float64 // px per terminal column
	CellHeight float64 // px per terminal row
	Rubberband float64
}

// Tracker is the pointer source for drag gestures. It converts terminal cell
// positions into pixel samples, damps travel past its bounds and can be
// cancelled mid-gesture.
type Tracker struct {
	opts TrackerOptions

	boundX float64 // px either side of the origin, 0 for unbounded
	boundY float64

	active   bool
	canceled bool

	originX, originY float64
	moveX, moveY     float64
	lastAt           time.Time
}

// NewTracker creates an inactive tracker
func NewTracker(opts TrackerOptions) *Tracker {
	if opts.CellWidth <= 0 {
		opts.CellWidth = defaultCellWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = defaultCellHeight
	}
	if opts.Rubberband < 0 {
		opts.Rubberband = DefaultRubberband
	}
	return &Tracker{opts: opts}
}

// SetBounds sets the free travel in cells before rubber-banding starts
func (t *Tracker) SetBounds(cols, rows int) {
	t.boundX = float64(cols) * t.opts.CellWidth
	t.boundY = float64(rows) * t.opts.CellHeight
}

// CellWidth returns the pixel width of one terminal column
func (t *Tracker) CellWidth() float64 {
	return t.opts.CellWidth
}

// Press starts a new session at cell (x, y)
func (t *Tracker) Press(x, y int, at time.Time) {
	t.active = true
	t.canceled = false
	t.originX = float64(x) * t.opts.CellWidth
	t.originY = float64(y) * t.opts.CellHeight
	t.moveX, t.moveY = 0, 0
	t.lastAt = at
}

// Move reports the pointer at cell (x, y). It returns false when no session
// is open or the session was cancelled.
func (t *Tracker) Move(x, y int, at time.Time) (domain.GestureSample, bool) {
	if !t.active || t.canceled {
		return domain.GestureSample{}, false
	}

	rawX := float64(x)*t.opts.CellWidth - t.originX
	rawY := float64(y)*t.opts.CellHeight - t.originY
	moveX := t.damp(rawX, t.boundX)
	moveY := t.damp(rawY, t.boundY)

	dx := moveX - t.moveX
	dy := moveY - t.moveY

	elapsed := float64(at.Sub(t.lastAt)) / float64(time.Millisecond)
	if elapsed < 1 {
		elapsed = 1
	}

	t.moveX, t.moveY = moveX, moveY
	t.lastAt = at

	return domain.GestureSample{
		DeltaX:    dx,
		DeltaY:    dy,
		MovementX: moveX,
		MovementY: moveY,
		Velocity:  math.Hypot(dx, dy) / elapsed,
	}, true
}

// Release ends the session on pointer-up. It reports whether a session was
// open, cancelled or not.
func (t *Tracker) Release() bool {
	wasActive := t.active
	t.active = false
	t.moveX, t.moveY = 0, 0
	return wasActive
}

// Cancel stops delivering samples for the current session
func (t *Tracker) Cancel() {
	t.canceled = true
}

// Canceled reports whether the current session was cancelled
func (t *Tracker) Canceled() bool {
	return t.canceled
}

// Active reports whether the pointer is down
func (t *Tracker) Active() bool {
	return t.active
}

func (t *Tracker) damp(v, bound float64) float64 {
	if bound <= 0 {
		return v
	}
	return RubberbandIfOutOfBounds(v, -bound, bound, t.opts.Rubberband)
}

func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(v, max))
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
