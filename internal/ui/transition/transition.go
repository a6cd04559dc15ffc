// Package transition computes the slide between two pictures after a page
// change. Offsets are in pixels, like drag offsets.
package transition

import (
	"math"
	"time"
)

// SlideDistance is how far off-centre a picture enters from or exits to
const SlideDistance = 1000.0

// Variant is the visual placement of one picture
type Variant struct {
	OffsetX float64
	Opacity float64
}

// Enter is where the incoming picture starts: right of centre when moving
// forward, left of centre when moving back
func Enter(direction int) Variant {
	if direction > 0 {
		return Variant{OffsetX: SlideDistance, Opacity: 1}
	}
	return Variant{OffsetX: -SlideDistance, Opacity: 1}
}

// Center is the resting placement
func Center() Variant {
	return Variant{OffsetX: 0, Opacity: 1}
}

// Exit is where the outgoing picture ends up
func Exit(direction int) Variant {
	if direction > 0 {
		return Variant{OffsetX: -SlideDistance, Opacity: 0}
	}
	return Variant{OffsetX: SlideDistance, Opacity: 0}
}

// Lerp interpolates between two variants, p in [0, 1]
func Lerp(a, b Variant, p float64) Variant {
	return Variant{
		OffsetX: a.OffsetX + (b.OffsetX-a.OffsetX)*p,
		Opacity: a.Opacity + (b.Opacity-a.Opacity)*p,
	}
}

// EaseOutCubic decelerates towards the end
func EaseOutCubic(p float64) float64 {
	return 1 - math.Pow(1-p, 3)
}

// Transition is one in-flight slide from picture From to picture To
type Transition struct {
	From      int
	To        int
	Direction int
	Duration  time.Duration
	Started   time.Time
}

// New starts a transition at now. A zero duration finishes immediately.
func New(from, to, direction int, duration time.Duration, now time.Time) *Transition {
	return &Transition{
		From:      from,
		To:        to,
		Direction: direction,
		Duration:  duration,
		Started:   now,
	}
}

// Progress returns the eased progress at now
func (t *Transition) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.Started)) / float64(t.Duration)
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return EaseOutCubic(p)
}

// Done reports whether the transition has finished at now
func (t *Transition) Done(now time.Time) bool {
	return t.Progress(now) >= 1
}

// Incoming is the placement of picture To at now
func (t *Transition) Incoming(now time.Time) Variant {
	return Lerp(Enter(t.Direction), Center(), t.Progress(now))
}

// Outgoing is the placement of picture From at now
func (t *Transition) Outgoing(now time.Time) Variant {
	return Lerp(Center(), Exit(t.Direction), t.Progress(now))
}
