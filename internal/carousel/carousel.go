// Package carousel ties the navigation controller and the gesture interpreter
// to the state of one mounted picture carousel.
package carousel

import (
	"picturereel/internal/carousel/gesture"
	"picturereel/internal/carousel/navigation"
	"picturereel/internal/domain"
	"picturereel/internal/eventbus"
)

// Option configures a Widget
type Option func(*Widget)

// WithBus publishes page changes and gesture commits on bus
func WithBus(bus eventbus.EventBus) Option {
	return func(w *Widget) { w.bus = bus }
}

// WithSource attaches the pointer source that a commit cancels
func WithSource(src gesture.Canceler) Option {
	return func(w *Widget) { w.source = src }
}

// Widget is one mounted carousel. All methods run on the UI goroutine.
type Widget struct {
	pictures domain.PictureSet
	nav      *navigation.Controller
	gesture  *gesture.Interpreter
	drag     domain.DragState
	source   gesture.Canceler
	bus      eventbus.EventBus
}

// New mounts a carousel over pictures at (0, 0)
func New(pictures domain.PictureSet, opts ...Option) (*Widget, error) {
	w := &Widget{
		pictures: pictures,
		gesture:  gesture.NewInterpreter(),
	}
	nav, err := navigation.NewController(pictures.Len(), w)
	if err != nil {
		return nil, err
	}
	w.nav = nav

	for _, opt := range opts {
		opt(w)
	}

	if w.bus != nil {
		w.nav.OnChange(func(from, to domain.NavigationState) {
			w.bus.Publish(eventbus.PageChangedEvent{From: from, To: to})
		})
	}
	return w, nil
}

// ResetDrag recentres the current picture
func (w *Widget) ResetDrag() {
	w.drag = domain.DragState{}
}

// Paginate steps one picture towards sign(delta)
func (w *Widget) Paginate(delta int) domain.NavigationState {
	return w.nav.Paginate(delta)
}

// Next is the "next" control
func (w *Widget) Next() domain.NavigationState {
	return w.Paginate(navigation.Next)
}

// Previous is the "previous" control
func (w *Widget) Previous() domain.NavigationState {
	return w.Paginate(navigation.Previous)
}

// BeginDrag opens a drag session on pointer-down
func (w *Widget) BeginDrag() {
	w.gesture.Begin()
}

// Drag applies one motion sample and paginates when the swipe commits
func (w *Widget) Drag(sample domain.GestureSample) gesture.Outcome {
	out := w.gesture.Sample(sample, w.source)
	if out.Ignored {
		return out
	}
	w.drag = out.Offset

	if out.Commit {
		if w.bus != nil {
			w.bus.Publish(eventbus.GestureCommittedEvent{Delta: out.Delta, Power: out.Power})
		}
		w.Paginate(out.Delta)
		w.gesture.Settle()
	}
	return out
}

// EndDrag closes the drag session on pointer-up and snaps the picture back
func (w *Widget) EndDrag() {
	w.gesture.End()
	w.ResetDrag()
}

// Current returns the picture at the current index
func (w *Widget) Current() domain.Picture {
	return w.pictures.At(w.nav.State().CurrentIndex)
}

// Pictures returns the mounted picture set
func (w *Widget) Pictures() domain.PictureSet {
	return w.pictures
}

// Navigation returns the current navigation state
func (w *Widget) Navigation() domain.NavigationState {
	return w.nav.State()
}

// DragOffset returns the live drag offset
func (w *Widget) DragOffset() domain.DragState {
	return w.drag
}

// Phase returns the gesture session phase
func (w *Widget) Phase() gesture.Phase {
	return w.gesture.Phase()
}
