package navigation

import (
	"fmt"

	"picturereel/internal/domain"
)

// Sign folds a delta to -1, 0 or +1
func Sign(delta int) int {
	switch {
	case delta > 0:
		return 1
	case delta < 0:
		return -1
	default:
		return 0
	}
}

// Paginate returns the state reached from state by moving one step in the
// direction of delta over count pictures, wrapping at both ends.
func Paginate(state domain.NavigationState, delta, count int) domain.NavigationState {
	dir := Sign(delta)
	next := state.CurrentIndex + dir
	if next > count-1 {
		next = 0
	}
	if next < 0 {
		next = count - 1
	}
	return domain.NavigationState{CurrentIndex: next, Direction: dir}
}

// Controller owns the navigation state of one carousel
type Controller struct {
	state     domain.NavigationState
	count     int
	drag      DragResetter
	listeners []Listener
}

// NewController creates a controller positioned at (0, 0).
// count must be at least one.
func NewController(count int, drag DragResetter) (*Controller, error) {
	if count < 1 {
		return nil, domain.ErrEmptyPictureSet
	}
	return &Controller{count: count, drag: drag}, nil
}

// State returns the current navigation state
func (c *Controller) State() domain.NavigationState {
	return c.state
}

// Count returns the number of pictures the controller navigates
func (c *Controller) Count() int {
	return c.count
}

// OnChange registers a listener called after every Paginate
func (c *Controller) OnChange(l Listener) {
	c.listeners = append(c.listeners, l)
}

// Paginate moves one picture towards sign(delta) and recentres the drag offset
// when delta is nonzero. A single-picture carousel stays on index 0.
func (c *Controller) Paginate(delta int) domain.NavigationState {
	from := c.state
	to := Paginate(from, delta, c.count)
	if to.CurrentIndex < 0 || to.CurrentIndex >= c.count {
		panic(fmt.Sprintf("navigation: index %d escaped [0,%d)", to.CurrentIndex, c.count))
	}
	c.state = to

	if delta != 0 && c.drag != nil {
		c.drag.ResetDrag()
	}

	for _, l := range c.listeners {
		l(from, to)
	}
	return to
}
