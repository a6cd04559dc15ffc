package navigation

import "picturereel/internal/domain"

// Button directions for the explicit previous/next controls
const (
	Previous = -1
	Next     = 1
)

// DragResetter recentres the live drag offset of the current picture
type DragResetter interface {
	ResetDrag()
}

// DragResetterFunc adapts a plain function to DragResetter
type DragResetterFunc func()

func (f DragResetterFunc) ResetDrag() { f() }

// Listener observes every state change made by the controller
type Listener func(from, to domain.NavigationState)
