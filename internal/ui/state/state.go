package state

import "picturereel/internal/ui/views"

// AppState contains the UI state that is not owned by the carousel widget
type AppState struct {
	Width  int
	Height int

	InPagerMode bool

	Scanning      bool
	StatusMessage string
	StatusKind    views.StatusKind

	// where the current picture set came from: a directory or the config file
	Source string
}

// NewAppState creates a new application state
func NewAppState(source string) *AppState {
	return &AppState{Source: source}
}

// SetStatus replaces the status line
func (s *AppState) SetStatus(kind views.StatusKind, msg string) {
	s.StatusKind = kind
	s.StatusMessage = msg
}

// ClearStatus empties the status line
func (s *AppState) ClearStatus() {
	s.SetStatus(views.StatusInfo, "")
}
