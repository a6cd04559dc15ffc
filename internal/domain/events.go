package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventPicturesDiscovered EventType = "PicturesDiscovered"
	EventScanStarted        EventType = "ScanStarted"
	EventScanCompleted      EventType = "ScanCompleted"
	EventScanRequested      EventType = "ScanRequested"
	EventPageChanged        EventType = "PageChanged"
	EventGestureCommitted   EventType = "GestureCommitted"
	EventConfigLoaded       EventType = "ConfigLoaded"
	EventConfigSaved        EventType = "ConfigSaved"
	EventError              EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// PicturesDiscoveredEvent carries the result of a directory scan
type PicturesDiscoveredEvent struct {
	Root     string
	Pictures []Picture
}

func (e PicturesDiscoveredEvent) Type() EventType { return EventPicturesDiscovered }

// ScanStartedEvent is emitted when picture scanning begins
type ScanStartedEvent struct {
	Paths []string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// ScanCompletedEvent is emitted when picture scanning completes
type ScanCompletedEvent struct {
	PicturesFound int
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// ScanRequestedEvent is emitted to request a new scan
type ScanRequestedEvent struct {
	Paths []string
}

func (e ScanRequestedEvent) Type() EventType { return EventScanRequested }

// PageChangedEvent is emitted after every paginate call
type PageChangedEvent struct {
	From NavigationState
	To   NavigationState
}

func (e PageChangedEvent) Type() EventType { return EventPageChanged }

// GestureCommittedEvent is emitted when a swipe crosses the commit threshold
type GestureCommittedEvent struct {
	Delta int
	Power float64
}

func (e GestureCommittedEvent) Type() EventType { return EventGestureCommitted }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	BaseDir  string
	Pictures int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
