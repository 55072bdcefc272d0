package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventIndexChanged  EventType = "IndexChanged"
	EventDragStarted   EventType = "DragStarted"
	EventDragEnded     EventType = "DragEnded"
	EventDragCancelled EventType = "DragCancelled"
	EventError         EventType = "Error"
	EventConfigLoaded  EventType = "ConfigLoaded"
	EventConfigSaved   EventType = "ConfigSaved"
	EventCatalogLoaded EventType = "CatalogLoaded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// NavigationCause records what moved the carousel
type NavigationCause string

const (
	CauseDrag       NavigationCause = "drag"
	CauseKeyboard   NavigationCause = "keyboard"
	CauseIndicator  NavigationCause = "indicator"
	CauseProgrammed NavigationCause = "programmatic"
)

// IndexChangedEvent is emitted after a commit moved the current index
type IndexChangedEvent struct {
	OldIndex int
	NewIndex int
	Item     DestinationItem
	Cause    NavigationCause
}

func (e IndexChangedEvent) Type() EventType { return EventIndexChanged }

// DragStartedEvent is emitted when a drag gesture begins
type DragStartedEvent struct {
	Index int
}

func (e DragStartedEvent) Type() EventType { return EventDragStarted }

// DragEndedEvent is emitted when a drag gesture is released
type DragEndedEvent struct {
	Translation float64
	Predicted   float64
	Committed   bool
}

func (e DragEndedEvent) Type() EventType { return EventDragEnded }

// DragCancelledEvent is emitted when the host abandons a drag
type DragCancelledEvent struct {
	Index int
}

func (e DragCancelledEvent) Type() EventType { return EventDragCancelled }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Paths []string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is written to disk
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// CatalogLoadedEvent is emitted when the destination list is ready
type CatalogLoadedEvent struct {
	Source string
	Count  int
}

func (e CatalogLoadedEvent) Type() EventType { return EventCatalogLoaded }
