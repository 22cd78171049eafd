package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventQueryChanged        EventType = "QueryChanged"
	EventDestinationSelected EventType = "DestinationSelected"
	EventCatalogLoaded       EventType = "CatalogLoaded"
	EventCatalogFailed       EventType = "CatalogFailed"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// QueryChangedEvent is emitted on every keystroke in the search field
type QueryChangedEvent struct {
	Query string
}

func (e QueryChangedEvent) Type() EventType { return EventQueryChanged }

// DestinationSelectedEvent is emitted when the user picks a suggestion
type DestinationSelectedEvent struct {
	Destination Destination
	Route       string
}

func (e DestinationSelectedEvent) Type() EventType { return EventDestinationSelected }

// CatalogLoadedEvent is emitted after the catalog was read successfully
type CatalogLoadedEvent struct {
	Source string
	Count  int
}

func (e CatalogLoadedEvent) Type() EventType { return EventCatalogLoaded }

// CatalogFailedEvent is emitted when the catalog could not be read
type CatalogFailedEvent struct {
	Source string
	Err    error
}

func (e CatalogFailedEvent) Type() EventType { return EventCatalogFailed }
