package ui

import (
	"destpick/internal/eventbus"
)

// EventMsg wraps a domain event forwarded from the bus into the program
type EventMsg struct {
	Event eventbus.DomainEvent
}
