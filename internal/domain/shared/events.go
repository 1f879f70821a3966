// Package shared holds the building blocks common to the domain aggregates
package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is something that happened to an aggregate
type DomainEvent interface {
	EventName() string
	AggregateID() uuid.UUID
	OccurredAt() time.Time
}

// AggregateRoot records the events raised by an aggregate until they are
// drained
type AggregateRoot struct {
	events []DomainEvent
}

// AddEvent records an event
func (a *AggregateRoot) AddEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// HasEvents reports whether events are waiting to be drained
func (a *AggregateRoot) HasEvents() bool {
	return len(a.events) > 0
}

// Events returns the recorded events in order and clears them
func (a *AggregateRoot) Events() []DomainEvent {
	events := a.events
	a.events = nil
	return events
}

// ClearEvents drops all recorded events
func (a *AggregateRoot) ClearEvents() {
	a.events = nil
}
