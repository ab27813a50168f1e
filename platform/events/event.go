// Package events carries domain events between the portal's modules without
// them importing each other. The event definitions live in internal/events;
// this package only knows how to move them.
package events

import (
	"context"
	"time"
)

// Event is implemented by every domain event.
type Event interface {
	// EventName identifies the event type; subscriptions key on it.
	EventName() string
	// OccurredAt is the moment the event was raised.
	OccurredAt() time.Time
}

// BaseEvent is embedded by event structs to satisfy OccurredAt.
type BaseEvent struct {
	At time.Time `json:"occurredAt"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.At
}

// NewBaseEvent stamps the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{At: time.Now()}
}

// Handler reacts to a single event type.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus publishes domain events to their subscribers.
type Bus interface {
	// Publish delivers the event to every handler subscribed to its name.
	// Delivery is asynchronous; publishers never block on handlers.
	Publish(ctx context.Context, event Event)

	// PublishSync delivers the event and waits for every handler.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler for the EventName of one event type.
	Subscribe(eventName string, handler Handler)
}
