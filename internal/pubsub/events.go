// Package pubsub fans typed events out from one producer to any number
// of context-scoped subscribers.
package pubsub

import (
	"context"
	"time"
)

// EventType tags the kind of change an event describes.
type EventType string

// Mutation kinds published by the registry. Other producers (the worker
// pool, the log stream) define their own EventType values and publish
// them through the same broker machinery.
const (
	CreatedEvent EventType = "created"
	UpdatedEvent EventType = "updated"
	DeletedEvent EventType = "deleted"
)

// Event is the envelope delivered to subscribers: a payload, the kind of
// change it describes, and the time it was published.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber is the read side of a broker. Components expose this
// instead of the broker itself so consumers can observe the stream but
// never publish to it or close it.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}
