// Package resolver provides the resolution actor for the name registry.
//
// All registry operations funnel through one goroutine that owns the only
// live store handle, so at most one mutation is in flight against the
// store at any time and callers observe a strict, linear order of
// operations. Application code talks to the actor through a Handle.
package resolver

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/sorenhq/namevault/internal/pubsub"
	"github.com/sorenhq/namevault/internal/registry/domain"
)

// DefaultQueueSize is the default capacity of the actor's inbox. Senders
// suspend rather than fail when the inbox is full.
const DefaultQueueSize = 100

// Event describes a registry mutation, published on the resolver's broker.
type Event struct {
	Name string
	UID  uuid.UUID
}

// Config holds configuration for a resolver instance.
type Config struct {
	// QueueSize is the inbox capacity (default: 100).
	QueueSize int

	// CacheTTL enables a read cache for Get when positive. The cache is
	// owned by the actor and invalidated on every mutation, so it cannot
	// serve stale identifiers.
	CacheTTL time.Duration

	// Tracer records one span per operation. Nil means no tracing.
	Tracer trace.Tracer
}

// Handle is the client-facing reference to a resolver. It is safe for
// concurrent use and cheap to copy; all copies share the same actor.
type Handle struct {
	inbox  chan message
	broker *pubsub.Broker[Event]
	done   chan struct{}
}

// New starts a resolution actor over store and returns its handle.
// The actor takes exclusive ownership of store until Close.
func New(store domain.Store, cfg Config) *Handle {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Tracer == nil {
		cfg.Tracer = noop.NewTracerProvider().Tracer("resolver")
	}

	inbox := make(chan message, cfg.QueueSize)
	broker := pubsub.NewBroker[Event]()
	done := make(chan struct{})

	a := &actor{
		inbox:  inbox,
		store:  store,
		cache:  newReadCache(cfg.CacheTTL),
		broker: broker,
		tracer: cfg.Tracer,
		done:   done,
	}
	go a.run()

	return &Handle{inbox: inbox, broker: broker, done: done}
}

// Create registers name and returns its freshly minted identifier.
// It fails with BadNameError for an invalid name and AlreadyExistsError
// for a name that is already registered.
func (h *Handle) Create(ctx context.Context, name string) (uuid.UUID, error) {
	reply := make(chan uidResult, 1)
	if err := h.send(ctx, createMsg{name: name, reply: reply}); err != nil {
		return uuid.UUID{}, err
	}
	return h.awaitUID(ctx, reply)
}

// Get resolves name to its identifier, failing with NotFoundError if the
// name is not registered.
func (h *Handle) Get(ctx context.Context, name string) (uuid.UUID, error) {
	reply := make(chan uidResult, 1)
	if err := h.send(ctx, getMsg{name: name, reply: reply}); err != nil {
		return uuid.UUID{}, err
	}
	return h.awaitUID(ctx, reply)
}

// Delete removes the mapping for name and returns the identifier that was
// removed, failing with NotFoundError if the name is not registered.
func (h *Handle) Delete(ctx context.Context, name string) (uuid.UUID, error) {
	reply := make(chan uidResult, 1)
	if err := h.send(ctx, deleteMsg{name: name, reply: reply}); err != nil {
		return uuid.UUID{}, err
	}
	return h.awaitUID(ctx, reply)
}

// List returns every registered (name, identifier) pair. An empty registry
// yields an empty result, not an error.
func (h *Handle) List(ctx context.Context) ([]domain.Entry, error) {
	reply := make(chan listResult, 1)
	if err := h.send(ctx, listMsg{reply: reply}); err != nil {
		return nil, err
	}
	select {
	case res, ok := <-reply:
		if !ok {
			panic("resolver: resolution actor has been killed")
		}
		return res.entries, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Insert restores a known (name, identifier) pair, overwriting any
// existing mapping for name. It fails only on an invalid name or a
// storage fault.
func (h *Handle) Insert(ctx context.Context, name string, uid uuid.UUID) error {
	reply := make(chan error, 1)
	if err := h.send(ctx, insertMsg{name: name, uid: uid, reply: reply}); err != nil {
		return err
	}
	select {
	case err, ok := <-reply:
		if !ok {
			panic("resolver: resolution actor has been killed")
		}
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns a snapshot of the resolver's operation counters.
func (h *Handle) Stats(ctx context.Context) (Stats, error) {
	reply := make(chan Stats, 1)
	if err := h.send(ctx, statsMsg{reply: reply}); err != nil {
		return Stats{}, err
	}
	select {
	case stats := <-reply:
		return stats, nil
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}
}

// Events exposes the registry mutation event stream.
func (h *Handle) Events() pubsub.Subscriber[Event] {
	return h.broker
}

// Close shuts the resolver down: the inbox is closed, the actor drains
// already-queued messages and exits, and the event broker closes. Using
// the handle after Close panics.
func (h *Handle) Close() {
	close(h.inbox)
	<-h.done
	h.broker.Close()
}

// send enqueues a message, suspending while the inbox is saturated.
func (h *Handle) send(ctx context.Context, msg message) error {
	select {
	case h.inbox <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// awaitUID waits for the typed reply. A closed reply channel means the
// actor died without answering, which is an unrecoverable programming
// error, not a domain failure.
func (h *Handle) awaitUID(ctx context.Context, reply <-chan uidResult) (uuid.UUID, error) {
	select {
	case res, ok := <-reply:
		if !ok {
			panic("resolver: resolution actor has been killed")
		}
		return res.uid, res.err
	case <-ctx.Done():
		// The operation still completes inside the actor; this caller
		// just stops observing the reply.
		return uuid.UUID{}, ctx.Err()
	}
}
