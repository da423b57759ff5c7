package resolver

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sorenhq/namevault/internal/log"
	"github.com/sorenhq/namevault/internal/pubsub"
	"github.com/sorenhq/namevault/internal/registry/domain"
)

// actor owns the only live store handle and serializes every registry
// operation: one message is handled fully, including its store
// transaction, before the next is dequeued. That makes all operations
// observed by callers linearizable without any locking above the store.
type actor struct {
	inbox  <-chan message
	store  domain.Store
	cache  *readCache
	broker *pubsub.Broker[Event]
	tracer trace.Tracer
	stats  Stats
	done   chan struct{}
}

// run drains the inbox until it is closed (all handles released), then
// exits cleanly.
func (a *actor) run() {
	defer close(a.done)

	a.stats.StartedAt = time.Now()
	log.Info(log.CatResolver, "resolution actor started")

	for msg := range a.inbox {
		a.handle(msg)
	}

	log.Warn(log.CatResolver, "exiting resolution actor loop")
}

func (a *actor) handle(msg message) {
	switch m := msg.(type) {
	case createMsg:
		uid, err := a.handleCreate(m.name)
		m.reply <- uidResult{uid: uid, err: err}
	case getMsg:
		uid, err := a.handleGet(m.name)
		m.reply <- uidResult{uid: uid, err: err}
	case deleteMsg:
		uid, err := a.handleDelete(m.name)
		m.reply <- uidResult{uid: uid, err: err}
	case listMsg:
		entries, err := a.handleList()
		m.reply <- listResult{entries: entries, err: err}
	case insertMsg:
		m.reply <- a.handleInsert(m.name, m.uid)
	case statsMsg:
		m.reply <- a.stats
	}
}

// handleCreate validates the name and mints a fresh identifier. An
// already-registered name is a conflict: the strict path is the public
// create contract.
func (a *actor) handleCreate(name string) (uid uuid.UUID, err error) {
	ctx, span := a.startSpan("registry.create", name)
	defer func() { a.endSpan(span, err) }()

	if !domain.ValidName(name) {
		a.stats.Creates++
		a.stats.Failures++
		return uuid.UUID{}, &domain.BadNameError{Name: name}
	}

	uid, err = a.store.CreateOrGet(ctx, name, true)
	a.stats.Creates++
	if err != nil {
		a.stats.Failures++
		return uuid.UUID{}, err
	}

	a.cache.set(name, uid)
	a.broker.Publish(pubsub.CreatedEvent, Event{Name: name, UID: uid})
	log.Info(log.CatResolver, "registered resource", "name", name, "uid", uid)
	return uid, nil
}

func (a *actor) handleGet(name string) (uid uuid.UUID, err error) {
	ctx, span := a.startSpan("registry.get", name)
	defer func() { a.endSpan(span, err) }()

	a.stats.Gets++

	if uid, ok := a.cache.get(name); ok {
		a.stats.CacheHits++
		return uid, nil
	}
	a.stats.CacheMisses++

	uid, found, err := a.store.Get(ctx, name)
	if err != nil {
		a.stats.Failures++
		return uuid.UUID{}, err
	}
	if !found {
		a.stats.Failures++
		return uuid.UUID{}, &domain.NotFoundError{Name: name}
	}

	a.cache.set(name, uid)
	return uid, nil
}

func (a *actor) handleDelete(name string) (uid uuid.UUID, err error) {
	ctx, span := a.startSpan("registry.delete", name)
	defer func() { a.endSpan(span, err) }()

	a.stats.Deletes++

	uid, found, err := a.store.Delete(ctx, name)
	if err != nil {
		a.stats.Failures++
		return uuid.UUID{}, err
	}
	if !found {
		a.stats.Failures++
		return uuid.UUID{}, &domain.NotFoundError{Name: name}
	}

	a.cache.invalidate(name)
	a.broker.Publish(pubsub.DeletedEvent, Event{Name: name, UID: uid})
	log.Info(log.CatResolver, "unregistered resource", "name", name, "uid", uid)
	return uid, nil
}

func (a *actor) handleList() (entries []domain.Entry, err error) {
	ctx, span := a.startSpan("registry.list", "")
	defer func() { a.endSpan(span, err) }()

	a.stats.Lists++

	entries, err = a.store.List(ctx)
	if err != nil {
		a.stats.Failures++
		return nil, err
	}
	return entries, nil
}

// handleInsert restores a known (name, identifier) pair; last write wins.
func (a *actor) handleInsert(name string, uid uuid.UUID) (err error) {
	ctx, span := a.startSpan("registry.insert", name)
	defer func() { a.endSpan(span, err) }()

	a.stats.Inserts++

	if !domain.ValidName(name) {
		a.stats.Failures++
		return &domain.BadNameError{Name: name}
	}

	if err := a.store.Insert(ctx, name, uid); err != nil {
		a.stats.Failures++
		return err
	}

	a.cache.set(name, uid)
	a.broker.Publish(pubsub.UpdatedEvent, Event{Name: name, UID: uid})
	log.Info(log.CatResolver, "restored resource", "name", name, "uid", uid)
	return nil
}

// startSpan opens a span for one registry operation. Store calls run with
// a background context on purpose: a caller abandoning its reply must not
// cancel an in-flight transaction.
func (a *actor) startSpan(op, name string) (context.Context, trace.Span) {
	ctx, span := a.tracer.Start(context.Background(), op)
	if name != "" {
		span.SetAttributes(attribute.String("registry.name", name))
	}
	return ctx, span
}

func (a *actor) endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
