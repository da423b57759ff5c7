// Package pool provides a bounded worker pool for blocking storage I/O.
//
// Store transactions are dispatched here instead of running on the
// resolution actor's goroutine, so a slow disk never stalls the actor's
// scheduling slot or unrelated concurrent work.
package pool

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/sorenhq/namevault/internal/log"
	"github.com/sorenhq/namevault/internal/pubsub"
)

// DefaultWorkers is the default number of pool goroutines.
const DefaultWorkers = 4

// DefaultQueueDepth is the default capacity of the pending-task queue.
const DefaultQueueDepth = 16

// ErrPoolClosed is returned when dispatching to a closed pool.
var ErrPoolClosed = fmt.Errorf("worker pool is closed")

// TaskEventType identifies a task lifecycle event. It is an alias of the
// pubsub event type, so the envelope type and the payload type always
// name the same transition.
type TaskEventType = pubsub.EventType

const (
	TaskStarted   TaskEventType = "task_started"
	TaskCompleted TaskEventType = "task_completed"
	TaskPanicked  TaskEventType = "task_panicked"
)

// TaskEvent is published on the pool's broker for each task transition.
type TaskEvent struct {
	Type   TaskEventType
	Worker int
}

// Config holds configuration for the worker pool.
type Config struct {
	Workers    int // Number of pool goroutines (default: 4)
	QueueDepth int // Pending task capacity (default: 16)
}

type task struct {
	fn   func()
	done chan struct{}
}

// Pool runs dispatched functions on a fixed set of goroutines.
type Pool struct {
	tasks  chan task
	done   chan struct{}
	broker *pubsub.Broker[TaskEvent]
	closed atomic.Bool
	once   sync.Once
	wg     sync.WaitGroup
}

// New creates a pool and starts its workers.
func New(cfg Config) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.QueueDepth <= 0 {
		cfg.QueueDepth = DefaultQueueDepth
	}

	p := &Pool{
		tasks:  make(chan task, cfg.QueueDepth),
		done:   make(chan struct{}),
		broker: pubsub.NewBroker[TaskEvent](),
	}

	p.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go p.worker(i)
	}

	return p
}

// Dispatch runs fn on a pool goroutine and blocks until it completes.
// The caller suspends while the task queue is saturated (backpressure)
// and while the task runs. If ctx is cancelled after the task was
// enqueued, Dispatch returns early but the task still runs to completion.
func (p *Pool) Dispatch(ctx context.Context, fn func()) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	t := task{fn: fn, done: make(chan struct{})}

	select {
	case p.tasks <- t:
	case <-p.done:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-t.done:
		return nil
	case <-p.done:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Events exposes the task lifecycle event stream.
func (p *Pool) Events() pubsub.Subscriber[TaskEvent] {
	return p.broker
}

// Close stops the workers. Tasks already running finish; tasks still
// queued are abandoned. Close blocks until all workers have exited.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.closed.Store(true)
		close(p.done)
		p.wg.Wait()
		p.broker.Close()
	})
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case t := <-p.tasks:
			p.run(id, t)
		case <-p.done:
			return
		}
	}
}

func (p *Pool) run(id int, t task) {
	defer close(t.done)
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatPool, "task panicked", "worker", id, "panic", r, "stack", string(debug.Stack()))
			p.publishTask(TaskPanicked, id)
		}
	}()

	p.publishTask(TaskStarted, id)
	t.fn()
	p.publishTask(TaskCompleted, id)
}

func (p *Pool) publishTask(transition TaskEventType, worker int) {
	p.broker.Publish(transition, TaskEvent{Type: transition, Worker: worker})
}
