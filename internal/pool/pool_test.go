package pool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPool_DispatchRunsTask(t *testing.T) {
	p := New(Config{Workers: 2})
	defer p.Close()

	var ran atomic.Bool
	err := p.Dispatch(context.Background(), func() { ran.Store(true) })
	require.NoError(t, err)
	require.True(t, ran.Load(), "task should have run before Dispatch returned")
}

func TestPool_DispatchReturnsResultViaClosure(t *testing.T) {
	p := New(Config{Workers: 1})
	defer p.Close()

	var got int
	err := p.Dispatch(context.Background(), func() { got = 42 })
	require.NoError(t, err)
	require.Equal(t, 42, got)
}

func TestPool_ConcurrentDispatches(t *testing.T) {
	p := New(Config{Workers: 4, QueueDepth: 4})
	defer p.Close()

	const n = 50
	var count atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			err := p.Dispatch(context.Background(), func() { count.Add(1) })
			require.NoError(t, err)
		}()
	}
	wg.Wait()
	require.Equal(t, int64(n), count.Load())
}

func TestPool_DispatchAfterCloseFails(t *testing.T) {
	p := New(Config{Workers: 1})
	p.Close()

	err := p.Dispatch(context.Background(), func() {})
	require.ErrorIs(t, err, ErrPoolClosed)
}

func TestPool_CancelledContextBeforeEnqueue(t *testing.T) {
	p := New(Config{Workers: 1, QueueDepth: 1})
	defer p.Close()

	// Occupy the single worker and fill the queue so enqueue blocks.
	block := make(chan struct{})
	go func() { _ = p.Dispatch(context.Background(), func() { <-block }) }()
	go func() { _ = p.Dispatch(context.Background(), func() {}) }()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Dispatch(ctx, func() {})
	require.ErrorIs(t, err, context.Canceled)

	close(block)
}

func TestPool_AbandonedTaskStillCompletes(t *testing.T) {
	p := New(Config{Workers: 1})
	defer p.Close()

	started := make(chan struct{})
	finished := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- p.Dispatch(ctx, func() {
			close(started)
			time.Sleep(100 * time.Millisecond)
			close(finished)
		})
	}()

	<-started
	cancel() // abandon while the task is running

	require.ErrorIs(t, <-errCh, context.Canceled)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("abandoned task did not run to completion")
	}
}

func TestPool_PanickingTaskDoesNotKillWorker(t *testing.T) {
	p := New(Config{Workers: 1})
	defer p.Close()

	_ = p.Dispatch(context.Background(), func() { panic("boom") })

	var ran atomic.Bool
	err := p.Dispatch(context.Background(), func() { ran.Store(true) })
	require.NoError(t, err)
	require.True(t, ran.Load(), "worker should survive a panicking task")
}

func TestPool_PublishesTaskEvents(t *testing.T) {
	p := New(Config{Workers: 1})
	defer p.Close()

	ctx, cancelSub := context.WithCancel(context.Background())
	defer cancelSub()
	events := p.Events().Subscribe(ctx)

	require.NoError(t, p.Dispatch(context.Background(), func() {}))

	var types []TaskEventType
	deadline := time.After(time.Second)
	for len(types) < 2 {
		select {
		case ev := <-events:
			require.Equal(t, ev.Payload.Type, ev.Type, "envelope type should match the lifecycle transition")
			types = append(types, ev.Payload.Type)
		case <-deadline:
			t.Fatal("timed out waiting for task events")
		}
	}
	require.Equal(t, []TaskEventType{TaskStarted, TaskCompleted}, types)
}

func TestPool_PanickedTaskPublishesPanickedEvent(t *testing.T) {
	p := New(Config{Workers: 1})
	defer p.Close()

	ctx, cancelSub := context.WithCancel(context.Background())
	defer cancelSub()
	events := p.Events().Subscribe(ctx)

	_ = p.Dispatch(context.Background(), func() { panic("boom") })

	deadline := time.After(time.Second)
	for {
		select {
		case ev := <-events:
			require.Equal(t, ev.Payload.Type, ev.Type)
			if ev.Type == TaskPanicked {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for the panicked event")
		}
	}
}
