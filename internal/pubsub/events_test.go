package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// mapping mirrors the payload shape the registry publishes on mutations.
type mapping struct {
	Name string
	UID  string
}

func TestEventEnvelopeCarriesMutationKind(t *testing.T) {
	b := NewBroker[mapping]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := b.Subscribe(ctx)

	b.Publish(CreatedEvent, mapping{Name: "movies", UID: "aaaaaaaa-0000-4000-8000-000000000001"})
	b.Publish(UpdatedEvent, mapping{Name: "movies", UID: "aaaaaaaa-0000-4000-8000-000000000002"})
	b.Publish(DeletedEvent, mapping{Name: "movies", UID: "aaaaaaaa-0000-4000-8000-000000000002"})

	var got []Event[mapping]
	deadline := time.After(time.Second)
	for len(got) < 3 {
		select {
		case ev := <-sub:
			got = append(got, ev)
		case <-deadline:
			t.Fatal("timed out waiting for mutation events")
		}
	}

	require.Equal(t, CreatedEvent, got[0].Type)
	require.Equal(t, UpdatedEvent, got[1].Type)
	require.Equal(t, DeletedEvent, got[2].Type)

	require.Equal(t, "aaaaaaaa-0000-4000-8000-000000000001", got[0].Payload.UID)
	require.Equal(t, got[1].Payload.UID, got[2].Payload.UID, "delete should report the last inserted identifier")

	for _, ev := range got {
		require.Equal(t, "movies", ev.Payload.Name)
		require.False(t, ev.Timestamp.IsZero())
	}
	require.False(t, got[2].Timestamp.Before(got[0].Timestamp))
}

func TestEventCustomTypesPassThroughUnchanged(t *testing.T) {
	const taskStarted EventType = "task_started"

	b := NewBroker[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := b.Subscribe(ctx)

	b.Publish(taskStarted, 3)

	select {
	case ev := <-sub:
		require.Equal(t, taskStarted, ev.Type)
		require.Equal(t, 3, ev.Payload)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}
