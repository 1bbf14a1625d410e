package eventbus_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dukex/superagente/pkg/channels/gochannel"
	"github.com/dukex/superagente/pkg/eventbus"
	"github.com/dukex/superagente/pkg/events"
	"github.com/dukex/superagente/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBus(t *testing.T) *eventbus.WatermillEventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)
	t.Cleanup(func() { _ = bus.Close() })

	return bus
}

func TestWatermillEventBus_PublishSubscribe(t *testing.T) {
	t.Parallel()

	bus := newBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan *events.WorkflowExecutionCompleted, 1)

	require.NoError(t, bus.Handle(events.WorkflowExecutionCompletedEvent, func(_ context.Context, event any) error {
		received <- event.(*events.WorkflowExecutionCompleted)

		return nil
	}))
	require.NoError(t, bus.Subscribe(ctx))

	err := bus.Publish(ctx, "wf-1", events.WorkflowExecutionCompleted{
		BaseEvent:    events.NewBaseEvent(events.WorkflowExecutionCompletedEvent, "wf-1"),
		ExecutionID:  "exec-1",
		NodeStatuses: map[string]models.ResultStatus{"1": models.ResultStatusCompleted},
	})
	require.NoError(t, err)

	select {
	case event := <-received:
		assert.Equal(t, "wf-1", event.WorkflowID)
		assert.Equal(t, "exec-1", event.ExecutionID)
		assert.Equal(t, models.ResultStatusCompleted, event.NodeStatuses["1"])
	case <-time.After(5 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestWatermillEventBus_UnhandledEventsAreAcked(t *testing.T) {
	t.Parallel()

	bus := newBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	failed := make(chan *events.WorkflowExecutionFailed, 1)

	require.NoError(t, bus.Handle(events.WorkflowExecutionFailedEvent, func(_ context.Context, event any) error {
		failed <- event.(*events.WorkflowExecutionFailed)

		return nil
	}))
	require.NoError(t, bus.Subscribe(ctx))

	require.NoError(t, bus.Publish(ctx, "wf-1", events.WorkflowExecutionStarted{
		BaseEvent: events.NewBaseEvent(events.WorkflowExecutionStartedEvent, "wf-1"),
	}))
	require.NoError(t, bus.Publish(ctx, "wf-1", events.WorkflowExecutionFailed{
		BaseEvent: events.NewBaseEvent(events.WorkflowExecutionFailedEvent, "wf-1"),
		Error:     "cycle detected",
	}))

	select {
	case event := <-failed:
		assert.Equal(t, "cycle detected", event.Error)
	case <-time.After(5 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestWatermillEventBus_GenerateID(t *testing.T) {
	t.Parallel()

	bus := newBus(t)

	assert.NotEqual(t, bus.GenerateID(), bus.GenerateID())
}
