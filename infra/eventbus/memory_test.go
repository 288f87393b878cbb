package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/amirasaad/networth/pkg/domain/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryEventBus_DispatchesByType(t *testing.T) {
	bus := NewWithMemory(discardLogger())
	var got []uuid.UUID
	bus.Register(events.EventTypeExchangeRateChanged.String(), func(_ context.Context, e events.Event) error {
		got = append(got, e.(*events.ExchangeRateChanged).UserID)
		return nil
	})

	userID := uuid.New()
	require.NoError(t, bus.Emit(context.Background(), &events.ExchangeRateChanged{UserID: userID}))
	require.NoError(t, bus.Emit(context.Background(), &events.UserRegistered{UserID: uuid.New()}))

	assert.Equal(t, []uuid.UUID{userID}, got)
	assert.Len(t, bus.Published(), 2)

	bus.ClearPublished()
	assert.Empty(t, bus.Published())
}

func TestMemoryEventBus_HandlerFailureDoesNotStopOthers(t *testing.T) {
	bus := NewWithMemory(discardLogger())
	calls := 0
	bus.Register(events.EventTypeSummaryRecomputed.String(), func(context.Context, events.Event) error {
		calls++
		return errors.New("boom")
	})
	bus.Register(events.EventTypeSummaryRecomputed.String(), func(context.Context, events.Event) error {
		calls++
		panic("handler panic")
	})
	bus.Register(events.EventTypeSummaryRecomputed.String(), func(context.Context, events.Event) error {
		calls++
		return nil
	})

	err := bus.Emit(context.Background(), &events.SummaryRecomputed{UserID: uuid.New()})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestNameFor(t *testing.T) {
	assert.Equal(t, "networth:events:exchangerate:changed", streamNameFor("networth", "ExchangeRate.Changed"))
	assert.Equal(t, "networth:dlq:user:registered", dlqStreamName("networth", "User.Registered"))
	assert.Equal(t, "workers:group:test", groupNameFor("workers", "test"))
}
