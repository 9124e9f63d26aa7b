package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblio/pkg/domain"
	"biblio/pkg/requestcontext"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	patronID := domain.PatronID("123456")
	event := Event{
		Action:   ActionLoanCreated,
		PatronID: patronID,
		BookID:   1,
		Detail:   "Dune",
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	events, err := pub.List(context.Background(), patronID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ActionLoanCreated, events[0].Action)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestPublisher_AsyncMode(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10))

	patronID := domain.PatronID("654321")
	err := pub.Emit(context.Background(), Event{
		Action:   ActionPaymentProcessed,
		PatronID: patronID,
		Amount:   6.50,
	})
	require.NoError(t, err)

	// Close flushes the buffer before returning.
	pub.Close()

	events, err := pub.List(context.Background(), patronID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ActionPaymentProcessed, events[0].Action)
	assert.Equal(t, 6.50, events[0].Amount)
}

func TestPublisher_StampsRequestTime(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	fixed := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	err := pub.Emit(requestcontext.WithTime(ctx, fixed), Event{
		Action:   ActionLoanReturned,
		PatronID: "111111",
	})
	require.NoError(t, err)

	events, err := pub.List(ctx, "111111")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, fixed, events[0].Timestamp)
}
