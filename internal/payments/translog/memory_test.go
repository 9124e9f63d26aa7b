package translog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblio/pkg/platform/sentinel"
)

func TestInMemoryLog(t *testing.T) {
	ctx := context.Background()
	log := NewInMemory()

	t.Run("records and finds a transaction", func(t *testing.T) {
		txn := Transaction{
			ID:          "txn_123456_1700000000",
			PatronID:    "123456",
			Amount:      6.50,
			Description: "Late fees for 'Dune'",
			ProcessedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		}
		require.NoError(t, log.Record(ctx, txn))

		found, err := log.Find(ctx, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, txn, *found)
	})

	t.Run("unknown id returns ErrNotFound", func(t *testing.T) {
		_, err := log.Find(ctx, "txn_999999_1")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
