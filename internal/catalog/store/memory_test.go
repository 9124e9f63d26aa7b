package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblio/internal/catalog/models"
	"biblio/pkg/platform/sentinel"
)

func TestInMemory_CreateAssignsIDs(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	first := &models.Book{Title: "Dune", Author: "Herbert", ISBN: "1111111111111", TotalCopies: 2, AvailableCopies: 2}
	second := &models.Book{Title: "Emma", Author: "Austen", ISBN: "2222222222222", TotalCopies: 1, AvailableCopies: 1}

	require.NoError(t, s.Create(ctx, first))
	require.NoError(t, s.Create(ctx, second))
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestInMemory_DuplicateISBN(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	require.NoError(t, s.Create(ctx, &models.Book{Title: "Dune", ISBN: "1111111111111"}))
	err := s.Create(ctx, &models.Book{Title: "Other", ISBN: "1111111111111"})
	assert.ErrorIs(t, err, sentinel.ErrConflict)
}

func TestInMemory_Find(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	book := &models.Book{Title: "Dune", ISBN: "1111111111111", TotalCopies: 2, AvailableCopies: 2}
	require.NoError(t, s.Create(ctx, book))

	t.Run("by id", func(t *testing.T) {
		got, err := s.FindByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune", got.Title)

		// Stores hand out copies, not aliases.
		got.AvailableCopies = 99
		again, err := s.FindByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, again.AvailableCopies)
	})

	t.Run("by isbn", func(t *testing.T) {
		got, err := s.FindByISBN(ctx, "1111111111111")
		require.NoError(t, err)
		assert.Equal(t, book.ID, got.ID)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := s.FindByID(ctx, 404)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		_, err = s.FindByISBN(ctx, "9999999999999")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestInMemory_ListOrdersByTitle(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	for _, b := range []struct{ title, isbn string }{
		{"zebra", "1111111111111"},
		{"Alpha", "2222222222222"},
	} {
		require.NoError(t, s.Create(ctx, &models.Book{Title: b.title, ISBN: b.isbn}))
	}

	books, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Alpha", books[0].Title)
	assert.Equal(t, "zebra", books[1].Title)
}

func TestInMemory_AdjustAvailability(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	book := &models.Book{Title: "Dune", ISBN: "1111111111111", TotalCopies: 2, AvailableCopies: 2}
	require.NoError(t, s.Create(ctx, book))

	require.NoError(t, s.AdjustAvailability(ctx, book.ID, -1))
	got, err := s.FindByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.AvailableCopies)

	assert.ErrorIs(t, s.AdjustAvailability(ctx, 404, -1), sentinel.ErrNotFound)
}
