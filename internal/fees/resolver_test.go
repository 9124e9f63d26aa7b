package fees_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmodels "biblio/internal/catalog/models"
	catalogstore "biblio/internal/catalog/store"
	circmodels "biblio/internal/circulation/models"
	"biblio/internal/circulation/store"
	"biblio/internal/fees"
	"biblio/pkg/domain"
	dErrors "biblio/pkg/domain-errors"
	"biblio/pkg/requestcontext"
)

func newResolverFixture(t *testing.T) (*fees.Resolver, *store.InMemory, *catalogstore.InMemory) {
	t.Helper()
	catalog := catalogstore.NewInMemory()
	loans := store.NewInMemory(catalog)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver, err := fees.NewResolver(loans, fees.WithLogger(logger))
	require.NoError(t, err)
	return resolver, loans, catalog
}

func seedBook(t *testing.T, catalog *catalogstore.InMemory, title string) int64 {
	t.Helper()
	book := &catalogmodels.Book{
		Title: title, Author: "Author", ISBN: "1111111111111",
		TotalCopies: 2, AvailableCopies: 2,
	}
	require.NoError(t, catalog.Create(context.Background(), book))
	return book.ID
}

func TestResolver_ActiveLoan(t *testing.T) {
	resolver, loans, catalog := newResolverFixture(t)
	bookID := seedBook(t, catalog, "Dune")

	now := time.Date(2025, 6, 25, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	require.NoError(t, loans.Create(ctx, &circmodels.Loan{
		ID:         uuid.New(),
		PatronID:   "123456",
		BookID:     bookID,
		BorrowDate: now.Add(-24 * 24 * time.Hour),
		DueDate:    now.Add(-10 * 24 * time.Hour),
	}))

	got, err := resolver.Resolve(ctx, "123456", bookID)
	require.NoError(t, err)
	assert.Equal(t, fees.StatusActive, got.Status)
	assert.Equal(t, 10, got.DaysOverdue)
	assert.InDelta(t, 6.50, got.FeeAmount, 0.001)
}

func TestResolver_ClosedLoanPricedAtReturnDate(t *testing.T) {
	resolver, loans, catalog := newResolverFixture(t)
	bookID := seedBook(t, catalog, "Dune")

	now := time.Date(2025, 6, 25, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	// Returned 3 days past due; fee frozen at the return date no matter how
	// much later the lookup happens.
	due := now.Add(-30 * 24 * time.Hour)
	returned := due.Add(3 * 24 * time.Hour)
	require.NoError(t, loans.Create(ctx, &circmodels.Loan{
		ID:         uuid.New(),
		PatronID:   "123456",
		BookID:     bookID,
		BorrowDate: due.Add(-14 * 24 * time.Hour),
		DueDate:    due,
		ReturnDate: &returned,
	}))

	got, err := resolver.Resolve(ctx, "123456", bookID)
	require.NoError(t, err)
	assert.Equal(t, fees.StatusClosed, got.Status)
	assert.Equal(t, 3, got.DaysOverdue)
	assert.InDelta(t, 1.50, got.FeeAmount, 0.001)
}

func TestResolver_MostRecentLoanWins(t *testing.T) {
	resolver, loans, catalog := newResolverFixture(t)
	bookID := seedBook(t, catalog, "Dune")

	now := time.Date(2025, 6, 25, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	oldDue := now.Add(-60 * 24 * time.Hour)
	oldReturned := oldDue.Add(10 * 24 * time.Hour)
	require.NoError(t, loans.Create(ctx, &circmodels.Loan{
		ID: uuid.New(), PatronID: "123456", BookID: bookID,
		BorrowDate: oldDue.Add(-14 * 24 * time.Hour), DueDate: oldDue, ReturnDate: &oldReturned,
	}))

	recentDue := now.Add(-20 * 24 * time.Hour)
	recentReturned := recentDue.Add(-1 * 24 * time.Hour)
	require.NoError(t, loans.Create(ctx, &circmodels.Loan{
		ID: uuid.New(), PatronID: "123456", BookID: bookID,
		BorrowDate: recentDue.Add(-14 * 24 * time.Hour), DueDate: recentDue, ReturnDate: &recentReturned,
	}))

	got, err := resolver.Resolve(ctx, "123456", bookID)
	require.NoError(t, err)
	assert.Equal(t, fees.StatusClosed, got.Status)
	assert.Zero(t, got.DaysOverdue)
	assert.Zero(t, got.FeeAmount)
}

func TestResolver_NoRecord(t *testing.T) {
	resolver, _, catalog := newResolverFixture(t)
	bookID := seedBook(t, catalog, "Dune")

	got, err := resolver.Resolve(context.Background(), "123456", bookID)
	require.NoError(t, err)
	assert.Equal(t, fees.Assessment{FeeAmount: 0, DaysOverdue: 0, Status: fees.StatusNoRecord}, got)
}

func TestResolver_HistoryFailureDegradesToNoRecord(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver, err := fees.NewResolver(&brokenHistory{recentErr: errors.New("timeout")}, fees.WithLogger(logger))
	require.NoError(t, err)

	got, err := resolver.Resolve(context.Background(), "123456", 1)
	require.NoError(t, err)
	assert.Equal(t, fees.StatusNoRecord, got.Status)
}

func TestResolver_ActiveLookupFailureIsFatal(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver, err := fees.NewResolver(&brokenHistory{activeErr: errors.New("timeout")}, fees.WithLogger(logger))
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), "123456", 1)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

type brokenHistory struct {
	activeErr error
	recentErr error
}

func (b *brokenHistory) ListActiveByPatron(context.Context, domain.PatronID) ([]circmodels.ActiveLoan, error) {
	if b.activeErr != nil {
		return nil, b.activeErr
	}
	return nil, nil
}

func (b *brokenHistory) MostRecent(context.Context, domain.PatronID, int64) (*circmodels.Loan, error) {
	return nil, b.recentErr
}
