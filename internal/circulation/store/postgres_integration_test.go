//go:build integration

package store

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	catalogmodels "biblio/internal/catalog/models"
	catalogstore "biblio/internal/catalog/store"
	"biblio/internal/circulation/models"
	"biblio/internal/storage"
	"biblio/pkg/domain"
	"biblio/pkg/platform/sentinel"
	"biblio/pkg/testutil/containers"
)

type LoanPostgresSuite struct {
	suite.Suite
	pc      *containers.PostgresContainer
	store   *Postgres
	catalog *catalogstore.Postgres
	ctx     context.Context
	bookID  int64
}

func TestLoanPostgresSuite(t *testing.T) {
	suite.Run(t, new(LoanPostgresSuite))
}

func (s *LoanPostgresSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pc = containers.NewPostgresContainer(s.T())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Require().NoError(storage.Migrate(s.pc.URL, logger))
	s.store = NewPostgres(s.pc.DB)
	s.catalog = catalogstore.NewPostgres(s.pc.DB)
}

func (s *LoanPostgresSuite) SetupTest() {
	s.Require().NoError(s.pc.TruncateAll(s.ctx))

	book := &catalogmodels.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "1111111111111", TotalCopies: 2, AvailableCopies: 2}
	s.Require().NoError(s.catalog.Create(s.ctx, book))
	s.bookID = book.ID
}

func (s *LoanPostgresSuite) open(patron string, borrowed time.Time) *models.Loan {
	loan := &models.Loan{
		ID:         uuid.New(),
		PatronID:   domain.PatronID(patron),
		BookID:     s.bookID,
		BorrowDate: borrowed,
		DueDate:    borrowed.Add(14 * 24 * time.Hour),
	}
	s.Require().NoError(s.store.Create(s.ctx, loan))
	return loan
}

func (s *LoanPostgresSuite) TestActiveLoans() {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s.open("123456", base.Add(24*time.Hour))
	s.open("123456", base)
	s.open("654321", base)

	count, err := s.store.CountActiveByPatron(s.ctx, "123456")
	s.Require().NoError(err)
	s.Equal(2, count)

	active, err := s.store.ListActiveByPatron(s.ctx, "123456")
	s.Require().NoError(err)
	s.Require().Len(active, 2)
	s.Equal("Dune", active[0].Title)
	s.True(active[0].BorrowDate.Equal(base))
}

func (s *LoanPostgresSuite) TestClose() {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s.open("123456", base)

	returnedAt := base.Add(10 * 24 * time.Hour)
	s.Require().NoError(s.store.Close(s.ctx, "123456", s.bookID, returnedAt))

	count, err := s.store.CountActiveByPatron(s.ctx, "123456")
	s.Require().NoError(err)
	s.Zero(count)

	loan, err := s.store.MostRecent(s.ctx, "123456", s.bookID)
	s.Require().NoError(err)
	s.Require().NotNil(loan.ReturnDate)
	s.True(loan.ReturnDate.Equal(returnedAt))

	s.ErrorIs(s.store.Close(s.ctx, "123456", s.bookID, returnedAt), sentinel.ErrNotFound)
}

func (s *LoanPostgresSuite) TestMostRecent() {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s.open("123456", base)
	latest := s.open("123456", base.Add(48*time.Hour))

	got, err := s.store.MostRecent(s.ctx, "123456", s.bookID)
	s.Require().NoError(err)
	s.Equal(latest.ID, got.ID)

	_, err = s.store.MostRecent(s.ctx, "999999", s.bookID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *LoanPostgresSuite) TestHistory() {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s.open("123456", base)
	s.open("123456", base.Add(24*time.Hour))
	s.Require().NoError(s.store.Close(s.ctx, "123456", s.bookID, base.Add(30*24*time.Hour)))

	history, err := s.store.History(s.ctx, "123456")
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.True(history[0].BorrowDate.Equal(base.Add(24 * time.Hour)))
}
