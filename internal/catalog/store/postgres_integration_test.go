//go:build integration

package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"biblio/internal/catalog/models"
	"biblio/internal/storage"
	"biblio/pkg/platform/sentinel"
	"biblio/pkg/testutil/containers"
)

type CatalogPostgresSuite struct {
	suite.Suite
	pc    *containers.PostgresContainer
	store *Postgres
	ctx   context.Context
}

func TestCatalogPostgresSuite(t *testing.T) {
	suite.Run(t, new(CatalogPostgresSuite))
}

func (s *CatalogPostgresSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pc = containers.NewPostgresContainer(s.T())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Require().NoError(storage.Migrate(s.pc.URL, logger))
	s.store = NewPostgres(s.pc.DB)
}

func (s *CatalogPostgresSuite) SetupTest() {
	s.Require().NoError(s.pc.TruncateAll(s.ctx))
}

func (s *CatalogPostgresSuite) TestCreateAndFind() {
	book := &models.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "1111111111111", TotalCopies: 2, AvailableCopies: 2}
	s.Require().NoError(s.store.Create(s.ctx, book))
	s.NotZero(book.ID)

	byID, err := s.store.FindByID(s.ctx, book.ID)
	s.Require().NoError(err)
	s.Equal("Dune", byID.Title)

	byISBN, err := s.store.FindByISBN(s.ctx, "1111111111111")
	s.Require().NoError(err)
	s.Equal(book.ID, byISBN.ID)
}

func (s *CatalogPostgresSuite) TestDuplicateISBN() {
	first := &models.Book{Title: "Dune", Author: "Herbert", ISBN: "1111111111111", TotalCopies: 1, AvailableCopies: 1}
	s.Require().NoError(s.store.Create(s.ctx, first))

	dup := &models.Book{Title: "Other", Author: "Other", ISBN: "1111111111111", TotalCopies: 1, AvailableCopies: 1}
	s.ErrorIs(s.store.Create(s.ctx, dup), sentinel.ErrConflict)
}

func (s *CatalogPostgresSuite) TestNotFound() {
	_, err := s.store.FindByID(s.ctx, 404)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.AdjustAvailability(s.ctx, 404, -1), sentinel.ErrNotFound)
}

func (s *CatalogPostgresSuite) TestListOrdersByTitle() {
	for _, b := range []models.Book{
		{Title: "zebra", Author: "A", ISBN: "1111111111111", TotalCopies: 1, AvailableCopies: 1},
		{Title: "Alpha", Author: "A", ISBN: "2222222222222", TotalCopies: 1, AvailableCopies: 1},
	} {
		book := b
		s.Require().NoError(s.store.Create(s.ctx, &book))
	}

	books, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(books, 2)
	s.Equal("Alpha", books[0].Title)
}

func (s *CatalogPostgresSuite) TestAdjustAvailability() {
	book := &models.Book{Title: "Dune", Author: "Herbert", ISBN: "1111111111111", TotalCopies: 2, AvailableCopies: 2}
	s.Require().NoError(s.store.Create(s.ctx, book))

	s.Require().NoError(s.store.AdjustAvailability(s.ctx, book.ID, -1))
	got, err := s.store.FindByID(s.ctx, book.ID)
	s.Require().NoError(err)
	s.Equal(1, got.AvailableCopies)
}
