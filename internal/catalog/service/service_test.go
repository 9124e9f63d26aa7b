package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"biblio/internal/catalog/store"
	dErrors "biblio/pkg/domain-errors"
)

// =============================================================================
// Catalog Service Test Suite
// =============================================================================
// Justification for unit tests: AddBook owns all input validation and the
// duplicate-ISBN rule; search owns the matching semantics. The in-memory
// store mirrors the postgres constraints closely enough for both.

type CatalogServiceSuite struct {
	suite.Suite
	store   *store.InMemory
	service *Service
	ctx     context.Context
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceSuite))
}

func (s *CatalogServiceSuite) SetupTest() {
	s.store = store.NewInMemory()
	s.ctx = context.Background()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var err error
	s.service, err = New(s.store, WithLogger(logger))
	s.Require().NoError(err)
}

// =============================================================================
// AddBook
// =============================================================================

func (s *CatalogServiceSuite) TestAddBook_Success() {
	book, err := s.service.AddBook(s.ctx, "  Dune  ", "Frank Herbert", "1111111111111", 2)
	s.Require().NoError(err)

	s.NotZero(book.ID)
	s.Equal("Dune", book.Title)
	s.Equal(2, book.TotalCopies)
	s.Equal(2, book.AvailableCopies)
}

func (s *CatalogServiceSuite) TestAddBook_Validation() {
	cases := []struct {
		name    string
		title   string
		author  string
		isbn    string
		copies  int
		message string
	}{
		{"blank title", "   ", "Author", "1111111111111", 1, "Title is required."},
		{"title too long", strings.Repeat("x", 201), "Author", "1111111111111", 1, "Title must be less than 200 characters."},
		{"blank author", "Title", "", "1111111111111", 1, "Author is required."},
		{"author too long", "Title", strings.Repeat("x", 101), "1111111111111", 1, "Author must be less than 100 characters."},
		{"short isbn", "Title", "Author", "123", 1, "ISBN must be exactly 13 digits."},
		{"non-digit isbn", "Title", "Author", "111111111111x", 1, "ISBN must be exactly 13 digits."},
		{"zero copies", "Title", "Author", "1111111111111", 0, "Total copies must be a positive integer."},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.AddBook(s.ctx, tc.title, tc.author, tc.isbn, tc.copies)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
			s.Equal(tc.message, dErrors.MessageOf(err))
		})
	}
}

func (s *CatalogServiceSuite) TestAddBook_DuplicateISBN() {
	_, err := s.service.AddBook(s.ctx, "Dune", "Frank Herbert", "1111111111111", 2)
	s.Require().NoError(err)

	_, err = s.service.AddBook(s.ctx, "Other", "Other", "1111111111111", 1)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	s.Equal("A book with this ISBN already exists.", dErrors.MessageOf(err))
}

// =============================================================================
// GetBook / ListBooks
// =============================================================================

func (s *CatalogServiceSuite) TestGetBook() {
	added, err := s.service.AddBook(s.ctx, "Dune", "Frank Herbert", "1111111111111", 2)
	s.Require().NoError(err)

	s.Run("found", func() {
		book, err := s.service.GetBook(s.ctx, added.ID)
		s.Require().NoError(err)
		s.Equal("Dune", book.Title)
	})

	s.Run("not found", func() {
		_, err := s.service.GetBook(s.ctx, 404)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal("Book not found.", dErrors.MessageOf(err))
	})
}

func (s *CatalogServiceSuite) TestListBooks_SortedByTitle() {
	for _, b := range []struct{ title, isbn string }{
		{"zebra", "1111111111111"},
		{"Alpha", "2222222222222"},
		{"moose", "3333333333333"},
	} {
		_, err := s.service.AddBook(s.ctx, b.title, "Author", b.isbn, 1)
		s.Require().NoError(err)
	}

	books, err := s.service.ListBooks(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(books, 3)
	s.Equal("Alpha", books[0].Title)
	s.Equal("moose", books[1].Title)
	s.Equal("zebra", books[2].Title)
}

// =============================================================================
// SearchBooks
// =============================================================================

func (s *CatalogServiceSuite) TestSearchBooks() {
	_, err := s.service.AddBook(s.ctx, "Dune", "Frank Herbert", "1111111111111", 2)
	s.Require().NoError(err)
	_, err = s.service.AddBook(s.ctx, "Dune Messiah", "Frank Herbert", "2222222222222", 1)
	s.Require().NoError(err)
	_, err = s.service.AddBook(s.ctx, "Emma", "Jane Austen", "3333333333333", 1)
	s.Require().NoError(err)

	s.Run("title matches partially and case-insensitively", func() {
		books, err := s.service.SearchBooks(s.ctx, "dune", "title")
		s.Require().NoError(err)
		s.Len(books, 2)
	})

	s.Run("author matches partially", func() {
		books, err := s.service.SearchBooks(s.ctx, "austen", "author")
		s.Require().NoError(err)
		s.Require().Len(books, 1)
		s.Equal("Emma", books[0].Title)
	})

	s.Run("isbn matches exactly", func() {
		books, err := s.service.SearchBooks(s.ctx, "1111111111111", "isbn")
		s.Require().NoError(err)
		s.Require().Len(books, 1)
		s.Equal("Dune", books[0].Title)

		books, err = s.service.SearchBooks(s.ctx, "111111111111", "isbn")
		s.Require().NoError(err)
		s.Empty(books)
	})

	s.Run("blank term yields empty result", func() {
		books, err := s.service.SearchBooks(s.ctx, "   ", "title")
		s.Require().NoError(err)
		s.Empty(books)
	})

	s.Run("unknown search type yields empty result", func() {
		books, err := s.service.SearchBooks(s.ctx, "dune", "publisher")
		s.Require().NoError(err)
		s.Empty(books)
	})
}
