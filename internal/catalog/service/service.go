// Package service implements catalog management: adding books and searching.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"biblio/internal/catalog/models"
	dErrors "biblio/pkg/domain-errors"
	"biblio/pkg/platform/sentinel"
)

const (
	maxTitleLen  = 200
	maxAuthorLen = 100
	isbnLen      = 13
)

// BookStore is the catalog persistence the service consumes.
type BookStore interface {
	Create(ctx context.Context, book *models.Book) error
	FindByID(ctx context.Context, id int64) (*models.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*models.Book, error)
	List(ctx context.Context) ([]models.Book, error)
}

// Service manages the book catalog.
type Service struct {
	books  BookStore
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(books BookStore, opts ...Option) (*Service, error) {
	if books == nil {
		return nil, errors.New("book store is required")
	}
	s := &Service{
		books:  books,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AddBook validates and inserts a new catalog entry. All copies start on the
// shelf: available_copies == total_copies.
func (s *Service) AddBook(ctx context.Context, title, author, isbn string, totalCopies int) (*models.Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	switch {
	case title == "":
		return nil, dErrors.New(dErrors.CodeBadRequest, "Title is required.")
	case utf8.RuneCountInString(title) > maxTitleLen:
		return nil, dErrors.New(dErrors.CodeBadRequest, "Title must be less than 200 characters.")
	case author == "":
		return nil, dErrors.New(dErrors.CodeBadRequest, "Author is required.")
	case utf8.RuneCountInString(author) > maxAuthorLen:
		return nil, dErrors.New(dErrors.CodeBadRequest, "Author must be less than 100 characters.")
	case !validISBN(isbn):
		return nil, dErrors.New(dErrors.CodeBadRequest, "ISBN must be exactly 13 digits.")
	case totalCopies <= 0:
		return nil, dErrors.New(dErrors.CodeBadRequest, "Total copies must be a positive integer.")
	}

	if _, err := s.books.FindByISBN(ctx, isbn); err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "A book with this ISBN already exists.")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Database error occurred while adding the book.")
	}

	book := &models.Book{
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
	}
	if err := s.books.Create(ctx, book); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "A book with this ISBN already exists.")
		}
		s.logger.ErrorContext(ctx, "failed to insert book", "isbn", isbn, "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Database error occurred while adding the book.")
	}
	return book, nil
}

// GetBook fetches a single catalog entry.
func (s *Service) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Book not found.")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Database error occurred while fetching the book.")
	}
	return book, nil
}

// ListBooks returns the whole catalog ordered by title.
func (s *Service) ListBooks(ctx context.Context) ([]models.Book, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Database error occurred while listing books.")
	}
	return books, nil
}

// SearchBooks filters the catalog. Title and author match partially and
// case-insensitively; isbn matches exactly. Unknown search types and blank
// terms yield an empty result rather than an error.
func (s *Service) SearchBooks(ctx context.Context, term, searchType string) ([]models.Book, error) {
	term = strings.TrimSpace(term)
	if term == "" || (searchType != "title" && searchType != "author" && searchType != "isbn") {
		return []models.Book{}, nil
	}

	books, err := s.books.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Database error occurred while searching books.")
	}

	matched := []models.Book{}
	lowered := strings.ToLower(term)
	for _, book := range books {
		switch searchType {
		case "isbn":
			if strings.TrimSpace(book.ISBN) == term {
				matched = append(matched, book)
			}
		case "title":
			if strings.Contains(strings.ToLower(book.Title), lowered) {
				matched = append(matched, book)
			}
		case "author":
			if strings.Contains(strings.ToLower(book.Author), lowered) {
				matched = append(matched, book)
			}
		}
	}
	return matched, nil
}

func validISBN(isbn string) bool {
	if len(isbn) != isbnLen {
		return false
	}
	for _, c := range isbn {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
