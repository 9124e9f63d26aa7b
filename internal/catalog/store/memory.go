package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"biblio/internal/catalog/models"
	"biblio/pkg/platform/sentinel"
)

// InMemory keeps the catalog in a map. It favors clarity over performance
// and backs unit tests as well as gateway-less local runs.
type InMemory struct {
	mu     sync.RWMutex
	books  map[int64]*models.Book
	byISBN map[string]int64
	nextID int64
}

func NewInMemory() *InMemory {
	return &InMemory{
		books:  make(map[int64]*models.Book),
		byISBN: make(map[string]int64),
	}
}

// Create assigns an ID and stores the book. Duplicate ISBNs return
// sentinel.ErrConflict, mirroring the unique constraint in postgres.
func (s *InMemory) Create(_ context.Context, book *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byISBN[book.ISBN]; exists {
		return sentinel.ErrConflict
	}
	s.nextID++
	book.ID = s.nextID
	clone := *book
	s.books[book.ID] = &clone
	s.byISBN[book.ISBN] = book.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id int64) (*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if book, ok := s.books[id]; ok {
		clone := *book
		return &clone, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindByISBN(_ context.Context, isbn string) (*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id, ok := s.byISBN[isbn]; ok {
		clone := *s.books[id]
		return &clone, nil
	}
	return nil, sentinel.ErrNotFound
}

// List returns all books ordered by title (case-insensitive).
func (s *InMemory) List(_ context.Context) ([]models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]models.Book, 0, len(s.books))
	for _, book := range s.books {
		books = append(books, *book)
	}
	sort.Slice(books, func(i, j int) bool {
		return strings.ToLower(books[i].Title) < strings.ToLower(books[j].Title)
	})
	return books, nil
}

// AdjustAvailability applies a delta to available_copies. The store does not
// clamp; the circulation rules decide when a delta is legal.
func (s *InMemory) AdjustAvailability(_ context.Context, id int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	book.AvailableCopies += delta
	return nil
}
