package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	catalogmodels "biblio/internal/catalog/models"
	"biblio/internal/circulation/models"
	"biblio/pkg/domain"
	"biblio/pkg/platform/sentinel"
)

// BookDirectory supplies titles/authors for the joined views the memory
// store produces. The catalog memory store satisfies it.
type BookDirectory interface {
	FindByID(ctx context.Context, id int64) (*catalogmodels.Book, error)
}

// InMemory keeps loans in a map, joining book data through a BookDirectory.
type InMemory struct {
	mu    sync.RWMutex
	loans map[uuid.UUID]*models.Loan
	books BookDirectory
}

func NewInMemory(books BookDirectory) *InMemory {
	return &InMemory{
		loans: make(map[uuid.UUID]*models.Loan),
		books: books,
	}
}

func (s *InMemory) Create(_ context.Context, loan *models.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *loan
	s.loans[loan.ID] = &clone
	return nil
}

func (s *InMemory) CountActiveByPatron(_ context.Context, patronID domain.PatronID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, loan := range s.loans {
		if loan.PatronID == patronID && loan.Active() {
			count++
		}
	}
	return count, nil
}

func (s *InMemory) ListActiveByPatron(ctx context.Context, patronID domain.PatronID) ([]models.ActiveLoan, error) {
	s.mu.RLock()
	open := make([]*models.Loan, 0)
	for _, loan := range s.loans {
		if loan.PatronID == patronID && loan.Active() {
			open = append(open, loan)
		}
	}
	s.mu.RUnlock()

	sort.Slice(open, func(i, j int) bool {
		return open[i].BorrowDate.Before(open[j].BorrowDate)
	})

	active := make([]models.ActiveLoan, 0, len(open))
	for _, loan := range open {
		book, err := s.books.FindByID(ctx, loan.BookID)
		if err != nil {
			return nil, err
		}
		active = append(active, models.ActiveLoan{
			LoanID:     loan.ID,
			BookID:     loan.BookID,
			Title:      book.Title,
			Author:     book.Author,
			BorrowDate: loan.BorrowDate,
			DueDate:    loan.DueDate,
		})
	}
	return active, nil
}

// Close sets the return date on the active loan for (patron, book).
// Returns sentinel.ErrNotFound when no such loan is open.
func (s *InMemory) Close(_ context.Context, patronID domain.PatronID, bookID int64, returnedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, loan := range s.loans {
		if loan.PatronID == patronID && loan.BookID == bookID && loan.Active() {
			ts := returnedAt
			loan.ReturnDate = &ts
			return nil
		}
	}
	return sentinel.ErrNotFound
}

// MostRecent returns the latest loan (by borrow date) for the pair,
// regardless of whether it is open or closed.
func (s *InMemory) MostRecent(_ context.Context, patronID domain.PatronID, bookID int64) (*models.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *models.Loan
	for _, loan := range s.loans {
		if loan.PatronID != patronID || loan.BookID != bookID {
			continue
		}
		if latest == nil || loan.BorrowDate.After(latest.BorrowDate) {
			latest = loan
		}
	}
	if latest == nil {
		return nil, sentinel.ErrNotFound
	}
	clone := *latest
	return &clone, nil
}

// History returns every loan the patron ever made, most recent first.
func (s *InMemory) History(ctx context.Context, patronID domain.PatronID) ([]models.HistoryEntry, error) {
	s.mu.RLock()
	owned := make([]*models.Loan, 0)
	for _, loan := range s.loans {
		if loan.PatronID == patronID {
			owned = append(owned, loan)
		}
	}
	s.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool {
		return owned[i].BorrowDate.After(owned[j].BorrowDate)
	})

	history := make([]models.HistoryEntry, 0, len(owned))
	for _, loan := range owned {
		book, err := s.books.FindByID(ctx, loan.BookID)
		if err != nil {
			return nil, err
		}
		history = append(history, models.HistoryEntry{
			BookID:     loan.BookID,
			Title:      book.Title,
			Author:     book.Author,
			BorrowDate: loan.BorrowDate,
			DueDate:    loan.DueDate,
			ReturnDate: loan.ReturnDate,
		})
	}
	return history, nil
}
