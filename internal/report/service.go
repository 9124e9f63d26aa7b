// Package report builds patron status reports: current loans with accrued
// fees, the fee total, and the full borrowing history.
package report

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	circmodels "biblio/internal/circulation/models"
	"biblio/internal/fees"
	"biblio/pkg/domain"
	dErrors "biblio/pkg/domain-errors"
	"biblio/pkg/requestcontext"
)

// LoanStore is the loan persistence the reporter reads.
type LoanStore interface {
	ListActiveByPatron(ctx context.Context, patronID domain.PatronID) ([]circmodels.ActiveLoan, error)
	History(ctx context.Context, patronID domain.PatronID) ([]circmodels.HistoryEntry, error)
}

// BorrowedItem is a current loan enriched with overdue state.
type BorrowedItem struct {
	BookID      int64     `json:"book_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	BorrowDate  time.Time `json:"borrow_date"`
	DueDate     time.Time `json:"due_date"`
	DaysOverdue int       `json:"days_overdue"`
	LateFee     float64   `json:"late_fee"`
}

// HistoryItem is any loan the patron ever made, with its fee priced against
// the return date when closed, or now while still out.
type HistoryItem struct {
	BookID      int64      `json:"book_id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	BorrowDate  time.Time  `json:"borrow_date"`
	DueDate     time.Time  `json:"due_date"`
	ReturnDate  *time.Time `json:"return_date"`
	DaysOverdue int        `json:"days_overdue"`
	LateFee     float64    `json:"late_fee"`
}

// StatusReport aggregates a patron's standing.
type StatusReport struct {
	Status             string          `json:"status"`
	PatronID           domain.PatronID `json:"patron_id"`
	CurrentBorrowCount int             `json:"current_borrow_count"`
	TotalLateFees      float64         `json:"total_late_fees"`
	CurrentlyBorrowed  []BorrowedItem  `json:"currently_borrowed"`
	History            []HistoryItem   `json:"history"`
}

// Service builds status reports.
type Service struct {
	loans  LoanStore
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

func New(loans LoanStore, opts ...Option) (*Service, error) {
	if loans == nil {
		return nil, errors.New("loan store is required")
	}
	s := &Service{
		loans:  loans,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Report assembles the patron's status. Current loans are authoritative: a
// failure there fails the call. History is best-effort: a failure degrades
// to an empty list and is logged, never surfaced.
func (s *Service) Report(ctx context.Context, rawPatronID string) (*StatusReport, error) {
	patronID, err := domain.ParsePatronID(rawPatronID)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)

	var (
		active  []circmodels.ActiveLoan
		history []circmodels.HistoryEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		active, err = s.loans.ListActiveByPatron(gctx, patronID)
		return err
	})
	g.Go(func() error {
		entries, err := s.loans.History(gctx, patronID)
		if err != nil {
			s.logger.WarnContext(gctx, "history unavailable, returning partial report",
				"patron_id", patronID,
				"request_id", requestcontext.RequestID(gctx), "error", err)
			return nil
		}
		history = entries
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Database error occurred while loading borrowed books.")
	}

	current := make([]BorrowedItem, 0, len(active))
	total := 0.0
	for _, loan := range active {
		days := fees.DaysOverdue(loan.DueDate, now)
		fee := fees.LateFee(days)
		total += fee
		current = append(current, BorrowedItem{
			BookID:      loan.BookID,
			Title:       loan.Title,
			Author:      loan.Author,
			BorrowDate:  loan.BorrowDate,
			DueDate:     loan.DueDate,
			DaysOverdue: days,
			LateFee:     fees.RoundCents(fee),
		})
	}

	items := make([]HistoryItem, 0, len(history))
	for _, entry := range history {
		basis := now
		if entry.ReturnDate != nil {
			basis = *entry.ReturnDate
		}
		days := fees.DaysOverdue(entry.DueDate, basis)
		items = append(items, HistoryItem{
			BookID:      entry.BookID,
			Title:       entry.Title,
			Author:      entry.Author,
			BorrowDate:  entry.BorrowDate,
			DueDate:     entry.DueDate,
			ReturnDate:  entry.ReturnDate,
			DaysOverdue: days,
			LateFee:     fees.RoundCents(fees.LateFee(days)),
		})
	}

	return &StatusReport{
		Status:             "ok",
		PatronID:           patronID,
		CurrentBorrowCount: len(current),
		TotalLateFees:      fees.RoundCents(total),
		CurrentlyBorrowed:  current,
		History:            items,
	}, nil
}
