package fees

import (
	"context"
	"errors"
	"log/slog"

	circmodels "biblio/internal/circulation/models"
	"biblio/pkg/domain"
	dErrors "biblio/pkg/domain-errors"
	"biblio/pkg/platform/sentinel"
	"biblio/pkg/requestcontext"
)

// Status tells which loan the assessment was computed from.
type Status string

const (
	// StatusActive: fee computed from the patron's open loan, against now.
	StatusActive Status = "ok-active"
	// StatusClosed: fee computed from the latest closed loan, against its
	// return date.
	StatusClosed Status = "ok-closed"
	// StatusAmbiguous: the latest historical loan is still open even though
	// the active lookup missed it; computed against now.
	StatusAmbiguous Status = "ok-ambiguous"
	// StatusNoRecord: the pair never had a loan (or history was unreadable).
	StatusNoRecord Status = "no-record"
)

// Assessment is the result of a fee lookup. FeeAmount is rounded to cents.
type Assessment struct {
	FeeAmount   float64 `json:"fee_amount"`
	DaysOverdue int     `json:"days_overdue"`
	Status      Status  `json:"status"`
}

// LoanHistory is the slice of loan persistence the resolver reads.
type LoanHistory interface {
	ListActiveByPatron(ctx context.Context, patronID domain.PatronID) ([]circmodels.ActiveLoan, error)
	MostRecent(ctx context.Context, patronID domain.PatronID, bookID int64) (*circmodels.Loan, error)
}

// Resolver locates the relevant loan for a patron/book pair and prices it.
type Resolver struct {
	loans  LoanHistory
	logger *slog.Logger
}

type ResolverOption func(*Resolver)

func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewResolver(loans LoanHistory, opts ...ResolverOption) (*Resolver, error) {
	if loans == nil {
		return nil, errors.New("loan history is required")
	}
	r := &Resolver{
		loans:  loans,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve prices the fee for (patron, book). An open loan wins and is priced
// against now. Otherwise the most recent historical loan is priced against
// its return date. A failing history lookup degrades to StatusNoRecord with
// the cause logged; fee reporting must never block on a flaky read.
func (r *Resolver) Resolve(ctx context.Context, patronID domain.PatronID, bookID int64) (Assessment, error) {
	now := requestcontext.Now(ctx)

	active, err := r.loans.ListActiveByPatron(ctx, patronID)
	if err != nil {
		return Assessment{}, dErrors.Wrap(err, dErrors.CodeInternal, "Database error occurred while loading borrowed books.")
	}
	for _, loan := range active {
		if loan.BookID == bookID {
			days := DaysOverdue(loan.DueDate, now)
			return Assessment{
				FeeAmount:   RoundCents(LateFee(days)),
				DaysOverdue: days,
				Status:      StatusActive,
			}, nil
		}
	}

	loan, err := r.loans.MostRecent(ctx, patronID, bookID)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			r.logger.WarnContext(ctx, "history lookup failed, treating as no record",
				"patron_id", patronID, "book_id", bookID,
				"request_id", requestcontext.RequestID(ctx), "error", err)
		}
		return Assessment{FeeAmount: 0.00, DaysOverdue: 0, Status: StatusNoRecord}, nil
	}

	var days int
	status := StatusClosed
	if loan.ReturnDate != nil {
		days = DaysOverdue(loan.DueDate, *loan.ReturnDate)
	} else {
		// Should have surfaced as active above; price it as still out.
		days = DaysOverdue(loan.DueDate, now)
		status = StatusAmbiguous
	}

	return Assessment{
		FeeAmount:   RoundCents(LateFee(days)),
		DaysOverdue: days,
		Status:      status,
	}, nil
}
