// Package httptransport is the thin HTTP layer. It decodes requests,
// delegates to the domain services, and translates domain errors into JSON
// responses; business logic never lives here.
package httptransport

import (
	"context"
	"log/slog"

	catalogmodels "biblio/internal/catalog/models"
	circmodels "biblio/internal/circulation/models"
	"biblio/internal/fees"
	"biblio/internal/payments"
	"biblio/internal/report"
	"biblio/pkg/domain"
)

// CatalogService is the catalog surface the transport consumes.
type CatalogService interface {
	AddBook(ctx context.Context, title, author, isbn string, totalCopies int) (*catalogmodels.Book, error)
	GetBook(ctx context.Context, id int64) (*catalogmodels.Book, error)
	ListBooks(ctx context.Context) ([]catalogmodels.Book, error)
	SearchBooks(ctx context.Context, term, searchType string) ([]catalogmodels.Book, error)
}

// LoanService is the loan lifecycle surface.
type LoanService interface {
	Borrow(ctx context.Context, patronID string, bookID int64) (*circmodels.BorrowReceipt, error)
	Return(ctx context.Context, patronID string, bookID int64) (*circmodels.ReturnReceipt, error)
}

// Reporter builds patron status reports.
type Reporter interface {
	Report(ctx context.Context, patronID string) (*report.StatusReport, error)
}

// FeeResolver prices the fee for a patron/book pair.
type FeeResolver interface {
	Resolve(ctx context.Context, patronID domain.PatronID, bookID int64) (fees.Assessment, error)
}

// PaymentService executes fee payments and refunds.
type PaymentService interface {
	PayLateFees(ctx context.Context, patronID string, bookID int64) (*payments.PaymentOutcome, error)
	RefundLateFeePayment(ctx context.Context, transactionID string, amount float64) (*payments.RefundOutcome, error)
}

// Gateway exposes transaction status lookups.
type Gateway interface {
	VerifyPaymentStatus(ctx context.Context, transactionID string) (payments.PaymentStatus, error)
}

// Handler bundles the domain services behind the router.
type Handler struct {
	logger   *slog.Logger
	catalog  CatalogService
	loans    LoanService
	reporter Reporter
	fees     FeeResolver
	payments PaymentService
	gateway  Gateway
}

func NewHandler(
	catalog CatalogService,
	loans LoanService,
	reporter Reporter,
	feeResolver FeeResolver,
	paymentSvc PaymentService,
	gateway Gateway,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		logger:   logger,
		catalog:  catalog,
		loans:    loans,
		reporter: reporter,
		fees:     feeResolver,
		payments: paymentSvc,
		gateway:  gateway,
	}
}
