package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"biblio/internal/audit"
	catalogmodels "biblio/internal/catalog/models"
	"biblio/internal/fees"
	"biblio/pkg/domain"
	dErrors "biblio/pkg/domain-errors"
	"biblio/pkg/platform/circuit"
	"biblio/pkg/platform/sentinel"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mocks.go -package=mocks FeeResolver,BookDirectory,AuditPublisher

// FeeResolver prices the outstanding fee for a patron/book pair.
type FeeResolver interface {
	Resolve(ctx context.Context, patronID domain.PatronID, bookID int64) (fees.Assessment, error)
}

// BookDirectory supplies titles for payment descriptions.
type BookDirectory interface {
	FindByID(ctx context.Context, id int64) (*catalogmodels.Book, error)
}

// AuditPublisher emits payment events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// PaymentOutcome is the result of a payment attempt that reached the
// gateway. Gateway declines and gateway errors land here with Approved
// false; they are outcomes, not errors, because the gateway answered.
type PaymentOutcome struct {
	Approved      bool    `json:"approved"`
	Message       string  `json:"message"`
	TransactionID string  `json:"transaction_id,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
}

// RefundOutcome is the result of a refund attempt that reached the gateway.
type RefundOutcome struct {
	Approved bool   `json:"approved"`
	Message  string `json:"message"`
}

// Service validates fee payments and refunds and drives the gateway.
type Service struct {
	resolver FeeResolver
	books    BookDirectory
	gateway  Gateway
	breaker  *circuit.Breaker
	logger   *slog.Logger
	metrics  *Metrics
	audit    AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(pub AuditPublisher) Option {
	return func(s *Service) {
		s.audit = pub
	}
}

// WithBreaker guards gateway calls with a circuit breaker. While open,
// payment attempts report a processing error without reaching the gateway.
func WithBreaker(b *circuit.Breaker) Option {
	return func(s *Service) {
		s.breaker = b
	}
}

func New(resolver FeeResolver, books BookDirectory, gateway Gateway, opts ...Option) (*Service, error) {
	if resolver == nil {
		return nil, errors.New("fee resolver is required")
	}
	if books == nil {
		return nil, errors.New("book directory is required")
	}
	if gateway == nil {
		return nil, errors.New("payment gateway is required")
	}
	s := &Service{
		resolver: resolver,
		books:    books,
		gateway:  gateway,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// PayLateFees charges the patron's outstanding fee for a book. The fee is
// resolved first, so a zero balance short-circuits before the patron id is
// even inspected; the gateway is only reached once everything validates.
// Gateway errors are reported, never propagated.
func (s *Service) PayLateFees(ctx context.Context, rawPatronID string, bookID int64) (*PaymentOutcome, error) {
	assessment, err := s.resolver.Resolve(ctx, domain.PatronID(rawPatronID), bookID)
	if err != nil {
		return nil, err
	}
	if assessment.FeeAmount <= 0 {
		return nil, dErrors.New(dErrors.CodeConflict, "No late fees to pay for this book.")
	}

	patronID, err := domain.ParsePatronID(rawPatronID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Invalid patron ID. Must be exactly 6 digits.")
	}

	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Book not found.")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Database error occurred while looking up the book.")
	}

	if s.breaker != nil && !s.breaker.Allow() {
		s.logger.WarnContext(ctx, "payment skipped, gateway circuit open",
			"patron_id", patronID, "book_id", bookID)
		return &PaymentOutcome{
			Message: "Payment processing error: payment gateway unavailable",
		}, nil
	}

	description := fmt.Sprintf("Late fees for '%s'", book.Title)
	result, err := s.gateway.ProcessPayment(ctx, patronID.String(), assessment.FeeAmount, description)
	if err != nil {
		if s.breaker != nil {
			s.breaker.RecordFailure()
		}
		s.logger.ErrorContext(ctx, "payment gateway error",
			"patron_id", patronID, "book_id", bookID, "error", err)
		return &PaymentOutcome{
			Message: fmt.Sprintf("Payment processing error: %v", err),
		}, nil
	}
	if s.breaker != nil {
		s.breaker.RecordSuccess()
	}
	if !result.Approved {
		if s.metrics != nil {
			s.metrics.PaymentsDeclined.Inc()
		}
		return &PaymentOutcome{
			Message: fmt.Sprintf("Payment failed: %s", result.Message),
		}, nil
	}

	if s.metrics != nil {
		s.metrics.PaymentsProcessed.Inc()
		s.metrics.PaymentAmount.Observe(assessment.FeeAmount)
	}
	s.emit(ctx, audit.Event{
		Action:   audit.ActionPaymentProcessed,
		PatronID: patronID,
		BookID:   bookID,
		Amount:   assessment.FeeAmount,
		Detail:   result.TransactionID,
	})

	return &PaymentOutcome{
		Approved:      true,
		Message:       fmt.Sprintf("Payment successful. %s", result.Message),
		TransactionID: result.TransactionID,
		Amount:        assessment.FeeAmount,
	}, nil
}

// RefundLateFeePayment refunds a prior fee payment. Amounts are bounded by
// the maximum possible late fee, so nobody refunds more than a loan could
// ever have accrued.
func (s *Service) RefundLateFeePayment(ctx context.Context, transactionID string, amount float64) (*RefundOutcome, error) {
	if !ValidTransactionID(transactionID) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Invalid transaction ID format.")
	}
	if amount <= 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Refund amount must be greater than 0.")
	}
	if amount > fees.MaxLateFee {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Refund amount exceeds maximum late fee.")
	}

	if s.breaker != nil && !s.breaker.Allow() {
		s.logger.WarnContext(ctx, "refund skipped, gateway circuit open",
			"transaction_id", transactionID)
		return &RefundOutcome{
			Message: "Refund processing error: payment gateway unavailable",
		}, nil
	}

	result, err := s.gateway.RefundPayment(ctx, transactionID, amount)
	if err != nil {
		if s.breaker != nil {
			s.breaker.RecordFailure()
		}
		s.logger.ErrorContext(ctx, "refund gateway error",
			"transaction_id", transactionID, "error", err)
		return &RefundOutcome{
			Message: fmt.Sprintf("Refund processing error: %v", err),
		}, nil
	}
	if s.breaker != nil {
		s.breaker.RecordSuccess()
	}
	if !result.Approved {
		return &RefundOutcome{
			Message: fmt.Sprintf("Refund failed: %s", result.Message),
		}, nil
	}

	if s.metrics != nil {
		s.metrics.RefundsProcessed.Inc()
	}
	s.emit(ctx, audit.Event{
		Action: audit.ActionPaymentRefunded,
		Amount: amount,
		Detail: transactionID,
	})

	return &RefundOutcome{Approved: true, Message: result.Message}, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "action", event.Action, "error", err)
	}
}
