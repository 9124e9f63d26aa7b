package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"biblio/internal/payments/translog"
	"biblio/pkg/domain"
	"biblio/pkg/platform/sentinel"
	"biblio/pkg/requestcontext"
)

// DefaultTransactionLimit caps a single simulated charge.
const DefaultTransactionLimit = 1000.00

// SimulatedGateway is a stand-in payment processor: it validates inputs the
// way a real one would, mints deterministic transaction ids, and records
// charges in a transaction log so status lookups have something to answer
// from. Swap in a real processor without touching the payment layer.
type SimulatedGateway struct {
	limit  float64
	log    translog.Log
	logger *slog.Logger
}

type GatewayOption func(*SimulatedGateway)

// WithTransactionLimit overrides the per-transaction amount cap.
func WithTransactionLimit(limit float64) GatewayOption {
	return func(g *SimulatedGateway) {
		if limit > 0 {
			g.limit = limit
		}
	}
}

func WithGatewayLogger(logger *slog.Logger) GatewayOption {
	return func(g *SimulatedGateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func NewSimulatedGateway(log translog.Log, opts ...GatewayOption) *SimulatedGateway {
	g := &SimulatedGateway{
		limit:  DefaultTransactionLimit,
		log:    log,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ProcessPayment validates the charge and approves it. Validation failures
// are declines, not errors: the caller gets a reason, never a panic.
func (g *SimulatedGateway) ProcessPayment(ctx context.Context, patronID string, amount float64, description string) (PaymentResult, error) {
	if _, err := domain.ParsePatronID(patronID); err != nil {
		return PaymentResult{Message: "Invalid patron ID"}, nil
	}
	if amount <= 0 {
		return PaymentResult{Message: "Invalid amount. Must be greater than 0."}, nil
	}
	if amount > g.limit {
		return PaymentResult{Message: fmt.Sprintf("Amount exceeds limit of $%.2f per transaction.", g.limit)}, nil
	}

	now := requestcontext.Now(ctx)
	txnID := fmt.Sprintf("txn_%s_%d", patronID, now.Unix())

	if g.log != nil {
		err := g.log.Record(ctx, translog.Transaction{
			ID:          txnID,
			PatronID:    domain.PatronID(patronID),
			Amount:      amount,
			Description: description,
			ProcessedAt: now,
		})
		if err != nil {
			// Bookkeeping only; the charge itself went through.
			g.logger.WarnContext(ctx, "failed to record transaction", "transaction_id", txnID, "error", err)
		}
	}

	return PaymentResult{
		Approved:      true,
		TransactionID: txnID,
		Message:       fmt.Sprintf("Payment of $%.2f processed successfully", amount),
	}, nil
}

// RefundPayment validates the refund and approves it.
func (g *SimulatedGateway) RefundPayment(ctx context.Context, transactionID string, amount float64) (RefundResult, error) {
	if !ValidTransactionID(transactionID) {
		return RefundResult{Message: "Invalid transaction ID"}, nil
	}
	if amount <= 0 {
		return RefundResult{Message: "Invalid refund amount. Must be greater than 0."}, nil
	}
	return RefundResult{
		Approved: true,
		Message:  fmt.Sprintf("Refund of $%.2f processed successfully", amount),
	}, nil
}

// VerifyPaymentStatus reports on a transaction. Recorded charges come back
// with their amount; well-formed ids the log has no record of still verify
// as completed, matching how the simulator has always behaved.
func (g *SimulatedGateway) VerifyPaymentStatus(ctx context.Context, transactionID string) (PaymentStatus, error) {
	if !ValidTransactionID(transactionID) {
		return PaymentStatus{TransactionID: transactionID, Status: "invalid"}, nil
	}
	if g.log != nil {
		txn, err := g.log.Find(ctx, transactionID)
		if err == nil {
			return PaymentStatus{
				TransactionID: txn.ID,
				Status:        "completed",
				Amount:        txn.Amount,
				ProcessedAt:   txn.ProcessedAt,
			}, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			g.logger.WarnContext(ctx, "transaction lookup failed", "transaction_id", transactionID, "error", err)
		}
	}
	return PaymentStatus{TransactionID: transactionID, Status: "completed"}, nil
}
