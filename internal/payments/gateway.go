// Package payments validates and executes late-fee payments and refunds
// against a pluggable payment gateway.
package payments

import (
	"context"
	"regexp"
	"time"
)

//go:generate mockgen -source=gateway.go -destination=mocks/gateway_mocks.go -package=mocks Gateway

// PaymentResult is the gateway's answer to a charge attempt. A declined
// charge is Approved == false with a reason in Message; transport-level
// problems surface as errors instead.
type PaymentResult struct {
	Approved      bool
	TransactionID string
	Message       string
}

// RefundResult is the gateway's answer to a refund attempt.
type RefundResult struct {
	Approved bool
	Message  string
}

// PaymentStatus describes a previously processed transaction.
type PaymentStatus struct {
	TransactionID string    `json:"transaction_id"`
	Status        string    `json:"status"`
	Amount        float64   `json:"amount"`
	ProcessedAt   time.Time `json:"processed_at"`
}

// Gateway is the payment-processor capability. The simulated implementation
// and a real processor both satisfy it; the payment layer never knows which
// one it is talking to.
type Gateway interface {
	ProcessPayment(ctx context.Context, patronID string, amount float64, description string) (PaymentResult, error)
	RefundPayment(ctx context.Context, transactionID string, amount float64) (RefundResult, error)
	VerifyPaymentStatus(ctx context.Context, transactionID string) (PaymentStatus, error)
}

// Transaction ids look like txn_<6-digit patron>_<unix timestamp>.
var txnIDPattern = regexp.MustCompile(`^txn_\d{6}_\d+$`)

// ValidTransactionID reports whether id has the gateway's transaction shape.
func ValidTransactionID(id string) bool {
	return txnIDPattern.MatchString(id)
}
