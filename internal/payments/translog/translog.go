// Package translog records payments processed by the gateway so their
// status can be looked up later. Implementations: in-memory for tests and
// local runs, redis for shared deployments.
package translog

import (
	"context"
	"time"

	"biblio/pkg/domain"
)

// Transaction is one processed payment.
type Transaction struct {
	ID          string          `json:"id"`
	PatronID    domain.PatronID `json:"patron_id"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	ProcessedAt time.Time       `json:"processed_at"`
}

// Log is an append-and-lookup store for transactions.
type Log interface {
	Record(ctx context.Context, txn Transaction) error
	Find(ctx context.Context, id string) (*Transaction, error)
}
