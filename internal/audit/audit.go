// Package audit captures key circulation and payment actions as events.
// Events are emitted from domain logic and kept transport-agnostic so stores
// and sinks can fan out.
package audit

import (
	"context"
	"sync"
	"time"

	"biblio/pkg/domain"
)

// Action names what happened.
type Action string

const (
	ActionBookAdded        Action = "book_added"
	ActionLoanCreated      Action = "loan_created"
	ActionLoanReturned     Action = "loan_returned"
	ActionPaymentProcessed Action = "payment_processed"
	ActionPaymentRefunded  Action = "payment_refunded"
)

// Event is a single audit record.
type Event struct {
	Action    Action
	Timestamp time.Time
	PatronID  domain.PatronID
	BookID    int64
	// Amount carries the fee or payment value for fee-bearing actions.
	Amount float64
	// Detail is a short human-readable annotation (book title, txn id, ...).
	Detail string
}

// Store is an append-only sink for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByPatron(ctx context.Context, patronID domain.PatronID) ([]Event, error)
}

// InMemoryStore keeps events per patron. Suitable for tests and local runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[domain.PatronID][]Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[domain.PatronID][]Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.PatronID] = append(s.events[event.PatronID], event)
	return nil
}

func (s *InMemoryStore) ListByPatron(_ context.Context, patronID domain.PatronID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]Event, len(s.events[patronID]))
	copy(events, s.events[patronID])
	return events, nil
}
