package translog

import (
	"context"
	"sync"

	"biblio/pkg/platform/sentinel"
)

// InMemory keeps transactions in a map.
type InMemory struct {
	mu   sync.RWMutex
	txns map[string]Transaction
}

func NewInMemory() *InMemory {
	return &InMemory{txns: make(map[string]Transaction)}
}

func (s *InMemory) Record(_ context.Context, txn Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns[txn.ID] = txn
	return nil
}

func (s *InMemory) Find(_ context.Context, id string) (*Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if txn, ok := s.txns[id]; ok {
		return &txn, nil
	}
	return nil, sentinel.ErrNotFound
}
