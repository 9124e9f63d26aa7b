package translog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"biblio/pkg/platform/sentinel"
)

const (
	txnKeyPrefix = "payments:txn:"

	// Transactions are kept long enough to answer status queries and
	// validate refunds; they are not the accounting system of record.
	txnTTL = 90 * 24 * time.Hour
)

// Redis is the shared-deployment transaction log, recommended when multiple
// instances serve payment traffic.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (s *Redis) Record(ctx context.Context, txn Transaction) error {
	payload, err := json.Marshal(txn)
	if err != nil {
		return fmt.Errorf("marshal transaction: %w", err)
	}
	if err := s.client.Set(ctx, txnKeyPrefix+txn.ID, payload, txnTTL).Err(); err != nil {
		return fmt.Errorf("record transaction: %w", err)
	}
	return nil
}

func (s *Redis) Find(ctx context.Context, id string) (*Transaction, error) {
	payload, err := s.client.Get(ctx, txnKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	var txn Transaction
	if err := json.Unmarshal(payload, &txn); err != nil {
		return nil, fmt.Errorf("unmarshal transaction: %w", err)
	}
	return &txn, nil
}
