package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/codehasanali/mywallet/internal/ledger"
)

// BalanceStore implements ledger.Store on Redis. Keys are namespaced with a
// configurable prefix so several wallets can share one Redis instance.
type BalanceStore struct {
	client *redis.Client
	prefix string
}

// NewBalanceStore creates a new BalanceStore. An empty namespace defaults
// to "wallet".
func NewBalanceStore(client *redis.Client, namespace string) *BalanceStore {
	if namespace == "" {
		namespace = "wallet"
	}
	return &BalanceStore{
		client: client,
		prefix: namespace + ":",
	}
}

// Get retrieves a value by key. Absent keys map to ledger.ErrKeyNotFound.
func (s *BalanceStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err == redis.Nil {
		return "", ledger.ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores a value. Wallet state has no expiry.
func (s *BalanceStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

// Delete removes keys.
func (s *BalanceStore) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, key := range keys {
		full[i] = s.prefix + key
	}
	return s.client.Del(ctx, full...).Err()
}
