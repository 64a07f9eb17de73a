package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codehasanali/mywallet/internal/ledger"
)

// BalanceStore implements ledger.Store on PostgreSQL. State lives in the
// wallet_kv table as plain (namespace, key, value) rows, mirroring the
// string-keyed contract of the Redis store.
type BalanceStore struct {
	pool      *pgxpool.Pool
	namespace string
}

// NewBalanceStore creates a new BalanceStore.
func NewBalanceStore(pool *pgxpool.Pool, namespace string) *BalanceStore {
	if namespace == "" {
		namespace = "wallet"
	}
	return &BalanceStore{
		pool:      pool,
		namespace: namespace,
	}
}

// Get retrieves a value by key. Absent keys map to ledger.ErrKeyNotFound.
func (s *BalanceStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM wallet_kv WHERE namespace = $1 AND key = $2`,
		s.namespace, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ledger.ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set upserts a value.
func (s *BalanceStore) Set(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO wallet_kv (namespace, key, value, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (namespace, key)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		s.namespace, key, value,
	)
	return err
}

// Delete removes keys.
func (s *BalanceStore) Delete(ctx context.Context, keys ...string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM wallet_kv WHERE namespace = $1 AND key = ANY($2)`,
		s.namespace, keys,
	)
	return err
}
