package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codehasanali/mywallet/internal/domain"
	"github.com/codehasanali/mywallet/internal/ledger"
)

const sessionKey = "user"

// SessionStore persists the active username in the same kv table as the
// wallet state.
type SessionStore struct {
	store *BalanceStore
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(pool *pgxpool.Pool, namespace string) *SessionStore {
	return &SessionStore{store: NewBalanceStore(pool, namespace)}
}

// Login stores the username as the active session.
func (s *SessionStore) Login(ctx context.Context, username string) error {
	return s.store.Set(ctx, sessionKey, username)
}

// Logout clears the active session.
func (s *SessionStore) Logout(ctx context.Context) error {
	return s.store.Delete(ctx, sessionKey)
}

// Current returns the active username, or domain.ErrNoActiveSession.
func (s *SessionStore) Current(ctx context.Context) (string, error) {
	username, err := s.store.Get(ctx, sessionKey)
	if errors.Is(err, ledger.ErrKeyNotFound) {
		return "", domain.ErrNoActiveSession
	}
	if err != nil {
		return "", err
	}
	return username, nil
}
