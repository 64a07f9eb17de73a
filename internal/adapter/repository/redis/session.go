package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/codehasanali/mywallet/internal/domain"
)

const sessionKey = "user"

// SessionStore persists the active username. The session collaborator only
// supplies a display label; there is no authentication behind it.
type SessionStore struct {
	client *redis.Client
	prefix string
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(client *redis.Client, namespace string) *SessionStore {
	if namespace == "" {
		namespace = "wallet"
	}
	return &SessionStore{
		client: client,
		prefix: namespace + ":",
	}
}

// Login stores the username as the active session.
func (s *SessionStore) Login(ctx context.Context, username string) error {
	return s.client.Set(ctx, s.prefix+sessionKey, username, 0).Err()
}

// Logout clears the active session.
func (s *SessionStore) Logout(ctx context.Context) error {
	return s.client.Del(ctx, s.prefix+sessionKey).Err()
}

// Current returns the active username, or domain.ErrNoActiveSession.
func (s *SessionStore) Current(ctx context.Context) (string, error) {
	username, err := s.client.Get(ctx, s.prefix+sessionKey).Result()
	if err == redis.Nil {
		return "", domain.ErrNoActiveSession
	}
	if err != nil {
		return "", err
	}
	return username, nil
}
