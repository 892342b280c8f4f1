// Package session provides the Redis-backed session store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"userhub/internal/feature/auth/domain/entity"
	"userhub/internal/feature/auth/usecase"
)

// SessionRedis implements usecase.SessionRepository using Redis.
// Each session is one key whose TTL matches the session's remaining lifetime.
type SessionRedis struct {
	client *redis.Client
	prefix string
}

// Compile-time check to ensure SessionRedis implements SessionRepository.
var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a new SessionRedis instance.
func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	return &SessionRedis{
		client: client,
		prefix: prefix,
	}
}

// sessionKey returns the Redis key for a session token.
func (r *SessionRedis) sessionKey(token string) string {
	return fmt.Sprintf("%s:%s", r.prefix, token)
}

// Create persists a new session to Redis.
func (r *SessionRedis) Create(ctx context.Context, session *entity.Session) error {
	return r.put(ctx, session)
}

// FindByToken retrieves a session by its token.
func (r *SessionRedis) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// UpdateExpiry rewrites the session with a new expiration time and TTL.
func (r *SessionRedis) UpdateExpiry(ctx context.Context, token string, expiresAt time.Time) error {
	session, err := r.FindByToken(ctx, token)
	if err != nil {
		return err
	}

	session.ExpiresAt = expiresAt
	session.UpdatedAt = time.Now()
	return r.put(ctx, session)
}

// Delete removes a session.
func (r *SessionRedis) Delete(ctx context.Context, token string) error {
	n, err := r.client.Del(ctx, r.sessionKey(token)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRedis) put(ctx context.Context, session *entity.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	return r.client.Set(ctx, r.sessionKey(session.Token), data, ttl).Err()
}
