package usecase

import (
	"context"
	"time"

	"userhub/internal/feature/auth/domain/entity"
)

// SessionRepository abstracts the persistence layer for session entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SessionRepository interface {
	// Create persists a new session to the storage.
	Create(ctx context.Context, session *entity.Session) error

	// FindByToken retrieves a session by its token.
	// It returns ErrSessionNotFound if no such session exists.
	FindByToken(ctx context.Context, token string) (*entity.Session, error)

	// UpdateExpiry moves the expiration time of the session with the given token.
	UpdateExpiry(ctx context.Context, token string, expiresAt time.Time) error

	// Delete removes the session with the given token.
	// It returns ErrSessionNotFound if no such session exists.
	Delete(ctx context.Context, token string) error
}
