package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"userhub/internal/feature/auth/domain/entity"
	"userhub/internal/feature/auth/usecase"
)

// sessionGorm is a GORM implementation of the SessionRepository interface.
// It is used when Redis is not configured.
type sessionGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure sessionGorm implements SessionRepository.
var _ usecase.SessionRepository = (*sessionGorm)(nil)

// NewSessionGorm creates a new instance of sessionGorm.
func NewSessionGorm(db *gorm.DB) *sessionGorm {
	return &sessionGorm{db: db}
}

// Create persists a new session to the database.
func (r *sessionGorm) Create(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindByToken retrieves a session by its token.
func (r *sessionGorm) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	var s entity.Session
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// UpdateExpiry moves the expiration time of a session.
func (r *sessionGorm) UpdateExpiry(ctx context.Context, token string, expiresAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Session{}).
		Where("token = ?", token).
		Update("expires_at", expiresAt)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}

// Delete removes a session by its token.
func (r *sessionGorm) Delete(ctx context.Context, token string) error {
	result := r.db.WithContext(ctx).Where("token = ?", token).Delete(&entity.Session{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}
