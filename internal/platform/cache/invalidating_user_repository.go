package cache

import (
	"context"

	"userhub/internal/feature/auth/domain/entity"
	authusecase "userhub/internal/feature/auth/usecase"
)

// Invalidator drops cached user data.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// InvalidatingUserRepository decorates the auth UserRepository so that a new
// registration clears cached user lists.
type InvalidatingUserRepository struct {
	authusecase.UserRepository
	cache Invalidator
}

// Compile-time check to ensure InvalidatingUserRepository implements UserRepository.
var _ authusecase.UserRepository = (*InvalidatingUserRepository)(nil)

// NewInvalidatingUserRepository wraps inner so Create invalidates cache.
func NewInvalidatingUserRepository(inner authusecase.UserRepository, cache Invalidator) *InvalidatingUserRepository {
	return &InvalidatingUserRepository{UserRepository: inner, cache: cache}
}

// Create persists the user and account, then invalidates cached lists.
func (r *InvalidatingUserRepository) Create(ctx context.Context, user *entity.User, account *entity.Account) error {
	if err := r.UserRepository.Create(ctx, user, account); err != nil {
		return err
	}
	r.cache.Invalidate(ctx)
	return nil
}
