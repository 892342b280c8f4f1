// Package usecase implements profile and user listing operations.
package usecase

import (
	"context"
	"errors"
	"time"

	"userhub/internal/feature/auth/domain/entity"
)

var (
	// ErrNoFieldsToUpdate is returned when a profile update carries neither a name nor an image.
	ErrNoFieldsToUpdate = errors.New("At least one field (name or image) must be provided")

	// ErrUserNotFound is returned when the user to update no longer exists.
	ErrUserNotFound = errors.New("user not found")
)

// ProfileUpdate lists the profile fields to change. Nil fields are left untouched.
type ProfileUpdate struct {
	Name  *string
	Image *string
}

// UserStore abstracts user reads and writes.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserStore interface {
	// UpdateFields applies the update and updatedAt atomically and returns the updated row.
	// It returns ErrUserNotFound if no user has the ID.
	UpdateFields(ctx context.Context, id string, update ProfileUpdate, updatedAt time.Time) (*entity.User, error)

	// List returns all users ordered by creation time.
	List(ctx context.Context) ([]entity.User, error)
}

// UserUsecase implements the profile and listing business logic.
type UserUsecase struct {
	store UserStore
	now   func() time.Time
}

// NewUserUsecase creates a new UserUsecase.
func NewUserUsecase(store UserStore) *UserUsecase {
	return &UserUsecase{store: store, now: time.Now}
}

// UpdateProfile changes the name and/or image of the user. Empty values are treated as absent.
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID, name, image string) (*entity.User, error) {
	if name == "" && image == "" {
		return nil, ErrNoFieldsToUpdate
	}

	var update ProfileUpdate
	if name != "" {
		update.Name = &name
	}
	if image != "" {
		update.Image = &image
	}

	return u.store.UpdateFields(ctx, userID, update, u.now())
}

// ListUsers returns every user.
func (u *UserUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	return u.store.List(ctx)
}
