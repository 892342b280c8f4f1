// Package adapters provides the GORM-backed user store for the user feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"userhub/internal/feature/auth/domain/entity"
	"userhub/internal/feature/user/usecase"
)

// userStoreGorm is a GORM implementation of the UserStore interface.
type userStoreGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure userStoreGorm implements UserStore.
var _ usecase.UserStore = (*userStoreGorm)(nil)

// NewUserStoreGorm creates a new instance of userStoreGorm.
func NewUserStoreGorm(db *gorm.DB) *userStoreGorm {
	return &userStoreGorm{db: db}
}

// UpdateFields updates only the given columns plus updated_at and reads the row back
// inside one transaction.
func (r *userStoreGorm) UpdateFields(ctx context.Context, id string, update usecase.ProfileUpdate, updatedAt time.Time) (*entity.User, error) {
	values := map[string]any{"updated_at": updatedAt}
	if update.Name != nil {
		values["name"] = *update.Name
	}
	if update.Image != nil {
		values["image"] = *update.Image
	}

	var u entity.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.User{}).Where("id = ?", id).Updates(values)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return usecase.ErrUserNotFound
		}
		return tx.Where("id = ?", id).First(&u).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns all users, oldest first.
func (r *userStoreGorm) List(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
