package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"userhub/internal/feature/auth/domain/entity"
	"userhub/internal/feature/user/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&entity.User{}), "failed to migrate table")
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, name, email string, createdAt time.Time) *entity.User {
	t.Helper()
	img := "http://x/old.png"
	u := &entity.User{ID: id, Name: name, Email: email, Image: &img, CreatedAt: createdAt, UpdatedAt: createdAt}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestUserStoreGorm_UpdateFields(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	t.Run("image only leaves name unchanged", func(t *testing.T) {
		db := setupTestDB(t)
		store := NewUserStoreGorm(db)
		seedUser(t, db, "user-1", "Alice", "alice@example.com", created)
		img := "http://x/a.png"

		got, err := store.UpdateFields(context.Background(), "user-1", usecase.ProfileUpdate{Image: &img}, updated)

		require.NoError(t, err)
		assert.Equal(t, "Alice", got.Name)
		require.NotNil(t, got.Image)
		assert.Equal(t, "http://x/a.png", *got.Image)
		assert.True(t, got.UpdatedAt.Equal(updated), "updatedAt should advance")
		assert.True(t, got.UpdatedAt.After(created))
	})

	t.Run("name only leaves image unchanged", func(t *testing.T) {
		db := setupTestDB(t)
		store := NewUserStoreGorm(db)
		seedUser(t, db, "user-1", "Alice", "alice@example.com", created)
		name := "Alicia"

		got, err := store.UpdateFields(context.Background(), "user-1", usecase.ProfileUpdate{Name: &name}, updated)

		require.NoError(t, err)
		assert.Equal(t, "Alicia", got.Name)
		assert.Equal(t, "http://x/old.png", *got.Image)

		var stored entity.User
		require.NoError(t, db.First(&stored, "id = ?", "user-1").Error)
		assert.Equal(t, "Alicia", stored.Name)
	})

	t.Run("only the target row changes", func(t *testing.T) {
		db := setupTestDB(t)
		store := NewUserStoreGorm(db)
		seedUser(t, db, "user-1", "Alice", "alice@example.com", created)
		seedUser(t, db, "user-2", "Bob", "bob@example.com", created)
		name := "Changed"

		_, err := store.UpdateFields(context.Background(), "user-1", usecase.ProfileUpdate{Name: &name}, updated)
		require.NoError(t, err)

		var bob entity.User
		require.NoError(t, db.First(&bob, "id = ?", "user-2").Error)
		assert.Equal(t, "Bob", bob.Name)
	})

	t.Run("missing user", func(t *testing.T) {
		db := setupTestDB(t)
		store := NewUserStoreGorm(db)
		name := "Ghost"

		got, err := store.UpdateFields(context.Background(), "nope", usecase.ProfileUpdate{Name: &name}, updated)

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
		assert.Nil(t, got)
	})
}

func TestUserStoreGorm_List(t *testing.T) {
	db := setupTestDB(t)
	store := NewUserStoreGorm(db)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedUser(t, db, "user-2", "Bob", "bob@example.com", base.Add(time.Hour))
	seedUser(t, db, "user-1", "Alice", "alice@example.com", base)

	users, err := store.List(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "user-1", users[0].ID)
	assert.Equal(t, "user-2", users[1].ID)
}

func TestUserStoreGorm_List_Empty(t *testing.T) {
	store := NewUserStoreGorm(setupTestDB(t))

	users, err := store.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, users)
}
