// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// Credentials live on Account; User carries only profile data.
type User struct {
	// ID is the unique identifier for the user (UUID string).
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// Name is the display name chosen at sign-up or via profile update.
	Name string `gorm:"size:255;not null" json:"name"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	EmailVerified bool `gorm:"not null;default:false" json:"emailVerified"`

	// Image is an optional avatar reference.
	Image *string `gorm:"size:2048" json:"image"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "user"
}
