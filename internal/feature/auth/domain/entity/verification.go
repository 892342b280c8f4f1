package entity

import "time"

// Verification stores short-lived verification values (e.g. email confirmation codes).
type Verification struct {
	ID         string    `gorm:"primaryKey;size:36"`
	Identifier string    `gorm:"size:255;not null;index"`
	Value      string    `gorm:"size:255;not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM.
func (Verification) TableName() string {
	return "verification"
}
