package entity

import "time"

// CredentialProviderID identifies accounts that authenticate with email and password.
const CredentialProviderID = "credential"

// Account links a user to an authentication method.
// For the credential provider, Password holds the bcrypt hash.
type Account struct {
	ID         string `gorm:"primaryKey;size:36"`
	AccountID  string `gorm:"size:255;not null"`
	ProviderID string `gorm:"size:64;not null;index"`
	UserID     string `gorm:"index;size:36;not null"`
	Password   string `gorm:"size:255"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM.
func (Account) TableName() string {
	return "account"
}
