package entity

import "time"

// Session represents a user's authentication session.
// The Token is what the signed credential refers to; ID is the row identity.
type Session struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Token     string    `gorm:"uniqueIndex;size:64;not null" json:"token"` // 64-character hex string
	UserID    string    `gorm:"index;size:36;not null" json:"userId"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expiresAt"`
	IPAddress string    `gorm:"size:45" json:"ipAddress"` // IPv6 max length
	UserAgent string    `gorm:"size:512" json:"userAgent"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for GORM.
func (Session) TableName() string {
	return "session"
}

// IsExpired reports whether the session has passed its expiration time at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// AuthSession is a resolved session together with the user it belongs to.
type AuthSession struct {
	Session *Session
	User    *User

	// Credential is the signed value handed to the client. It is only set when
	// the session was just created or its expiry was extended.
	Credential string

	// Refreshed is true when the lookup extended the session's expiry.
	Refreshed bool
}
