// Package api defines the JSON request and response bodies of the HTTP API.
// Server handlers and the Go client share these types.
package api

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"userhub/internal/feature/auth/domain/entity"
)

// ErrorResponse is the body of every failed API request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewErrorResponse builds a failure body with the given user-facing message.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}

// SuccessResponse is returned by endpoints with nothing else to report.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// SignUpRequest is the body of POST /api/auth/sign-up/email.
type SignUpRequest struct {
	Name     string              `json:"name" binding:"required,max=255"`
	Email    openapi_types.Email `json:"email" binding:"required,email"`
	Password string              `json:"password" binding:"required,min=8,max=128"`
}

// SignInRequest is the body of POST /api/auth/sign-in/email.
type SignInRequest struct {
	Email    openapi_types.Email `json:"email" binding:"required,email"`
	Password string              `json:"password" binding:"required"`
}

// User is the public representation of a user.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerified"`
	Image         *string   `json:"image"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewUser converts a domain user. The result never carries credentials.
func NewUser(u *entity.User) User {
	return User{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Image:         u.Image,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// NewUsers converts a slice of domain users.
func NewUsers(users []entity.User) []User {
	out := make([]User, len(users))
	for i := range users {
		out[i] = NewUser(&users[i])
	}
	return out
}

// Session is the public representation of a session. The token is omitted.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionResponse is returned by sign-up, sign-in and get-session.
type SessionResponse struct {
	Session Session `json:"session"`
	User    User    `json:"user"`
}

// NewSessionResponse converts a resolved session.
func NewSessionResponse(s *entity.AuthSession) SessionResponse {
	return SessionResponse{
		Session: Session{
			ID:        s.Session.ID,
			UserID:    s.Session.UserID,
			ExpiresAt: s.Session.ExpiresAt,
			CreatedAt: s.Session.CreatedAt,
		},
		User: NewUser(s.User),
	}
}

// UpdateProfileRequest is the body of PATCH /api/user/update.
// Empty fields are treated as absent.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Validate checks field lengths. Presence is checked by the handler.
func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 255)),
		validation.Field(&r.Image, validation.Length(1, 2048)),
	)
}

// ProfileResponse is returned by the profile endpoints.
type ProfileResponse struct {
	Success bool `json:"success"`
	User    User `json:"user"`
}

// UsersResponse is returned by GET /api/users.
type UsersResponse struct {
	Success bool   `json:"success"`
	Data    []User `json:"data"`
}
