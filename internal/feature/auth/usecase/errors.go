// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrAccountNotFound is returned when a user has no credential account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrSessionNotFound is returned when a session cannot be found by token.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidCredentials is returned when sign-in fails for any reason the caller may not learn.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidPassword is returned when a sign-up password does not meet the length rules.
	ErrInvalidPassword = errors.New("password must be between 8 and 128 characters")
)
