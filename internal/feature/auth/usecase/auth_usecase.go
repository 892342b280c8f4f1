package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"userhub/internal/feature/auth/domain/entity"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128

	// sessionTokenBytes yields a 64-character hex token.
	sessionTokenBytes = 32

	// DefaultExpiresIn is the session lifetime used when Options.ExpiresIn is zero.
	DefaultExpiresIn = 7 * 24 * time.Hour
	// DefaultUpdateAge is the refresh interval used when Options.UpdateAge is zero.
	DefaultUpdateAge = 24 * time.Hour
)

// dummyHash is compared against when the user does not exist so that sign-in
// takes the same time either way.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for users and their credential accounts.
type UserRepository interface {
	// Create persists the user and its account in a single transaction.
	// It returns ErrEmailAlreadyExists if the email is taken.
	Create(ctx context.Context, user *entity.User, account *entity.Account) error

	// FindByEmail returns ErrUserNotFound if no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns ErrUserNotFound if no user has the ID.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindCredentialAccount returns the email/password account of the user,
	// or ErrAccountNotFound.
	FindCredentialAccount(ctx context.Context, userID string) (*entity.Account, error)
}

// CredentialSigner turns a session token into the value handed to clients and back.
type CredentialSigner interface {
	Sign(sessionToken, userID string) (string, error)
	// Parse returns the session token carried by a credential.
	Parse(credential string) (string, error)
}

// Options configures session lifetimes.
type Options struct {
	// ExpiresIn is how long a session stays valid after creation or refresh.
	ExpiresIn time.Duration
	// UpdateAge is how old the last refresh must be before a lookup extends the session.
	UpdateAge time.Duration
}

// RequestMeta is client information recorded on new sessions.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// AuthUsecase issues, resolves and revokes sessions for email/password users.
type AuthUsecase struct {
	users    UserRepository
	sessions SessionRepository
	signer   CredentialSigner
	opts     Options
	now      func() time.Time
}

// NewAuthUsecase creates an AuthUsecase. Zero option values fall back to the defaults.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, signer CredentialSigner, opts Options) *AuthUsecase {
	if opts.ExpiresIn <= 0 {
		opts.ExpiresIn = DefaultExpiresIn
	}
	if opts.UpdateAge <= 0 {
		opts.UpdateAge = DefaultUpdateAge
	}
	return &AuthUsecase{
		users:    users,
		sessions: sessions,
		signer:   signer,
		opts:     opts,
		now:      time.Now,
	}
}

// validatePassword checks the password length rules.
func validatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp registers a new user with a hashed password and opens a session for it.
func (u *AuthUsecase) SignUp(ctx context.Context, name, email, password string, meta RequestMeta) (*entity.AuthSession, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := u.now()
	user := &entity.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     normalizeEmail(email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	account := &entity.Account{
		ID:         uuid.NewString(),
		AccountID:  user.ID,
		ProviderID: entity.CredentialProviderID,
		UserID:     user.ID,
		Password:   string(hashed),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := u.users.Create(ctx, user, account); err != nil {
		return nil, err
	}

	return u.createSession(ctx, user, meta)
}

// SignIn authenticates the user and opens a new session.
// A bcrypt comparison runs even when the user does not exist.
func (u *AuthUsecase) SignIn(ctx context.Context, email, password string, meta RequestMeta) (*entity.AuthSession, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	passwordHash := dummyHash
	if user != nil {
		account, err := u.users.FindCredentialAccount(ctx, user.ID)
		switch {
		case err == nil:
			passwordHash = account.Password
		case errors.Is(err, ErrAccountNotFound):
			user = nil
		default:
			return nil, fmt.Errorf("failed to find account: %w", err)
		}
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if user == nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return u.createSession(ctx, user, meta)
}

// SignOut deletes the session referenced by the credential.
// Unknown or malformed credentials are not an error.
func (u *AuthUsecase) SignOut(ctx context.Context, credential string) error {
	if credential == "" {
		return nil
	}
	token, err := u.signer.Parse(credential)
	if err != nil {
		return nil
	}
	if err := u.sessions.Delete(ctx, token); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// GetSession resolves the session referenced by the credential.
// It returns nil without an error when the caller is anonymous: no credential,
// a credential that does not verify, or a session that is gone or expired.
func (u *AuthUsecase) GetSession(ctx context.Context, credential string) (*entity.AuthSession, error) {
	if credential == "" {
		return nil, nil
	}
	token, err := u.signer.Parse(credential)
	if err != nil {
		return nil, nil
	}

	session, err := u.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	now := u.now()
	if session.IsExpired(now) {
		if err := u.sessions.Delete(ctx, token); err != nil && !errors.Is(err, ErrSessionNotFound) {
			return nil, fmt.Errorf("failed to delete expired session: %w", err)
		}
		return nil, nil
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	result := &entity.AuthSession{Session: session, User: user}

	lastRefresh := session.ExpiresAt.Add(-u.opts.ExpiresIn)
	if now.Sub(lastRefresh) >= u.opts.UpdateAge {
		expiresAt := now.Add(u.opts.ExpiresIn)
		if err := u.sessions.UpdateExpiry(ctx, token, expiresAt); err != nil {
			return nil, fmt.Errorf("failed to refresh session: %w", err)
		}
		session.ExpiresAt = expiresAt
		session.UpdatedAt = now
		result.Credential = credential
		result.Refreshed = true
	}

	return result, nil
}

// createSession stores a new session for the user and signs its credential.
func (u *AuthUsecase) createSession(ctx context.Context, user *entity.User, meta RequestMeta) (*entity.AuthSession, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := u.now()
	session := &entity.Session{
		ID:        uuid.NewString(),
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: now.Add(u.opts.ExpiresIn),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	credential, err := u.signer.Sign(token, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}

	return &entity.AuthSession{Session: session, User: user, Credential: credential}, nil
}

func newSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
