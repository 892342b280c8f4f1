// Package guard resolves the caller's session from request headers and
// enforces its presence on protected API routes.
package guard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"userhub/internal/api"
	"userhub/internal/feature/auth/domain/entity"
)

// UnauthorizedMessage is the user-facing message of every 401 response.
const UnauthorizedMessage = "You must be logged in to access this resource"

// sessionErrorMessage is returned when the session provider itself fails.
const sessionErrorMessage = "Failed to resolve session"

// ErrUnauthorized is returned by RequireSession when no valid session exists.
var ErrUnauthorized = errors.New(UnauthorizedMessage)

const (
	ctxKeySession  = "authSession"
	ctxKeyResolved = "authSessionResolved"
)

// SessionProvider looks up the session behind a credential.
// It returns nil without an error when there is no valid session.
type SessionProvider interface {
	GetSession(ctx context.Context, credential string) (*entity.AuthSession, error)
}

// Guard resolves sessions for HTTP requests.
type Guard struct {
	provider SessionProvider
	cookies  Cookies
}

// New creates a Guard.
func New(provider SessionProvider, cookies Cookies) *Guard {
	return &Guard{provider: provider, cookies: cookies}
}

// Credential extracts the session credential from the headers.
// A bearer Authorization header takes precedence over the session cookie.
func (g *Guard) Credential(h http.Header) string {
	if auth := h.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	for _, line := range h.Values("Cookie") {
		cookies, err := http.ParseCookie(line)
		if err != nil {
			continue
		}
		for _, ck := range cookies {
			if ck.Name == g.cookies.Name && ck.Value != "" {
				return ck.Value
			}
		}
	}
	return ""
}

// GetSession returns the session for the request headers, or nil when the caller is anonymous.
// Errors are only returned for provider failures.
func (g *Guard) GetSession(ctx context.Context, h http.Header) (*entity.AuthSession, error) {
	return g.provider.GetSession(ctx, g.Credential(h))
}

// RequireSession is GetSession that fails with ErrUnauthorized for anonymous callers.
func (g *Guard) RequireSession(ctx context.Context, h http.Header) (*entity.AuthSession, error) {
	s, err := g.GetSession(ctx, h)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrUnauthorized
	}
	return s, nil
}

// Session resolves the session of a gin request once and caches it on the context.
// When the provider extended the session, the cookie is re-issued.
func (g *Guard) Session(c *gin.Context) (*entity.AuthSession, error) {
	if _, ok := c.Get(ctxKeyResolved); ok {
		return Current(c), nil
	}

	s, err := g.GetSession(c.Request.Context(), c.Request.Header)
	if err != nil {
		return nil, err
	}
	c.Set(ctxKeyResolved, true)
	if s == nil {
		return nil, nil
	}

	c.Set(ctxKeySession, s)
	if s.Refreshed && s.Credential != "" {
		g.cookies.Set(c, s.Credential, s.Session.ExpiresAt)
	}
	return s, nil
}

// Resolve is middleware that resolves the session, if any, and continues either way.
func (g *Guard) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := g.Session(c); err != nil {
			abortProviderFailure(c, err)
			return
		}
		c.Next()
	}
}

// Required is middleware that rejects anonymous callers with 401.
func (g *Guard) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := g.Session(c)
		if err != nil {
			abortProviderFailure(c, err)
			return
		}
		if s == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.NewErrorResponse(UnauthorizedMessage))
			return
		}
		c.Next()
	}
}

// Current returns the session resolved earlier in the chain, or nil.
func Current(c *gin.Context) *entity.AuthSession {
	v, ok := c.Get(ctxKeySession)
	if !ok {
		return nil
	}
	s, _ := v.(*entity.AuthSession)
	return s
}

func abortProviderFailure(c *gin.Context, err error) {
	slog.Error("session lookup failed", "error", err, "path", c.Request.URL.Path)
	c.AbortWithStatusJSON(http.StatusInternalServerError, api.NewErrorResponse(sessionErrorMessage))
}
