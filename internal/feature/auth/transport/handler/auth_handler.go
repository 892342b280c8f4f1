// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"userhub/internal/api"
	"userhub/internal/feature/auth/domain/entity"
	"userhub/internal/feature/auth/guard"
	"userhub/internal/feature/auth/usecase"
)

// AuthUsecase defines the session operations the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	SignUp(ctx context.Context, name, email, password string, meta usecase.RequestMeta) (*entity.AuthSession, error)
	SignIn(ctx context.Context, email, password string, meta usecase.RequestMeta) (*entity.AuthSession, error)
	SignOut(ctx context.Context, credential string) error
}

// SessionResolver resolves the session of the current request.
type SessionResolver interface {
	Session(c *gin.Context) (*entity.AuthSession, error)
	Credential(h http.Header) string
}

// AuthHandler handles the sign-up, sign-in, sign-out and get-session endpoints.
type AuthHandler struct {
	auth     AuthUsecase
	sessions SessionResolver
	cookies  guard.Cookies
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase, sessions SessionResolver, cookies guard.Cookies) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, cookies: cookies}
}

func requestMeta(c *gin.Context) usecase.RequestMeta {
	return usecase.RequestMeta{IPAddress: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}

// SignUp handles POST /api/auth/sign-up/email.
// - 400 on validation errors
// - 422 when the email is already registered
// - 200 with the new session and a session cookie on success
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req api.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewErrorResponse("invalid request"))
		return
	}

	s, err := h.auth.SignUp(c.Request.Context(), req.Name, string(req.Email), req.Password, requestMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			slog.Warn("signup rejected", "reason", "email exists", "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnprocessableEntity, api.NewErrorResponse("User already exists"))
		case errors.Is(err, usecase.ErrInvalidPassword):
			c.JSON(http.StatusBadRequest, api.NewErrorResponse(err.Error()))
		default:
			slog.Error("signup failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.NewErrorResponse("signup failed"))
		}
		return
	}

	slog.Info("user signup successful", "user_id", s.User.ID, "remote_addr", c.ClientIP())
	h.cookies.Set(c, s.Credential, s.Session.ExpiresAt)
	c.JSON(http.StatusOK, api.NewSessionResponse(s))
}

// SignIn handles POST /api/auth/sign-in/email.
// - 400 on validation errors
// - 401 on bad credentials
// - 200 with the new session and a session cookie on success
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req api.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewErrorResponse("invalid request"))
		return
	}

	s, err := h.auth.SignIn(c.Request.Context(), string(req.Email), req.Password, requestMeta(c))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			// the cause is never exposed to prevent user enumeration
			slog.Warn("login failed", "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.NewErrorResponse("invalid email or password"))
			return
		}
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.NewErrorResponse("login failed"))
		return
	}

	slog.Info("user login successful", "user_id", s.User.ID, "remote_addr", c.ClientIP())
	h.cookies.Set(c, s.Credential, s.Session.ExpiresAt)
	c.JSON(http.StatusOK, api.NewSessionResponse(s))
}

// SignOut handles POST /api/auth/sign-out. The cookie is cleared even if the
// session was already gone.
func (h *AuthHandler) SignOut(c *gin.Context) {
	credential := h.sessions.Credential(c.Request.Header)
	if err := h.auth.SignOut(c.Request.Context(), credential); err != nil {
		slog.Error("logout failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.NewErrorResponse("logout failed"))
		return
	}
	h.cookies.Clear(c)
	c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
}

// GetSession handles GET /api/auth/get-session. Anonymous callers get a JSON null.
func (h *AuthHandler) GetSession(c *gin.Context) {
	s, err := h.sessions.Session(c)
	if err != nil {
		slog.Error("get session failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.NewErrorResponse("Failed to resolve session"))
		return
	}
	if s == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, api.NewSessionResponse(s))
}
