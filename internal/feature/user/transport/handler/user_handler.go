// Package handler provides HTTP handlers for the user feature.
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
	"userhub/internal/feature/user/usecase"
)

const listUsersFailedMessage = "Failed to fetch users"

// UserUsecase defines the user operations the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type UserUsecase interface {
	UpdateProfile(ctx context.Context, userID, name, image string) (*entity.User, error)
	ListUsers(ctx context.Context) ([]entity.User, error)
}

// UserHandler handles the profile and user listing endpoints.
// Profile routes must be mounted behind guard.Required.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

func currentUser(c *gin.Context) *entity.User {
	s := guard.Current(c)
	if s == nil {
		return nil
	}
	return s.User
}

// GetProfile handles GET /api/user/profile and returns the signed-in user.
func (h *UserHandler) GetProfile(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, api.NewErrorResponse(guard.UnauthorizedMessage))
		return
	}
	c.JSON(http.StatusOK, api.ProfileResponse{Success: true, User: api.NewUser(u)})
}

// UpdateProfile handles PATCH /api/user/update.
// - 400 when the body is malformed, empty or fails validation
// - 404 when the user no longer exists
// - 200 with the updated user on success
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, api.NewErrorResponse(guard.UnauthorizedMessage))
		return
	}

	var req api.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("profile update rejected", "error", err, "user_id", u.ID)
		c.JSON(http.StatusBadRequest, api.NewErrorResponse("invalid request"))
		return
	}
	if req.Name == "" && req.Image == "" {
		c.JSON(http.StatusBadRequest, api.NewErrorResponse(usecase.ErrNoFieldsToUpdate.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, api.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.users.UpdateProfile(c.Request.Context(), u.ID, req.Name, req.Image)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoFieldsToUpdate):
			c.JSON(http.StatusBadRequest, api.NewErrorResponse(err.Error()))
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.NewErrorResponse("User not found"))
		default:
			slog.Error("profile update failed", "error", err, "user_id", u.ID)
			c.JSON(http.StatusInternalServerError, api.NewErrorResponse("Failed to update profile"))
		}
		return
	}

	slog.Info("profile updated", "user_id", u.ID)
	c.JSON(http.StatusOK, api.ProfileResponse{Success: true, User: api.NewUser(updated)})
}

// ListUsers handles GET /api/users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		c.JSON(http.StatusInternalServerError, api.NewErrorResponse(listUsersFailedMessage))
		return
	}
	c.JSON(http.StatusOK, api.UsersResponse{Success: true, Data: api.NewUsers(users)})
}
