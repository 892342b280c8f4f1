package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userhub/internal/api"
	"userhub/internal/feature/auth/domain/entity"
	"userhub/internal/feature/auth/guard"
	"userhub/internal/feature/user/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockUserUsecase is a mock implementation of the UserUsecase interface.
type mockUserUsecase struct {
	UpdateProfileFunc func(ctx context.Context, userID, name, image string) (*entity.User, error)
	ListUsersFunc     func(ctx context.Context) ([]entity.User, error)
	updateCalls       int
}

func (m *mockUserUsecase) UpdateProfile(ctx context.Context, userID, name, image string) (*entity.User, error) {
	m.updateCalls++
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, name, image)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return nil, nil
}

// stubProvider resolves only the credential "good".
type stubProvider struct{ user *entity.User }

func (p *stubProvider) GetSession(_ context.Context, credential string) (*entity.AuthSession, error) {
	if credential != "good" {
		return nil, nil
	}
	return &entity.AuthSession{
		Session: &entity.Session{ID: "sess-1", UserID: p.user.ID, ExpiresAt: time.Now().Add(time.Hour)},
		User:    p.user,
	}, nil
}

func testUser() *entity.User {
	return &entity.User{ID: "user-1", Name: "Alice", Email: "alice@example.com"}
}

func setupRouter(uc UserUsecase) *gin.Engine {
	g := guard.New(&stubProvider{user: testUser()}, guard.NewCookies(false))
	h := NewUserHandler(uc)

	r := gin.New()
	authed := r.Group("/api/user", g.Required())
	authed.GET("/profile", h.GetProfile)
	authed.PATCH("/update", h.UpdateProfile)
	r.GET("/api/users", h.ListUsers)
	return r
}

func do(r *gin.Engine, method, path, body string, authed bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer good")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserHandler_GetProfile(t *testing.T) {
	r := setupRouter(&mockUserUsecase{})

	t.Run("signed in", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/user/profile", "", true)

		require.Equal(t, http.StatusOK, w.Code)
		var resp api.ProfileResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "user-1", resp.User.ID)
		assert.Equal(t, "alice@example.com", resp.User.Email)
	})

	t.Run("anonymous", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/user/profile", "", false)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, guard.UnauthorizedMessage, resp.Error)
	})
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		authed         bool
		setupMock      func(m *mockUserUsecase)
		expectedStatus int
		expectedError  string
		expectCalled   bool
	}{
		{
			name:   "name only",
			body:   `{"name":"Alicia"}`,
			authed: true,
			setupMock: func(m *mockUserUsecase) {
				m.UpdateProfileFunc = func(_ context.Context, userID, name, image string) (*entity.User, error) {
					if userID != "user-1" || name != "Alicia" || image != "" {
						return nil, errors.New("unexpected arguments")
					}
					return &entity.User{ID: userID, Name: name}, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectCalled:   true,
		},
		{
			name:           "empty body",
			body:           `{}`,
			authed:         true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "At least one field (name or image) must be provided",
		},
		{
			name:           "empty strings",
			body:           `{"name":"","image":""}`,
			authed:         true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "At least one field (name or image) must be provided",
		},
		{
			name:           "name too long",
			body:           `{"name":"` + strings.Repeat("a", 256) + `"}`,
			authed:         true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "image too long",
			body:           `{"image":"` + strings.Repeat("i", 2049) + `"}`,
			authed:         true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed json",
			body:           `{"name":`,
			authed:         true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request",
		},
		{
			name:           "anonymous",
			body:           `{"name":"Alicia"}`,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  guard.UnauthorizedMessage,
		},
		{
			name:   "user vanished",
			body:   `{"image":"http://x/a.png"}`,
			authed: true,
			setupMock: func(m *mockUserUsecase) {
				m.UpdateProfileFunc = func(context.Context, string, string, string) (*entity.User, error) {
					return nil, usecase.ErrUserNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
			expectCalled:   true,
		},
		{
			name:   "store failure",
			body:   `{"image":"http://x/a.png"}`,
			authed: true,
			setupMock: func(m *mockUserUsecase) {
				m.UpdateProfileFunc = func(context.Context, string, string, string) (*entity.User, error) {
					return nil, errors.New("connection refused")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to update profile",
			expectCalled:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockUserUsecase{}
			if tt.setupMock != nil {
				tt.setupMock(m)
			}
			r := setupRouter(m)

			w := do(r, http.MethodPatch, "/api/user/update", tt.body, tt.authed)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectCalled, m.updateCalls > 0)
			if tt.expectedStatus != http.StatusOK {
				var resp api.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.False(t, resp.Success)
				if tt.expectedError != "" {
					assert.Equal(t, tt.expectedError, resp.Error)
				}
				assert.NotContains(t, resp.Error, "connection refused")
			}
		})
	}
}

func TestUserHandler_ListUsers(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		m := &mockUserUsecase{ListUsersFunc: func(context.Context) ([]entity.User, error) {
			return []entity.User{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}, nil
		}}
		w := do(setupRouter(m), http.MethodGet, "/api/users", "", false)

		require.Equal(t, http.StatusOK, w.Code)
		var resp api.UsersResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		require.Len(t, resp.Data, 2)
		assert.Equal(t, "1", resp.Data[0].ID)
	})

	t.Run("empty list is an empty array", func(t *testing.T) {
		w := do(setupRouter(&mockUserUsecase{}), http.MethodGet, "/api/users", "", false)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		m := &mockUserUsecase{ListUsersFunc: func(context.Context) ([]entity.User, error) {
			return nil, errors.New("db down")
		}}
		w := do(setupRouter(m), http.MethodGet, "/api/users", "", false)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"success":false,"error":"Failed to fetch users"}`, w.Body.String())
	})
}
