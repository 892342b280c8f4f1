// Package router assembles the HTTP routes.
package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"userhub/internal/feature/auth/guard"
	authhandler "userhub/internal/feature/auth/transport/handler"
	"userhub/internal/feature/pages"
	userhandler "userhub/internal/feature/user/transport/handler"
	healthhandler "userhub/internal/platform/http/handler"
	"userhub/internal/shared/ratelimiter"
)

// Deps are the components the routes are served by.
type Deps struct {
	Guard   *guard.Guard
	Auth    *authhandler.AuthHandler
	Users   *userhandler.UserHandler
	Pages   *pages.Handler
	Health  *healthhandler.HealthHandler
	Limiter ratelimiter.Limiter
}

// Options tune route registration.
type Options struct {
	// BaseURL is the only origin CORS admits, with credentials.
	BaseURL string
	// ListUsersRequireAuth puts GET /api/users behind the guard.
	ListUsersRequireAuth bool
}

// NewRouter creates the gin engine serving the API and the pages.
func NewRouter(d Deps, opts Options) (*gin.Engine, error) {
	r := gin.Default()

	tmpl, err := pages.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{opts.BaseURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// no auth
	r.GET("/healthz", d.Health.Health)
	r.HEAD("/healthz", d.Health.Health)

	// session endpoints
	authAPI := r.Group("/api/auth", ratelimiter.Middleware(d.Limiter))
	{
		authAPI.POST("/sign-up/email", d.Auth.SignUp)
		authAPI.POST("/sign-in/email", d.Auth.SignIn)
		authAPI.POST("/sign-out", d.Auth.SignOut)
		authAPI.GET("/get-session", d.Auth.GetSession)
	}

	// session required
	userAPI := r.Group("/api/user", d.Guard.Required())
	{
		userAPI.GET("/profile", d.Users.GetProfile)
		userAPI.PATCH("/update", d.Users.UpdateProfile)
	}

	if opts.ListUsersRequireAuth {
		r.GET("/api/users", d.Guard.Required(), d.Users.ListUsers)
	} else {
		r.GET("/api/users", d.Users.ListUsers)
	}

	d.Pages.Register(r, d.Guard, pages.DefaultRoutes())

	return r, nil
}
