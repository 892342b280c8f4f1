package di

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"userhub/internal/app/router"
	authadapters "userhub/internal/feature/auth/adapters"
	"userhub/internal/feature/auth/guard"
	authhandler "userhub/internal/feature/auth/transport/handler"
	authusecase "userhub/internal/feature/auth/usecase"
	"userhub/internal/feature/pages"
	useradapters "userhub/internal/feature/user/adapters"
	userhandler "userhub/internal/feature/user/transport/handler"
	userusecase "userhub/internal/feature/user/usecase"
	"userhub/internal/platform/cache"
	"userhub/internal/platform/config"
	healthhandler "userhub/internal/platform/http/handler"
	jwtcred "userhub/internal/platform/jwt"
	"userhub/internal/shared/ratelimiter"
)

const userListTTL = time.Minute

// NewRouterDeps wires every component the router needs. rdb may be nil.
func NewRouterDeps(cfg config.Config, db *gorm.DB, rdb *redis.Client) router.Deps {
	// Repository
	userStore := cache.NewCachingUserStore(rdb, userListTTL, useradapters.NewUserStoreGorm(db), "users")
	// sign-up adds a user, so it must drop cached lists too
	userRepo := cache.NewInvalidatingUserRepository(authadapters.NewUserGorm(db), userStore)
	sessionRepo := NewSessionRepository(rdb, db)

	// Usecase
	signer := jwtcred.NewSigner(cfg.AuthSecret, cfg.BaseURL)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, signer, authusecase.Options{
		ExpiresIn: cfg.SessionExpiresIn,
		UpdateAge: cfg.SessionUpdateAge,
	})
	userUC := userusecase.NewUserUsecase(userStore)

	// Handler
	cookies := guard.NewCookies(cfg.SecureCookies())
	g := guard.New(authUC, cookies)

	return router.Deps{
		Guard:   g,
		Auth:    authhandler.NewAuthHandler(authUC, g, cookies),
		Users:   userhandler.NewUserHandler(userUC),
		Pages:   pages.NewHandler(),
		Health:  healthhandler.NewHealthHandler(healthChecks(db, rdb)...),
		Limiter: ratelimiter.NewRateLimiter(cfg.AuthRateLimit, config.AuthRateWindow),
	}
}

func healthChecks(db *gorm.DB, rdb *redis.Client) []healthhandler.Check {
	checks := []healthhandler.Check{{
		Name: "database",
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}
	if rdb != nil {
		checks = append(checks, healthhandler.Check{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}
	return checks
}
