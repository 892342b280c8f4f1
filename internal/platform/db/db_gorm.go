// Package db owns the process-wide database handle: opening it with retries,
// migrating the schema and closing it on shutdown.
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"userhub/internal/feature/auth/domain/entity"
)

const (
	connectTimeout = 60 * time.Second
	retryInterval  = 3 * time.Second
)

// Opener opens a GORM connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// OpenPostgres opens a Postgres connection with driver errors translated to GORM errors.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// Open connects to Postgres, retrying for up to a minute while the database comes up.
func Open(dsn string) (*gorm.DB, error) {
	return ConnectWithRetry(dsn, connectTimeout, retryInterval, OpenPostgres)
}

// ConnectWithRetry calls open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout, interval time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "interval", interval)
		time.Sleep(interval)
	}
}

// Migrate creates or updates the user, session, account and verification tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Session{},
		&entity.Account{},
		&entity.Verification{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
