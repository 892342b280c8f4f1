// Package cache provides caching implementations for store interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"userhub/internal/feature/auth/domain/entity"
	"userhub/internal/feature/user/usecase"
)

// CachingUserStore decorates a UserStore with a Redis read-through cache for the
// user list. Writes go to the inner store and then drop every key in the namespace.
type CachingUserStore struct {
	inner     usecase.UserStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check to ensure CachingUserStore implements UserStore.
var _ usecase.UserStore = (*CachingUserStore)(nil)

// NewCachingUserStore decorates a UserStore with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "users".
// A nil rdb disables caching.
func NewCachingUserStore(rdb *redis.Client, ttl time.Duration, inner usecase.UserStore, namespace string) *CachingUserStore {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "users"
	}
	return &CachingUserStore{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// UpdateFields updates the user and invalidates cached lists.
func (c *CachingUserStore) UpdateFields(ctx context.Context, id string, update usecase.ProfileUpdate, updatedAt time.Time) (*entity.User, error) {
	u, err := c.inner.UpdateFields(ctx, id, update, updatedAt)
	if err != nil {
		return nil, err
	}
	c.Invalidate(ctx)
	return u, nil
}

// Invalidate drops every cached entry in the namespace. Failures are logged
// and otherwise ignored; entries expire after the TTL anyway.
func (c *CachingUserStore) Invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.deleteByPattern(ctx, c.namespace+":*"); err != nil {
		slog.Warn("user list cache invalidation failed", "namespace", c.namespace, "error", err)
	}
}

// List returns all users, checking the cache first.
func (c *CachingUserStore) List(ctx context.Context) ([]entity.User, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	key := c.listKey()

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.User
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// corrupted entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

func (c *CachingUserStore) listKey() string {
	return c.namespace + ":all"
}

// deleteByPattern deletes all keys matching pattern using SCAN.
func (c *CachingUserStore) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
