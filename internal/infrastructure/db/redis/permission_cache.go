package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

const defaultGrantTTL = 10 * time.Minute

// PermissionCache stores resolved grants as JSON.
// Key format: perm:<guard>:<principal_id>
type PermissionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPermissionCache returns a cache whose entries expire after ttl, or
// after ten minutes when ttl is not positive.
func NewPermissionCache(client *redis.Client, ttl time.Duration) *PermissionCache {
	if ttl <= 0 {
		ttl = defaultGrantTTL
	}
	return &PermissionCache{client: client, ttl: ttl}
}

// Get returns nil without error on a cache miss.
func (c *PermissionCache) Get(ctx context.Context, guard domain.Guard, principalID string) (*domain.Grant, error) {
	raw, err := c.client.Get(ctx, c.key(guard, principalID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("permission cache get: %w", err)
	}
	var g domain.Grant
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("permission cache decode: %w", err)
	}
	return &g, nil
}

func (c *PermissionCache) Set(ctx context.Context, guard domain.Guard, principalID string, grant domain.Grant) error {
	raw, err := json.Marshal(grant)
	if err != nil {
		return fmt.Errorf("permission cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(guard, principalID), raw, c.ttl).Err()
}

func (c *PermissionCache) Invalidate(ctx context.Context, guard domain.Guard, principalID string) error {
	return c.client.Del(ctx, c.key(guard, principalID)).Err()
}

func (c *PermissionCache) key(guard domain.Guard, principalID string) string {
	return fmt.Sprintf("perm:%s:%s", guard, principalID)
}
