package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// StateCache holds the durable per-user client state blobs: pending checkout
// intent, last-active panel, preferences, favorites and support tickets.
// Values are JSON strings parsed best-effort; a malformed blob is discarded
// silently so stale state can never wedge a page load.
type StateCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewStateCache creates a StateCache with the configured state TTL.
func NewStateCache(redis *RedisClient, ttl time.Duration) *StateCache {
	return &StateCache{redis: redis, ttl: ttl}
}

func (c *StateCache) key(scope, owner string) string {
	return fmt.Sprintf("state:%s:%s", scope, owner)
}

// SetJSON marshals value and stores it under scope:owner.
func (c *StateCache) SetJSON(ctx context.Context, scope, owner string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s state: %w", scope, err)
	}
	return c.redis.Set(ctx, c.key(scope, owner), string(data), c.ttl)
}

// GetJSON loads scope:owner into out. Returns false when the key is absent or
// the stored blob fails to parse; a parse failure also deletes the blob.
func (c *StateCache) GetJSON(ctx context.Context, scope, owner string, out any) (bool, error) {
	raw, err := c.redis.Get(ctx, c.key(scope, owner))
	if err != nil {
		if IsNil(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Warn().Str("scope", scope).Msg("Discarding malformed client state")
		_ = c.redis.Delete(ctx, c.key(scope, owner))
		return false, nil
	}
	return true, nil
}

// TakeJSON is GetJSON plus deletion: the value is consumed by exactly one
// read regardless of whether the caller can use it.
func (c *StateCache) TakeJSON(ctx context.Context, scope, owner string, out any) (bool, error) {
	found, err := c.GetJSON(ctx, scope, owner, out)
	if err != nil {
		return false, err
	}
	if found {
		if delErr := c.redis.Delete(ctx, c.key(scope, owner)); delErr != nil {
			log.Warn().Err(delErr).Str("scope", scope).Msg("Failed to clear consumed client state")
		}
	}
	return found, nil
}

// Clear removes scope:owner.
func (c *StateCache) Clear(ctx context.Context, scope, owner string) error {
	return c.redis.Delete(ctx, c.key(scope, owner))
}
