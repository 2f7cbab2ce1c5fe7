// Copyright (c) 2026 Arcadia. All rights reserved.
// Author: dev@arcadia.gg

package player

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arcadia-gg/arcadia/internal/platform/constants"
)

// presenceTTL bounds how long a stale online flag can outlive a crashed
// server that never delivered the matching disconnect.
const presenceTTL = 24 * time.Hour

// RedisPresence implements the [Presence] mirror on Redis.
//
// # Why Redis?
//
// Presence is hot, volatile, and tolerant of loss: a flag that disappears is
// re-established on the next connect. Keeping it out of PostgreSQL spares the
// session table a write per heartbeat-style lookup.
type RedisPresence struct {
	client *redis.Client
}

// NewPresence creates a Redis-backed presence mirror.
func NewPresence(client *redis.Client) *RedisPresence {
	return &RedisPresence{client: client}
}

// SetOnline flags the player as connected.
func (presence *RedisPresence) SetOnline(ctx context.Context, playerID string) error {
	key := constants.RedisPrefixPresence + playerID
	if err := presence.client.Set(ctx, key, "1", presenceTTL).Err(); err != nil {
		return fmt.Errorf("redis_presence_set_online_failed: %w", err)
	}
	return nil
}

// SetOffline clears the player's connected flag.
func (presence *RedisPresence) SetOffline(ctx context.Context, playerID string) error {
	key := constants.RedisPrefixPresence + playerID
	if err := presence.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis_presence_set_offline_failed: %w", err)
	}
	return nil
}

// IsOnline reports whether the player's connected flag is currently set.
func (presence *RedisPresence) IsOnline(ctx context.Context, playerID string) (bool, error) {
	key := constants.RedisPrefixPresence + playerID
	count, err := presence.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis_presence_is_online_failed: %w", err)
	}
	return count > 0, nil
}
