// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/cliplet/internal/platform/apperr"
	"github.com/taibuivan/cliplet/internal/platform/constants"
)

// # Reset Token Repository

// RedisResetTokenRepository implements [ResetTokenRepository] on top of Redis.
//
// Redis handles the expiration automatically via key TTL, so no sweeper
// process is needed for stale tokens.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewResetTokenRepository creates a Redis-backed reset token store.
func NewResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

// key builds the namespaced Redis key for a token hash.
func (repository *RedisResetTokenRepository) key(tokenHash string) string {
	return constants.RedisPrefixResetToken + tokenHash
}

/*
Set stores the token hash mapped to the userID with an expiration.

Parameters:
  - context: context.Context
  - tokenHash: string (SHA-256 of the raw token)
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Redis connectivity failures
*/
func (repository *RedisResetTokenRepository) Set(context context.Context, tokenHash string, userID string, ttl time.Duration) error {
	if err := repository.client.Set(context, repository.key(tokenHash), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_set_failed: %w", err)
	}
	return nil
}

/*
Consume retrieves and atomically deletes the userID for a token hash.

Description: Uses GETDEL so a reset token can never be replayed, even under
concurrent requests.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - string: UserID bound to the token
  - error: apperr.Unauthorized when the token is unknown or expired
*/
func (repository *RedisResetTokenRepository) Consume(context context.Context, tokenHash string) (string, error) {
	userID, err := repository.client.GetDel(context, repository.key(tokenHash)).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.Unauthorized("Invalid or expired reset token")
		}
		return "", fmt.Errorf("redis_reset_token_consume_failed: %w", err)
	}

	return userID, nil
}
