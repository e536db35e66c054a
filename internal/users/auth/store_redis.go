// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/revuo-app/revuo/internal/platform/apperr"
	"github.com/revuo-app/revuo/internal/platform/constants"
	"github.com/revuo-app/revuo/pkg/uuid"
)

// # Nonce Repository

// RedisNonceRepository implements NonceRepository using Redis.
type RedisNonceRepository struct {
	client *redis.Client
}

// NewNonceRepository creates a new Redis-backed NonceRepository.
func NewNonceRepository(client *redis.Client) *RedisNonceRepository {
	return &RedisNonceRepository{client: client}
}

/*
Rotate replaces the user's issuance nonce with a fresh random value.

Description: Overwrites any existing nonce, which invalidates every
previously derived confirmation code for this user.

Parameters:
  - context: context.Context
  - userID: string
  - ttl: time.Duration

Returns:
  - string: The newly stored nonce
  - error: Storage failures
*/
func (repository *RedisNonceRepository) Rotate(context context.Context, userID string, ttl time.Duration) (string, error) {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixCodeNonce, userID)

	// Time-sortable random value; uniqueness is all that matters here
	nonce := uuid.New()

	// Set the nonce with TTL, replacing any previous value
	if err := repository.client.Set(context, key, nonce, ttl).Err(); err != nil {
		return "", fmt.Errorf("redis_code_nonce_rotate_failed: %w", err)
	}

	// Return the fresh nonce
	return nonce, nil
}

/*
Get retrieves the user's current issuance nonce.

Description: Returns apperr.NotFound if no code has been issued or the
previous issuance has expired.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - string: Nonce value
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisNonceRepository) Get(context context.Context, userID string) (string, error) {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixCodeNonce, userID)

	// Get the nonce from Redis
	nonce, err := repository.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Confirmation code is invalid or expired")
		}
		return "", fmt.Errorf("redis_code_nonce_get_failed: %w", err)
	}

	// Return the nonce
	return nonce, nil
}

/*
Delete removes the nonce after a successful exchange.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisNonceRepository) Delete(context context.Context, userID string) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixCodeNonce, userID)

	// Delete the nonce from Redis
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_code_nonce_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}
