// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/apperr"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/constants"
)

// # Signup Code Repository

// RedisSignupCodeRepository implements [SignupCodeRepository] using Redis.
type RedisSignupCodeRepository struct {
	client redis.UniversalClient
}

// NewSignupCodeRepository creates a Redis-backed [SignupCodeRepository].
func NewSignupCodeRepository(client redis.UniversalClient) *RedisSignupCodeRepository {
	return &RedisSignupCodeRepository{client: client}
}

/*
Set stores the code for email, replacing any earlier one.

Parameters:
  - ctx: context.Context
  - email: string
  - code: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisSignupCodeRepository) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	key := constants.RedisPrefixSignupOTP + NormalizeEmail(email)
	if err := repository.client.Set(ctx, key, code, ttl).Err(); err != nil {
		return fmt.Errorf("redis_signup_code_set_failed: %w", err)
	}
	return nil
}

/*
Get retrieves the pending code for email.

Returns:
  - string: The code
  - error: apperr.NotFound when absent or expired
*/
func (repository *RedisSignupCodeRepository) Get(ctx context.Context, email string) (string, error) {
	key := constants.RedisPrefixSignupOTP + NormalizeEmail(email)

	code, err := repository.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Signup code")
		}
		return "", fmt.Errorf("redis_signup_code_get_failed: %w", err)
	}
	return code, nil
}

// Delete removes the code for email.
func (repository *RedisSignupCodeRepository) Delete(ctx context.Context, email string) error {
	key := constants.RedisPrefixSignupOTP + NormalizeEmail(email)
	if err := repository.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis_signup_code_delete_failed: %w", err)
	}
	return nil
}

// # OAuth State Repository

// RedisOAuthStateRepository implements [OAuthStateRepository] using Redis.
type RedisOAuthStateRepository struct {
	client redis.UniversalClient
}

// NewOAuthStateRepository creates a Redis-backed [OAuthStateRepository].
func NewOAuthStateRepository(client redis.UniversalClient) *RedisOAuthStateRepository {
	return &RedisOAuthStateRepository{client: client}
}

// Set remembers the PKCE verifier issued alongside state.
func (repository *RedisOAuthStateRepository) Set(ctx context.Context, state, verifier string, ttl time.Duration) error {
	if err := repository.client.Set(ctx, constants.RedisPrefixOAuthState+state, verifier, ttl).Err(); err != nil {
		return fmt.Errorf("redis_oauth_state_set_failed: %w", err)
	}
	return nil
}

/*
Take returns the verifier for state and deletes it atomically with GETDEL.

Returns:
  - string: The PKCE verifier
  - error: apperr.NotFound for an unknown, expired or already redeemed state
*/
func (repository *RedisOAuthStateRepository) Take(ctx context.Context, state string) (string, error) {
	verifier, err := repository.client.GetDel(ctx, constants.RedisPrefixOAuthState+state).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("OAuth state")
		}
		return "", fmt.Errorf("redis_oauth_state_take_failed: %w", err)
	}
	return verifier, nil
}
