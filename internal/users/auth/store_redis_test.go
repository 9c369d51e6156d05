// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/apperr"
	"github.com/Avi4306/FashionFiesta-sub001/internal/users/auth"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

/*
TestSignupCodeRepository_Lifecycle verifies set, read, TTL expiry and delete.
*/
func TestSignupCodeRepository_Lifecycle(t *testing.T) {
	server, client := newRedis(t)
	repo := auth.NewSignupCodeRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "Ana@Example.com", "654321", time.Minute))
	assert.True(t, server.Exists("auth:signup_otp:ana@example.com"))
	assert.Equal(t, time.Minute, server.TTL("auth:signup_otp:ana@example.com"))

	code, err := repo.Get(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "654321", code)

	server.FastForward(2 * time.Minute)
	_, err = repo.Get(ctx, "ana@example.com")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	require.NoError(t, repo.Set(ctx, "ana@example.com", "111111", time.Minute))
	require.NoError(t, repo.Delete(ctx, "ana@example.com"))
	_, err = repo.Get(ctx, "ana@example.com")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}

/*
TestOAuthStateRepository_Lifecycle verifies state to verifier mapping and
that a state can be taken once.
*/
func TestOAuthStateRepository_Lifecycle(t *testing.T) {
	server, client := newRedis(t)
	repo := auth.NewOAuthStateRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "state-1", "verifier-1", auth.OAuthStateTTL))

	verifier, err := repo.Take(ctx, "state-1")
	require.NoError(t, err)
	assert.Equal(t, "verifier-1", verifier)

	assert.False(t, server.Exists("auth:oauth_state:state-1"))

	// Redeemed states are gone; a second take sees nothing.
	_, err = repo.Take(ctx, "state-1")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}

/*
TestRedisRepositories_ConnectionFailure verifies transport errors are not
reported as missing keys.
*/
func TestRedisRepositories_ConnectionFailure(t *testing.T) {
	server, client := newRedis(t)
	server.Close()

	_, err := auth.NewSignupCodeRepository(client).Get(context.Background(), "x@example.com")
	require.Error(t, err)
	assert.False(t, apperr.HasCode(err, "NOT_FOUND"))

	_, err = auth.NewOAuthStateRepository(client).Take(context.Background(), "state-1")
	require.Error(t, err)
	assert.False(t, apperr.HasCode(err, "NOT_FOUND"))
}
