// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/ctxutil"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-1")
	assert.Equal(t, "req-1", ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies the default fallback and an injected logger.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Identity verifies that a RequestIdentity round-trips through the context
and that an empty user id is treated as absent.
*/
func TestContext_Identity(t *testing.T) {
	ctx := context.Background()

	_, ok := ctxutil.GetIdentity(ctx)
	assert.False(t, ok)

	ctx = ctxutil.WithIdentity(ctx, ctxutil.RequestIdentity{
		UserID:      "user-123",
		DisplayName: "Ada Lovelace",
		Enriched:    true,
		TokenKind:   sec.KindLocal,
	})

	identity, ok := ctxutil.GetIdentity(ctx)
	assert.True(t, ok)
	assert.Equal(t, "user-123", identity.UserID)
	assert.Equal(t, "Ada Lovelace", identity.DisplayName)
	assert.Equal(t, sec.KindLocal, identity.TokenKind)

	_, ok = ctxutil.GetIdentity(ctxutil.WithIdentity(context.Background(), ctxutil.RequestIdentity{}))
	assert.False(t, ok)
}

/*
TestContext_RequestLog verifies fields set deeper in the chain are visible
through the holder attached by the outer middleware.
*/
func TestContext_RequestLog(t *testing.T) {
	assert.Nil(t, ctxutil.GetRequestLog(context.Background()))

	ctx, requestLog := ctxutil.WithRequestLog(context.Background())
	inner := ctxutil.WithIdentity(ctx, ctxutil.RequestIdentity{UserID: "u-9"})
	ctxutil.GetRequestLog(inner).SetUserID("u-9")

	assert.Equal(t, "u-9", requestLog.UserID())
}
