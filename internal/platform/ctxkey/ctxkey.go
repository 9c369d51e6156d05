// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

// Package ctxkey defines the typed context keys shared by middleware and handlers.
//
// The unexported key type keeps these values from colliding with keys set by
// third-party packages, since context lookups compare both type and value.
package ctxkey

type key string

const (
	// KeyRequestID holds the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyIdentity holds the ctxutil.RequestIdentity produced by the auth gate.
	KeyIdentity key = "identity"

	// KeyLogger holds the per-request [*log/slog.Logger].
	KeyLogger key = "logger"

	// KeyRequestLog holds the *ctxutil.RequestLog filled in while the request runs.
	KeyRequestLog key = "request_log"
)
