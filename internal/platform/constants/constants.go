// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

/*
Package constants provides shared, immutable values for the platform.

Categories:

  - Server Timing: HTTP server and shutdown timeouts.
  - Rate Limiting: per-IP burst and cleanup settings.
  - Redis Prefixes: the key taxonomy used by the KV stores.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "fashionfiesta-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests get during shutdown.
	ShutdownTimeout = 30 * time.Second

	// NotificationTimeout bounds a single detached email send.
	NotificationTimeout = 15 * time.Second
)

// # Rate Limiting

const (
	DefaultRateLimitRPS   = 50.0
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often idle IP entries are swept.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the 'iss' claim of locally issued tokens.
	AuthIssuer = "fashionfiesta.app"
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"

	// BearerScheme is the only accepted Authorization scheme.
	BearerScheme = "Bearer"
)

// # JSON Field Identifiers

const (
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Redis Prefixes

const (
	RedisPrefixSignupOTP  = "auth:signup_otp:"
	RedisPrefixOAuthState = "auth:oauth_state:"
)
