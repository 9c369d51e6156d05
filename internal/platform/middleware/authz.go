// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/apperr"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/constants"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/ctxutil"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/respond"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/sec"
)

// Gate failure messages.
const (
	MsgHeaderMissing = "Authorization header missing or malformed"
	MsgTokenNotFound = "Token not found"
	MsgTokenRejected = "Invalid or expired token"
	MsgAuthRequired  = "Authentication required"
	MsgAccessDenied  = "Access denied"
)

// TokenResolver turns a raw bearer token into a verified (or explicitly
// unverified) [sec.Token].
type TokenResolver interface {
	Resolve(raw string) (sec.Token, error)
}

// Profile is the slice of an identity record the middleware needs.
type Profile struct {
	UserID       string
	DisplayName  string
	ProfilePhoto string
	Role         sec.Role
}

// ProfileReader loads the current state of an identity.
//
// Implementations return an apperr NOT_FOUND error when the identity does not exist.
type ProfileReader interface {
	ReadProfile(ctx context.Context, userID string) (*Profile, error)
}

// Authenticate is the auth gate for protected routes.
//
// # Flow
//  1. Require 'Authorization: Bearer <token>'. Anything else is a 401.
//  2. Resolve the token. Any failure is a 401 with no identity attached.
//  3. Read the identity record (best-effort) to enrich the context.
//  4. Attach [ctxutil.RequestIdentity] and continue.
//
// Every request performs one profile read; nothing is cached.
func Authenticate(resolver TokenResolver, profiles ProfileReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			// ── 1. Header ─────────────────────────────────────────────────────
			raw, err := bearerToken(request.Header.Get(constants.HeaderAuthorization))
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 2. Token ──────────────────────────────────────────────────────
			token, resolveErr := resolver.Resolve(raw)
			if resolveErr != nil {
				respond.Error(writer, request, apperr.Unauthorized(MsgTokenRejected).WithCause(resolveErr))
				return
			}

			identity := ctxutil.RequestIdentity{
				UserID:    token.IdentityID(),
				TokenKind: token.Kind(),
			}

			// ── 3. Enrichment ─────────────────────────────────────────────────
			profile, lookupErr := profiles.ReadProfile(ctx, identity.UserID)
			switch {
			case lookupErr == nil:
				identity.DisplayName = profile.DisplayName
				identity.ProfilePhoto = profile.ProfilePhoto
				identity.Enriched = true
			case apperr.HasCode(lookupErr, "NOT_FOUND"):
				// Deleted or never-registered subject: keep the bare id.
			default:
				ctxutil.GetLogger(ctx).WarnContext(ctx, "auth_gate_profile_lookup_failed",
					slog.String("user_id", identity.UserID),
					slog.Any("error", lookupErr),
				)
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			if requestLog := ctxutil.GetRequestLog(ctx); requestLog != nil {
				requestLog.SetUserID(identity.UserID)
			}
			ctx = ctxutil.WithIdentity(ctx, identity)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", identity.UserID)))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// bearerToken extracts the credential from an Authorization header value.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperr.Unauthorized(MsgHeaderMissing)
	}

	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, constants.BearerScheme) {
		return "", apperr.Unauthorized(MsgHeaderMissing)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperr.Unauthorized(MsgTokenNotFound)
	}
	return token, nil
}

// Authorize permits the request only when the caller's CURRENT stored role is
// in allowed. The role claim inside the token is never consulted.
//
// Must be mounted after [Authenticate].
func Authorize(profiles ProfileReader, allowed ...sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			identity, ok := ctxutil.GetIdentity(ctx)
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized(MsgAuthRequired))
				return
			}

			profile, err := profiles.ReadProfile(ctx, identity.UserID)
			if err != nil {
				if apperr.HasCode(err, "NOT_FOUND") {
					respond.Error(writer, request, apperr.Forbidden(MsgAccessDenied))
					return
				}
				respond.Error(writer, request, err)
				return
			}

			if !profile.Role.In(allowed...) {
				respond.Error(writer, request, apperr.Forbidden(MsgAccessDenied))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
