// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

// Package ctxutil provides helpers for values carried in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/ctxkey"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/sec"
)

// RequestIdentity is the caller resolved by the auth gate.
//
// UserID is always set. DisplayName and ProfilePhoto are filled only when the
// identity record could be read at request time (Enriched reports which).
type RequestIdentity struct {
	UserID       string
	DisplayName  string
	ProfilePhoto string
	Enriched     bool
	TokenKind    sec.TokenKind
}

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}

// RequestLog collects fields discovered by inner handlers for the access log
// line written after the request completes.
type RequestLog struct {
	mu     sync.Mutex
	userID string
}

// SetUserID records the authenticated caller.
func (l *RequestLog) SetUserID(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.userID = id
}

// UserID returns the recorded caller, or "" for anonymous requests.
func (l *RequestLog) UserID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.userID
}

// WithRequestLog attaches a fresh [RequestLog] and returns it.
func WithRequestLog(ctx context.Context) (context.Context, *RequestLog) {
	log := &RequestLog{}
	return context.WithValue(ctx, ctxkey.KeyRequestLog, log), log
}

// GetRequestLog returns the attached [RequestLog], or nil outside the access logger.
func GetRequestLog(ctx context.Context) *RequestLog {
	log, _ := ctx.Value(ctxkey.KeyRequestLog).(*RequestLog)
	return log
}

// # Identity

// WithIdentity returns a new context carrying the resolved caller.
func WithIdentity(ctx context.Context, identity RequestIdentity) context.Context {
	return context.WithValue(ctx, ctxkey.KeyIdentity, identity)
}

// GetIdentity returns the caller attached by the auth gate.
// The boolean is false for requests that did not pass through it.
func GetIdentity(ctx context.Context) (RequestIdentity, bool) {
	identity, ok := ctx.Value(ctxkey.KeyIdentity).(RequestIdentity)
	if !ok || identity.UserID == "" {
		return RequestIdentity{}, false
	}
	return identity, true
}
