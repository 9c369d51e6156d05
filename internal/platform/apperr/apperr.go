// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

/*
Package apperr defines the error taxonomy shared by every layer of the Fashion Fiesta API.

Services and repositories return [*AppError] values; the HTTP boundary
(see package respond) turns them into a status code and a JSON envelope.

Categories:

  - Unauthorized (401): no token, bad token, expired token.
  - Forbidden (403): the caller's current role is not allowed.
  - InvalidInput / Validation (400): malformed body, non-positive quantity, empty reason.
  - NotFound (404): a referenced entity is absent.
  - InvalidState (409): a role transition attempted from the wrong state.
  - Conflict (409): uniqueness violations and lost optimistic-lock races.
  - Internal (500): store or provider failures not otherwise classified.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the canonical error type of the API.
//
// The Cause field is for server-side logging only and is never serialized.
type AppError struct {
	// Code is a machine-readable identifier (e.g. "NOT_FOUND", "INVALID_STATE").
	Code string `json:"code"`
	// Message is safe to show to the client.
	Message string `json:"error"`
	// HTTPStatus is the response status code.
	HTTPStatus int `json:"-"`
	// Cause is the wrapped error.
	Cause error `json:"-"`
	// Details holds per-field failures for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause attaches an underlying error for logging and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Cart item") // "Cart item not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// NotFoundMsg creates a 404 [AppError] with a fully custom message.
func NotFoundMsg(msg string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    msg,
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict creates a 409 [AppError] for duplicates and lost update races.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// InvalidState creates a 409 [AppError] for a transition attempted from the wrong state.
func InvalidState(msg string) *AppError {
	return &AppError{
		Code:       "INVALID_STATE",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// InvalidInput creates a 400 [AppError] without field details.
func InvalidInput(msg string) *AppError {
	return &AppError{
		Code:       "INVALID_INPUT",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ServiceUnavailable creates a 503 [AppError] for features whose backing
// provider is not configured or reachable.
func ServiceUnavailable(msg string) *AppError {
	return &AppError{
		Code:       "SERVICE_UNAVAILABLE",
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
