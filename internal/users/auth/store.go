// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package auth

import (
	"context"
	"time"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for identities.
//
// Lookups of a missing identity return an apperr NOT_FOUND error.
type UserRepository interface {

	/*
		FindByID returns the identity with the given ID.

		Parameters:
		  - ctx: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(ctx context.Context, id string) (*User, error)

	/*
		FindByEmail returns the identity with the given email (case-insensitive).

		Parameters:
		  - ctx: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByEmail(ctx context.Context, email string) (*User, error)

	/*
		Create persists a new identity.

		Returns:
		  - error: apperr.Conflict when the email is taken
	*/
	Create(ctx context.Context, user *User) error

	/*
		Update persists every mutable field of user, including role and the
		embedded designer documents.
	*/
	Update(ctx context.Context, user *User) error

	// Delete removes a single identity.
	Delete(ctx context.Context, id string) error

	// DeleteMany removes every identity holding role and reports how many went.
	DeleteMany(ctx context.Context, role sec.Role) (int64, error)

	// ListByRole returns identities holding role, newest first. An empty role lists all.
	ListByRole(ctx context.Context, role sec.Role) ([]*User, error)
}

// # Ephemeral State

// SignupCodeRepository stores the pending one-time code for an email.
type SignupCodeRepository interface {
	Set(ctx context.Context, email, code string, ttl time.Duration) error

	// Get returns apperr.NotFound when no code is pending.
	Get(ctx context.Context, email string) (string, error)

	Delete(ctx context.Context, email string) error
}

// OAuthStateRepository maps an OAuth state parameter to its PKCE verifier.
type OAuthStateRepository interface {
	Set(ctx context.Context, state, verifier string, ttl time.Duration) error

	// Take returns the verifier and removes state in one step, so a state
	// is redeemed at most once. Unknown or expired states are apperr.NotFound.
	Take(ctx context.Context, state string) (string, error)
}
