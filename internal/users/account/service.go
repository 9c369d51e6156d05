// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

/*
Package account manages an existing identity: reading and editing the
caller's own profile, deleting it, and the admin user-management views.
*/
package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/apperr"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/sec"
	"github.com/Avi4306/FashionFiesta-sub001/internal/users/auth"
)

// CartRemover deletes the cart owned by an identity.
type CartRemover interface {
	DeleteByOwner(ctx context.Context, ownerID string) error
}

// # Service Layer

// Service orchestrates profile and administration use cases.
type Service struct {
	users  auth.UserRepository
	carts  CartRemover
	logger *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(users auth.UserRepository, carts CartRemover, logger *slog.Logger) *Service {
	return &Service{users: users, carts: carts, logger: logger}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated identity
  - error: NotFound or storage failures
*/
func (service *Service) GetProfile(ctx context.Context, userID string) (*auth.User, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

// UpdateProfileInput is the mutable subset of profile fields. Nil fields are left unchanged.
type UpdateProfileInput struct {
	FirstName    *string
	LastName     *string
	ProfilePhoto *string
}

/*
UpdateProfile applies a partial set of changes to the caller's profile.

Returns:
  - *auth.User: The updated identity
  - error: NotFound or storage failures
*/
func (service *Service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.ProfilePhoto != nil {
		user.ProfilePhoto = strings.TrimSpace(*input.ProfilePhoto)
	}

	if err := service.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "user_profile_updated", slog.String("user_id", userID))
	return user, nil
}

/*
DeleteAccount permanently removes the caller's identity and cart.

Description: a local identity must confirm with its password. A Google
identity has no password and is deleted on request.

Parameters:
  - ctx: context.Context
  - userID: string
  - password: string

Returns:
  - error: InvalidInput for a missing or wrong password, NotFound, storage failures
*/
func (service *Service) DeleteAccount(ctx context.Context, userID, password string) error {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("account_service_delete_lookup_failed: %w", err)
	}

	if user.AuthProvider == auth.ProviderLocal {
		if password == "" || !user.HasPassword() || !sec.CheckPasswordHash(password, *user.PasswordHash) {
			return apperr.InvalidInput(auth.MsgInvalidCredentials)
		}
	}

	if err := service.carts.DeleteByOwner(ctx, userID); err != nil && !apperr.HasCode(err, "NOT_FOUND") {
		return fmt.Errorf("account_service_delete_cart_failed: %w", err)
	}

	if err := service.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	service.logger.WarnContext(ctx, "user_account_deleted", slog.String("user_id", userID))
	return nil
}

// # Administration

/*
ListUsers returns identities filtered by role. An empty role lists everyone.

Returns:
  - []*auth.User: Matching identities, newest first
  - error: InvalidInput for an unknown role
*/
func (service *Service) ListUsers(ctx context.Context, role sec.Role) ([]*auth.User, error) {
	if role != "" && !role.Valid() {
		return nil, apperr.InvalidInput("Unknown role: " + string(role))
	}

	users, err := service.users.ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, nil
}

/*
ChangeRole sets the role of another identity.

Description: takes effect on the target's next request because the role
authorizer always re-reads roles. Designer applications have their own
workflow; this is the administrative override.

Returns:
  - *auth.User: The updated identity
  - error: InvalidInput for an unknown role or a self-change, NotFound
*/
func (service *Service) ChangeRole(ctx context.Context, actorID, userID string, role sec.Role) (*auth.User, error) {
	if !role.Valid() {
		return nil, apperr.InvalidInput("Unknown role: " + string(role))
	}
	if actorID == userID {
		return nil, apperr.InvalidInput("Admins cannot change their own role")
	}

	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_change_role_lookup_failed: %w", err)
	}

	previous := user.Role
	user.Role = role
	if err := service.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("account_service_change_role_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "user_role_changed",
		slog.String("actor_id", actorID),
		slog.String("user_id", userID),
		slog.String("from", string(previous)),
		slog.String("to", string(role)),
	)
	return user, nil
}

/*
DeleteUsersByRole removes every identity holding role.

Returns:
  - int64: Number of identities removed
  - error: InvalidInput for a missing or unknown role, Forbidden for admin
*/
func (service *Service) DeleteUsersByRole(ctx context.Context, actorID string, role sec.Role) (int64, error) {
	if role == "" {
		return 0, apperr.InvalidInput("A role filter is required")
	}
	if !role.Valid() {
		return 0, apperr.InvalidInput("Unknown role: " + string(role))
	}
	if role == sec.RoleAdmin {
		return 0, apperr.Forbidden("Admin accounts cannot be deleted in bulk")
	}

	removed, err := service.users.DeleteMany(ctx, role)
	if err != nil {
		return 0, fmt.Errorf("account_service_delete_many_failed: %w", err)
	}

	service.logger.WarnContext(ctx, "users_bulk_deleted",
		slog.String("actor_id", actorID),
		slog.String("role", string(role)),
		slog.Int64("count", removed),
	)
	return removed, nil
}
