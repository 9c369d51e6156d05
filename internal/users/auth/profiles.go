// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package auth

import (
	"context"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/middleware"
)

// ProfileReader adapts a [UserRepository] to [middleware.ProfileReader].
type ProfileReader struct {
	users UserRepository
}

// NewProfileReader wraps users for the auth gate and role authorizer.
func NewProfileReader(users UserRepository) *ProfileReader {
	return &ProfileReader{users: users}
}

// ReadProfile loads the current display fields and role of userID.
func (reader *ProfileReader) ReadProfile(ctx context.Context, userID string) (*middleware.Profile, error) {
	user, err := reader.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &middleware.Profile{
		UserID:       user.ID,
		DisplayName:  user.DisplayName(),
		ProfilePhoto: user.ProfilePhoto,
		Role:         user.Role,
	}, nil
}
