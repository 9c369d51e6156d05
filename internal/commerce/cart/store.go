// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package cart

import "context"

// Repository defines the data access contract for carts.
type Repository interface {
	/*
		FindByOwner returns the cart owned by ownerID.

		Returns:
		  - *Cart: Hydrated cart
		  - error: apperr.NotFound if the identity has no cart yet
	*/
	FindByOwner(ctx context.Context, ownerID string) (*Cart, error)

	/*
		Create makes an empty cart for ownerID, or returns the existing one.

		Description: concurrent callers for the same owner all receive the
		single stored cart; the owner uniqueness constraint decides the winner.
	*/
	Create(ctx context.Context, ownerID string) (*Cart, error)

	/*
		Save persists the cart's items if nobody saved it since it was read.

		Description: the write is a compare-and-swap on Version. On success the
		cart's Version and UpdatedAt are advanced in place.

		Returns:
		  - error: apperr.Conflict when the stored version moved on
	*/
	Save(ctx context.Context, cart *Cart) error

	// DeleteByOwner removes the cart owned by ownerID.
	DeleteByOwner(ctx context.Context, ownerID string) error
}
