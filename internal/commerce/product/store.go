// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package product

import "context"

// Repository defines the data access contract for the catalog.
type Repository interface {
	// List returns products matching filter, newest first.
	List(ctx context.Context, filter Filter) ([]*Product, error)

	/*
		FindByID returns the product with id.

		Returns:
		  - *Product: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(ctx context.Context, id string) (*Product, error)

	/*
		FindByIDs returns the products that exist among ids, in no particular
		order. Unknown ids are skipped rather than reported.
	*/
	FindByIDs(ctx context.Context, ids []string) ([]*Product, error)

	// Create persists a new product, assigning its ID and timestamps.
	Create(ctx context.Context, product *Product) error

	// Delete removes the product with id.
	Delete(ctx context.Context, id string) error
}
