// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/apperr"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/database/schema"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/dberr"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/postgres"
	"github.com/Avi4306/FashionFiesta-sub001/pkg/uuidv7"
)

const cartResource = "Cart"

// MsgConcurrentUpdate is returned when a save loses the version race.
const MsgConcurrentUpdate = "Cart was modified concurrently, please retry"

var cartColumns = schema.Carts.ColumnList()

// PostgresRepository implements [Repository] on the carts table.
//
// Line items are stored as a jsonb array on the cart row.
type PostgresRepository struct {
	db  postgres.DBTX
	now func() time.Time
}

// NewRepository creates a PostgreSQL implementation of [Repository].
func NewRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

// FindByOwner returns the cart owned by ownerID.
func (repository *PostgresRepository) FindByOwner(ctx context.Context, ownerID string) (*Cart, error) {
	if !uuidv7.Valid(ownerID) {
		return nil, apperr.NotFound(cartResource)
	}

	query := `SELECT ` + cartColumns + ` FROM carts WHERE owner_id = $1`
	cart, err := scanCart(repository.db.QueryRow(ctx, query, ownerID))
	if err != nil {
		return nil, dberr.Wrap(err, cartResource, "postgres_cart_repo_find_by_owner_failed")
	}
	return cart, nil
}

/*
Create inserts an empty cart for ownerID and re-reads the stored row.

Description: `ON CONFLICT (owner_id) DO NOTHING` makes a lost creation race
harmless; whichever insert won is what the re-read returns.

Returns:
  - *Cart: The owner's cart
  - error: apperr.NotFound("User") when the owner is not a stored identity
*/
func (repository *PostgresRepository) Create(ctx context.Context, ownerID string) (*Cart, error) {
	if !uuidv7.Valid(ownerID) {
		return nil, apperr.NotFound("User")
	}

	const query = `
		INSERT INTO carts (id, owner_id, items, version, created_at, updated_at)
		VALUES ($1, $2, '[]'::jsonb, 0, $3, $3)
		ON CONFLICT (owner_id) DO NOTHING`

	if _, err := repository.db.Exec(ctx, query, uuidv7.New(), ownerID, repository.now()); err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return nil, apperr.NotFound("User").WithCause(err)
		}
		return nil, dberr.Wrap(err, cartResource, "postgres_cart_repo_create_failed")
	}
	return repository.FindByOwner(ctx, ownerID)
}

// Save writes the items when the stored version still matches cart.Version.
func (repository *PostgresRepository) Save(ctx context.Context, cart *Cart) error {
	const query = `
		UPDATE carts SET items = $3, version = version + 1, updated_at = $4
		WHERE id = $1 AND version = $2`

	items, err := json.Marshal(nonNil(cart.Items))
	if err != nil {
		return apperr.Internal(fmt.Errorf("encode cart items: %w", err))
	}
	updatedAt := repository.now()

	tag, err := repository.db.Exec(ctx, query, cart.ID, cart.Version, items, updatedAt)
	if err != nil {
		return dberr.Wrap(err, cartResource, "postgres_cart_repo_save_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict(MsgConcurrentUpdate)
	}

	cart.Version++
	cart.UpdatedAt = updatedAt
	return nil
}

// DeleteByOwner removes the cart owned by ownerID.
func (repository *PostgresRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	if !uuidv7.Valid(ownerID) {
		return apperr.NotFound(cartResource)
	}

	tag, err := repository.db.Exec(ctx, `DELETE FROM carts WHERE owner_id = $1`, ownerID)
	if err != nil {
		return dberr.Wrap(err, cartResource, "postgres_cart_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(cartResource)
	}
	return nil
}

// # Row Mapping

func scanCart(row pgx.Row) (*Cart, error) {
	var (
		cart  Cart
		items []byte
	)
	if err := row.Scan(&cart.ID, &cart.OwnerID, &items, &cart.Version, &cart.CreatedAt, &cart.UpdatedAt); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &cart.Items); err != nil {
			return nil, fmt.Errorf("decode cart items: %w", err)
		}
	}
	cart.Items = nonNil(cart.Items)
	return &cart, nil
}

func nonNil(items []LineItem) []LineItem {
	if items == nil {
		return []LineItem{}
	}
	return items
}
