// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package product

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/apperr"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/database/schema"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/dberr"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/postgres"
	"github.com/Avi4306/FashionFiesta-sub001/pkg/slice"
	"github.com/Avi4306/FashionFiesta-sub001/pkg/uuidv7"
)

const productResource = "Product"

var productColumns = schema.Products.ColumnList()

// PostgresRepository implements [Repository] on the products table.
type PostgresRepository struct {
	db  postgres.DBTX
	now func() time.Time
}

// NewRepository creates a PostgreSQL implementation of [Repository].
func NewRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

/*
List returns products matching filter.

Description: both filters are optional and expressed with the
`($n = '' OR column = $n)` idiom so the statement text never changes.
*/
func (repository *PostgresRepository) List(ctx context.Context, filter Filter) ([]*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR designer_id::text = $2)
		ORDER BY created_at DESC`

	rows, err := repository.db.Query(ctx, query, filter.Category, filter.DesignerID)
	if err != nil {
		return nil, dberr.Wrap(err, productResource, "postgres_product_repo_list_failed")
	}
	return collectProducts(rows)
}

// FindByID returns the product with id.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	if !uuidv7.Valid(id) {
		return nil, apperr.NotFound(productResource)
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	product, err := scanProduct(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, productResource, "postgres_product_repo_find_by_id_failed")
	}
	return product, nil
}

/*
FindByIDs loads several products in one round trip.

Description: ids that are not UUIDs are dropped before the query; they could
never match a row and would make the uuid[] cast fail.
*/
func (repository *PostgresRepository) FindByIDs(ctx context.Context, ids []string) ([]*Product, error) {
	valid := slice.Filter(ids, uuidv7.Valid)
	if len(valid) == 0 {
		return []*Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1::uuid[])`
	rows, err := repository.db.Query(ctx, query, valid)
	if err != nil {
		return nil, dberr.Wrap(err, productResource, "postgres_product_repo_find_by_ids_failed")
	}
	return collectProducts(rows)
}

// Create inserts product, assigning its ID and timestamps when unset.
func (repository *PostgresRepository) Create(ctx context.Context, product *Product) error {
	const query = `
		INSERT INTO products (
			id, designer_id, name, slug, description, price, category, images,
			stock, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	if product.ID == "" {
		product.ID = uuidv7.New()
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	now := repository.now()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := repository.db.Exec(ctx, query,
		product.ID,
		product.DesignerID,
		product.Name,
		product.Slug,
		product.Description,
		product.Price,
		product.Category,
		product.Images,
		product.Stock,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, productResource, "postgres_product_repo_create_failed")
	}
	return nil
}

// Delete removes the product with id.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !uuidv7.Valid(id) {
		return apperr.NotFound(productResource)
	}

	tag, err := repository.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, productResource, "postgres_product_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(productResource)
	}
	return nil
}

// # Row Mapping

func scanProduct(row pgx.Row) (*Product, error) {
	var product Product
	err := row.Scan(
		&product.ID,
		&product.DesignerID,
		&product.Name,
		&product.Slug,
		&product.Description,
		&product.Price,
		&product.Category,
		&product.Images,
		&product.Stock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	return &product, nil
}

func collectProducts(rows pgx.Rows) ([]*Product, error) {
	defer rows.Close()

	products := make([]*Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, dberr.Wrap(err, productResource, "postgres_product_repo_scan_failed")
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, productResource, "postgres_product_repo_rows_failed")
	}
	return products, nil
}
