// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package product

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/apperr"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/sec"
	"github.com/Avi4306/FashionFiesta-sub001/internal/users/auth"
	"github.com/Avi4306/FashionFiesta-sub001/pkg/slug"
	"github.com/Avi4306/FashionFiesta-sub001/pkg/uuidv7"
)

// RoleReader reads the current stored role of an identity.
type RoleReader interface {
	FindByID(ctx context.Context, id string) (*auth.User, error)
}

// Service implements catalog operations.
type Service struct {
	products Repository
	users    RoleReader
	logger   *slog.Logger
}

// NewService constructs a catalog [Service].
func NewService(products Repository, users RoleReader, logger *slog.Logger) *Service {
	return &Service{products: products, users: users, logger: logger}
}

// CreateInput is what a designer submits to publish a product.
type CreateInput struct {
	Name        string
	Description string
	Price       int64
	Category    string
	Images      []string
	Stock       int
}

// List returns the catalog, optionally filtered.
func (service *Service) List(ctx context.Context, filter Filter) ([]*Product, error) {
	return service.products.List(ctx, filter)
}

// Get returns a single product.
func (service *Service) Get(ctx context.Context, id string) (*Product, error) {
	return service.products.FindByID(ctx, id)
}

// Resolve loads the products among ids that still exist.
func (service *Service) Resolve(ctx context.Context, ids []string) ([]*Product, error) {
	return service.products.FindByIDs(ctx, ids)
}

/*
Create publishes a product owned by designerID.

Description: the slug is the name followed by the random tail of the new id,
so two products with the same name get distinct slugs.

Returns:
  - *Product: The persisted product
  - error: InvalidInput for a blank name, negative price or stock
*/
func (service *Service) Create(ctx context.Context, designerID string, input CreateInput) (*Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.InvalidInput("Product name is required")
	}
	if input.Price < 0 {
		return nil, apperr.InvalidInput("Price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, apperr.InvalidInput("Stock cannot be negative")
	}

	id := uuidv7.New()
	suffix := id[strings.LastIndexByte(id, '-')+1:]

	product := &Product{
		ID:          id,
		DesignerID:  designerID,
		Name:        name,
		Slug:        slug.WithSuffix(name, suffix),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Category:    strings.ToLower(strings.TrimSpace(input.Category)),
		Images:      input.Images,
		Stock:       input.Stock,
	}

	if err := service.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("product_service_create_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "product_created",
		slog.String("product_id", product.ID),
		slog.String("designer_id", designerID),
	)
	return product, nil
}

/*
Delete removes a product.

Description: the owning designer may always delete it. Anyone else must
currently hold the admin role; the role is read from storage, not from the
token.

Returns:
  - error: NotFound, Forbidden or storage failures
*/
func (service *Service) Delete(ctx context.Context, actorID, id string) error {
	product, err := service.products.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if product.DesignerID != actorID {
		actor, err := service.users.FindByID(ctx, actorID)
		if err != nil && !apperr.HasCode(err, "NOT_FOUND") {
			return fmt.Errorf("product_service_delete_actor_lookup_failed: %w", err)
		}
		if actor == nil || actor.Role != sec.RoleAdmin {
			return apperr.Forbidden("Only the owner or an admin can delete this product")
		}
	}

	if err := service.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("product_service_delete_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "product_deleted",
		slog.String("product_id", id),
		slog.String("actor_id", actorID),
	)
	return nil
}
