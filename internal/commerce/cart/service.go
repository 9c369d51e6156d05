// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package cart

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/Avi4306/FashionFiesta-sub001/internal/commerce/product"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/apperr"
)

// Catalog resolves product references for carts.
type Catalog interface {
	Get(ctx context.Context, id string) (*product.Product, error)
	Resolve(ctx context.Context, ids []string) ([]*product.Product, error)
}

// Service reconciles and edits carts.
type Service struct {
	carts   Repository
	catalog Catalog
	logger  *slog.Logger
}

// NewService constructs a cart [Service].
func NewService(carts Repository, catalog Catalog, logger *slog.Logger) *Service {
	return &Service{carts: carts, catalog: catalog, logger: logger}
}

// # Views

// ViewItem is a line item with its product dereferenced. Product is nil when
// the product has since been removed from the catalog.
type ViewItem struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Product   *product.Product `json:"product"`
}

// View is the cart as returned to clients.
type View struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"ownerId"`
	Items     []ViewItem `json:"items"`
	ItemCount int        `json:"itemCount"`
	Subtotal  int64      `json:"subtotal"`
	Version   int        `json:"version"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// # Operations

// Get returns the caller's cart, creating an empty one on first use.
func (service *Service) Get(ctx context.Context, ownerID string) (*View, error) {
	cart, err := service.loadOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return service.view(ctx, cart)
}

/*
Merge folds an anonymous cart into the caller's persistent cart.

Description: every incoming item is validated before anything is loaded.
Quantities are summed per product (see [MergeItems]) and the result is saved
once. Calling Merge twice with the same items doubles the quantities.

Parameters:
  - ctx: context.Context
  - ownerID: string
  - items: []LineItem (the anonymous cart)

Returns:
  - *View: The reconciled cart with products resolved
  - error: InvalidInput, Conflict on a concurrent save, or storage failures
*/
func (service *Service) Merge(ctx context.Context, ownerID string, items []LineItem) (*View, error) {
	incoming := make([]LineItem, 0, len(items))
	for _, item := range items {
		productID := strings.TrimSpace(item.ProductID)
		if productID == "" {
			return nil, apperr.InvalidInput("Every item needs a productId")
		}
		if item.Quantity < 1 {
			return nil, apperr.InvalidInput("Quantity must be at least 1")
		}
		incoming = append(incoming, LineItem{ProductID: productID, Quantity: item.Quantity})
	}

	cart, err := service.loadOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if len(incoming) == 0 {
		return service.view(ctx, cart)
	}

	merged, err := MergeItems(cart.Items, incoming)
	if err != nil {
		return nil, err
	}
	cart.Items = merged

	view, err := service.saveAndView(ctx, cart, "cart_service_merge_failed")
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "cart_merged",
		slog.String("owner_id", ownerID),
		slog.Int("incoming_items", len(incoming)),
		slog.Int("version", cart.Version),
	)
	return view, nil
}

/*
AddItem adds quantity of a product, creating the line or incrementing it.

Returns:
  - error: InvalidInput for quantity < 1, NotFound for an unknown product
*/
func (service *Service) AddItem(ctx context.Context, ownerID, productID string, quantity int) (*View, error) {
	if quantity < 1 {
		return nil, apperr.InvalidInput("Quantity must be at least 1")
	}
	if _, err := service.catalog.Get(ctx, productID); err != nil {
		return nil, err
	}

	cart, err := service.loadOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	merged, err := MergeItems(cart.Items, []LineItem{{ProductID: productID, Quantity: quantity}})
	if err != nil {
		return nil, err
	}
	cart.Items = merged

	return service.saveAndView(ctx, cart, "cart_service_add_item_failed")
}

/*
SetQuantity replaces the quantity of a product already in the cart.

Returns:
  - error: InvalidInput for quantity < 1, NotFound when the product is not in the cart
*/
func (service *Service) SetQuantity(ctx context.Context, ownerID, productID string, quantity int) (*View, error) {
	if quantity < 1 {
		return nil, apperr.InvalidInput("Quantity must be at least 1")
	}

	cart, err := service.loadOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	index := cart.indexOf(productID)
	if index < 0 {
		return nil, apperr.NotFoundMsg("Product not in cart")
	}
	cart.Items[index].Quantity = quantity

	return service.saveAndView(ctx, cart, "cart_service_set_quantity_failed")
}

// RemoveItem drops a product from the cart, or returns NotFound if it is absent.
func (service *Service) RemoveItem(ctx context.Context, ownerID, productID string) (*View, error) {
	cart, err := service.loadOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	index := cart.indexOf(productID)
	if index < 0 {
		return nil, apperr.NotFoundMsg("Product not in cart")
	}
	cart.Items = slices.Delete(cart.Items, index, index+1)

	if err := service.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("cart_service_remove_item_failed: %w", err)
	}
	return service.view(ctx, cart)
}

// Clear empties the cart but keeps the record.
func (service *Service) Clear(ctx context.Context, ownerID string) (*View, error) {
	cart, err := service.loadOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if len(cart.Items) > 0 {
		cart.Items = []LineItem{}
		if err := service.carts.Save(ctx, cart); err != nil {
			return nil, fmt.Errorf("cart_service_clear_failed: %w", err)
		}
	}
	return service.view(ctx, cart)
}

// DeleteByOwner removes the cart record entirely. Used when an account is deleted.
func (service *Service) DeleteByOwner(ctx context.Context, ownerID string) error {
	return service.carts.DeleteByOwner(ctx, ownerID)
}

// # Helpers

func (service *Service) loadOrCreate(ctx context.Context, ownerID string) (*Cart, error) {
	cart, err := service.carts.FindByOwner(ctx, ownerID)
	if err == nil {
		return cart, nil
	}
	if !apperr.HasCode(err, "NOT_FOUND") {
		return nil, fmt.Errorf("cart_service_load_failed: %w", err)
	}

	cart, err = service.carts.Create(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("cart_service_create_failed: %w", err)
	}
	return cart, nil
}

// saveAndView checks that the cart's totals are representable, persists it
// and returns the resulting view. Nothing is written when a total overflows.
func (service *Service) saveAndView(ctx context.Context, cart *Cart, failure string) (*View, error) {
	products, err := service.resolve(ctx, cart)
	if err != nil {
		return nil, err
	}
	if _, err := render(cart, products); err != nil {
		return nil, err
	}

	if err := service.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("%s: %w", failure, err)
	}
	return render(cart, products)
}

func (service *Service) view(ctx context.Context, cart *Cart) (*View, error) {
	products, err := service.resolve(ctx, cart)
	if err != nil {
		return nil, err
	}
	return render(cart, products)
}

// resolve dereferences every product in one catalog round trip.
func (service *Service) resolve(ctx context.Context, cart *Cart) (map[string]*product.Product, error) {
	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	products := map[string]*product.Product{}
	if len(ids) > 0 {
		resolved, err := service.catalog.Resolve(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("cart_service_resolve_failed: %w", err)
		}
		for _, p := range resolved {
			products[p.ID] = p
		}
	}
	return products, nil
}

// render builds the client view. Lines whose product is gone stay listed but
// do not count toward the subtotal.
func render(cart *Cart, products map[string]*product.Product) (*View, error) {
	count, err := cart.ItemCount()
	if err != nil {
		return nil, err
	}

	view := &View{
		ID:        cart.ID,
		OwnerID:   cart.OwnerID,
		Items:     make([]ViewItem, 0, len(cart.Items)),
		ItemCount: count,
		Version:   cart.Version,
		UpdatedAt: cart.UpdatedAt,
	}
	for _, item := range cart.Items {
		resolved := products[item.ProductID]
		if resolved != nil {
			subtotal, ok := lineTotal(view.Subtotal, resolved.Price, item.Quantity)
			if !ok {
				return nil, apperr.InvalidInput("Cart total is too large")
			}
			view.Subtotal = subtotal
		}
		view.Items = append(view.Items, ViewItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product:   resolved,
		})
	}
	return view, nil
}
