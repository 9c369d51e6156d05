// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package cart_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avi4306/FashionFiesta-sub001/internal/commerce/cart"
	"github.com/Avi4306/FashionFiesta-sub001/internal/commerce/product"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/apperr"
)

// memoryCarts mirrors the Postgres repository: one cart per owner and a
// version compare-and-swap on save.
type memoryCarts struct {
	mu      sync.Mutex
	byOwner map[string]cart.Cart
	saves   int
	// bump simulates another writer saving between our read and our write.
	bump bool
}

func newMemoryCarts() *memoryCarts {
	return &memoryCarts{byOwner: map[string]cart.Cart{}}
}

func (m *memoryCarts) FindByOwner(_ context.Context, ownerID string) (*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.byOwner[ownerID]
	if !ok {
		return nil, apperr.NotFound("Cart")
	}
	stored.Items = append([]cart.LineItem{}, stored.Items...)
	return &stored, nil
}

func (m *memoryCarts) Create(ctx context.Context, ownerID string) (*cart.Cart, error) {
	m.mu.Lock()
	if _, ok := m.byOwner[ownerID]; !ok {
		m.byOwner[ownerID] = cart.Cart{ID: "cart-" + ownerID, OwnerID: ownerID, Items: []cart.LineItem{}}
	}
	m.mu.Unlock()
	return m.FindByOwner(ctx, ownerID)
}

func (m *memoryCarts) Save(_ context.Context, c *cart.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := m.byOwner[c.OwnerID]
	if m.bump {
		stored.Version++
		m.bump = false
	}
	if stored.Version != c.Version {
		return apperr.Conflict(cart.MsgConcurrentUpdate)
	}
	c.Version++
	stored.Items = append([]cart.LineItem{}, c.Items...)
	stored.Version = c.Version
	m.byOwner[c.OwnerID] = stored
	m.saves++
	return nil
}

func (m *memoryCarts) DeleteByOwner(_ context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byOwner[ownerID]; !ok {
		return apperr.NotFound("Cart")
	}
	delete(m.byOwner, ownerID)
	return nil
}

func (m *memoryCarts) quantities(ownerID string) map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]int{}
	for _, item := range m.byOwner[ownerID].Items {
		out[item.ProductID] = item.Quantity
	}
	return out
}

type staticCatalog map[string]*product.Product

func (c staticCatalog) Get(_ context.Context, id string) (*product.Product, error) {
	if p, ok := c[id]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("Product")
}

func (c staticCatalog) Resolve(_ context.Context, ids []string) ([]*product.Product, error) {
	out := []*product.Product{}
	for _, id := range ids {
		if p, ok := c[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

var catalog = staticCatalog{
	"p1": {ID: "p1", Name: "Silk Scarf", Price: 2500},
	"p2": {ID: "p2", Name: "Denim Jacket", Price: 9900},
}

func newService() (*cart.Service, *memoryCarts) {
	carts := newMemoryCarts()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return cart.NewService(carts, catalog, logger), carts
}

/*
TestMerge_SumsPerProductAndSavesOnce merges into an empty cart.
*/
func TestMerge_SumsPerProductAndSavesOnce(t *testing.T) {
	service, carts := newService()

	view, err := service.Merge(context.Background(), "u1", []cart.LineItem{{"p1", 2}, {"p2", 1}, {"p1", 3}})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"p1": 5, "p2": 1}, carts.quantities("u1"))
	assert.Equal(t, 1, carts.saves)
	assert.Equal(t, 6, view.ItemCount)
	assert.Equal(t, int64(5*2500+9900), view.Subtotal)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "Silk Scarf", view.Items[0].Product.Name)
}

/*
TestMerge_NotIdempotent verifies a replayed merge doubles the quantities.
*/
func TestMerge_NotIdempotent(t *testing.T) {
	service, carts := newService()
	items := []cart.LineItem{{"p1", 2}, {"p2", 1}}

	_, err := service.Merge(context.Background(), "u1", items)
	require.NoError(t, err)
	_, err = service.Merge(context.Background(), "u1", items)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"p1": 4, "p2": 2}, carts.quantities("u1"))
}

/*
TestMerge_Validation verifies bad items are refused before the cart is touched.
*/
func TestMerge_Validation(t *testing.T) {
	service, carts := newService()

	tests := map[string][]cart.LineItem{
		"zero quantity":     {{"p1", 0}},
		"negative quantity": {{"p1", 2}, {"p2", -1}},
		"blank product":     {{"  ", 1}},
	}
	for name, items := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := service.Merge(context.Background(), "u1", items)
			assert.True(t, apperr.HasCode(err, "INVALID_INPUT"))
		})
	}
	assert.Empty(t, carts.byOwner)
}

/*
TestMerge_ConcurrentSaveIsConflict verifies a lost version race is reported.
*/
func TestMerge_ConcurrentSaveIsConflict(t *testing.T) {
	service, carts := newService()
	_, err := service.Get(context.Background(), "u1")
	require.NoError(t, err)

	carts.bump = true
	_, err = service.Merge(context.Background(), "u1", []cart.LineItem{{"p1", 1}})
	assert.True(t, apperr.HasCode(err, "CONFLICT"))
	assert.Empty(t, carts.quantities("u1"))
}

/*
TestItemOperations covers add, set quantity, remove and clear.
*/
func TestItemOperations(t *testing.T) {
	service, carts := newService()
	ctx := context.Background()

	_, err := service.AddItem(ctx, "u1", "p1", 0)
	assert.True(t, apperr.HasCode(err, "INVALID_INPUT"))

	_, err = service.AddItem(ctx, "u1", "ghost", 1)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	_, err = service.AddItem(ctx, "u1", "p1", 1)
	require.NoError(t, err)
	_, err = service.AddItem(ctx, "u1", "p1", 2)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"p1": 3}, carts.quantities("u1"))

	_, err = service.SetQuantity(ctx, "u1", "p2", 4)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
	_, err = service.SetQuantity(ctx, "u1", "p1", -1)
	assert.True(t, apperr.HasCode(err, "INVALID_INPUT"))

	view, err := service.SetQuantity(ctx, "u1", "p1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, view.ItemCount)

	_, err = service.RemoveItem(ctx, "u1", "p2")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	view, err = service.RemoveItem(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, err = service.AddItem(ctx, "u1", "p2", 1)
	require.NoError(t, err)
	view, err = service.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Contains(t, carts.byOwner, "u1")

	require.NoError(t, service.DeleteByOwner(ctx, "u1"))
	assert.True(t, apperr.HasCode(service.DeleteByOwner(ctx, "u1"), "NOT_FOUND"))
}

/*
TestView_RemovedProduct verifies a line survives its product being unlisted.
*/
func TestView_RemovedProduct(t *testing.T) {
	service, _ := newService()

	view, err := service.Merge(context.Background(), "u1", []cart.LineItem{{"retired", 2}, {"p2", 1}})
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Nil(t, view.Items[0].Product)
	assert.Equal(t, int64(9900), view.Subtotal)
}

/*
TestQuantityOverflow verifies that quantities and subtotals past the integer
range are refused and nothing is saved.
*/
func TestQuantityOverflow(t *testing.T) {
	service, carts := newService()
	ctx := context.Background()

	_, err := service.Merge(ctx, "u1", []cart.LineItem{{"retired", math.MaxInt}})
	require.NoError(t, err)
	require.Equal(t, 1, carts.saves)

	_, err = service.Merge(ctx, "u1", []cart.LineItem{{"retired", 1}})
	assert.True(t, apperr.HasCode(err, "INVALID_INPUT"))
	assert.Equal(t, math.MaxInt, carts.quantities("u1")["retired"])

	_, err = service.Merge(ctx, "u1", []cart.LineItem{{"p2", 1}})
	assert.True(t, apperr.HasCode(err, "INVALID_INPUT"), "item count across lines overflows")

	_, err = service.AddItem(ctx, "u2", "p1", 1)
	require.NoError(t, err)
	_, err = service.SetQuantity(ctx, "u2", "p1", math.MaxInt)
	assert.True(t, apperr.HasCode(err, "INVALID_INPUT"), "subtotal overflows int64")
	assert.Equal(t, map[string]int{"p1": 1}, carts.quantities("u2"))

	assert.Equal(t, 2, carts.saves)
}
