// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

/*
Package cart implements the persistent per-identity cart and its reconciliation
with the anonymous cart a shopper builds before logging in.

Each identity owns at most one cart, and a cart holds at most one line per
product. Merging sums quantities per product, so it is commutative but not
idempotent: merging the same anonymous cart twice doubles every quantity.
*/
package cart

import (
	"math"
	"slices"
	"time"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/apperr"
)

// MsgQuantityTooLarge is returned when a quantity or total leaves the integer range.
const MsgQuantityTooLarge = "Quantity is too large"

// LineItem is one product in a cart.
type LineItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Cart is the persisted state. Version increases on every successful save.
type Cart struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"ownerId"`
	Items     []LineItem `json:"items"`
	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// indexOf returns the position of productID in the cart, or -1.
func (c *Cart) indexOf(productID string) int {
	return slices.IndexFunc(c.Items, func(item LineItem) bool {
		return item.ProductID == productID
	})
}

// ItemCount returns the sum of all quantities, or InvalidInput if it overflows.
func (c *Cart) ItemCount() (int, error) {
	count := 0
	for _, item := range c.Items {
		if item.Quantity > math.MaxInt-count {
			return 0, apperr.InvalidInput(MsgQuantityTooLarge)
		}
		count += item.Quantity
	}
	return count, nil
}

/*
MergeItems folds incoming into existing by product.

Description: a product already present has the incoming quantity added to
it with no business cap; any other product is appended in first-seen order.
Neither input is modified.

Returns:
  - []LineItem: The merged lines, one per distinct product
  - error: InvalidInput when a summed quantity would overflow int
*/
func MergeItems(existing, incoming []LineItem) ([]LineItem, error) {
	merged := slices.Clone(existing)
	position := make(map[string]int, len(merged)+len(incoming))
	for i, item := range merged {
		position[item.ProductID] = i
	}

	for _, item := range incoming {
		if i, ok := position[item.ProductID]; ok {
			if item.Quantity > math.MaxInt-merged[i].Quantity {
				return nil, apperr.InvalidInput(MsgQuantityTooLarge)
			}
			merged[i].Quantity += item.Quantity
			continue
		}
		position[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}

// lineTotal returns price*quantity added to subtotal, or false on int64 overflow.
func lineTotal(subtotal, price int64, quantity int) (int64, bool) {
	q := int64(quantity)
	if price != 0 && q > math.MaxInt64/price {
		return 0, false
	}
	line := price * q
	if line > math.MaxInt64-subtotal {
		return 0, false
	}
	return subtotal + line, true
}
