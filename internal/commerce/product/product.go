// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

/*
Package product is the minimal catalog that carts resolve against.

Designers publish products, anyone may browse them, and a product can be
removed by the designer who owns it or by an admin.
*/
package product

import "time"

// Product is a catalog entry owned by a designer.
//
// Price is in minor currency units (cents).
type Product struct {
	ID          string    `json:"id"`
	DesignerID  string    `json:"designerId"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Filter narrows a catalog listing. Empty fields match everything.
type Filter struct {
	Category   string
	DesignerID string
}
