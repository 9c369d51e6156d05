// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package schema

// CartsTable represents the 'carts' table. Items is a jsonb array of line items.
type CartsTable struct {
	Table     string
	ID        string
	OwnerID   string
	Items     string
	Version   string
	CreatedAt string
	UpdatedAt string
}

// Carts is the schema definition for carts.
var Carts = CartsTable{
	Table:     "carts",
	ID:        "id",
	OwnerID:   "owner_id",
	Items:     "items",
	Version:   "version",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t CartsTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Items, t.Version, t.CreatedAt, t.UpdatedAt}
}

func (t CartsTable) ColumnList() string {
	return columnList(t.Columns())
}
