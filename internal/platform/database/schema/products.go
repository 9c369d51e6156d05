// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package schema

// ProductsTable represents the 'products' table.
type ProductsTable struct {
	Table       string
	ID          string
	DesignerID  string
	Name        string
	Slug        string
	Description string
	Price       string
	Category    string
	Images      string
	Stock       string
	CreatedAt   string
	UpdatedAt   string
}

// Products is the schema definition for products.
var Products = ProductsTable{
	Table:       "products",
	ID:          "id",
	DesignerID:  "designer_id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	Price:       "price",
	Category:    "category",
	Images:      "images",
	Stock:       "stock",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t ProductsTable) Columns() []string {
	return []string{
		t.ID, t.DesignerID, t.Name, t.Slug, t.Description, t.Price, t.Category, t.Images,
		t.Stock, t.CreatedAt, t.UpdatedAt,
	}
}

func (t ProductsTable) ColumnList() string {
	return columnList(t.Columns())
}
