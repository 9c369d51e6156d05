// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package schema

// UsersTable represents the 'users' table.
type UsersTable struct {
	Table               string
	ID                  string
	Email               string
	PasswordHash        string
	FirstName           string
	LastName            string
	ProfilePhoto        string
	Role                string
	AuthProvider        string
	DesignerApplication string
	DesignerDetails     string
	CreatedAt           string
	UpdatedAt           string
}

// Users is the schema definition for users.
var Users = UsersTable{
	Table:               "users",
	ID:                  "id",
	Email:               "email",
	PasswordHash:        "password_hash",
	FirstName:           "first_name",
	LastName:            "last_name",
	ProfilePhoto:        "profile_photo",
	Role:                "role",
	AuthProvider:        "auth_provider",
	DesignerApplication: "designer_application",
	DesignerDetails:     "designer_details",
	CreatedAt:           "created_at",
	UpdatedAt:           "updated_at",
}

// Columns returns every column in scan order.
func (t UsersTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.PasswordHash, t.FirstName, t.LastName, t.ProfilePhoto, t.Role,
		t.AuthProvider, t.DesignerApplication, t.DesignerDetails, t.CreatedAt, t.UpdatedAt,
	}
}

// ColumnList returns [UsersTable.Columns] joined for a SQL clause.
func (t UsersTable) ColumnList() string {
	return columnList(t.Columns())
}
