// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package sec

// # User Roles

// Role is the authorization level stored on an identity.
//
// Roles are not a linear hierarchy: a pending designer has no more rights than
// a customer, so access checks always use explicit role sets.
type Role string

const (
	// Default role for every new identity
	RoleCustomer Role = "customer"

	// A customer whose designer application awaits review
	RolePendingDesigner Role = "pending_designer"

	// May publish products
	RoleDesigner Role = "designer"

	// Unrestricted system access
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RolePendingDesigner, RoleDesigner, RoleAdmin:
		return true
	default:
		return false
	}
}

// In reports whether r is a member of allowed.
func (r Role) In(allowed ...Role) bool {
	for _, candidate := range allowed {
		if r == candidate {
			return true
		}
	}
	return false
}
