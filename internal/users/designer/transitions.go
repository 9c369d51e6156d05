// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package designer

import (
	"errors"
	"fmt"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/apperr"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/sec"
)

// ErrInvalidTransition is the cause of every rejected role change.
var ErrInvalidTransition = errors.New("designer: invalid role transition")

// transitions lists the role changes the application workflow may perform.
//
//	customer ──submit──▶ pending_designer ──approve──▶ designer
//	                            │
//	                            └──────reject──────▶ customer
var transitions = map[sec.Role]map[sec.Role]struct{}{
	sec.RoleCustomer: {
		sec.RolePendingDesigner: {},
	},
	sec.RolePendingDesigner: {
		sec.RoleDesigner: {},
		sec.RoleCustomer: {},
	},
}

// CanTransition reports whether the workflow may move an identity from one role to another.
func CanTransition(from, to sec.Role) bool {
	targets, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// checkTransition returns an INVALID_STATE error wrapping [ErrInvalidTransition]
// when from → to is not allowed.
func checkTransition(from, to sec.Role) error {
	if CanTransition(from, to) {
		return nil
	}
	return apperr.InvalidState(fmt.Sprintf("Cannot move from %s to %s", from, to)).
		WithCause(fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to))
}
