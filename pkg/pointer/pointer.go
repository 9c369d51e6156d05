// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

// Package pointer has generic helpers for optional values.
package pointer

// To returns a pointer to v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
