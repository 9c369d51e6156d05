// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

// Package slice complements the standard [slices] package with Map and Filter.
package slice

// Map applies transform to every element of input.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Filter keeps the elements for which predicate is true.
func Filter[T any](input []T, predicate func(T) bool) []T {
	var result []T
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result
}
