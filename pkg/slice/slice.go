// Copyright (c) 2026 Inkwell. All rights reserved.

/*
Package slice complements the standard [slices] package with generic
Map/Filter helpers, used mainly to project domain entities into transport
DTOs in the HTTP layer.
*/
package slice

// Map transforms a slice of T into a slice of U using the provided function.
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

// Filter returns the elements of input for which the predicate is true.
func Filter[T any](input []T, predicate func(T) bool) []T {
	if input == nil {
		return nil
	}

	// Not pre-allocating to full length to avoid excessive memory on heavy filters
	var result []T
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}

	return result
}
