// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

/*
Package slice compliments the standard [slices] package by providing functional
programming utilities (Filter) leveraging generics.
*/
package slice

// Filter filters a slice, returning only elements where the predicate function evaluates to true.
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
