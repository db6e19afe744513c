// Package mapper holds small generic helpers used when turning domain
// objects into DTOs.
package mapper

import "fmt"

// MapSlice applies mapFunc to each element. The result is never nil, so an
// empty input encodes as [] rather than null.
func MapSlice[T any, R any](items []T, mapFunc func(T) R) []R {
	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, mapFunc(item))
	}
	return result
}

// MapSliceWithError applies a mapper that may fail, returning early with the
// index of the first failing element.
func MapSliceWithError[T any, R any](items []T, mapFunc func(T) (R, error)) ([]R, error) {
	result := make([]R, 0, len(items))
	for i, item := range items {
		mapped, err := mapFunc(item)
		if err != nil {
			return nil, fmt.Errorf("failed to map item %d: %w", i, err)
		}
		result = append(result, mapped)
	}
	return result, nil
}

// Index builds a lookup map from a slice.
func Index[T any, K comparable, V any](items []T, key func(T) K, value func(T) V) map[K]V {
	out := make(map[K]V, len(items))
	for _, item := range items {
		out[key(item)] = value(item)
	}
	return out
}
