// Package search floats matching items to the top of a list.
package search

import (
	"slices"
	"strings"
)

// Normalize trims and lowercases a query. An empty result means "no search".
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Matches reports whether key contains query, ignoring case. query must
// already be normalized.
func Matches(key, query string) bool {
	return strings.Contains(strings.ToLower(key), query)
}

// Reorder stably partitions items in place so that those whose key contains
// query come first. Both groups keep their relative order. It returns false
// and leaves items untouched when query is blank.
func Reorder[T any](items []T, query string, key func(T) string) bool {
	q := Normalize(query)
	if q == "" {
		return false
	}

	matched := make([]T, 0, len(items))
	rest := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(key(item), q) {
			matched = append(matched, item)
		} else {
			rest = append(rest, item)
		}
	}
	n := copy(items, matched)
	copy(items[n:], rest)
	return true
}

// Count returns how many items match query.
func Count[T any](items []T, query string, key func(T) string) int {
	q := Normalize(query)
	if q == "" {
		return 0
	}
	return len(slices.DeleteFunc(slices.Clone(items), func(item T) bool {
		return !Matches(key(item), q)
	}))
}
