// Package sliceutil provides generic slice manipulation utilities.
package sliceutil

// Deduplicate removes duplicate items from a slice while preserving order.
// The keyFunc extracts a unique key from each item for comparison.
// Only the first occurrence of each key is kept.
//
// Example:
//
//	rooms := []rooms.Room{{Building: "ARC", Room: "103"}, {Building: "HLL", Room: "114"}, {Building: "ARC", Room: "103"}}
//	unique := sliceutil.Deduplicate(rooms, func(r rooms.Room) string { return r.Building + "_" + r.Room })
//	// Result: [{ARC 103} {HLL 114}]
func Deduplicate[T any, K comparable](items []T, keyFunc func(T) K) []T {
	if len(items) == 0 {
		return items
	}

	seen := make(map[K]bool, len(items))
	result := make([]T, 0, len(items))

	for _, item := range items {
		key := keyFunc(item)
		if !seen[key] {
			seen[key] = true
			result = append(result, item)
		}
	}

	return result
}
