// Package fuzzy wraps the string similarity measures used for course,
// instructor, and room matching.
package fuzzy

import (
	fuzzywuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// BestScore returns the best similarity score between query and target
// on a 0-100 scale, taking the maximum of four measures:
//
//   - Ratio: full-string edit-distance ratio (catches typos)
//   - PartialRatio: best-substring ratio (catches truncation)
//   - TokenSortRatio: order-insensitive token comparison (catches reordering)
//   - TokenSetRatio: set-overlap comparison (catches extra/repeated words)
//
// Each measure favors a different distortion; taking the max avoids
// penalizing legitimate variation. Pure function, deterministic.
func BestScore(query, target string) int {
	best := fuzzywuzzy.Ratio(query, target)

	if s := fuzzywuzzy.PartialRatio(query, target); s > best {
		best = s
	}
	if s := fuzzywuzzy.TokenSortRatio(query, target); s > best {
		best = s
	}
	if s := fuzzywuzzy.TokenSetRatio(query, target); s > best {
		best = s
	}

	return best
}

// TokenSetRatio exposes the set-overlap measure on its own. Course search
// uses it directly for the general fuzzy tier, where partial-substring
// scores would over-match short queries against long descriptions.
func TokenSetRatio(query, target string) int {
	return fuzzywuzzy.TokenSetRatio(query, target)
}
