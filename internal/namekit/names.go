// Package namekit normalizes instructor names for matching.
// Upstream rosters mix "LAST, FIRST" and "First Last" formats, so every
// match key is expanded into all plausible orderings before comparison.
package namekit

import "strings"

// Variants generates all normalized variants of an instructor name.
//
// "SMITH, JOHN" yields {"smith, john", "john smith", "smith john"}.
// Two-token names without a comma also get the swapped-token form.
// Empty or blank input yields an empty set.
func Variants(name string) map[string]struct{} {
	variants := make(map[string]struct{})

	raw := strings.TrimSpace(name)
	if raw == "" {
		return variants
	}

	variants[strings.ToLower(raw)] = struct{}{}

	if comma := strings.Index(raw, ","); comma >= 0 {
		last := strings.TrimSpace(raw[:comma])
		first := strings.TrimSpace(raw[comma+1:])
		if last != "" && first != "" {
			variants[strings.ToLower(first+" "+last)] = struct{}{}
			variants[strings.ToLower(last+" "+first)] = struct{}{}
		}
		return variants
	}

	tokens := strings.Fields(raw)
	if len(tokens) == 2 {
		variants[strings.ToLower(tokens[1]+" "+tokens[0])] = struct{}{}
	}
	return variants
}

// ConvertLastFirst converts "LAST, FIRST" format to "First Last" format.
// Names not in that format are returned unchanged.
func ConvertLastFirst(name string) string {
	parts := strings.SplitN(name, ", ", 2)
	if len(parts) != 2 {
		return name
	}
	return parts[1] + " " + parts[0]
}

// Components extracts the ordered name components from either format.
//
// "SMITH, JOHN A" yields [SMITH, JOHN, A]; "John Smith" yields [John, Smith].
// Blank components are dropped.
func Components(name string) []string {
	var components []string

	if before, after, found := strings.Cut(name, ", "); found {
		if last := strings.TrimSpace(before); last != "" {
			components = append(components, last)
		}
		components = append(components, strings.Fields(after)...)
	} else {
		components = strings.Fields(name)
	}

	return components
}
