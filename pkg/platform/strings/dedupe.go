// Package strings provides string slice helpers.
package strings

import (
	"strings"
)

// DedupeAndTrim trims every value and drops empties and repeats, keeping
// first-seen order.
//
//	DedupeAndTrim([]string{" k1 ", "k2", "k1", ""}) // []string{"k1", "k2"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
