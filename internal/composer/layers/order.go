package layers

import (
	"cmp"
	"slices"

	"birl/internal/composer/models"
)

// Resolve returns a copy of stack sorted ascending by taxonomy rank. The
// input is not modified.
func Resolve(stack []models.Layer) []models.Layer {
	sorted := slices.Clone(stack)
	slices.SortStableFunc(sorted, func(a, b models.Layer) int {
		return cmp.Compare(a.Rank(), b.Rank())
	})
	return sorted
}
