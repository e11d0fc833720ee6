// Package cachekey fingerprints a render request so that every caller ordering
// of the same outfit lands on the same cached composite.
package cachekey

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"birl/internal/composer/models"
)

// Key is an xxHash64 fingerprint. Collisions are possible and accepted.
type Key uint64

// String renders the key as lowercase hex without padding.
func (k Key) String() string {
	return strconv.FormatUint(uint64(k), 16)
}

// Derive fingerprints the params that make up the drawn outfit (raw, as
// supplied, before normalization), the view and the plate id. Params are
// sorted first, so the key does not depend on caller ordering. Callers pass
// the classified params, never the request's full list: replaced duplicates
// must not reach the key.
func Derive(params []models.RawParam, view models.View, plate string) Key {
	return Key(xxhash.Sum64String(Canonical(params, view, plate)))
}

// Canonical is the string Derive hashes:
//
//	cat/sku,cat/sku;view;plate
//
// Params are ordered by (category, sku). A category or sku never holds ','
// or '/', and views and plates never hold ';', so distinct inputs never
// share a canonical form.
func Canonical(params []models.RawParam, view models.View, plate string) string {
	sorted := slices.Clone(params)
	slices.SortFunc(sorted, func(a, b models.RawParam) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Sku, b.Sku))
	})

	var b strings.Builder
	for i, p := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.Category)
		b.WriteByte('/')
		b.WriteString(p.Sku)
	}
	b.WriteByte(';')
	b.WriteString(view.String())
	b.WriteByte(';')
	b.WriteString(plate)
	return b.String()
}
