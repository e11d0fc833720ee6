// Package layers turns caller-supplied category/sku pairs into the ranked draw
// stack for one view.
package layers

import (
	"fmt"
	"strings"

	"birl/internal/composer/models"
)

// Caller-facing categories. Compound ones (gloves, jackets, patches) are
// resolved to a concrete kind by SKU keywords and the rest of the request.
const (
	categoryPants        = "pants"
	categoryTops         = "tops"
	categoryHoodies      = "hoodies"
	categoryGloves       = "gloves"
	categoryGlovesTop    = "gloves-top"
	categoryGlovesBottom = "gloves-bottom"
	categoryJackets      = "jackets"
	categoryOuterJackets = "outer-jackets"
	categoryHats         = "hats"
	categoryPatches      = "patches"
	categoryPatchesLeft  = "patches-left"
	categoryPatchesRight = "patches-right"
)

// SKU keywords driving compound category resolution.
const (
	keywordSkiGloves = "ski"
	keywordGreenland = "greenland"
	keywordSoftshell = "softshell"
)

var directKinds = map[string]models.Kind{
	categoryPants:        models.KindPants,
	categoryTops:         models.KindTops,
	categoryHoodies:      models.KindHoodies,
	categoryGlovesTop:    models.KindGlovesTop,
	categoryGlovesBottom: models.KindGlovesBottom,
	categoryOuterJackets: models.KindOuterJackets,
	categoryHats:         models.KindHats,
}

// Categories lists every category a caller may request.
func Categories() []string {
	return []string{
		categoryPants, categoryTops, categoryHoodies,
		categoryGloves, categoryGlovesTop, categoryGlovesBottom,
		categoryJackets, categoryOuterJackets, categoryHats,
		categoryPatches, categoryPatchesLeft, categoryPatchesRight,
	}
}

// IsCategory reports whether category is accepted by Classify.
func IsCategory(category string) bool {
	if _, ok := directKinds[category]; ok {
		return true
	}
	switch category {
	case categoryGloves, categoryJackets, categoryPatches, categoryPatchesLeft, categoryPatchesRight:
		return true
	}
	return false
}

// Classification is the resolved draw stack for one request.
type Classification struct {
	// Layers is sorted by rank with at most one layer per kind.
	Layers []models.Layer
	// Params are the raw params behind Layers, in request order. Replaced
	// duplicates and layers the view hides are excluded, so two requests
	// drawing the same outfit carry the same Params.
	Params []models.RawParam
	// Warnings records duplicates that were replaced.
	Warnings []string
}

// candidate is a param resolved to a kind before view filtering.
type candidate struct {
	param    models.RawParam
	index    int
	kind     models.Kind
	sku      models.Sku
	position models.Position
}

// Classify validates every category, resolves compound categories, applies
// the view's visibility rules and returns the ranked stack.
//
// Unknown categories fail the whole request with ErrInvalidCategory; nothing
// is dropped silently except layers a view cannot show. When two params
// resolve to the same kind the later one wins and the replacement is
// reported in Warnings.
func Classify(params []models.RawParam, view models.View) (Classification, error) {
	if !view.IsValid() {
		return Classification{}, fmt.Errorf("%w: %q", models.ErrInvalidView, view)
	}
	if err := validateCategories(params); err != nil {
		return Classification{}, err
	}

	softshell := hasSoftshell(params)

	var (
		byKind   = make(map[models.Kind]candidate, len(params))
		kindOf   = make([]models.Kind, len(params))
		warnings []string
	)
	for i, p := range params {
		c, visible := resolve(p, softshell, view)
		if !visible {
			continue
		}
		c.index = i
		kindOf[i] = c.kind
		if prev, ok := byKind[c.kind]; ok {
			warnings = append(warnings, fmt.Sprintf("duplicate %s: %s replaced by %s", c.kind, prev.param, p))
		}
		byKind[c.kind] = c
	}

	stack := make([]models.Layer, 0, len(byKind))
	for _, c := range byKind {
		stack = append(stack, models.Layer{Kind: c.kind, Sku: c.sku})
	}
	drawn := make([]models.RawParam, 0, len(byKind))
	for i, p := range params {
		if c, ok := byKind[kindOf[i]]; ok && c.index == i {
			drawn = append(drawn, p)
		}
	}
	return Classification{Layers: Resolve(stack), Params: drawn, Warnings: warnings}, nil
}

func validateCategories(params []models.RawParam) error {
	var unknown []string
	for _, p := range params {
		if !IsCategory(p.Category) {
			unknown = append(unknown, fmt.Sprintf("%q", p.Category))
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s (accepted: %s)", models.ErrInvalidCategory,
		strings.Join(unknown, ", "), strings.Join(Categories(), ", "))
}

// hasSoftshell reports whether a drawn jacket is a softshell, which switches
// every patch to the softshell family. A jacket replaced by a later one of the
// same kind does not count.
func hasSoftshell(params []models.RawParam) bool {
	last := make(map[models.Kind]models.Sku, 2)
	for _, p := range params {
		if p.Category != categoryJackets {
			continue
		}
		sku := models.NormalizeSku(p.Sku)
		last[jacketKind(sku)] = sku
	}
	for _, sku := range last {
		if sku.Contains(keywordSoftshell) {
			return true
		}
	}
	return false
}

// resolve maps one param to its kind for the view. visible is false when the
// view cannot show the layer.
func resolve(p models.RawParam, softshell bool, view models.View) (candidate, bool) {
	c := candidate{param: p, sku: models.NormalizeSku(p.Sku)}

	switch p.Category {
	case categoryGloves:
		c.kind = models.KindGlovesBottom
		if c.sku.HasPrefix(keywordSkiGloves) {
			c.kind = models.KindGlovesTop
		}
	case categoryJackets:
		c.kind = jacketKind(c.sku)
	case categoryPatches:
		c.sku, c.position = c.sku.SplitPosition()
		c.kind = models.PatchKind(softshell, c.position)
	case categoryPatchesLeft:
		c.position = models.PositionLeft
		c.kind = models.PatchKind(softshell, c.position)
	case categoryPatchesRight:
		c.position = models.PositionRight
		c.kind = models.PatchKind(softshell, c.position)
	default:
		c.kind = directKinds[p.Category]
	}

	return applyView(c, softshell, view)
}

// jacketKind sends Greenland jackets to the outer shell slot.
func jacketKind(sku models.Sku) models.Kind {
	if sku.Contains(keywordGreenland) {
		return models.KindOuterJackets
	}
	return models.KindJackets
}

func applyView(c candidate, softshell bool, view models.View) (candidate, bool) {
	switch {
	case !view.AllowsPatches():
		return c, !c.kind.IsPatch()
	case view.IsProfile():
		switch c.kind {
		case models.KindHoodies, models.KindJackets, models.KindOuterJackets:
			return c, true
		}
		if c.kind.IsPatch() && c.position == view.Position() {
			// The facing patch is drawn with the position-less asset.
			c.kind = models.PatchKind(softshell, models.PositionNone)
			return c, true
		}
		return c, false
	}
	return c, true
}
