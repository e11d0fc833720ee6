package models

import (
	"fmt"
	"strings"
)

// View is the camera angle of a composite. It selects the plate and which
// categories are visible.
type View string

const (
	ViewFront View = "front"
	ViewBack  View = "back"
	ViewSide  View = "side"
	ViewLeft  View = "left"
	ViewRight View = "right"
)

// Plate ids per view.
const (
	PlateStandard = "swatthermals-black"
	PlateSide     = "side-special-plate"
	PlateProfile  = "patch-plate"
)

// Views lists every view in declaration order.
func Views() []View {
	return []View{ViewFront, ViewBack, ViewSide, ViewLeft, ViewRight}
}

// ParseView accepts any casing; an empty string yields ViewFront.
func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return ViewFront, nil
	}
	if !v.IsValid() {
		return "", fmt.Errorf("%w: view %q must be one of front, back, side, left, right", ErrInvalidView, s)
	}
	return v, nil
}

func (v View) IsValid() bool {
	switch v {
	case ViewFront, ViewBack, ViewSide, ViewLeft, ViewRight:
		return true
	}
	return false
}

func (v View) String() string {
	return string(v)
}

// Plate returns the base plate id rendered under every composite for this view.
func (v View) Plate() string {
	switch v {
	case ViewLeft, ViewRight:
		return PlateProfile
	case ViewSide:
		return PlateSide
	default:
		return PlateStandard
	}
}

// AllowsPatches reports whether patch layers can appear in this view.
func (v View) AllowsPatches() bool {
	return v != ViewBack
}

// IsProfile reports whether this is a left/right profile view, which only shows
// outerwear and the patch on the facing side.
func (v View) IsProfile() bool {
	return v == ViewLeft || v == ViewRight
}

// Position returns the patch position facing the camera in a profile view.
func (v View) Position() Position {
	switch v {
	case ViewLeft:
		return PositionLeft
	case ViewRight:
		return PositionRight
	}
	return PositionNone
}
