package models

import "fmt"

// Kind is a layer's place in the fixed drawing taxonomy. The numeric value is
// its stacking rank: lower kinds are drawn first.
type Kind uint8

const (
	KindPants Kind = iota
	KindTops
	KindHoodies
	KindGlovesBottom
	KindJackets
	KindGlovesTop
	KindOuterJackets
	KindHats
	KindPatches
	KindPatchesLeft
	KindPatchesRight
	KindSoftshellPatches
	KindSoftshellPatchesLeft
	KindSoftshellPatchesRight

	kindCount
)

var kindNames = [kindCount]string{
	KindPants:                 "pants",
	KindTops:                  "tops",
	KindHoodies:               "hoodies",
	KindGlovesBottom:          "gloves-bottom",
	KindJackets:               "jackets",
	KindGlovesTop:             "gloves-top",
	KindOuterJackets:          "outer-jackets",
	KindHats:                  "hats",
	KindPatches:               "patches",
	KindPatchesLeft:           "patches-left",
	KindPatchesRight:          "patches-right",
	KindSoftshellPatches:      "softshell-patches",
	KindSoftshellPatchesLeft:  "softshell-patches-left",
	KindSoftshellPatchesRight: "softshell-patches-right",
}

// Kinds lists the taxonomy in rank order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind resolves a taxonomy name. Caller-facing aliases such as "gloves"
// are not kinds; they are disambiguated by the classifier.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Rank is the stacking position of the kind.
func (k Kind) Rank() int {
	return int(k)
}

func (k Kind) IsValid() bool {
	return k < kindCount
}

// String returns the folder name the kind's assets live under.
func (k Kind) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// IsPatch reports whether the kind belongs to either patch family.
func (k Kind) IsPatch() bool {
	return k >= KindPatches && k <= KindSoftshellPatchesRight
}

// Position is the side of the garment a patch is sewn on.
type Position string

const (
	PositionNone  Position = ""
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

// PatchKind picks the patch kind for a jacket family and position.
func PatchKind(softshell bool, pos Position) Kind {
	base := KindPatches
	if softshell {
		base = KindSoftshellPatches
	}
	switch pos {
	case PositionLeft:
		return base + 1
	case PositionRight:
		return base + 2
	}
	return base
}
