package models

import "strings"

// Sku is a normalized catalog identifier: lower case, with trailing size and
// variant tokens removed.
type Sku string

// sizeTokens is the closed set of letter sizes. Numeric sizes and single
// characters are matched separately.
var sizeTokens = map[string]struct{}{
	"xxs": {}, "xs": {}, "s": {}, "m": {}, "l": {}, "xl": {}, "xxl": {}, "xxxl": {}, "lxl": {},
	"2xl": {}, "3xl": {}, "4xl": {}, "5xl": {},
	"2x": {}, "3x": {}, "4x": {}, "5x": {},
}

// NormalizeSku strips trailing size tokens until the last token is not a size.
// The first token is never stripped, so the result is never empty for a
// non-empty input. Applying it twice is a no-op.
//
//	hoodie-black-xl    -> hoodie-black
//	jeans-blue-36      -> jeans-blue
//	cargo-darkgreen    -> cargo-darkgreen
func NormalizeSku(raw string) Sku {
	s := strings.ToLower(strings.TrimSpace(raw))
	for {
		i := strings.LastIndexByte(s, '-')
		if i <= 0 {
			return Sku(s)
		}
		if !isSizeToken(s[i+1:]) {
			return Sku(s)
		}
		s = strings.TrimSpace(s[:i])
	}
}

func isSizeToken(tok string) bool {
	if tok == "" {
		return false
	}
	if _, ok := sizeTokens[tok]; ok {
		return true
	}
	if len(tok) == 1 {
		return true
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s Sku) String() string {
	return string(s)
}

// Contains reports whether the keyword appears anywhere in the SKU.
func (s Sku) Contains(keyword string) bool {
	return strings.Contains(string(s), keyword)
}

// HasPrefix reports whether the SKU starts with prefix.
func (s Sku) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(s), prefix)
}

// SplitPosition removes a trailing -left/-right token and returns it.
func (s Sku) SplitPosition() (Sku, Position) {
	str := string(s)
	for _, pos := range []Position{PositionLeft, PositionRight} {
		suffix := "-" + string(pos)
		if strings.HasSuffix(str, suffix) && len(str) > len(suffix) {
			return Sku(strings.TrimSuffix(str, suffix)), pos
		}
	}
	return s, PositionNone
}
