package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSku(t *testing.T) {
	cases := map[string]string{
		"hoodie-black-xl":        "hoodie-black",
		"cargo-darkgreen":        "cargo-darkgreen",
		"mensdenimjeans-blue-36": "mensdenimjeans-blue",
		"baerskinzip-grey-s":     "baerskinzip-grey",
		"baerskin4-black-lxl":    "baerskin4-black",
		"baerskin4-black-2xl":    "baerskin4-black",
		"cargo-darkgreen-40":     "cargo-darkgreen",
		"jeans-blue-36-l":        "jeans-blue",
		"  Hoodie-Black-XL ":     "hoodie-black",
		"beanie":                 "beanie",
		"xl":                     "xl",
		"tee-2":                  "tee",
		"softshell-grey":         "softshell-grey",
		"flag-patch-red-left":    "flag-patch-red-left",
		"trailing-":              "trailing-",
		"":                       "",
	}
	for raw, want := range cases {
		assert.Equal(t, Sku(want), NormalizeSku(raw), "NormalizeSku(%q)", raw)
	}
}

func TestNormalizeSkuIdempotent(t *testing.T) {
	inputs := []string{
		"hoodie-black-xl", "x-s-m", "a-1-2-3", "cargo-darkgreen", "-xl", "m-m-m",
		"greenland-black-xxl", "ski-gloves-black-m", "A-B-C", "patch--l",
	}
	for _, in := range inputs {
		once := NormalizeSku(in)
		assert.Equal(t, once, NormalizeSku(once.String()), "renormalizing %q", in)
	}
}

func TestSkuSplitPosition(t *testing.T) {
	sku, pos := Sku("flag-patch-red-left").SplitPosition()
	assert.Equal(t, Sku("flag-patch-red"), sku)
	assert.Equal(t, PositionLeft, pos)

	sku, pos = Sku("canadaflag-red-right").SplitPosition()
	assert.Equal(t, Sku("canadaflag-red"), sku)
	assert.Equal(t, PositionRight, pos)

	sku, pos = Sku("americanflag-red").SplitPosition()
	assert.Equal(t, Sku("americanflag-red"), sku)
	assert.Equal(t, PositionNone, pos)

	sku, pos = Sku("-left").SplitPosition()
	assert.Equal(t, Sku("-left"), sku)
	assert.Equal(t, PositionNone, pos)
}
