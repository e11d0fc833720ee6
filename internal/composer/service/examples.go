package service

import "birl/internal/composer/models"

// Example is a named outfit for demos and smoke tests.
type Example struct {
	Name        string
	Description string
	Params      string
	View        models.View
}

var examples = []Example{
	{
		Name:        "basic",
		Description: "Single black hoodie on front view",
		Params:      "hoodies/baerskin4-black",
	},
	{
		Name:        "full-outfit",
		Description: "Complete outfit: hoodie, pants, and beanie",
		Params:      "hoodies/baerskin4-black,pants/cargo-darkgreen,hats/beanie-black",
	},
	{
		Name:        "with-patches",
		Description: "Hoodie with American flag patch on left",
		Params:      "hoodies/baerskin4-black,patches-left/americanflagpatch-red",
	},
	{
		Name:        "jacket-outfit",
		Description: "Jacket over hoodie with pants",
		Params:      "hoodies/baerskin4-black,jackets/softshell-grey,pants/cargo-black",
	},
	{
		Name:        "gloves-hat",
		Description: "Full winter outfit with gloves and hat",
		Params:      "hoodies/baerskin4-black,pants/cargo-black,hats/beanie-black,gloves/baerskinleatherlinedgloves-black",
	},
	{
		Name:        "outer-jacket",
		Description: "Greenland outer jacket over hoodie",
		Params:      "hoodies/baerskin4-black,jackets/greenland-black,pants/cargo-darkgreen",
	},
}

// Examples lists the named outfits.
func Examples() []Example {
	out := make([]Example, len(examples))
	copy(out, examples)
	for i := range out {
		if out[i].View == "" {
			out[i].View = models.ViewFront
		}
	}
	return out
}

// ExampleByName looks up a named outfit.
func ExampleByName(name string) (Example, bool) {
	for _, e := range Examples() {
		if e.Name == name {
			return e, true
		}
	}
	return Example{}, false
}

// Request builds the render request for the example.
func (e Example) Request(bypassCache bool, format models.Format) models.CompositionRequest {
	return models.CompositionRequest{
		Params:      e.Params,
		View:        e.View,
		BypassCache: bypassCache,
		Format:      format,
	}
}
