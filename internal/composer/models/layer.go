package models

import "fmt"

// Layer is one resolved, ranked drawable item in a composite.
type Layer struct {
	Kind Kind
	Sku  Sku
}

// Rank is the stacking position inherited from the layer's kind.
func (l Layer) Rank() int {
	return l.Kind.Rank()
}

func (l Layer) String() string {
	return fmt.Sprintf("%s/%s", l.Kind, l.Sku)
}
