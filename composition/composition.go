// Package composition holds the ingredient model of a mixture and the arithmetic
// that turns percentages into weights.
package composition

import (
	"math"
	"strings"
)

// Ingredient is one named share of a mixture, in percent by weight.
type Ingredient struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// Composition is an ordered list of ingredients. Order is insertion order and is
// kept through encoding, so it is also the order weights are reported in.
type Composition []Ingredient

// Sum returns the total of all explicit percentages.
func (c Composition) Sum() float64 {
	var sum float64
	for _, ing := range c {
		sum += ing.Percentage
	}
	return sum
}

// Lookup returns the percentage of the named ingredient.
func (c Composition) Lookup(name string) (float64, bool) {
	for _, ing := range c {
		if ing.Name == name {
			return ing.Percentage, true
		}
	}
	return 0, false
}

// Names returns ingredient names in order.
func (c Composition) Names() []string {
	names := make([]string, 0, len(c))
	for _, ing := range c {
		names = append(names, ing.Name)
	}
	return names
}

// Without returns a copy of c with the named ingredient removed.
func (c Composition) Without(name string) Composition {
	out := make(Composition, 0, len(c))
	for _, ing := range c {
		if ing.Name != name {
			out = append(out, ing)
		}
	}
	return out
}

// Check verifies the structural rules every composition must follow: names are
// non-empty and unique, percentages are finite and non-negative.
func (c Composition) Check() error {
	seen := make(map[string]struct{}, len(c))
	for _, ing := range c {
		if strings.TrimSpace(ing.Name) == "" {
			return &CompositionError{Err: ErrEmptyIngredient}
		}
		if _, dup := seen[ing.Name]; dup {
			return &CompositionError{Ingredient: ing.Name, Err: ErrDuplicateIngredient}
		}
		seen[ing.Name] = struct{}{}
		if err := checkPercentage(ing.Percentage); err != nil {
			return &CompositionError{Ingredient: ing.Name, Err: err}
		}
	}
	return nil
}

func checkPercentage(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrNotFinite
	}
	if p < 0 {
		return ErrNegativePercentage
	}
	return nil
}
