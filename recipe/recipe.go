// Package recipe models named masterbatch recipes, the book that holds them and
// the store that persists the book.
package recipe

import (
	"errors"
	"strings"

	"masterbatch/composition"
)

// DefaultBaseName is the filler used when a recipe does not name one.
const DefaultBaseName = "Base PLA"

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrEmptyName      = errors.New("recipe name is empty")
)

// Recipe is a named mixture: explicit ingredient percentages plus a base that
// makes up the remainder.
type Recipe struct {
	Name        string
	Base        string
	Ingredients composition.Composition
}

// BaseName returns the recipe's base, falling back to DefaultBaseName.
func (r Recipe) BaseName() string {
	if strings.TrimSpace(r.Base) == "" {
		return DefaultBaseName
	}
	return r.Base
}

// Check verifies the recipe can be stored: a name, well-formed ingredients, a
// base that is not also listed as an explicit ingredient and a sum of at most
// 100%.
func (r Recipe) Check() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if err := r.Ingredients.Check(); err != nil {
		return composition.InRecipe(err, r.Name)
	}
	if _, clash := r.Ingredients.Lookup(r.BaseName()); clash {
		return &composition.CompositionError{Recipe: r.Name, Ingredient: r.BaseName(), Err: composition.ErrDuplicateIngredient}
	}
	if composition.Validate(r.Ingredients, true).Outcome == composition.Exceeds100 {
		return &composition.CompositionError{Recipe: r.Name, Err: composition.ErrExceeds100}
	}
	return nil
}

// Validate classifies the recipe's composition with its base filling the rest.
func (r Recipe) Validate(tolerance float64) composition.Validation {
	return composition.ValidateWithTolerance(r.Ingredients, true, tolerance)
}

// Resolve computes ingredient weights for totalWeight, base last.
func (r Recipe) Resolve(totalWeight float64) ([]composition.Line, error) {
	lines, err := composition.ResolveWeights(r.Ingredients, r.BaseName(), totalWeight)
	if err != nil {
		return nil, composition.InRecipe(err, r.Name)
	}
	return lines, nil
}
