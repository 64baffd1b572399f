package composition

import (
	"errors"
	"fmt"
)

var (
	ErrNonNumeric          = errors.New("percentage is not a number")
	ErrNotFinite           = errors.New("percentage is not finite")
	ErrNegativePercentage  = errors.New("percentage is negative")
	ErrEmptyIngredient     = errors.New("ingredient name is empty")
	ErrDuplicateIngredient = errors.New("duplicate ingredient")
	ErrExceeds100          = errors.New("ingredients exceed 100%")
	ErrNegativeBase        = errors.New("base share is negative")
	ErrInvalidWeight       = errors.New("total weight must be a finite non-negative number")
)

// CompositionError reports an arithmetic or validation failure scoped to one
// recipe and, when known, one ingredient.
type CompositionError struct {
	Recipe     string
	Ingredient string
	Err        error
}

func (e *CompositionError) Error() string {
	switch {
	case e.Recipe != "" && e.Ingredient != "":
		return fmt.Sprintf("recipe %q: ingredient %q: %v", e.Recipe, e.Ingredient, e.Err)
	case e.Ingredient != "":
		return fmt.Sprintf("ingredient %q: %v", e.Ingredient, e.Err)
	case e.Recipe != "":
		return fmt.Sprintf("recipe %q: %v", e.Recipe, e.Err)
	default:
		return fmt.Sprintf("composition: %v", e.Err)
	}
}

func (e *CompositionError) Unwrap() error { return e.Err }

// InRecipe returns err with the recipe name attached when err is a
// CompositionError that does not name one yet. Other errors pass through.
func InRecipe(err error, recipe string) error {
	var ce *CompositionError
	if !errors.As(err, &ce) || ce.Recipe != "" {
		return err
	}
	named := *ce
	named.Recipe = recipe
	return &named
}
