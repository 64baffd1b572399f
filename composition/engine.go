package composition

import (
	"math"
)

const (
	// Full is the share of a complete mixture, in percent.
	Full = 100.0

	// DefaultTolerance is how far below 100% a composition without a base may
	// fall before it is reported incomplete.
	DefaultTolerance = 0.1

	// epsilon absorbs float noise from summing decimal percentages, e.g.
	// 33.3 + 33.3 + 33.4.
	epsilon = 1e-9

	// halfTolerance is how close to .5 a scaled value must be to count as an
	// exact half when rounding.
	halfTolerance = 1e-9
)

// Outcome classifies the percentage sum of a composition.
type Outcome int

const (
	Valid Outcome = iota
	Incomplete
	Exceeds100
)

func (o Outcome) String() string {
	switch o {
	case Valid:
		return "valid"
	case Incomplete:
		return "incomplete"
	case Exceeds100:
		return "exceeds_100"
	default:
		return "unknown"
	}
}

// Validation is the advisory result of validating a composition. It is data for
// the caller to render, not an error.
type Validation struct {
	Outcome   Outcome
	Sum       float64
	BaseShare float64
}

// Line is one row of a resolved recipe.
type Line struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Weight     float64 `json:"weight"`
	Base       bool    `json:"base,omitempty"`
}

// Totals sums a set of resolved lines.
type Totals struct {
	Percentage float64 `json:"percentage"`
	Weight     float64 `json:"weight"`
}

// BaseShare returns the implicit base percentage: 100 minus the explicit sum.
// The result is negative for an over-full composition; callers must check.
func BaseShare(c Composition) float64 {
	return Full - c.Sum()
}

// Validate classifies c with DefaultTolerance. allowBase reports whether an
// implicit base ingredient fills the remainder.
func Validate(c Composition, allowBase bool) Validation {
	return ValidateWithTolerance(c, allowBase, DefaultTolerance)
}

// ValidateWithTolerance classifies c. A sum above 100 is Exceeds100. Without a
// base, a sum below 100-tolerance is Incomplete. Everything else is Valid.
func ValidateWithTolerance(c Composition, allowBase bool, tolerance float64) Validation {
	sum := c.Sum()
	v := Validation{Sum: sum, BaseShare: Full - sum}
	switch {
	case sum > Full+epsilon:
		v.Outcome = Exceeds100
	case !allowBase && sum < Full-tolerance-epsilon:
		v.Outcome = Incomplete
	default:
		v.Outcome = Valid
	}
	return v
}

// ResolveWeights converts c into absolute weights for totalWeight. Explicit
// ingredients come first in their original order; when base is non-empty a
// final line carries the base share. A negative base share fails with a
// CompositionError rather than being clamped.
func ResolveWeights(c Composition, base string, totalWeight float64) ([]Line, error) {
	if math.IsNaN(totalWeight) || math.IsInf(totalWeight, 0) || totalWeight < 0 {
		return nil, &CompositionError{Err: ErrInvalidWeight}
	}
	if err := c.Check(); err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(c)+1)
	for _, ing := range c {
		lines = append(lines, Line{
			Name:       ing.Name,
			Percentage: ing.Percentage,
			Weight:     weightOf(totalWeight, ing.Percentage),
		})
	}

	if base == "" {
		return lines, nil
	}
	if _, clash := c.Lookup(base); clash {
		return nil, &CompositionError{Ingredient: base, Err: ErrDuplicateIngredient}
	}

	share := BaseShare(c)
	if share < -epsilon {
		return nil, &CompositionError{Ingredient: base, Err: ErrNegativeBase}
	}
	if share < 0 {
		share = 0 // float noise only
	}
	lines = append(lines, Line{
		Name:       base,
		Percentage: share,
		Weight:     weightOf(totalWeight, share),
		Base:       true,
	})
	return lines, nil
}

// Summary totals resolved lines, rounded like the lines themselves.
func Summary(lines []Line) Totals {
	var t Totals
	for _, l := range lines {
		t.Percentage += l.Percentage
		t.Weight += l.Weight
	}
	t.Percentage = Round2(t.Percentage)
	t.Weight = Round2(t.Weight)
	return t
}

// Round2 rounds x to two decimal places, halves away from zero. A value that
// reads as an exact half, like 1.005, rounds up even though its binary form
// sits just below the half.
func Round2(x float64) float64 {
	scaled := x * 100
	whole := math.Trunc(scaled)
	if math.Abs(math.Abs(scaled-whole)-0.5) <= halfTolerance {
		return (whole + math.Copysign(1, scaled)) / 100
	}
	return math.Round(scaled) / 100
}

func weightOf(total, percentage float64) float64 {
	return Round2(total * percentage / Full)
}
