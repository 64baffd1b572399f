package composition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWeights(t *testing.T) {
	tests := []struct {
		name     string
		comp     Composition
		base     string
		total    float64
		expected []Line
	}{
		{
			name:  "red and black on base PLA",
			comp:  Composition{{Name: "Red", Percentage: 2.0}, {Name: "Black", Percentage: 0.5}},
			base:  "Base PLA",
			total: 1000.0,
			expected: []Line{
				{Name: "Red", Percentage: 2.0, Weight: 20.0},
				{Name: "Black", Percentage: 0.5, Weight: 5.0},
				{Name: "Base PLA", Percentage: 97.5, Weight: 975.0, Base: true},
			},
		},
		{
			name:  "no base keeps explicit lines only",
			comp:  Composition{{Name: "White", Percentage: 60}, {Name: "Blue", Percentage: 40}},
			total: 250,
			expected: []Line{
				{Name: "White", Percentage: 60, Weight: 150},
				{Name: "Blue", Percentage: 40, Weight: 100},
			},
		},
		{
			name:  "zero total weight",
			comp:  Composition{{Name: "Red", Percentage: 2.0}, {Name: "Black", Percentage: 0.5}},
			base:  "Base PETG",
			total: 0,
			expected: []Line{
				{Name: "Red", Percentage: 2.0, Weight: 0},
				{Name: "Black", Percentage: 0.5, Weight: 0},
				{Name: "Base PETG", Percentage: 97.5, Weight: 0, Base: true},
			},
		},
		{
			name:  "zero percentage ingredient",
			comp:  Composition{{Name: "Glitter", Percentage: 0}},
			base:  "Base PLA",
			total: 500,
			expected: []Line{
				{Name: "Glitter", Percentage: 0, Weight: 0},
				{Name: "Base PLA", Percentage: 100, Weight: 500, Base: true},
			},
		},
		{
			name:  "exactly full leaves a zero base",
			comp:  Composition{{Name: "A", Percentage: 33.3}, {Name: "B", Percentage: 33.3}, {Name: "C", Percentage: 33.4}},
			base:  "Base",
			total: 100,
			expected: []Line{
				{Name: "A", Percentage: 33.3, Weight: 33.3},
				{Name: "B", Percentage: 33.3, Weight: 33.3},
				{Name: "C", Percentage: 33.4, Weight: 33.4},
				{Name: "Base", Percentage: 0, Weight: 0, Base: true},
			},
		},
		{
			name:  "weights round half up to two decimals",
			comp:  Composition{{Name: "Pigment", Percentage: 1.25}},
			total: 1.0,
			expected: []Line{
				{Name: "Pigment", Percentage: 1.25, Weight: 0.01},
			},
		},
		{
			name:     "empty composition with base",
			comp:     Composition{},
			base:     "Base PLA",
			total:    42,
			expected: []Line{{Name: "Base PLA", Percentage: 100, Weight: 42, Base: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := ResolveWeights(tt.comp, tt.base, tt.total)
			require.NoError(t, err)
			require.Len(t, lines, len(tt.expected))
			for i, want := range tt.expected {
				assert.Equal(t, want.Name, lines[i].Name)
				assert.Equal(t, want.Base, lines[i].Base)
				assert.InDelta(t, want.Percentage, lines[i].Percentage, 1e-9)
				assert.InDelta(t, want.Weight, lines[i].Weight, 1e-9)
			}
		})
	}

	t.Run("over 100 with base fails", func(t *testing.T) {
		comp := Composition{{Name: "Red", Percentage: 60.0}, {Name: "Black", Percentage: 50.0}}
		_, err := ResolveWeights(comp, "Base PLA", 1000)
		require.Error(t, err)

		var ce *CompositionError
		require.ErrorAs(t, err, &ce)
		assert.ErrorIs(t, err, ErrNegativeBase)
		assert.Equal(t, "Base PLA", ce.Ingredient)
	})

	t.Run("over 100 without base still resolves", func(t *testing.T) {
		comp := Composition{{Name: "Red", Percentage: 60.0}, {Name: "Black", Percentage: 50.0}}
		lines, err := ResolveWeights(comp, "", 10)
		require.NoError(t, err)
		assert.Equal(t, []Line{
			{Name: "Red", Percentage: 60, Weight: 6},
			{Name: "Black", Percentage: 50, Weight: 5},
		}, lines)
	})

	t.Run("invalid total weight", func(t *testing.T) {
		comp := Composition{{Name: "Red", Percentage: 1}}
		for _, w := range []float64{-1, math.NaN(), math.Inf(1)} {
			_, err := ResolveWeights(comp, "Base", w)
			assert.ErrorIs(t, err, ErrInvalidWeight)
		}
	})

	t.Run("base name clashes with an ingredient", func(t *testing.T) {
		comp := Composition{{Name: "Base PLA", Percentage: 10}}
		_, err := ResolveWeights(comp, "Base PLA", 100)
		assert.ErrorIs(t, err, ErrDuplicateIngredient)
	})

	t.Run("negative percentage names the ingredient", func(t *testing.T) {
		comp := Composition{{Name: "Red", Percentage: 1}, {Name: "Ghost", Percentage: -3}}
		_, err := ResolveWeights(comp, "Base", 100)

		var ce *CompositionError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "Ghost", ce.Ingredient)
		assert.ErrorIs(t, err, ErrNegativePercentage)
	})
}

func TestResolveWeights_Linear(t *testing.T) {
	comp := Composition{
		{Name: "Red", Percentage: 2.35},
		{Name: "Black", Percentage: 0.55},
		{Name: "White", Percentage: 12.125},
	}
	const total = 733.0

	base, err := ResolveWeights(comp, "Base PLA", total)
	require.NoError(t, err)

	for _, k := range []float64{0, 0.5, 2, 3, 10, 1000} {
		scaled, err := ResolveWeights(comp, "Base PLA", total*k)
		require.NoError(t, err)
		require.Len(t, scaled, len(base))
		for i := range base {
			// each line is rounded to 0.01 independently
			tolerance := 0.005*(k+1) + 1e-9
			assert.InDelta(t, base[i].Weight*k, scaled[i].Weight, tolerance, "k=%v line=%s", k, base[i].Name)
		}
	}
}

func TestBaseShare(t *testing.T) {
	tests := []struct {
		name string
		comp Composition
	}{
		{name: "empty", comp: Composition{}},
		{name: "single", comp: Composition{{Name: "Red", Percentage: 2}}},
		{name: "decimals", comp: Composition{{Name: "A", Percentage: 0.1}, {Name: "B", Percentage: 0.2}, {Name: "C", Percentage: 0.3}}},
		{name: "full", comp: Composition{{Name: "A", Percentage: 99.9}, {Name: "B", Percentage: 0.1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, 100.0, BaseShare(tt.comp)+tt.comp.Sum(), 1e-9)
		})
	}

	t.Run("over full is negative", func(t *testing.T) {
		comp := Composition{{Name: "Red", Percentage: 60}, {Name: "Black", Percentage: 50}}
		assert.InDelta(t, -10.0, BaseShare(comp), 1e-9)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		comp      Composition
		allowBase bool
		tolerance float64
		expected  Outcome
	}{
		{name: "exceeds with base", comp: Composition{{Name: "Red", Percentage: 60}, {Name: "Black", Percentage: 50}}, allowBase: true, tolerance: 0.1, expected: Exceeds100},
		{name: "exceeds without base", comp: Composition{{Name: "Red", Percentage: 100.5}}, tolerance: 0.1, expected: Exceeds100},
		{name: "incomplete without base", comp: Composition{{Name: "Red", Percentage: 2}, {Name: "Black", Percentage: 0.5}}, tolerance: 0.1, expected: Incomplete},
		{name: "partial with base is valid", comp: Composition{{Name: "Red", Percentage: 2}, {Name: "Black", Percentage: 0.5}}, allowBase: true, tolerance: 0.1, expected: Valid},
		{name: "exactly 100 without base", comp: Composition{{Name: "A", Percentage: 33.3}, {Name: "B", Percentage: 33.3}, {Name: "C", Percentage: 33.4}}, tolerance: 0.1, expected: Valid},
		{name: "within tolerance", comp: Composition{{Name: "A", Percentage: 99.9}}, tolerance: 0.1, expected: Valid},
		{name: "just outside tolerance", comp: Composition{{Name: "A", Percentage: 99.8}}, tolerance: 0.1, expected: Incomplete},
		{name: "wider tolerance", comp: Composition{{Name: "A", Percentage: 99.5}}, tolerance: 1, expected: Valid},
		{name: "empty with base", comp: Composition{}, allowBase: true, tolerance: 0.1, expected: Valid},
		{name: "empty without base", comp: Composition{}, tolerance: 0.1, expected: Incomplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateWithTolerance(tt.comp, tt.allowBase, tt.tolerance)
			assert.Equal(t, tt.expected, v.Outcome, "got %s", v.Outcome)
			assert.InDelta(t, tt.comp.Sum(), v.Sum, 1e-9)
			assert.InDelta(t, 100-tt.comp.Sum(), v.BaseShare, 1e-9)
		})
	}

	t.Run("default tolerance", func(t *testing.T) {
		comp := Composition{{Name: "A", Percentage: 99.95}}
		assert.Equal(t, Valid, Validate(comp, false).Outcome)
	})
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "valid", Valid.String())
	assert.Equal(t, "incomplete", Incomplete.String())
	assert.Equal(t, "exceeds_100", Exceeds100.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}

func TestSummary(t *testing.T) {
	lines, err := ResolveWeights(Composition{{Name: "Red", Percentage: 2}, {Name: "Black", Percentage: 0.5}}, "Base PLA", 1000)
	require.NoError(t, err)

	totals := Summary(lines)
	assert.Equal(t, Totals{Percentage: 100, Weight: 1000}, totals)
	assert.Equal(t, Totals{}, Summary(nil))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, 20.0, Round2(20.004))
	assert.Equal(t, 975.0, Round2(975))
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, 2.68, Round2(2.675))
	assert.Equal(t, -1.01, Round2(-1.005))
	assert.Equal(t, 1.0, Round2(1.0049))
	assert.Equal(t, 0.0, Round2(0))

	lines, err := ResolveWeights(Composition{{Name: "X", Percentage: 1}}, "B", 100.5)
	require.NoError(t, err)
	assert.Equal(t, 1.01, lines[0].Weight)
	assert.Equal(t, 99.5, lines[1].Percentage)
	assert.Equal(t, 99.5, lines[1].Weight, "99.495 rounds half up")
}
