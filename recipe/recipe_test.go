package recipe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masterbatch/composition"
)

func TestRecipe_Resolve(t *testing.T) {
	r := Recipe{Name: "Red PLA", Base: "Base PLA", Ingredients: composition.Composition{{Name: "Red", Percentage: 2.0}, {Name: "Black", Percentage: 0.5}}}

	lines, err := r.Resolve(1000)
	require.NoError(t, err)
	assert.Equal(t, []composition.Line{
		{Name: "Red", Percentage: 2.0, Weight: 20.0},
		{Name: "Black", Percentage: 0.5, Weight: 5.0},
		{Name: "Base PLA", Percentage: 97.5, Weight: 975.0, Base: true},
	}, lines)

	t.Run("default base", func(t *testing.T) {
		lines, err := Recipe{Name: "Plain"}.Resolve(10)
		require.NoError(t, err)
		assert.Equal(t, []composition.Line{{Name: DefaultBaseName, Percentage: 100, Weight: 10, Base: true}}, lines)
	})

	t.Run("over 100 names the recipe", func(t *testing.T) {
		bad := Recipe{Name: "Muddy", Ingredients: composition.Composition{{Name: "Red", Percentage: 60}, {Name: "Black", Percentage: 50}}}
		_, err := bad.Resolve(1000)

		var ce *composition.CompositionError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "Muddy", ce.Recipe)
		assert.Equal(t, DefaultBaseName, ce.Ingredient)
		assert.Equal(t, composition.Exceeds100, bad.Validate(composition.DefaultTolerance).Outcome)
	})
}

func TestRecipe_Check(t *testing.T) {
	tests := []struct {
		name    string
		recipe  Recipe
		wantErr error
	}{
		{name: "ok", recipe: Recipe{Name: "A", Ingredients: composition.Composition{{Name: "Red", Percentage: 2}}}},
		{name: "exactly full", recipe: Recipe{Name: "A", Ingredients: composition.Composition{{Name: "Red", Percentage: 100}}}},
		{name: "no ingredients", recipe: Recipe{Name: "A"}},
		{name: "empty name", recipe: Recipe{Name: ""}, wantErr: ErrEmptyName},
		{name: "over full", recipe: Recipe{Name: "A", Ingredients: composition.Composition{{Name: "Red", Percentage: 100.5}}}, wantErr: composition.ErrExceeds100},
		{name: "negative", recipe: Recipe{Name: "A", Ingredients: composition.Composition{{Name: "Red", Percentage: -1}}}, wantErr: composition.ErrNegativePercentage},
		{name: "duplicate", recipe: Recipe{Name: "A", Ingredients: composition.Composition{{Name: "Red", Percentage: 1}, {Name: "Red", Percentage: 1}}}, wantErr: composition.ErrDuplicateIngredient},
		{name: "base listed as ingredient", recipe: Recipe{Name: "A", Ingredients: composition.Composition{{Name: DefaultBaseName, Percentage: 1}}}, wantErr: composition.ErrDuplicateIngredient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.recipe.Check()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBook(t *testing.T) {
	b := NewBook()
	b.Put(Recipe{Name: "B"})
	b.Put(Recipe{Name: "A"})
	b.Put(Recipe{Name: "C"})
	b.Put(Recipe{Name: "A", Base: "Base PETG"})

	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []string{"B", "A", "C"}, b.Names())

	a, ok := b.Get("A")
	require.True(t, ok)
	assert.Equal(t, "Base PETG", a.Base)

	assert.True(t, b.Delete("A"))
	assert.False(t, b.Delete("A"))
	assert.Equal(t, []string{"B", "C"}, b.Names())

	names := b.Names()
	names[0] = "mutated"
	assert.Equal(t, []string{"B", "C"}, b.Names(), "Names returns a copy")

	t.Run("decode rejects duplicate and empty recipe names", func(t *testing.T) {
		var book Book
		err := json.Unmarshal([]byte(`{"A": {}, "A": {}}`), &book)
		assert.ErrorContains(t, err, "duplicate recipe")

		err = json.Unmarshal([]byte(`{"": {}}`), &book)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("null decodes to an empty book", func(t *testing.T) {
		book := NewBook()
		book.Put(Recipe{Name: "X"})
		require.NoError(t, json.Unmarshal([]byte(`null`), book))
		assert.Zero(t, book.Len())
	})
}

func TestDraft_Composition(t *testing.T) {
	tests := []struct {
		name       string
		draft      Draft
		expected   composition.Composition
		wantErr    error
		ingredient string
	}{
		{
			name: "form rows in order, blanks skipped",
			draft: Draft{
				{Name: "Red", Value: 2.0},
				{Name: "", Value: 0.0},
				{Name: " Black ", Value: "0,5"},
				{Name: "   ", Value: "junk"},
			},
			expected: composition.Composition{{Name: "Red", Percentage: 2}, {Name: "Black", Percentage: 0.5}},
		},
		{
			name:     "empty draft",
			draft:    Draft{},
			expected: composition.Composition{},
		},
		{
			name:       "non-numeric value",
			draft:      Draft{{Name: "Red", Value: 2.0}, {Name: "Black", Value: "a pinch"}},
			wantErr:    composition.ErrNonNumeric,
			ingredient: "Black",
		},
		{
			name:       "duplicate rows",
			draft:      Draft{{Name: "Red", Value: 1}, {Name: "Red ", Value: 2}},
			wantErr:    composition.ErrDuplicateIngredient,
			ingredient: "Red",
		},
		{
			name:       "negative row",
			draft:      Draft{{Name: "Red", Value: -2}},
			wantErr:    composition.ErrNegativePercentage,
			ingredient: "Red",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.draft.Composition()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				var ce *composition.CompositionError
				require.ErrorAs(t, err, &ce)
				assert.Equal(t, tt.ingredient, ce.Ingredient)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDraftEntry(t *testing.T) {
	e, err := ParseDraftEntry("Red=2.5")
	require.NoError(t, err)
	assert.Equal(t, DraftEntry{Name: "Red", Value: "2.5"}, e)

	e, err = ParseDraftEntry(" Mix=A = 1 ")
	require.NoError(t, err)
	assert.Equal(t, DraftEntry{Name: "Mix=A", Value: "1"}, e)

	_, err = ParseDraftEntry("Red")
	assert.Error(t, err)
}
