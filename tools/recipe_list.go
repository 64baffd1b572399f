package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"masterbatch/composition"
)

type RecipeList struct{ store RecipeStore }

func NewRecipeList(store RecipeStore) *RecipeList { return &RecipeList{store: store} }

func (t *RecipeList) Name() string  { return "recipe_list" }
func (t *RecipeList) Title() string { return "List Recipes" }
func (t *RecipeList) Description() string {
	return "Lists stored recipes in book order with their base and ingredient count."
}

func (t *RecipeList) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}

func (t *RecipeList) OutputSchema() *jsonschema.Schema {
	minCount := 0.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"recipes": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"name":        {Type: "string"},
						"base":        {Type: "string"},
						"ingredients": {Type: "integer", Minimum: &minCount},
						"base_share":  {Type: "number"},
					},
					Required: []string{"name", "base", "ingredients", "base_share"},
				},
			},
		},
		Required: []string{"recipes"},
	}
}

func (t *RecipeList) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	book, err := t.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}

	type summary struct {
		Name        string  `json:"name"`
		Base        string  `json:"base"`
		Ingredients int     `json:"ingredients"`
		BaseShare   float64 `json:"base_share"`
	}
	out := struct {
		Recipes []summary `json:"recipes"`
	}{
		// Initialize recipes slice to prevent nil when empty
		Recipes: make([]summary, 0, book.Len()),
	}

	for _, r := range book.All() {
		out.Recipes = append(out.Recipes, summary{
			Name:        r.Name,
			Base:        r.BaseName(),
			Ingredients: len(r.Ingredients),
			BaseShare:   composition.Round2(composition.BaseShare(r.Ingredients)),
		})
	}
	return toMap(out)
}
