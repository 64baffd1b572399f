package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

type RecipeDelete struct{ store RecipeStore }

func NewRecipeDelete(store RecipeStore) *RecipeDelete { return &RecipeDelete{store: store} }

func (t *RecipeDelete) Name() string  { return "recipe_delete" }
func (t *RecipeDelete) Title() string { return "Delete Recipe" }
func (t *RecipeDelete) Description() string {
	return "Deletes a recipe by name."
}

func (t *RecipeDelete) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name": {Type: "string"},
		},
		Required: []string{"name"},
	}
}

func (t *RecipeDelete) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"deleted": {Type: "string"},
		},
		Required: []string{"deleted"},
	}
}

func (t *RecipeDelete) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	name, err := requiredString(input, "name")
	if err != nil {
		return nil, err
	}
	if err := t.store.Delete(ctx, name); err != nil {
		return nil, err
	}
	return map[string]any{"deleted": name}, nil
}
