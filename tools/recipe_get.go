package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

type RecipeGet struct {
	store    RecipeStore
	settings Settings
}

func NewRecipeGet(store RecipeStore, settings Settings) *RecipeGet {
	return &RecipeGet{store: store, settings: settings.withDefaults()}
}

func (t *RecipeGet) Name() string  { return "recipe_get" }
func (t *RecipeGet) Title() string { return "Get Recipe" }
func (t *RecipeGet) Description() string {
	return "Returns one recipe with its base share and composition validation."
}

func (t *RecipeGet) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name": {Type: "string"},
		},
		Required: []string{"name"},
	}
}

func (t *RecipeGet) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"recipe":     recipeSchema(),
			"validation": validationSchema(),
		},
		Required: []string{"recipe", "validation"},
	}
}

func (t *RecipeGet) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	name, err := requiredString(input, "name")
	if err != nil {
		return nil, err
	}

	r, err := t.store.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	return toMap(struct {
		Recipe     recipeOut     `json:"recipe"`
		Validation validationOut `json:"validation"`
	}{
		Recipe:     newRecipeOut(r),
		Validation: newValidationOut(r.Validate(t.settings.Tolerance)),
	})
}
