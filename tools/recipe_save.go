package tools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"masterbatch/recipe"
)

type RecipeSave struct {
	store    RecipeStore
	settings Settings
}

func NewRecipeSave(store RecipeStore, settings Settings) *RecipeSave {
	return &RecipeSave{store: store, settings: settings.withDefaults()}
}

func (t *RecipeSave) Name() string  { return "recipe_save" }
func (t *RecipeSave) Title() string { return "Save Recipe" }
func (t *RecipeSave) Description() string {
	return "Creates or replaces a recipe from ingredient rows. Rejects compositions over 100%; the base fills the rest."
}

func (t *RecipeSave) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name": {Type: "string"},
			"base": {Type: "string"},
			"ingredients": {
				Type:  "array",
				Items: ingredientSchema(),
			},
		},
		Required: []string{"name", "ingredients"},
	}
}

func (t *RecipeSave) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"recipe":     recipeSchema(),
			"validation": validationSchema(),
		},
		Required: []string{"recipe", "validation"},
	}
}

func (t *RecipeSave) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	name, err := requiredString(input, "name")
	if err != nil {
		return nil, err
	}
	draft, err := draftArg(input, "ingredients")
	if err != nil {
		return nil, err
	}
	comp, err := draft.Composition()
	if err != nil {
		return nil, err
	}

	base, _ := input["base"].(string)
	if strings.TrimSpace(base) == "" {
		base = t.settings.DefaultBase
	}

	r := recipe.Recipe{Name: name, Base: base, Ingredients: comp}
	if err := t.store.Put(ctx, r); err != nil {
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
