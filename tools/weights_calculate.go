package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"masterbatch/composition"
)

type WeightsCalculate struct {
	store    RecipeStore
	settings Settings
}

func NewWeightsCalculate(store RecipeStore, settings Settings) *WeightsCalculate {
	return &WeightsCalculate{store: store, settings: settings.withDefaults()}
}

func (t *WeightsCalculate) Name() string  { return "weights_calculate" }
func (t *WeightsCalculate) Title() string { return "Calculate Ingredient Weights" }
func (t *WeightsCalculate) Description() string {
	return "Computes the weight in grams of each ingredient of a recipe for a target total weight, base last."
}

func (t *WeightsCalculate) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name":         {Type: "string"},
			"total_weight": {Type: "number", Minimum: &zero},
			"include_base": {Type: "boolean"},
		},
		Required: []string{"name", "total_weight"},
	}
}

func (t *WeightsCalculate) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"recipe":       {Type: "string"},
			"base":         {Type: "string"},
			"total_weight": {Type: "number", Minimum: &zero},
			"lines": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"name":       {Type: "string"},
						"percentage": {Type: "number"},
						"weight":     {Type: "number", Minimum: &zero},
						"base":       {Type: "boolean"},
					},
					Required: []string{"name", "percentage", "weight"},
				},
			},
			"totals": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"percentage": {Type: "number"},
					"weight":     {Type: "number"},
				},
			},
			"validation": validationSchema(),
		},
		Required: []string{"recipe", "total_weight", "lines", "totals", "validation"},
	}
}

func (t *WeightsCalculate) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	name, err := requiredString(input, "name")
	if err != nil {
		return nil, err
	}
	total, err := numberArg(input, "total_weight")
	if err != nil {
		return nil, err
	}
	includeBase := boolArg(input, "include_base", true)

	r, err := t.store.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	base := ""
	if includeBase {
		base = r.BaseName()
	}
	lines, err := composition.ResolveWeights(r.Ingredients, base, total)
	if err != nil {
		return nil, composition.InRecipe(err, r.Name)
	}
	validation := composition.ValidateWithTolerance(r.Ingredients, includeBase, t.settings.Tolerance)

	return toMap(struct {
		Recipe      string             `json:"recipe"`
		Base        string             `json:"base,omitempty"`
		TotalWeight float64            `json:"total_weight"`
		Lines       []composition.Line `json:"lines"`
		Totals      composition.Totals `json:"totals"`
		Validation  validationOut      `json:"validation"`
	}{
		Recipe:      r.Name,
		Base:        base,
		TotalWeight: total,
		Lines:       lines,
		Totals:      composition.Summary(lines),
		Validation:  newValidationOut(validation),
	})
}
