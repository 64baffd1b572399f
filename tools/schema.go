package tools

import "github.com/modelcontextprotocol/go-sdk/jsonschema"

var zero = 0.0

func ingredientSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name":       {Type: "string"},
			"percentage": {Type: "number", Minimum: &zero},
		},
		Required: []string{"name", "percentage"},
	}
}

func recipeSchema() *jsonschema.Schema {
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
		Required: []string{"name", "base", "ingredients"},
	}
}

func validationSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"outcome":    {Type: "string"},
			"sum":        {Type: "number"},
			"base_share": {Type: "number"},
			"message":    {Type: "string"},
		},
		Required: []string{"outcome", "sum", "base_share"},
	}
}
