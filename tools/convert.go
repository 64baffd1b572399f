package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"masterbatch/composition"
	"masterbatch/recipe"
)

// toMap round-trips v through JSON to keep tool outputs uniform.
func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode output: %w", err)
	}
	return m, nil
}

func requiredString(input map[string]any, key string) (string, error) {
	s, _ := input[key].(string)
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return s, nil
}

func boolArg(input map[string]any, key string, def bool) bool {
	if b, ok := input[key].(bool); ok {
		return b
	}
	return def
}

var errNotANumber = errors.New("not a number")

// numberArg reads a finite number given as a JSON number or numeric text.
func numberArg(input map[string]any, key string) (float64, error) {
	var f float64
	switch v := input[key].(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, errNotANumber)
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", "."), 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, errNotANumber)
		}
		f = n
	case nil:
		return 0, fmt.Errorf("%s is required", key)
	default:
		return 0, fmt.Errorf("%s: %w", key, errNotANumber)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s: %w", key, errNotANumber)
	}
	return f, nil
}

// draftArg reads [{"name": ..., "percentage": ...}] rows into a draft.
func draftArg(input map[string]any, key string) (recipe.Draft, error) {
	var rows []map[string]any
	switch v := input[key].(type) {
	case nil:
	case []map[string]any:
		rows = v
	case []any:
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s[%d]: expected object, got %T", key, i, item)
			}
			rows = append(rows, m)
		}
	default:
		return nil, fmt.Errorf("%s: expected array, got %T", key, v)
	}

	draft := make(recipe.Draft, 0, len(rows))
	for _, row := range rows {
		name, _ := row["name"].(string)
		draft = append(draft, recipe.DraftEntry{Name: name, Value: row["percentage"]})
	}
	return draft, nil
}

type recipeOut struct {
	Name        string                   `json:"name"`
	Base        string                   `json:"base"`
	Ingredients []composition.Ingredient `json:"ingredients"`
}

func newRecipeOut(r recipe.Recipe) recipeOut {
	ings := make([]composition.Ingredient, 0, len(r.Ingredients))
	ings = append(ings, r.Ingredients...)
	return recipeOut{Name: r.Name, Base: r.BaseName(), Ingredients: ings}
}

type validationOut struct {
	Outcome   string  `json:"outcome"`
	Sum       float64 `json:"sum"`
	BaseShare float64 `json:"base_share"`
	Message   string  `json:"message,omitempty"`
}

func newValidationOut(v composition.Validation) validationOut {
	out := validationOut{
		Outcome:   v.Outcome.String(),
		Sum:       composition.Round2(v.Sum),
		BaseShare: composition.Round2(v.BaseShare),
	}
	switch v.Outcome {
	case composition.Exceeds100:
		out.Message = fmt.Sprintf("ingredients sum to %.2f%%, more than 100%%", v.Sum)
	case composition.Incomplete:
		out.Message = fmt.Sprintf("ingredients sum to %.2f%%, %.2f%% of the mass is not accounted for", v.Sum, v.BaseShare)
	}
	return out
}
