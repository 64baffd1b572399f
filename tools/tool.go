package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"masterbatch/composition"
	"masterbatch/recipe"
)

type Tool interface {
	Name() string
	Title() string
	Description() string
	InputSchema() *jsonschema.Schema
	OutputSchema() *jsonschema.Schema
	Run(ctx context.Context, input map[string]any) (output map[string]any, err error)
}

// Call is one request from the presentation layer.
type Call struct {
	Name      string         `json:"name"`
	Input     map[string]any `json:"input"`
	RequestID string         `json:"request_id,omitempty"`
}

// RecipeStore is the persistence the tools need; *recipe.Store implements it.
type RecipeStore interface {
	Load(ctx context.Context) (*recipe.Book, error)
	Get(ctx context.Context, name string) (recipe.Recipe, error)
	Put(ctx context.Context, r recipe.Recipe) error
	Delete(ctx context.Context, name string) error
}

// Settings tune validation and defaults shared by all tools.
type Settings struct {
	Tolerance   float64
	DefaultBase string
}

func (s Settings) withDefaults() Settings {
	if s.Tolerance <= 0 {
		s.Tolerance = composition.DefaultTolerance
	}
	if s.DefaultBase == "" {
		s.DefaultBase = recipe.DefaultBaseName
	}
	return s
}
