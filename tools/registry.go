package tools

import (
	"errors"
	"fmt"
	"sort"
)

// Registry maps tool names to implementations
type Registry map[string]Tool

// NewRegistry creates a new tool registry over the given recipe store.
func NewRegistry(store RecipeStore, settings Settings) (*Registry, error) {
	if store == nil {
		return nil, errors.New("recipe store is required")
	}

	tools := []Tool{
		NewRecipeList(store),
		NewRecipeGet(store, settings),
		NewRecipeSave(store, settings),
		NewRecipeDelete(store),
		NewWeightsCalculate(store, settings),
	}

	registry := make(Registry, len(tools))
	for _, tool := range tools {
		registry[tool.Name()] = tool
	}
	return &registry, nil
}

// GetTools returns all tools in the registry sorted by name
func (r *Registry) GetTools() []Tool {
	tools := make([]Tool, 0, len(*r))
	for _, tool := range *r {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// GetTool retrieves a tool by name from the registry
func (r Registry) GetTool(name string) (Tool, error) {
	tool, exists := r[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not found in registry", name)
	}
	return tool, nil
}
