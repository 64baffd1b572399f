package masterbatch

import (
	"context"
	"net/http"

	"masterbatch/tools"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type SlackClient interface {
	PostMessage(ctx context.Context, channel string, message string) error
}

type ToolProvider interface {
	GetTools() []tools.Tool
	GetTool(name string) (tools.Tool, error)
}

// Runner executes one tool call on behalf of a launcher.
type Runner interface {
	Run(ctx context.Context, call tools.Call) (map[string]any, error)
}
