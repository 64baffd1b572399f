package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"

	"masterbatch"
	"masterbatch/recipe"
	"masterbatch/tools"
)

type Params struct {
	Tool      string         `json:"tool"`
	Input     map[string]any `json:"input"`
	RequestID string         `json:"request_id,omitempty"`
}

type Results struct {
	Output map[string]any `json:"output"`
}

func main() {
	lambda.Start(handle)
}

func handle(ctx context.Context, params Params) (Results, error) {
	if params.Tool == "" {
		return Results{}, errors.New("tool is required")
	}

	cfg, err := masterbatch.LoadConfig()
	if err != nil {
		slog.Error("SETUP: Failed to decode config", "error", err)
		return Results{}, err
	}

	state, closeState, err := masterbatch.OpenRecipeState(ctx, cfg.Store)
	if err != nil {
		slog.Error("SETUP: Failed to open recipe state", "error", err)
		return Results{}, err
	}
	defer func() {
		if err := closeState(); err != nil {
			slog.Error("SETUP: Failed to close recipe state", "error", err)
		}
	}()

	registry, err := tools.NewRegistry(recipe.NewStore(state), tools.Settings{
		Tolerance:   cfg.Calculator.Tolerance,
		DefaultBase: cfg.Calculator.DefaultBase,
	})
	if err != nil {
		slog.Error("SETUP: Failed to create tool registry", "error", err)
		return Results{}, err
	}

	runner, shutdown, err := masterbatch.NewRunner(ctx, registry, masterbatch.NewStdoutActionLogger(), masterbatch.TracerNameLambda)
	if err != nil {
		slog.Error("SETUP: Failed to initialize session", "error", err)
		return Results{}, err
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	output, err := runner.Run(ctx, tools.Call{Name: params.Tool, Input: params.Input, RequestID: params.RequestID})
	if err != nil {
		slog.Error("RESULT: Error handling tool call", "tool", params.Tool, "error", err)
		return Results{}, err
	}

	slog.Info("RESULT: Tool call handled", "tool", params.Tool)
	return Results{Output: output}, nil
}
