package masterbatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"masterbatch/tools"
)

// Session runs tool calls one at a time and records each in an ActionLogger.
type Session struct {
	id       string
	tools    ToolProvider
	logger   ActionLogger
	sequence int
	now      func() time.Time
}

func NewSession(provider ToolProvider, logger ActionLogger) *Session {
	if logger == nil {
		logger = NewNoOpActionLogger()
	}
	return &Session{
		id:     uuid.NewString(),
		tools:  provider,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Session) ID() string { return s.id }

// Run looks up call.Name and runs it. Failures are returned and also logged.
func (s *Session) Run(ctx context.Context, call tools.Call) (map[string]any, error) {
	s.sequence++
	entry := ActionLog{
		SessionID: s.id,
		Sequence:  s.sequence,
		Timestamp: s.now(),
		Tool:      call.Name,
		Input:     call.Input,
	}
	slog.Info("SESSION: Running tool", "session", s.id, "tool", call.Name, "request_id", call.RequestID)

	out, err := s.run(ctx, call)
	entry.Duration = s.now().Sub(entry.Timestamp).Seconds()
	if err != nil {
		entry.Error = err.Error()
		slog.Error("SESSION: Tool failed", "session", s.id, "tool", call.Name, "error", err)
	} else {
		entry.Output = out
	}

	if lerr := s.logger.LogAction(entry); lerr != nil {
		slog.Warn("SESSION: Failed to log action", "error", lerr)
	}
	return out, err
}

func (s *Session) run(ctx context.Context, call tools.Call) (map[string]any, error) {
	tool, err := s.tools.GetTool(call.Name)
	if err != nil {
		return nil, err
	}
	out, err := tool.Run(ctx, call.Input)
	if err != nil {
		return nil, fmt.Errorf("tool %q failed: %w", call.Name, err)
	}
	return out, nil
}
