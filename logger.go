package masterbatch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// ActionLogger records the tool calls made in a session.
type ActionLogger interface {
	LogAction(action ActionLog) error
}

// NewActionLogFilePath returns a timestamped log path under dir.
func NewActionLogFilePath(dir string, now time.Time) string {
	return fmt.Sprintf("%s/%d.actions.json", dir, now.Unix())
}

// ActionLog is one tool call and its outcome.
type ActionLog struct {
	SessionID string         `json:"session_id"`
	Sequence  int            `json:"sequence"`
	Timestamp time.Time      `json:"timestamp"`
	Tool      string         `json:"tool"`
	Input     map[string]any `json:"input,omitempty"`
	Output    map[string]any `json:"output,omitempty"`
	Error     string         `json:"error,omitempty"`
	Duration  float64        `json:"duration_seconds"`
}

// FileActionLogger buffers actions and writes them as one document on Flush.
type FileActionLogger struct {
	actions []ActionLog
	writer  io.Writer
}

func NewFileActionLogger(writer io.Writer) *FileActionLogger {
	return &FileActionLogger{
		actions: make([]ActionLog, 0),
		writer:  writer,
	}
}

// LogAction buffers the action; nothing is written until Flush.
func (l *FileActionLogger) LogAction(action ActionLog) error {
	l.actions = append(l.actions, action)
	return nil
}

// Flush writes the buffered actions and clears the buffer.
func (l *FileActionLogger) Flush() error {
	if l.writer == nil || len(l.actions) == 0 {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"session": map[string]any{
			"timestamp": time.Now(),
			"actions":   l.actions,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal action log: %w", err)
	}

	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write action log: %w", err)
	}

	l.actions = l.actions[:0]
	return nil
}

type NoOpActionLogger struct{}

func NewNoOpActionLogger() *NoOpActionLogger { return &NoOpActionLogger{} }

func (NoOpActionLogger) LogAction(ActionLog) error { return nil }

// StdoutActionLogger writes each action as a JSON line (for Lambda/CloudWatch).
type StdoutActionLogger struct {
	out io.Writer
}

func NewStdoutActionLogger() *StdoutActionLogger {
	return &StdoutActionLogger{out: os.Stdout}
}

func (l *StdoutActionLogger) LogAction(action ActionLog) error {
	data, err := json.Marshal(action)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(l.out, string(data))
	return err
}
