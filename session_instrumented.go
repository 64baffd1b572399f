package masterbatch

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"masterbatch/tools"
)

// InstrumentedSession is a Session that emits a span and metrics per call.
type InstrumentedSession struct {
	*Session
	tracer trace.Tracer

	calls    metric.Int64Counter
	failures metric.Int64Counter
	duration metric.Float64Histogram
}

func NewInstrumentedSession(provider ToolProvider, logger ActionLogger, tracer trace.Tracer, meter metric.Meter) (*InstrumentedSession, error) {
	calls, err := meter.Int64Counter("tool_calls_total",
		metric.WithDescription("Total number of tool calls"))
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter("tool_calls_failed_total",
		metric.WithDescription("Total number of failed tool calls"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("tool_execution_time_seconds",
		metric.WithDescription("Time spent executing tools"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &InstrumentedSession{
		Session:  NewSession(provider, logger),
		tracer:   tracer,
		calls:    calls,
		failures: failures,
		duration: duration,
	}, nil
}

func (s *InstrumentedSession) Run(ctx context.Context, call tools.Call) (map[string]any, error) {
	ctx, span := s.tracer.Start(ctx, "Session.Run", trace.WithAttributes(
		attribute.String("session_id", s.id),
		attribute.String("tool_name", call.Name),
	))
	defer span.End()

	toolAttr := metric.WithAttributes(attribute.String("tool_name", call.Name))
	s.calls.Add(ctx, 1, toolAttr)

	start := time.Now()
	out, err := s.Session.Run(ctx, call)
	elapsed := time.Since(start)
	s.duration.Record(ctx, elapsed.Seconds(), toolAttr)

	if err != nil {
		errorType := "tool_execution_failed"
		if _, gerr := s.tools.GetTool(call.Name); gerr != nil {
			errorType = "tool_not_found"
		}
		s.failures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("tool_name", call.Name),
			attribute.String("error_type", errorType),
		))
		span.SetStatus(codes.Error, errorType)
		span.RecordError(err)
		return nil, err
	}

	span.AddEvent("Tool executed successfully", trace.WithAttributes(
		attribute.Float64("tool_execution_time_seconds", elapsed.Seconds()),
	))
	return out, nil
}
