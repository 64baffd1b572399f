package masterbatch

import (
	"context"
	"errors"

	"github.com/joeshaw/envdecode"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	TracerNameCLI    = "masterbatch-cli"
	TracerNameLambda = "masterbatch-lambda"
)

// OtelConfig is a configuration struct for the OpenTelemetry providers. The
// exporters read the OTEL_* variables themselves; Enabled gates InitOtel.
type OtelConfig struct {
	Enabled        bool   `env:"MASTERBATCH_OTEL_ENABLED,default=false"`
	Endpoint       string `env:"OTEL_EXPORTER_OTLP_ENDPOINT,default=set-me"`
	Headers        string `env:"OTEL_EXPORTER_OTLP_HEADERS,default=set-me"`
	ServiceVersion string `env:"OTEL_SERVICE_VERSION,default=0.1.0"`
	ServiceName    string `env:"OTEL_SERVICE_NAME,default=masterbatch"`
	DeployEnv      string `env:"OTEL_DEPLOY_ENV,default=development"`
}

// LoadOtelConfig decodes OtelConfig from the environment.
func LoadOtelConfig() (OtelConfig, error) {
	var cfg OtelConfig
	if err := envdecode.Decode(&cfg); err != nil {
		return OtelConfig{}, err
	}
	return cfg, nil
}

type otelShutdown func(ctx context.Context) error

// InitOtel initializes the OpenTelemetry SDK with OTLP gRPC exporters and
// registers the providers globally.
func InitOtel(ctx context.Context) (*sdktrace.TracerProvider, *metric.MeterProvider, otelShutdown, error) {
	traceExporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient())
	if err != nil {
		return nil, nil, nil, err
	}

	metricExporter, err := otlpmetricgrpc.New(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(traceExporter))
	meterProvider := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(metricExporter)))

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	shutdown := func(ctx context.Context) error {
		err := errors.Join(
			tracerProvider.Shutdown(ctx),
			meterProvider.Shutdown(ctx),
		)
		if err != nil && err.Error() == "gRPC exporter is shutdown" {
			return nil
		}
		return err
	}

	return tracerProvider, meterProvider, shutdown, nil
}

// NewRunner returns an InstrumentedSession when telemetry is enabled and a
// plain Session otherwise, plus a shutdown func that is always safe to call.
func NewRunner(ctx context.Context, provider ToolProvider, logger ActionLogger, tracerName string) (Runner, otelShutdown, error) {
	noop := func(context.Context) error { return nil }

	cfg, err := LoadOtelConfig()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Enabled {
		return NewSession(provider, logger), noop, nil
	}

	tp, mp, shutdown, err := InitOtel(ctx)
	if err != nil {
		return nil, nil, err
	}
	session, err := NewInstrumentedSession(provider, logger, tp.Tracer(tracerName), mp.Meter(tracerName))
	if err != nil {
		return nil, nil, errors.Join(err, shutdown(ctx))
	}
	return session, shutdown, nil
}
