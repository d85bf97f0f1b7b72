package otel

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// OtelConfig holds the configuration for OpenTelemetry
type OtelConfig struct {
	Enabled     bool              // Enable/disable OpenTelemetry
	Endpoint    string            // OTLP endpoint, host:port or URL
	ServiceName string            // Name of your service
	Headers     map[string]string // Authentication headers
	Environment string            // Environment (development, production, etc.)
	SampleRate  float64           // Trace sampling rate (0.0 to 1.0)
}

// InitOpenTelemetry installs the global tracer and meter providers and
// returns a shutdown func that flushes both. When disabled it installs
// nothing; the otel globals then stay no-ops.
func InitOpenTelemetry(ctx context.Context, cfg OtelConfig) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	res := newResource(cfg)

	tracerShutdown, err := setupTracing(ctx, res, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup tracing: %w", err)
	}

	metricsShutdown, err := setupMetrics(ctx, res, cfg)
	if err != nil {
		_ = tracerShutdown(ctx)
		return nil, fmt.Errorf("failed to setup metrics: %w", err)
	}

	return func(ctx context.Context) error {
		return errors.Join(tracerShutdown(ctx), metricsShutdown(ctx))
	}, nil
}

func validateConfig(cfg OtelConfig) error {
	if cfg.ServiceName == "" {
		return fmt.Errorf("ServiceName is required")
	}
	if cfg.Endpoint == "" {
		return fmt.Errorf("Endpoint is required")
	}
	if cfg.SampleRate < 0.0 || cfg.SampleRate > 1.0 {
		return fmt.Errorf("SampleRate must be between 0.0 and 1.0, got %f", cfg.SampleRate)
	}
	return nil
}

func newResource(cfg OtelConfig) *resource.Resource {
	hostName, _ := os.Hostname()

	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.Environment),
		semconv.HostName(hostName),
	)
}

// endpoint strips any scheme; the exporters take host:port and a separate
// insecure flag.
func endpoint(cfg OtelConfig) (string, bool) {
	switch {
	case strings.HasPrefix(cfg.Endpoint, "https://"):
		return strings.TrimPrefix(cfg.Endpoint, "https://"), false
	case strings.HasPrefix(cfg.Endpoint, "http://"):
		return strings.TrimPrefix(cfg.Endpoint, "http://"), true
	}
	return cfg.Endpoint, true
}

func setupTracing(ctx context.Context, res *resource.Resource, cfg OtelConfig) (func(context.Context) error, error) {
	host, insecure := endpoint(cfg)
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(host)}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(cfg.Headers))
	}
	if insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(cfg.SampleRate))),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return provider.Shutdown, nil
}

func setupMetrics(ctx context.Context, res *resource.Resource, cfg OtelConfig) (func(context.Context) error, error) {
	host, insecure := endpoint(cfg)
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(host)}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(cfg.Headers))
	}
	if insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	provider := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter)),
		metric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	return provider.Shutdown, nil
}
