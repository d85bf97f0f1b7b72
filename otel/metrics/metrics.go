package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	downstreamCalls    metric.Int64Counter
	downstreamDuration metric.Float64Histogram
	supersededRequests metric.Int64Counter
)

// Init creates the portal's instruments on the global meter provider.
// Call it after the provider is installed; recording before Init is a no-op.
func Init(serviceName string) error {
	meter := otel.Meter(serviceName)

	var err error
	downstreamCalls, err = meter.Int64Counter(
		"downstream_calls_total",
		metric.WithDescription("Total number of calls to the clinic API"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create downstream_calls_total counter: %w", err)
	}

	downstreamDuration, err = meter.Float64Histogram(
		"downstream_call_duration_seconds",
		metric.WithDescription("Clinic API call duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create downstream_call_duration_seconds histogram: %w", err)
	}

	supersededRequests, err = meter.Int64Counter(
		"dashboard_superseded_requests_total",
		metric.WithDescription("Filter requests dropped because a newer one arrived"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create dashboard_superseded_requests_total counter: %w", err)
	}

	return nil
}

// RecordDownstreamCall records one clinic API call.
func RecordDownstreamCall(ctx context.Context, operation string, duration time.Duration, success bool) {
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("success", success),
	)
	if downstreamCalls != nil {
		downstreamCalls.Add(ctx, 1, attrs)
	}
	if downstreamDuration != nil {
		downstreamDuration.Record(ctx, duration.Seconds(), attrs)
	}
}

// RecordSuperseded counts a dashboard request whose result was discarded.
func RecordSuperseded(ctx context.Context, view string) {
	if supersededRequests != nil {
		supersededRequests.Add(ctx, 1, metric.WithAttributes(attribute.String("view", view)))
	}
}
