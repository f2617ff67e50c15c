package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Operation identifies an instrumented call by the component that owns it
// and its name. Both end up as metric labels.
type Operation struct {
	Domain string
	Name   string
}

// Operations recorded by the safe storage decorators.
var (
	OperationResolve   = Operation{Domain: "safestorage", Name: "resolve"}
	OperationEncrypt   = Operation{Domain: "safestorage", Name: "encrypt"}
	OperationGetSecret = Operation{Domain: "secretstore", Name: "get_secret"}
)

// Status is the outcome label of a recorded operation.
type Status string

const (
	StatusSuccess Status = "success"
	// StatusNotFound marks a lookup that found nothing. Account fallback
	// produces these on the normal path, so they are kept apart from errors.
	StatusNotFound Status = "not_found"
	StatusError    Status = "error"
)

// StatusOf returns StatusSuccess for a nil error and StatusError otherwise.
func StatusOf(err error) Status {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

// BusinessMetrics records one sample per completed operation.
type BusinessMetrics interface {
	// Observe counts op with its outcome and records its duration in seconds.
	Observe(ctx context.Context, op Operation, status Status, duration time.Duration)
}

// businessMetrics implements BusinessMetrics using OpenTelemetry metrics.
type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
}

// NewBusinessMetrics creates a BusinessMetrics on meterProvider. Metric names
// are prefixed with namespace, e.g. "safestorage_operations_total".
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of safe storage operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of safe storage operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
	}, nil
}

// Observe increments the counter and records the duration under the same
// domain, operation and status labels.
func (b *businessMetrics) Observe(ctx context.Context, op Operation, status Status, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("domain", op.Domain),
		attribute.String("operation", op.Name),
		attribute.String("status", string(status)),
	)
	b.operationCounter.Add(ctx, 1, attrs)
	b.durationHisto.Record(ctx, duration.Seconds(), attrs)
}

// NoOpBusinessMetrics is used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

// Observe does nothing.
func (n *NoOpBusinessMetrics) Observe(ctx context.Context, op Operation, status Status, duration time.Duration) {}
