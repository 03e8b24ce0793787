package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records use-case level outcomes. Domain is "credential" or
// "settings"; status is "success" or "error".
type BusinessMetrics interface {
	RecordOperation(ctx context.Context, domain, operation, status string)
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)
}

type businessMetrics struct {
	inst *instruments
}

// NewBusinessMetrics registers <namespace>_operations_total and
// <namespace>_operation_duration_seconds on the given provider.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	inst, err := newInstruments(meterProvider.Meter(namespace), instrumentDef{
		countName:   namespace + "_operations_total",
		countDesc:   "Total number of business operations",
		countUnit:   "{operation}",
		secondsName: namespace + "_operation_duration_seconds",
		secondsDesc: "Duration of business operations in seconds",
	})
	if err != nil {
		return nil, err
	}
	return &businessMetrics{inst: inst}, nil
}

func operationAttrs(domain, operation, status string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	}
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.inst.add(ctx, operationAttrs(domain, operation, status)...)
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.inst.observe(ctx, duration, operationAttrs(domain, operation, status)...)
}

// NoOpBusinessMetrics is used when metrics are disabled in config.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics returns a BusinessMetrics that discards everything.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return NoOpBusinessMetrics{}
}

func (NoOpBusinessMetrics) RecordOperation(context.Context, string, string, string) {}

func (NoOpBusinessMetrics) RecordDuration(context.Context, string, string, time.Duration, string) {}
