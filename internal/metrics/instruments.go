package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// instruments pairs a count with a latency histogram sharing the same attributes.
type instruments struct {
	count   metric.Int64Counter
	seconds metric.Float64Histogram
}

type instrumentDef struct {
	countName, countDesc, countUnit string
	secondsName, secondsDesc        string
}

func newInstruments(meter metric.Meter, def instrumentDef) (*instruments, error) {
	count, err := meter.Int64Counter(def.countName,
		metric.WithDescription(def.countDesc),
		metric.WithUnit(def.countUnit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter %s: %w", def.countName, err)
	}

	seconds, err := meter.Float64Histogram(def.secondsName,
		metric.WithDescription(def.secondsDesc),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram %s: %w", def.secondsName, err)
	}

	return &instruments{count: count, seconds: seconds}, nil
}

func (i *instruments) add(ctx context.Context, attrs ...attribute.KeyValue) {
	i.count.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (i *instruments) observe(ctx context.Context, d time.Duration, attrs ...attribute.KeyValue) {
	i.seconds.Record(ctx, d.Seconds(), metric.WithAttributes(attrs...))
}
