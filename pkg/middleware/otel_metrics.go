package middleware

import (
	"context"
	"time"

	"github.com/hyp3rd/ewrap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hyp3rd/hyperstats"
	"github.com/hyp3rd/hyperstats/internal/telemetry/attrs"
)

// OTelMetricsMiddleware emits OpenTelemetry metrics for service methods.
type OTelMetricsMiddleware struct {
	next  hyperstats.Service
	meter metric.Meter

	// instruments
	calls     metric.Int64Counter
	failures  metric.Int64Counter
	durations metric.Float64Histogram
}

// NewOTelMetricsMiddleware constructs a metrics middleware using the provided meter.
func NewOTelMetricsMiddleware(next hyperstats.Service, meter metric.Meter) (hyperstats.Service, error) {
	calls, err := meter.Int64Counter("hyperstats.calls")
	if err != nil {
		return nil, ewrap.Wrap(err, "create calls counter")
	}

	failures, err := meter.Int64Counter("hyperstats.failures")
	if err != nil {
		return nil, ewrap.Wrap(err, "create failures counter")
	}

	durations, err := meter.Float64Histogram("hyperstats.duration.ms")
	if err != nil {
		return nil, ewrap.Wrap(err, "create duration histogram")
	}

	return &OTelMetricsMiddleware{next: next, meter: meter, calls: calls, failures: failures, durations: durations}, nil
}

// Push implements Service.Push with metrics.
func (mw *OTelMetricsMiddleware) Push(ctx context.Context, value float64) error {
	start := time.Now()
	err := mw.next.Push(ctx, value)
	mw.rec(ctx, "Push", start, err)

	return err
}

// Median implements Service.Median with metrics.
func (mw *OTelMetricsMiddleware) Median(ctx context.Context) (float64, error) {
	start := time.Now()
	v, err := mw.next.Median(ctx)
	mw.rec(ctx, "Median", start, err)

	return v, err
}

// Average implements Service.Average with metrics.
func (mw *OTelMetricsMiddleware) Average(ctx context.Context) (float64, error) {
	start := time.Now()
	v, err := mw.next.Average(ctx)
	mw.rec(ctx, "Average", start, err)

	return v, err
}

// Count returns the number of recorded values.
func (mw *OTelMetricsMiddleware) Count(ctx context.Context) int64 { return mw.next.Count(ctx) }

// Snapshot implements Service.Snapshot with metrics.
func (mw *OTelMetricsMiddleware) Snapshot(ctx context.Context) hyperstats.Snapshot {
	start := time.Now()
	snap := mw.next.Snapshot(ctx)
	mw.rec(ctx, "Snapshot", start, nil, attribute.Int64(attrs.AttrCount, snap.Count))

	return snap
}

// Reset implements Service.Reset with metrics.
func (mw *OTelMetricsMiddleware) Reset(ctx context.Context) hyperstats.Snapshot {
	start := time.Now()
	snap := mw.next.Reset(ctx)
	mw.rec(ctx, "Reset", start, nil, attribute.Int64(attrs.AttrCount, snap.Count))

	return snap
}

// rec records call count, failures and duration with attributes.
func (mw *OTelMetricsMiddleware) rec(ctx context.Context, method string, start time.Time, err error, extra ...attribute.KeyValue) {
	base := []attribute.KeyValue{attribute.String(attrs.AttrMethod, method)}
	if len(extra) > 0 {
		base = append(base, extra...)
	}

	mw.calls.Add(ctx, 1, metric.WithAttributes(base...))

	if err != nil {
		mw.failures.Add(ctx, 1, metric.WithAttributes(base...))
	}

	mw.durations.Record(ctx, float64(time.Since(start).Microseconds())/1000, metric.WithAttributes(base...))
}
