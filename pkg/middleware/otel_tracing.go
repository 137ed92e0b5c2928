package middleware

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hyp3rd/hyperstats"
	"github.com/hyp3rd/hyperstats/internal/telemetry/attrs"
)

// OTelTracingMiddleware wraps hyperstats.Service methods with OpenTelemetry spans.
type OTelTracingMiddleware struct {
	next   hyperstats.Service
	tracer trace.Tracer
	// static attributes applied to all spans
	commonAttrs []attribute.KeyValue
}

// OTelTracingOption allows configuring the tracing middleware.
type OTelTracingOption func(*OTelTracingMiddleware)

// WithCommonAttributes sets attributes applied to all spans.
func WithCommonAttributes(attributes ...attribute.KeyValue) OTelTracingOption {
	return func(m *OTelTracingMiddleware) { m.commonAttrs = append(m.commonAttrs, attributes...) }
}

// NewOTelTracingMiddleware creates a tracing middleware.
func NewOTelTracingMiddleware(next hyperstats.Service, tracer trace.Tracer, opts ...OTelTracingOption) hyperstats.Service {
	mw := &OTelTracingMiddleware{next: next, tracer: tracer}
	for _, o := range opts {
		o(mw)
	}

	return mw
}

// Push implements Service.Push with tracing.
func (mw OTelTracingMiddleware) Push(ctx context.Context, value float64) error {
	ctx, span := mw.startSpan(ctx, "hyperstats.Push", attribute.Float64(attrs.AttrValue, value))
	defer span.End()

	err := mw.next.Push(ctx, value)
	recordError(span, err)

	return err
}

// Median implements Service.Median with tracing.
func (mw OTelTracingMiddleware) Median(ctx context.Context) (float64, error) {
	ctx, span := mw.startSpan(ctx, "hyperstats.Median")
	defer span.End()

	v, err := mw.next.Median(ctx)
	recordError(span, err)

	return v, err
}

// Average implements Service.Average with tracing.
func (mw OTelTracingMiddleware) Average(ctx context.Context) (float64, error) {
	ctx, span := mw.startSpan(ctx, "hyperstats.Average")
	defer span.End()

	v, err := mw.next.Average(ctx)
	recordError(span, err)

	return v, err
}

// Count returns the number of recorded values.
func (mw OTelTracingMiddleware) Count(ctx context.Context) int64 { return mw.next.Count(ctx) }

// Snapshot implements Service.Snapshot with tracing.
func (mw OTelTracingMiddleware) Snapshot(ctx context.Context) hyperstats.Snapshot {
	ctx, span := mw.startSpan(ctx, "hyperstats.Snapshot")
	defer span.End()

	snap := mw.next.Snapshot(ctx)
	span.SetAttributes(attribute.Int64(attrs.AttrCount, snap.Count), attribute.String(attrs.AttrEstimator, snap.Estimator))

	return snap
}

// Reset implements Service.Reset with tracing.
func (mw OTelTracingMiddleware) Reset(ctx context.Context) hyperstats.Snapshot {
	ctx, span := mw.startSpan(ctx, "hyperstats.Reset")
	defer span.End()

	snap := mw.next.Reset(ctx)
	span.SetAttributes(attribute.Int64(attrs.AttrCount, snap.Count))

	return snap
}

// startSpan starts a span with common and provided attributes.
func (mw OTelTracingMiddleware) startSpan(ctx context.Context, name string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	all := append([]attribute.KeyValue{}, mw.commonAttrs...)
	all = append(all, attributes...)

	return mw.tracer.Start(ctx, name, trace.WithAttributes(all...))
}

func recordError(span trace.Span, err error) {
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
