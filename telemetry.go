package hyperstats

import (
	"context"

	"github.com/hyp3rd/ewrap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hyp3rd/hyperstats/internal/telemetry/attrs"
)

// RegisterOTelGauges publishes the median, mean and count of every collector in
// the group as observable instruments on meter. Empty collectors are skipped.
// Unregister the returned registration to stop reporting.
func (g *Group) RegisterOTelGauges(meter metric.Meter) (metric.Registration, error) {
	median, err := meter.Float64ObservableGauge("hyperstats.median",
		metric.WithDescription("running median of the recorded observations"))
	if err != nil {
		return nil, ewrap.Wrap(err, "create median gauge")
	}

	mean, err := meter.Float64ObservableGauge("hyperstats.mean",
		metric.WithDescription("running mean of the recorded observations"))
	if err != nil {
		return nil, ewrap.Wrap(err, "create mean gauge")
	}

	count, err := meter.Int64ObservableGauge("hyperstats.count",
		metric.WithDescription("number of recorded observations"))
	if err != nil {
		return nil, ewrap.Wrap(err, "create count gauge")
	}

	registration, err := meter.RegisterCallback(func(ctx context.Context, observer metric.Observer) error {
		for name, snap := range g.Snapshots(ctx) {
			if snap.Empty {
				continue
			}

			opt := metric.WithAttributes(
				attribute.String(attrs.AttrCollector, name),
				attribute.String(attrs.AttrEstimator, snap.Estimator),
			)

			observer.ObserveFloat64(median, snap.Median, opt)
			observer.ObserveFloat64(mean, snap.Mean, opt)
			observer.ObserveInt64(count, snap.Count, opt)
		}

		return nil
	}, median, mean, count)
	if err != nil {
		return nil, ewrap.Wrap(err, "register gauge callback")
	}

	return registration, nil
}
