// Package attrs provides reusable OpenTelemetry attribute key constants
// shared by the hyperstats middlewares and gauges.
package attrs

const (
	// AttrMethod names the Service method being measured.
	AttrMethod = "method"
	// AttrCollector names the collector a gauge observation belongs to.
	AttrCollector = "collector"
	// AttrEstimator names the estimator backing a collector.
	AttrEstimator = "estimator"
	// AttrValue carries a pushed observation on a span.
	AttrValue = "value"
	// AttrCount carries the number of observations held by a collector.
	AttrCount = "count"
)
