package hyperstats

import (
	"github.com/hyp3rd/hyperstats/pkg/estimator"
)

// Option is a function type that can be used to configure the `StatsCollector` struct.
type Option func(*StatsCollector)

// ApplyOptions applies the given options to the given collector.
func ApplyOptions(collector *StatsCollector, options ...Option) {
	for _, option := range options {
		option(collector)
	}
}

// WithEstimator is an option that sets the median estimator by registry name.
// The default registry knows:
//   - "heap" (exact dual heap, unbounded memory) - Implemented in `pkg/estimator/online.go`
//   - "histogram" (exact, bounded integer domain) - Implemented in `pkg/estimator/histogram.go`
//   - "hdr" (approximate, wide integer domain) - Implemented in `pkg/estimator/hdr.go`
func WithEstimator(name string) Option {
	return func(collector *StatsCollector) {
		collector.estimatorName = name
	}
}

// WithDomain is an option that sets the inclusive domain of the bounded estimators.
// The heap estimator ignores it.
func WithDomain(minVal, maxVal int64) Option {
	return func(collector *StatsCollector) {
		collector.estimatorConfig.MinValue = minVal
		collector.estimatorConfig.MaxValue = maxVal
	}
}

// WithSignificantFigures is an option that sets the precision of the "hdr" estimator.
func WithSignificantFigures(sigfigs int) Option {
	return func(collector *StatsCollector) {
		collector.estimatorConfig.SignificantFigures = sigfigs
	}
}

// WithEstimatorRegistry is an option that sets the registry estimators are resolved from.
// Use it to plug in custom estimators.
func WithEstimatorRegistry(registry *estimator.Registry) Option {
	return func(collector *StatsCollector) {
		collector.registry = registry
	}
}
