// Package estimator implements running median estimators over a stream of float64 observations.
//
// Three estimators are provided:
//   - Online: exact, two heaps partitioning the stream into a low and a high half.
//   - Histogram: exact over a bounded integer domain using per-value counts.
//   - HDR: approximate over a wide integer domain using an HdrHistogram.
//
// None of the estimators is safe for concurrent use; callers serialize access.
package estimator

import (
	"maps"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/hyperstats/internal/constants"
	"github.com/hyp3rd/hyperstats/internal/sentinel"
)

// IEstimator is the interface implemented by every median estimator.
type IEstimator interface {
	// Push records one observation. A failed push leaves the estimator unchanged.
	Push(value float64) error
	// Median returns the median of every observation pushed so far.
	Median() (float64, error)
	// Len returns the number of observations held.
	Len() int
	// Reset drops every observation.
	Reset()
}

// Config carries the parameters a bounded estimator is built with.
// The heap estimator ignores it.
type Config struct {
	// MinValue is the inclusive lower bound of the domain.
	MinValue int64
	// MaxValue is the inclusive upper bound of the domain.
	MaxValue int64
	// SignificantFigures is the HDR precision, between 1 and 5.
	SignificantFigures int
}

// DefaultConfig returns the domain of a 19 second request timeout measured in milliseconds.
func DefaultConfig() Config {
	return Config{
		MinValue:           constants.DefaultMinValue,
		MaxValue:           constants.DefaultMaxValue,
		SignificantFigures: constants.DefaultSignificantFigures,
	}
}

// Factory builds an estimator from a Config.
type Factory func(cfg Config) (IEstimator, error)

// Registry manages estimator constructors.
type Registry struct {
	factories map[string]Factory
}

// getDefaultEstimators returns the default set of estimators.
func getDefaultEstimators() map[string]Factory {
	return map[string]Factory{
		constants.HeapEstimator: func(Config) (IEstimator, error) {
			return NewOnline(), nil
		},
		constants.HistogramEstimator: func(cfg Config) (IEstimator, error) {
			return NewHistogram(cfg.MinValue, cfg.MaxValue)
		},
		constants.HDREstimator: func(cfg Config) (IEstimator, error) {
			return NewHDR(cfg.MinValue, cfg.MaxValue, cfg.SignificantFigures)
		},
	}
}

// NewRegistry creates a registry with the heap, histogram and hdr estimators pre-registered.
func NewRegistry() *Registry {
	registry := NewEmptyRegistry()
	registry.RegisterMultiple(getDefaultEstimators())

	return registry
}

// NewEmptyRegistry creates a registry without default estimators.
// This is useful for testing or when you want to register only specific estimators.
func NewEmptyRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register registers an estimator constructor under name, replacing any previous one.
func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

// RegisterMultiple registers a set of estimator constructors.
func (r *Registry) RegisterMultiple(factories map[string]Factory) {
	maps.Copy(r.factories, factories)
}

// Names returns the registered estimator names in no particular order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	return names
}

// New creates the estimator registered under name.
func (r *Registry) New(name string, cfg Config) (IEstimator, error) {
	if name == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "estimator name")
	}

	factory, ok := r.factories[name]
	if !ok {
		return nil, ewrap.Wrap(sentinel.ErrEstimatorNotFound, name)
	}

	return factory(cfg)
}

// New creates an estimator using a new registry instance with the default estimators.
func New(name string, cfg Config) (IEstimator, error) {
	return NewRegistry().New(name, cfg)
}
