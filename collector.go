// Package hyperstats maintains running median and mean statistics over a stream of
// latency samples without retaining and re-sorting the full history per query.
//
// A StatsCollector routes each pushed value to a median estimator (see
// pkg/estimator) and keeps a running sum and count for the mean. It is not safe
// for concurrent use; wrap it in a SyncCollector, or use a Group for many named
// metrics.
package hyperstats

import (
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/hyperstats/internal/constants"
	"github.com/hyp3rd/hyperstats/internal/sentinel"
	"github.com/hyp3rd/hyperstats/pkg/estimator"
)

// StatsCollector tracks the median and the mean of every value pushed into it.
type StatsCollector struct {
	estimatorName   string               // name of the estimator in the registry
	estimatorConfig estimator.Config     // domain and precision handed to the estimator
	registry        *estimator.Registry  // registry the estimator is built from
	estimator       estimator.IEstimator // median estimator
	sum             float64              // running sum of accepted values
	count           int64                // number of accepted values
}

// New creates a StatsCollector. Without options it uses the exact dual-heap
// estimator; bounded estimators default to the [1, 19000] millisecond domain.
func New(options ...Option) (*StatsCollector, error) {
	collector := &StatsCollector{
		estimatorName:   constants.DefaultEstimator,
		estimatorConfig: estimator.DefaultConfig(),
	}

	ApplyOptions(collector, options...)

	if collector.registry == nil {
		collector.registry = estimator.NewRegistry()
	}

	est, err := collector.registry.New(collector.estimatorName, collector.estimatorConfig)
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to create estimator")
	}

	collector.estimator = est

	return collector, nil
}

// NewOnline creates a StatsCollector backed by the dual-heap estimator.
func NewOnline() *StatsCollector {
	return &StatsCollector{
		estimatorName:   constants.HeapEstimator,
		estimatorConfig: estimator.DefaultConfig(),
		registry:        estimator.NewRegistry(),
		estimator:       estimator.NewOnline(),
	}
}

// NewHistogram creates a StatsCollector backed by a frequency histogram over [minVal, maxVal].
func NewHistogram(minVal, maxVal int64) (*StatsCollector, error) {
	return New(WithEstimator(constants.HistogramEstimator), WithDomain(minVal, maxVal))
}

// Push records value. If the estimator rejects it, neither the mean nor the median changes.
func (c *StatsCollector) Push(value float64) error {
	err := c.estimator.Push(value)
	if err != nil {
		return err
	}

	c.sum += value
	c.count++

	return nil
}

// Median returns the median of the accepted values.
func (c *StatsCollector) Median() (float64, error) {
	return c.estimator.Median()
}

// Average returns the arithmetic mean of the accepted values.
func (c *StatsCollector) Average() (float64, error) {
	if c.count == 0 {
		return 0, sentinel.ErrEmptyCollection
	}

	return c.sum / float64(c.count), nil
}

// Count returns the number of accepted values.
func (c *StatsCollector) Count() int64 { return c.count }

// Sum returns the sum of the accepted values.
func (c *StatsCollector) Sum() float64 { return c.sum }

// EstimatorName returns the registry name of the median estimator.
func (c *StatsCollector) EstimatorName() string { return c.estimatorName }

// EstimatorConfig returns the domain and precision the estimator was built with.
func (c *StatsCollector) EstimatorConfig() estimator.Config { return c.estimatorConfig }

// Snapshot reports the current state. An empty collector yields a snapshot with Empty set.
func (c *StatsCollector) Snapshot() Snapshot {
	snap := Snapshot{
		Estimator: c.estimatorName,
		Count:     c.count,
		Sum:       c.sum,
		Empty:     c.count == 0,
	}

	if snap.Empty {
		return snap
	}

	snap.Mean = c.sum / float64(c.count)

	median, err := c.estimator.Median()
	if err == nil {
		snap.Median = median
	}

	return snap
}

// Reset drops every value and keeps the configured estimator.
func (c *StatsCollector) Reset() {
	c.estimator.Reset()
	c.sum = 0
	c.count = 0
}
