package hyperstats

import (
	"context"
	"sync"
)

// SyncCollector serializes every call on one StatsCollector behind a single mutex.
// Median takes the exclusive lock too, since the histogram estimator rebuilds its
// cumulative counts on each query.
type SyncCollector struct {
	mu        sync.Mutex
	collector *StatsCollector
}

// NewSyncCollector creates a synchronized collector configured by options.
func NewSyncCollector(options ...Option) (*SyncCollector, error) {
	collector, err := New(options...)
	if err != nil {
		return nil, err
	}

	return Synchronized(collector), nil
}

// Synchronized wraps an existing collector. The caller must not use collector directly afterwards.
func Synchronized(collector *StatsCollector) *SyncCollector {
	return &SyncCollector{collector: collector}
}

// Push records value.
func (s *SyncCollector) Push(_ context.Context, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.collector.Push(value)
}

// Median returns the median of the recorded values.
func (s *SyncCollector) Median(_ context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.collector.Median()
}

// Average returns the mean of the recorded values.
func (s *SyncCollector) Average(_ context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.collector.Average()
}

// Count returns the number of recorded values.
func (s *SyncCollector) Count(_ context.Context) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.collector.Count()
}

// Snapshot returns a point-in-time report.
func (s *SyncCollector) Snapshot(_ context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.collector.Snapshot()
}

// Reset atomically reports and clears the collector, which lets callers rotate
// a collector periodically without losing the closing figures.
func (s *SyncCollector) Reset(_ context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.collector.Snapshot()
	s.collector.Reset()

	return snap
}

// EstimatorName returns the registry name of the median estimator.
func (s *SyncCollector) EstimatorName() string {
	// immutable after construction
	return s.collector.EstimatorName()
}
