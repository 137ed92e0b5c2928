package middleware

import (
	"context"
	"time"

	"github.com/hyp3rd/hyperstats"
)

// Names under which StatsCollectorMiddleware records call durations, in nanoseconds.
const (
	PushDurationStat     = "hyperstats_push_duration"
	MedianDurationStat   = "hyperstats_median_duration"
	AverageDurationStat  = "hyperstats_average_duration"
	SnapshotDurationStat = "hyperstats_snapshot_duration"
	ResetDurationStat    = "hyperstats_reset_duration"
)

// StatsCollectorMiddleware measures the calls of the next service and records
// their durations in a group of its own. It must not share the group with the
// service it measures. Durations the group rejects, for example because its
// bounded domain is narrower than a nanosecond timing, are reported to logger.
type StatsCollectorMiddleware struct {
	next   hyperstats.Service
	group  *hyperstats.Group
	logger Logger
}

// NewStatsCollectorMiddleware returns a new StatsCollectorMiddleware.
func NewStatsCollectorMiddleware(next hyperstats.Service, group *hyperstats.Group, logger Logger) hyperstats.Service {
	return &StatsCollectorMiddleware{next: next, group: group, logger: logger}
}

func (mw StatsCollectorMiddleware) timing(ctx context.Context, stat string, start time.Time) {
	elapsed := time.Since(start).Nanoseconds()

	err := mw.group.Push(ctx, stat, float64(elapsed))
	if err != nil {
		mw.logger.Printf("stats: dropped %s sample of %dns: %v", stat, elapsed, err)
	}
}

// Push collects stats for the Push method.
func (mw StatsCollectorMiddleware) Push(ctx context.Context, value float64) error {
	defer mw.timing(ctx, PushDurationStat, time.Now())

	return mw.next.Push(ctx, value)
}

// Median collects stats for the Median method.
func (mw StatsCollectorMiddleware) Median(ctx context.Context) (float64, error) {
	defer mw.timing(ctx, MedianDurationStat, time.Now())

	return mw.next.Median(ctx)
}

// Average collects stats for the Average method.
func (mw StatsCollectorMiddleware) Average(ctx context.Context) (float64, error) {
	defer mw.timing(ctx, AverageDurationStat, time.Now())

	return mw.next.Average(ctx)
}

// Count returns the number of recorded values.
func (mw StatsCollectorMiddleware) Count(ctx context.Context) int64 {
	return mw.next.Count(ctx)
}

// Snapshot collects stats for the Snapshot method.
func (mw StatsCollectorMiddleware) Snapshot(ctx context.Context) hyperstats.Snapshot {
	defer mw.timing(ctx, SnapshotDurationStat, time.Now())

	return mw.next.Snapshot(ctx)
}

// Reset collects stats for the Reset method.
func (mw StatsCollectorMiddleware) Reset(ctx context.Context) hyperstats.Snapshot {
	defer mw.timing(ctx, ResetDurationStat, time.Now())

	return mw.next.Reset(ctx)
}
