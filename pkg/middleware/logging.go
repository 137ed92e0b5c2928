// Package middleware provides Service decorators for hyperstats collectors.
// This package includes logging middleware that traces each call with its
// execution time and outcome for debugging and monitoring purposes.
package middleware

import (
	"context"
	"time"

	"github.com/hyp3rd/hyperstats"
)

// Logger describes a logging interface allowing to implement different external, or custom logger.
// The standard library *log.Logger satisfies it, and so do logrus and Zap's sugared logger.
type Logger interface {
	Printf(format string, v ...any)
}

// LoggingMiddleware is a middleware that logs the time it takes to execute the next middleware.
// Must implement the hyperstats.Service interface.
type LoggingMiddleware struct {
	next   hyperstats.Service
	logger Logger
}

// NewLoggingMiddleware returns a new LoggingMiddleware.
func NewLoggingMiddleware(next hyperstats.Service, logger Logger) hyperstats.Service {
	return &LoggingMiddleware{next: next, logger: logger}
}

// Push logs the pushed value and any rejection.
func (mw LoggingMiddleware) Push(ctx context.Context, value float64) error {
	defer func(begin time.Time) {
		mw.logger.Printf("method Push took: %s", time.Since(begin))
	}(time.Now())

	err := mw.next.Push(ctx, value)
	if err != nil {
		mw.logger.Printf("Push rejected value %v: %v", value, err)
	}

	return err
}

// Median logs the time it takes to compute the median.
func (mw LoggingMiddleware) Median(ctx context.Context) (float64, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method Median took: %s", time.Since(begin))
	}(time.Now())

	median, err := mw.next.Median(ctx)
	if err != nil {
		mw.logger.Printf("Median failed: %v", err)
	}

	return median, err
}

// Average logs the time it takes to compute the mean.
func (mw LoggingMiddleware) Average(ctx context.Context) (float64, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method Average took: %s", time.Since(begin))
	}(time.Now())

	avg, err := mw.next.Average(ctx)
	if err != nil {
		mw.logger.Printf("Average failed: %v", err)
	}

	return avg, err
}

// Count returns the number of recorded values.
func (mw LoggingMiddleware) Count(ctx context.Context) int64 {
	return mw.next.Count(ctx)
}

// Snapshot logs the report it returns.
func (mw LoggingMiddleware) Snapshot(ctx context.Context) hyperstats.Snapshot {
	snap := mw.next.Snapshot(ctx)
	mw.logger.Printf("Snapshot: estimator=%s count=%d mean=%v median=%v", snap.Estimator, snap.Count, snap.Mean, snap.Median)

	return snap
}

// Reset logs the closing report of the collector.
func (mw LoggingMiddleware) Reset(ctx context.Context) hyperstats.Snapshot {
	snap := mw.next.Reset(ctx)
	mw.logger.Printf("Reset: dropped %d values, final mean=%v median=%v", snap.Count, snap.Mean, snap.Median)

	return snap
}
