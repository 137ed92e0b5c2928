package hyperstats

import (
	"context"
)

// Service is the service interface for a synchronized collector.
// It enables middleware to be added to the service.
type Service interface {
	// Push records one observation
	Push(ctx context.Context, value float64) error
	// Median returns the median of the recorded observations
	Median(ctx context.Context) (float64, error)
	// Average returns the mean of the recorded observations
	Average(ctx context.Context) (float64, error)
	// Count returns the number of recorded observations
	Count(ctx context.Context) int64
	// Snapshot returns a point-in-time report
	Snapshot(ctx context.Context) Snapshot
	// Reset drops every observation and returns the report taken just before
	Reset(ctx context.Context) Snapshot
}

// Middleware describes a service middleware.
type Middleware func(Service) Service

// ApplyMiddleware applies middlewares to a service.
func ApplyMiddleware(svc Service, mw ...Middleware) Service {
	// Apply each middleware in the chain
	for _, m := range mw {
		svc = m(svc)
	}
	// Return the decorated service
	return svc
}
