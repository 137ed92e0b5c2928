// Package sentinel provides standardized error definitions for the hyperstats system.
// This package centralizes all error types used across the estimators, collectors
// and their outer surfaces, ensuring consistent error handling and messaging.
//
// The errors defined here cover:
// - Invalid configuration parameters (histogram domains, precision, estimator names)
// - Rejected observations (out of domain, NaN or infinite values)
// - Queries against collections that hold no data
// - Runtime operation errors (timeouts, cancellations, closed ingesters)
//
// All errors are created using the ewrap package; wrap them with ewrap.Wrap to add
// context and match them with errors.Is.
package sentinel

import (
	"github.com/hyp3rd/ewrap"
)

var (
	// ErrInvalidConfiguration is returned when an estimator is constructed with an invalid domain or precision,
	// for example a histogram whose minimum value is greater than its maximum value.
	ErrInvalidConfiguration = ewrap.New("invalid configuration")

	// ErrOutOfDomain is returned when a pushed value falls outside the configured domain of a bounded estimator.
	ErrOutOfDomain = ewrap.New("value out of domain")

	// ErrInvalidValue is returned when a pushed value cannot be ordered (NaN or infinite).
	ErrInvalidValue = ewrap.New("invalid value")

	// ErrEmptyCollection is returned when the median or the average is requested before any value was pushed.
	ErrEmptyCollection = ewrap.New("empty collection")

	// ErrEmptyHeap is returned when the root of an empty heap is peeked or extracted.
	ErrEmptyHeap = ewrap.New("heap is empty")

	// ErrEstimatorNotFound is returned when an estimator is not found in the registry.
	ErrEstimatorNotFound = ewrap.New("estimator not found")

	// ErrCollectorNotFound is returned when a named collector does not exist in a group.
	ErrCollectorNotFound = ewrap.New("collector not found")

	// ErrParamCannotBeEmpty is returned when a parameter cannot be empty.
	ErrParamCannotBeEmpty = ewrap.New("param cannot be empty")

	// ErrSerializerNotFound is returned when a serializer is not found.
	ErrSerializerNotFound = ewrap.New("serializer not found")

	// ErrIngesterClosed is returned when a sample is recorded on a closed ingester.
	ErrIngesterClosed = ewrap.New("ingester is closed")

	// ErrTimeoutOrCanceled is returned when a timeout or cancellation occurs.
	ErrTimeoutOrCanceled = ewrap.New("the operation timed out or was canceled")

	// ErrMgmtHTTPShutdownTimeout is returned when the management HTTP server fails to shutdown before context deadline.
	ErrMgmtHTTPShutdownTimeout = ewrap.New("management http shutdown timeout")
)
