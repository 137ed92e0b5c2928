// Package constants defines default configuration values and estimator names
// for the hyperstats system.
package constants

const (
	// HeapEstimator is the name of the exact dual-heap median estimator.
	HeapEstimator = "heap"
	// HistogramEstimator is the name of the exact fixed-domain frequency histogram estimator.
	HistogramEstimator = "histogram"
	// HDREstimator is the name of the approximate high dynamic range histogram estimator.
	HDREstimator = "hdr"
	// DefaultEstimator is the estimator used when none is configured.
	DefaultEstimator = HeapEstimator

	// DefaultMinValue is the lower bound of the default bounded domain, in milliseconds.
	DefaultMinValue int64 = 1
	// DefaultMaxValue is the upper bound of the default bounded domain.
	// It matches a 19 second response timeout expressed in milliseconds.
	DefaultMaxValue int64 = 19000
	// DefaultSignificantFigures is the precision used by the HDR estimator.
	DefaultSignificantFigures = 3

	// DefaultSerializer is the serializer used for snapshots when no format is requested.
	DefaultSerializer = "json"
	// MsgpackSerializer is the name of the MessagePack snapshot serializer.
	MsgpackSerializer = "msgpack"
	// CBORSerializer is the name of the CBOR snapshot serializer.
	CBORSerializer = "cbor"
)
