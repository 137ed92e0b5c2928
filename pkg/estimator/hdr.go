package estimator

import (
	"math"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/hyperstats/internal/sentinel"
)

const (
	minSignificantFigures = 1
	maxSignificantFigures = 5
	medianQuantile        = 50.0
)

// HDR is an approximate median estimator backed by an HdrHistogram.
// It trades exactness for a footprint that grows with the logarithm of the
// domain instead of its width, which suits domains too wide for Histogram.
// The reported median is within the relative error given by the configured
// significant figures.
type HDR struct {
	minVal int64
	maxVal int64
	impl   *hdrhistogram.Histogram
}

// NewHDR creates an HDR estimator tracking integers in [minVal, maxVal].
func NewHDR(minVal, maxVal int64, sigfigs int) (*HDR, error) {
	if minVal < 0 || minVal > maxVal {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidConfiguration, "hdr domain [%d, %d]", minVal, maxVal)
	}

	if minVal > math.MaxInt64/2 {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidConfiguration, "hdr min %d leaves no room for a 2x range", minVal)
	}

	if sigfigs < minSignificantFigures || sigfigs > maxSignificantFigures {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidConfiguration, "hdr significant figures %d", sigfigs)
	}

	// HdrHistogram needs a lowest discernible value of at least 1 and a range of at least 2x.
	lowest := max(minVal, 1)
	highest := max(maxVal, 2*lowest)

	return &HDR{
		minVal: minVal,
		maxVal: maxVal,
		impl:   hdrhistogram.New(lowest, highest, sigfigs),
	}, nil
}

// Push records value rounded to the nearest integer.
func (h *HDR) Push(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return sentinel.ErrInvalidValue
	}

	if value < float64(h.minVal) || value > float64(h.maxVal) {
		return ewrap.Wrapf(sentinel.ErrOutOfDomain, "%v outside [%d, %d]", value, h.minVal, h.maxVal)
	}

	iv, ok := domainInt(math.Round(value), h.minVal, h.maxVal)
	if !ok {
		return ewrap.Wrapf(sentinel.ErrOutOfDomain, "%v outside [%d, %d]", value, h.minVal, h.maxVal)
	}

	err := h.impl.RecordValue(iv)
	if err != nil {
		return ewrap.Wrap(sentinel.ErrOutOfDomain, err.Error())
	}

	return nil
}

// Median returns the value at the 50th percentile.
func (h *HDR) Median() (float64, error) {
	if h.impl.TotalCount() == 0 {
		return 0, sentinel.ErrEmptyCollection
	}

	return float64(h.impl.ValueAtQuantile(medianQuantile)), nil
}

// Len returns the number of recorded observations.
func (h *HDR) Len() int { return int(h.impl.TotalCount()) }

// Reset clears every recorded observation.
func (h *HDR) Reset() { h.impl.Reset() }
