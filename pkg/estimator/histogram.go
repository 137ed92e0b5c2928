package estimator

import (
	"math"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/hyperstats/internal/sentinel"
)

// MaxHistogramBins caps the number of bins a Histogram may allocate.
const MaxHistogramBins = 1 << 24

// Histogram is an exact median estimator for integer observations confined to
// [minVal, maxVal]. Push is O(1); Median is O(maxVal-minVal+1).
//
// When the count is even the median is the mean of the domain values holding
// ranks n/2 and n/2+1, found by scanning the cumulative counts for the first
// bin that reaches each rank.
type Histogram struct {
	minVal     int64
	maxVal     int64
	counts     []uint64
	cumulative []uint64
	total      uint64
}

// NewHistogram allocates one bin per integer in [minVal, maxVal].
func NewHistogram(minVal, maxVal int64) (*Histogram, error) {
	if minVal > maxVal {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidConfiguration, "histogram min %d greater than max %d", minVal, maxVal)
	}

	// computed in uint64 so that a full int64 range cannot overflow
	bins := uint64(maxVal-minVal) + 1
	if bins == 0 || bins > MaxHistogramBins {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidConfiguration, "histogram domain [%d, %d] exceeds %d bins", minVal, maxVal, MaxHistogramBins)
	}

	return &Histogram{
		minVal:     minVal,
		maxVal:     maxVal,
		counts:     make([]uint64, bins),
		cumulative: make([]uint64, bins),
	}, nil
}

// Push counts value in its bin.
func (h *Histogram) Push(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return sentinel.ErrInvalidValue
	}

	if value != math.Trunc(value) {
		return ewrap.Wrapf(sentinel.ErrOutOfDomain, "%v is not an integer", value)
	}

	iv, ok := domainInt(value, h.minVal, h.maxVal)
	if !ok {
		return ewrap.Wrapf(sentinel.ErrOutOfDomain, "%v outside [%d, %d]", value, h.minVal, h.maxVal)
	}

	h.counts[iv-h.minVal]++
	h.total++

	return nil
}

// Median rebuilds the cumulative counts and resolves the middle rank(s).
func (h *Histogram) Median() (float64, error) {
	var running uint64
	for i, c := range h.counts {
		running += c
		h.cumulative[i] = running
	}

	n := h.cumulative[len(h.cumulative)-1]
	if n == 0 {
		return 0, sentinel.ErrEmptyCollection
	}

	if n%2 != 0 {
		return float64(h.valueAtRank((n + 1) / 2)), nil
	}

	lower := h.valueAtRank(n / 2)
	upper := h.valueAtRank(n/2 + 1)

	return (float64(lower) + float64(upper)) / 2, nil
}

// valueAtRank returns the domain value of the first bin whose cumulative count reaches rank.
// rank must be in [1, total].
func (h *Histogram) valueAtRank(rank uint64) int64 {
	for i, c := range h.cumulative {
		if c >= rank {
			return h.minVal + int64(i)
		}
	}

	return h.maxVal
}

// Count returns how many times value was pushed; zero when value is outside the domain.
func (h *Histogram) Count(value int64) uint64 {
	if value < h.minVal || value > h.maxVal {
		return 0
	}

	return h.counts[value-h.minVal]
}

// Domain returns the inclusive bounds the histogram accepts.
func (h *Histogram) Domain() (minVal, maxVal int64) { return h.minVal, h.maxVal }

// Len returns the number of observations counted.
func (h *Histogram) Len() int { return int(h.total) }

// Reset zeroes every bin; the bins themselves are kept.
func (h *Histogram) Reset() {
	clear(h.counts)
	clear(h.cumulative)
	h.total = 0
}

// domainInt converts an integral value to int64 and reports whether it lies in [minVal, maxVal].
// The bounds are compared as int64: float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
func domainInt(value float64, minVal, maxVal int64) (int64, bool) {
	if value < -0x1p63 || value >= 0x1p63 {
		return 0, false
	}

	iv := int64(value)
	if iv < minVal || iv > maxVal {
		return 0, false
	}

	return iv, true
}
