package estimator

import (
	"math"

	"github.com/hyp3rd/hyperstats/internal/sentinel"
	"github.com/hyp3rd/hyperstats/pkg/heap"
)

// Online is an exact running median estimator.
//
// Every observation is kept in one of two heaps: low, a max-heap holding the
// smaller half, and high, a min-heap holding the larger half. After each Push
// the heap sizes differ by at most one and every value in low is <= every value
// in high, so the roots are the one or two middle-ranked observations.
//
// Memory grows with every Push; nothing is ever evicted.
type Online struct {
	low  *heap.Heap[float64]
	high *heap.Heap[float64]
}

// NewOnline creates an empty dual-heap estimator.
func NewOnline() *Online {
	return &Online{
		low:  heap.New(heap.MaxFirst[float64]()),
		high: heap.New(heap.MinFirst[float64]()),
	}
}

// Push routes value to the half it belongs to and rebalances. O(log n).
func (o *Online) Push(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return sentinel.ErrInvalidValue
	}

	lowRoot, err := o.low.PeekRoot()
	if err != nil || value < lowRoot {
		o.low.Insert(value)
	} else {
		o.high.Insert(value)
	}

	return o.rebalance()
}

func (o *Online) rebalance() error {
	bigger, smaller := o.low, o.high
	if o.high.Len() > o.low.Len() {
		bigger, smaller = o.high, o.low
	}

	if bigger.Len()-smaller.Len() <= 1 {
		return nil
	}

	// the root of the larger half is the boundary value that must cross
	moved, err := bigger.ExtractRoot()
	if err != nil {
		return err
	}

	smaller.Insert(moved)

	return nil
}

// Median returns the middle value, or the mean of the two middle values. O(1).
func (o *Online) Median() (float64, error) {
	lowLen, highLen := o.low.Len(), o.high.Len()

	switch {
	case lowLen == 0 && highLen == 0:
		return 0, sentinel.ErrEmptyCollection
	case lowLen > highLen:
		return o.low.PeekRoot()
	case highLen > lowLen:
		return o.high.PeekRoot()
	}

	lowRoot, err := o.low.PeekRoot()
	if err != nil {
		return 0, err
	}

	highRoot, err := o.high.PeekRoot()
	if err != nil {
		return 0, err
	}

	return (lowRoot + highRoot) / 2, nil
}

// Len returns the number of observations held by both halves.
func (o *Online) Len() int { return o.low.Len() + o.high.Len() }

// Reset empties both halves.
func (o *Online) Reset() {
	o.low.Reset()
	o.high.Reset()
}
