// Package heap implements an array-backed binary heap whose ordering is supplied
// as a value instead of being baked into the type.
//
// The heap is an implicit complete binary tree: the children of index i live at
// 2i+1 and 2i+2 and its parent at (i-1)/2. The same sift code serves min-first and
// max-first heaps; see MinFirst and MaxFirst.
//
// Example usage:
//
//	low := heap.New(heap.MaxFirst[float64]())
//	low.Insert(3)
//	low.Insert(7)
//	root, _ := low.PeekRoot() // 7
package heap

import (
	"cmp"

	"github.com/hyp3rd/hyperstats/internal/sentinel"
)

// Order reports whether a belongs strictly above b in the heap.
// It must be a strict ordering: Order(x, x) is false for every x.
type Order[T any] func(a, b T) bool

// MinFirst returns the ordering of a min-heap: the smallest value is the root.
func MinFirst[T cmp.Ordered]() Order[T] {
	return func(a, b T) bool { return a < b }
}

// MaxFirst returns the ordering of a max-heap: the largest value is the root.
func MaxFirst[T cmp.Ordered]() Order[T] {
	return func(a, b T) bool { return a > b }
}

// Heap is a binary heap ordered by its Order. It is not safe for concurrent use.
type Heap[T any] struct {
	data  []T
	above Order[T]
}

// New creates an empty heap using the given ordering.
func New[T any](order Order[T]) *Heap[T] {
	return &Heap[T]{above: order}
}

// Len returns the number of elements in the heap.
func (h *Heap[T]) Len() int { return len(h.data) }

// Insert adds value to the heap. O(log n).
func (h *Heap[T]) Insert(value T) {
	h.data = append(h.data, value)
	h.up(len(h.data) - 1)
}

// PeekRoot returns the root without removing it.
func (h *Heap[T]) PeekRoot() (T, error) {
	if len(h.data) == 0 {
		var zero T

		return zero, sentinel.ErrEmptyHeap
	}

	return h.data[0], nil
}

// ExtractRoot removes and returns the root. O(log n).
func (h *Heap[T]) ExtractRoot() (T, error) {
	if len(h.data) == 0 {
		var zero T

		return zero, sentinel.ErrEmptyHeap
	}

	root := h.data[0]
	last := len(h.data) - 1

	if last > 0 {
		h.data[0] = h.data[last]
	}

	var zero T

	h.data[last] = zero
	h.data = h.data[:last]

	if last > 1 {
		h.down(0)
	}

	return root, nil
}

// Reset drops every element and keeps the allocated capacity.
func (h *Heap[T]) Reset() {
	clear(h.data)
	h.data = h.data[:0]
}

func parent(i int) int { return (i - 1) / 2 }
func left(i int) int   { return 2*i + 1 }
func right(i int) int  { return 2*i + 2 }

func (h *Heap[T]) swap(i, j int) {
	h.data[i], h.data[j] = h.data[j], h.data[i]
}

func (h *Heap[T]) up(i int) {
	for i > 0 {
		p := parent(i)
		if !h.above(h.data[i], h.data[p]) {
			return
		}

		h.swap(i, p)
		i = p
	}
}

func (h *Heap[T]) down(i int) {
	n := len(h.data)

	for {
		child := left(i)
		if child >= n {
			return
		}

		// left wins ties; right only when it strictly dominates
		if r := right(i); r < n && h.above(h.data[r], h.data[child]) {
			child = r
		}

		if !h.above(h.data[child], h.data[i]) {
			return
		}

		h.swap(i, child)
		i = child
	}
}
