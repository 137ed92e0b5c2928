package heap

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/hyperstats/internal/sentinel"
)

// assertHeapOrdered fails the test if any parent/child pair violates the ordering.
func assertHeapOrdered[T any](t *testing.T, h *Heap[T]) {
	t.Helper()

	for i := 1; i < len(h.data); i++ {
		if h.above(h.data[i], h.data[parent(i)]) {
			t.Fatalf("heap order violated at index %d: %v", i, h.data)
		}
	}
}

func TestIndexArithmetic(t *testing.T) {
	assert.Equal(t, 1, left(0))
	assert.Equal(t, 2, right(0))
	assert.Equal(t, 3, left(1))
	assert.Equal(t, 6, right(2))
	assert.Equal(t, 0, parent(1))
	assert.Equal(t, 0, parent(2))
	assert.Equal(t, 1, parent(3))
	assert.Equal(t, 2, parent(5))
}

func TestSift(t *testing.T) {
	tests := []struct {
		name  string
		order Order[int]
		data  []int
		sift  func(h *Heap[int])
		want  []int
	}{
		{
			name:  "min heap moves last item up",
			order: MinFirst[int](),
			data:  []int{2, 3, 4, 5, 6, 7, 1},
			sift:  func(h *Heap[int]) { h.up(len(h.data) - 1) },
			want:  []int{1, 3, 2, 5, 6, 7, 4},
		},
		{
			name:  "min heap moves root down",
			order: MinFirst[int](),
			data:  []int{7, 6, 5, 4, 3, 2},
			sift:  func(h *Heap[int]) { h.down(0) },
			want:  []int{5, 6, 2, 4, 3, 7},
		},
		{
			name:  "max heap moves last item up",
			order: MaxFirst[int](),
			data:  []int{2, 3, 4, 5, 6, 7},
			sift:  func(h *Heap[int]) { h.up(len(h.data) - 1) },
			want:  []int{7, 3, 2, 5, 6, 4},
		},
		{
			name:  "max heap moves root down",
			order: MaxFirst[int](),
			data:  []int{1, 6, 5, 4, 3, 2},
			sift:  func(h *Heap[int]) { h.down(0) },
			want:  []int{6, 4, 5, 1, 3, 2},
		},
		{
			name:  "equal children prefer the left one",
			order: MinFirst[int](),
			data:  []int{9, 4, 4},
			sift:  func(h *Heap[int]) { h.down(0) },
			want:  []int{4, 9, 4},
		},
		{
			name:  "equal parent is not swapped",
			order: MinFirst[int](),
			data:  []int{4, 5, 4},
			sift:  func(h *Heap[int]) { h.up(2) },
			want:  []int{4, 5, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(tt.order)
			h.data = slices.Clone(tt.data)
			tt.sift(h)
			assert.Equal(t, tt.want, h.data)
		})
	}
}

func TestInsert(t *testing.T) {
	minHeap := New(MinFirst[int]())
	minHeap.data = []int{2, 3, 4, 5, 6, 7}
	minHeap.Insert(1)
	assert.Equal(t, []int{1, 3, 2, 5, 6, 7, 4}, minHeap.data)

	maxHeap := New(MaxFirst[int]())
	maxHeap.data = []int{2, 3, 4, 5, 6, 7}
	maxHeap.Insert(8)
	assert.Equal(t, []int{8, 3, 2, 5, 6, 7, 4}, maxHeap.data)
}

func TestExtractRoot(t *testing.T) {
	minHeap := New(MinFirst[int]())
	minHeap.data = []int{8, 6, 5, 4, 3, 2, 7}

	root, err := minHeap.ExtractRoot()
	assert.Nil(t, err)
	assert.Equal(t, 8, root)
	assert.Equal(t, []int{5, 6, 2, 4, 3, 7}, minHeap.data)

	maxHeap := New(MaxFirst[int]())
	maxHeap.data = []int{8, 6, 5, 4, 3, 2, 7}

	root, err = maxHeap.ExtractRoot()
	assert.Nil(t, err)
	assert.Equal(t, 8, root)
	assert.Equal(t, []int{7, 6, 5, 4, 3, 2}, maxHeap.data)
}

func TestExtractRoot_LastElement(t *testing.T) {
	h := New(MinFirst[float64]())
	h.Insert(42)

	root, err := h.ExtractRoot()
	assert.Nil(t, err)
	assert.Equal(t, 42.0, root)
	assert.Equal(t, 0, h.Len())
}

func TestEmptyHeap(t *testing.T) {
	h := New(MaxFirst[float64]())

	_, err := h.PeekRoot()
	if !errors.Is(err, sentinel.ErrEmptyHeap) {
		t.Fatalf("expected ErrEmptyHeap from PeekRoot, got %v", err)
	}

	_, err = h.ExtractRoot()
	if !errors.Is(err, sentinel.ErrEmptyHeap) {
		t.Fatalf("expected ErrEmptyHeap from ExtractRoot, got %v", err)
	}

	assert.Equal(t, 0, h.Len())
}

func TestPeekRootDoesNotMutate(t *testing.T) {
	h := New(MinFirst[int]())
	for _, v := range []int{5, 1, 3} {
		h.Insert(v)
	}

	before := slices.Clone(h.data)

	root, err := h.PeekRoot()
	assert.Nil(t, err)
	assert.Equal(t, 1, root)
	assert.Equal(t, before, h.data)
}

func TestReset(t *testing.T) {
	h := New(MinFirst[int]())
	for i := range 10 {
		h.Insert(i)
	}

	h.Reset()
	assert.Equal(t, 0, h.Len())

	h.Insert(3)

	root, err := h.PeekRoot()
	assert.Nil(t, err)
	assert.Equal(t, 3, root)
}

func TestHeap_RandomOperationsKeepOrder(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	orders := map[string]Order[int]{
		"min": MinFirst[int](),
		"max": MaxFirst[int](),
	}

	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			h := New(order)
			mirror := []int{}

			for range 2000 {
				if h.Len() > 0 && rng.IntN(3) == 0 {
					root, err := h.ExtractRoot()
					assert.Nil(t, err)

					// the extracted root must be the extreme of everything held
					for _, v := range mirror {
						if order(v, root) {
							t.Fatalf("extracted %d but %d was held", root, v)
						}
					}

					idx := slices.Index(mirror, root)
					mirror = slices.Delete(mirror, idx, idx+1)
				} else {
					v := rng.IntN(50) // small range forces duplicates
					h.Insert(v)
					mirror = append(mirror, v)
				}

				assertHeapOrdered(t, h)
				assert.Equal(t, len(mirror), h.Len())
			}
		})
	}
}

func TestHeap_DrainsSorted(t *testing.T) {
	values := []float64{3.5, -1, 8, 8, 0, 2.25, 100, -7.5}

	h := New(MinFirst[float64]())
	for _, v := range values {
		h.Insert(v)
	}

	got := make([]float64, 0, len(values))
	for h.Len() > 0 {
		v, err := h.ExtractRoot()
		assert.Nil(t, err)

		got = append(got, v)
	}

	want := slices.Clone(values)
	slices.Sort(want)
	assert.Equal(t, want, got)
}
