package estimator

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/longbridgeapp/assert"
	"github.com/montanaflynn/stats"

	"github.com/hyp3rd/hyperstats/internal/sentinel"
)

// assertBalanced checks the size balance and rank partition of the two halves.
func assertBalanced(t *testing.T, o *Online) {
	t.Helper()

	diff := o.low.Len() - o.high.Len()
	if diff < -1 || diff > 1 {
		t.Fatalf("halves unbalanced: low=%d high=%d", o.low.Len(), o.high.Len())
	}

	lowMax, lowErr := o.low.PeekRoot()
	highMin, highErr := o.high.PeekRoot()

	if lowErr == nil && highErr == nil && lowMax > highMin {
		t.Fatalf("rank partition violated: max(low)=%v > min(high)=%v", lowMax, highMin)
	}
}

func pushAll(t *testing.T, est IEstimator, values []float64) {
	t.Helper()

	for _, v := range values {
		err := est.Push(v)
		assert.Nil(t, err)
	}
}

func TestOnline_Median(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "even count", values: []float64{1, 2, 3, 4, 5, 6}, want: 3.5},
		{name: "odd count with duplicates", values: []float64{5, 3, 3, 3, 3}, want: 3},
		{name: "single value", values: []float64{42}, want: 42},
		{name: "two values", values: []float64{10, 2}, want: 6},
		{name: "all equal", values: []float64{11, 11, 11, 11}, want: 11},
		{name: "negative and fractional", values: []float64{-2.5, 0.5, -10, 7.25}, want: -1},
		{name: "descending", values: []float64{9, 8, 7, 6, 5, 4, 3}, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOnline()
			pushAll(t, o, tt.values)

			got, err := o.Median()
			assert.Nil(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.values), o.Len())
		})
	}
}

func TestOnline_EmptyMedian(t *testing.T) {
	o := NewOnline()

	_, err := o.Median()
	if !errors.Is(err, sentinel.ErrEmptyCollection) {
		t.Fatalf("expected ErrEmptyCollection, got %v", err)
	}
}

func TestOnline_RejectsUnorderedValues(t *testing.T) {
	o := NewOnline()
	pushAll(t, o, []float64{1, 2, 3})

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := o.Push(v)
		if !errors.Is(err, sentinel.ErrInvalidValue) {
			t.Fatalf("expected ErrInvalidValue for %v, got %v", v, err)
		}
	}

	assert.Equal(t, 3, o.Len())

	median, err := o.Median()
	assert.Nil(t, err)
	assert.Equal(t, 2.0, median)
}

func TestOnline_HalvesStayBalanced(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	o := NewOnline()

	for range 5000 {
		err := o.Push(float64(rng.IntN(200)) - 100)
		assert.Nil(t, err)
		assertBalanced(t, o)
	}
}

func TestOnline_MatchesTextbookMedian(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))

	datasets := map[string]func(i int) float64{
		"ascending":  func(i int) float64 { return float64(i + 1) },
		"descending": func(i int) float64 { return float64(101 - i) },
		"halves":     func(i int) float64 { return float64(i) / 2 },
		"unit":       func(int) float64 { return rng.Float64() },
		"scaled":     func(int) float64 { return rng.Float64() * 1000 },
		"constant":   func(int) float64 { return 11 },
	}

	for name, gen := range datasets {
		for _, size := range []int{1, 2, 100, 101} {
			data := make([]float64, size)
			for i := range data {
				data[i] = gen(i)
			}

			want, err := stats.Median(data)
			assert.Nil(t, err)

			o := NewOnline()
			pushAll(t, o, data)

			got, err := o.Median()
			assert.Nil(t, err)

			if got != want {
				t.Fatalf("%s/%d: median %v, textbook %v", name, size, got, want)
			}
		}
	}
}

func TestOnline_OrderIndependence(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))

	data := make([]float64, 257)
	for i := range data {
		data[i] = float64(rng.IntN(40))
	}

	reference := NewOnline()
	pushAll(t, reference, data)

	want, err := reference.Median()
	assert.Nil(t, err)

	for range 20 {
		rng.Shuffle(len(data), func(i, j int) { data[i], data[j] = data[j], data[i] })

		o := NewOnline()
		pushAll(t, o, data)

		got, err := o.Median()
		assert.Nil(t, err)
		assert.Equal(t, want, got)
	}
}

func TestOnline_Reset(t *testing.T) {
	o := NewOnline()
	pushAll(t, o, []float64{1, 2, 3})

	o.Reset()
	assert.Equal(t, 0, o.Len())

	_, err := o.Median()
	if !errors.Is(err, sentinel.ErrEmptyCollection) {
		t.Fatalf("expected ErrEmptyCollection after reset, got %v", err)
	}
}
