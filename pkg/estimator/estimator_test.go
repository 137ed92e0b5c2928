package estimator

import (
	"errors"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/hyperstats/internal/constants"
	"github.com/hyp3rd/hyperstats/internal/sentinel"
)

func TestRegistry_Defaults(t *testing.T) {
	registry := NewRegistry()

	names := registry.Names()
	assert.Equal(t, 3, len(names))

	cfg := DefaultConfig()

	heapEst, err := registry.New(constants.HeapEstimator, cfg)
	assert.Nil(t, err)

	_, ok := heapEst.(*Online)
	assert.True(t, ok)

	histEst, err := registry.New(constants.HistogramEstimator, cfg)
	assert.Nil(t, err)

	hist, ok := histEst.(*Histogram)
	assert.True(t, ok)

	minVal, maxVal := hist.Domain()
	assert.Equal(t, constants.DefaultMinValue, minVal)
	assert.Equal(t, constants.DefaultMaxValue, maxVal)

	hdrEst, err := registry.New(constants.HDREstimator, cfg)
	assert.Nil(t, err)

	_, ok = hdrEst.(*HDR)
	assert.True(t, ok)
}

func TestRegistry_Errors(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.New("", DefaultConfig())
	if !errors.Is(err, sentinel.ErrParamCannotBeEmpty) {
		t.Fatalf("expected ErrParamCannotBeEmpty, got %v", err)
	}

	_, err = registry.New("p99", DefaultConfig())
	if !errors.Is(err, sentinel.ErrEstimatorNotFound) {
		t.Fatalf("expected ErrEstimatorNotFound, got %v", err)
	}

	_, err = registry.New(constants.HistogramEstimator, Config{MinValue: 10, MaxValue: 1})
	if !errors.Is(err, sentinel.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestRegistry_Custom(t *testing.T) {
	registry := NewEmptyRegistry()
	assert.Equal(t, 0, len(registry.Names()))

	_, err := New(constants.HeapEstimator, Config{})
	assert.Nil(t, err)

	_, err = registry.New(constants.HeapEstimator, Config{})
	if !errors.Is(err, sentinel.ErrEstimatorNotFound) {
		t.Fatalf("expected ErrEstimatorNotFound from empty registry, got %v", err)
	}

	registry.Register("percent", func(Config) (IEstimator, error) {
		return NewHistogram(0, 100)
	})

	est, err := registry.New("percent", Config{})
	assert.Nil(t, err)

	err = est.Push(101)
	if !errors.Is(err, sentinel.ErrOutOfDomain) {
		t.Fatalf("expected ErrOutOfDomain, got %v", err)
	}
}
