package hyperstats

import (
	"context"
	"sync"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/hyperstats/internal/constants"
)

func TestSyncCollector_ConcurrentPush(t *testing.T) {
	const (
		workers   = 8
		perWorker = 500
	)

	ctx := context.Background()

	collector, err := NewSyncCollector(WithEstimator(constants.HistogramEstimator), WithDomain(1, perWorker))
	assert.NoError(t, err)

	var wg sync.WaitGroup

	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()

			for i := 1; i <= perWorker; i++ {
				if err := collector.Push(ctx, float64(i)); err != nil {
					t.Errorf("push %d: %v", i, err)

					return
				}

				// readers interleave with writers
				if i%50 == 0 {
					_, _ = collector.Median(ctx)
				}
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int64(workers*perWorker), collector.Count(ctx))

	median, err := collector.Median(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 250.5, median)

	avg, err := collector.Average(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 250.5, avg)
}

func TestSyncCollector_ResetReturnsLastSnapshot(t *testing.T) {
	ctx := context.Background()
	collector := Synchronized(NewOnline())

	for _, v := range []float64{4, 8, 6} {
		assert.NoError(t, collector.Push(ctx, v))
	}

	last := collector.Reset(ctx)
	assert.Equal(t, int64(3), last.Count)
	assert.Equal(t, 6.0, last.Median)
	assert.Equal(t, 6.0, last.Mean)
	assert.True(t, !last.Empty)

	assert.True(t, collector.Snapshot(ctx).Empty)
	assert.Equal(t, constants.HeapEstimator, collector.EstimatorName())
}

func TestSyncCollector_IsService(t *testing.T) {
	var svc Service = Synchronized(NewOnline())

	assert.NoError(t, svc.Push(context.Background(), 1))
	assert.Equal(t, int64(1), svc.Count(context.Background()))
}
