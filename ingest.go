package hyperstats

import (
	"context"
	"sync"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/hyperstats/internal/sentinel"
)

// Sample is one named observation, for example the latency of one request to one route.
type Sample struct {
	Name  string
	Value float64
}

// Ingester drains samples into a Group from a fixed number of workers, so that
// request handlers can hand off a latency without waiting on the collector lock.
type Ingester struct {
	group     *Group
	workers   int
	samples   chan Sample
	errorChan chan error
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// NewIngester starts workers goroutines reading from a queue of buffer samples.
// Non-positive values are raised to 1 worker and an unbuffered queue.
func NewIngester(group *Group, workers, buffer int) *Ingester {
	workers = max(workers, 1)
	buffer = max(buffer, 0)

	ingester := &Ingester{
		group:     group,
		workers:   workers,
		samples:   make(chan Sample, buffer),
		errorChan: make(chan error, workers),
	}
	ingester.start()

	return ingester
}

// Record queues sample. It blocks while the queue is full until ctx is done.
func (in *Ingester) Record(ctx context.Context, sample Sample) error {
	in.mu.RLock()
	defer in.mu.RUnlock()

	if in.closed {
		return sentinel.ErrIngesterClosed
	}

	select {
	case in.samples <- sample:
		return nil
	case <-ctx.Done():
		return ewrap.Wrap(sentinel.ErrTimeoutOrCanceled, ctx.Err().Error())
	}
}

// Errors returns a channel receiving push failures. Failures are dropped while nobody reads it.
// The channel is closed by Close.
func (in *Ingester) Errors() <-chan error {
	return in.errorChan
}

// Workers returns the number of worker goroutines.
func (in *Ingester) Workers() int { return in.workers }

// Close stops accepting samples, waits for the queued ones to be pushed and closes Errors.
func (in *Ingester) Close() {
	in.closeOnce.Do(func() {
		in.mu.Lock()
		in.closed = true
		close(in.samples)
		in.mu.Unlock()

		in.wg.Wait()
		close(in.errorChan)
	})
}

// start starts the workers.
func (in *Ingester) start() {
	in.wg.Add(in.workers)

	for range in.workers {
		go in.worker()
	}
}

// worker pushes samples until the queue is closed and drained.
func (in *Ingester) worker() {
	defer in.wg.Done()

	ctx := context.Background()

	for sample := range in.samples {
		err := in.group.Push(ctx, sample.Name, sample.Value)
		if err == nil {
			continue
		}

		select {
		case in.errorChan <- err:
		default:
		}
	}
}
