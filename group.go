package hyperstats

import (
	"context"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/hyperstats/internal/sentinel"
	"github.com/hyp3rd/hyperstats/pkg/estimator"
)

const (
	// ShardCount is the number of shards a Group spreads its collectors over.
	ShardCount = 32
	// ShardCount64 is the number of shards pre-casted to uint64 for masking hash values.
	ShardCount64 uint64 = uint64(ShardCount)
)

// Group holds one SyncCollector per metric name, for example one per route.
// Names are spread over ShardCount shards so that lookups of different metrics
// do not contend on one lock. Observations of one name always land in the same
// collector, so every metric stays exact.
type Group struct {
	shards        []*groupShard
	options       []Option
	estimatorName string
	config        estimator.Config
}

type groupShard struct {
	sync.RWMutex

	collectors map[string]*SyncCollector
}

// NewGroup creates a group whose collectors are all built with options.
// The options are validated once here, so later lazy creation cannot fail on configuration.
func NewGroup(options ...Option) (*Group, error) {
	prototype, err := New(options...)
	if err != nil {
		return nil, err
	}

	shards := make([]*groupShard, ShardCount)
	for i := range shards {
		shards[i] = &groupShard{collectors: make(map[string]*SyncCollector)}
	}

	return &Group{
		shards:        shards,
		options:       slices.Clone(options),
		estimatorName: prototype.EstimatorName(),
		config:        prototype.EstimatorConfig(),
	}, nil
}

// getShard returns the shard owning name.
func (g *Group) getShard(name string) *groupShard {
	return g.shards[xxhash.Sum64String(name)&(ShardCount64-1)]
}

// Collector returns the collector registered under name, creating it on first use.
func (g *Group) Collector(name string) (*SyncCollector, error) {
	if name == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "collector name")
	}

	shard := g.getShard(name)

	shard.RLock()
	collector, ok := shard.collectors[name]
	shard.RUnlock()

	if ok {
		return collector, nil
	}

	shard.Lock()
	defer shard.Unlock()

	// another writer may have won the race
	if collector, ok = shard.collectors[name]; ok {
		return collector, nil
	}

	collector, err := NewSyncCollector(g.options...)
	if err != nil {
		return nil, ewrap.Wrap(err, name)
	}

	shard.collectors[name] = collector

	return collector, nil
}

// Lookup returns the collector registered under name without creating it.
func (g *Group) Lookup(name string) (*SyncCollector, bool) {
	shard := g.getShard(name)

	shard.RLock()
	defer shard.RUnlock()

	collector, ok := shard.collectors[name]

	return collector, ok
}

func (g *Group) lookupOrErr(name string) (*SyncCollector, error) {
	collector, ok := g.Lookup(name)
	if !ok {
		return nil, ewrap.Wrap(sentinel.ErrCollectorNotFound, name)
	}

	return collector, nil
}

// Push records value in the collector named name, creating it when needed.
func (g *Group) Push(ctx context.Context, name string, value float64) error {
	collector, err := g.Collector(name)
	if err != nil {
		return err
	}

	err = collector.Push(ctx, value)
	if err != nil {
		return ewrap.Wrap(err, name)
	}

	return nil
}

// Median returns the median of the collector named name.
func (g *Group) Median(ctx context.Context, name string) (float64, error) {
	collector, err := g.lookupOrErr(name)
	if err != nil {
		return 0, err
	}

	return collector.Median(ctx)
}

// Average returns the mean of the collector named name.
func (g *Group) Average(ctx context.Context, name string) (float64, error) {
	collector, err := g.lookupOrErr(name)
	if err != nil {
		return 0, err
	}

	return collector.Average(ctx)
}

// Snapshot returns the report of the collector named name.
func (g *Group) Snapshot(ctx context.Context, name string) (Snapshot, error) {
	collector, err := g.lookupOrErr(name)
	if err != nil {
		return Snapshot{}, err
	}

	return collector.Snapshot(ctx), nil
}

// Snapshots returns the report of every collector keyed by name.
func (g *Group) Snapshots(ctx context.Context) map[string]Snapshot {
	snaps := make(map[string]Snapshot)

	g.each(func(name string, collector *SyncCollector) {
		snaps[name] = collector.Snapshot(ctx)
	})

	return snaps
}

// Reset clears the collector named name and returns its last report.
func (g *Group) Reset(ctx context.Context, name string) (Snapshot, error) {
	collector, err := g.lookupOrErr(name)
	if err != nil {
		return Snapshot{}, err
	}

	return collector.Reset(ctx), nil
}

// Remove drops the collector named name. It reports whether it existed.
func (g *Group) Remove(name string) bool {
	shard := g.getShard(name)

	shard.Lock()
	defer shard.Unlock()

	_, ok := shard.collectors[name]
	delete(shard.collectors, name)

	return ok
}

// Names returns the sorted names of every collector.
func (g *Group) Names() []string {
	names := []string{}

	g.each(func(name string, _ *SyncCollector) {
		names = append(names, name)
	})

	slices.Sort(names)

	return names
}

// Len returns the number of collectors.
func (g *Group) Len() int {
	total := 0

	for _, shard := range g.shards {
		shard.RLock()
		total += len(shard.collectors)
		shard.RUnlock()
	}

	return total
}

// EstimatorName returns the estimator every collector of the group uses.
func (g *Group) EstimatorName() string { return g.estimatorName }

// EstimatorConfig returns the domain and precision every collector of the group uses.
func (g *Group) EstimatorConfig() estimator.Config { return g.config }

// each calls fn for every collector. The shard lock is released before fn runs.
func (g *Group) each(fn func(name string, collector *SyncCollector)) {
	type entry struct {
		name      string
		collector *SyncCollector
	}

	for _, shard := range g.shards {
		shard.RLock()

		entries := make([]entry, 0, len(shard.collectors))
		for name, collector := range shard.collectors {
			entries = append(entries, entry{name: name, collector: collector})
		}

		shard.RUnlock()

		for _, e := range entries {
			fn(e.name, e.collector)
		}
	}
}
