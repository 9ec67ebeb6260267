package cache

import (
	"github.com/kclaka/colander/internal/util"
	"github.com/kclaka/colander/policy"
)

// EngineFactory constructs a fresh policy engine with the given per-shard
// capacity. One is called once per shard by New.
type EngineFactory func(capacity int) policy.CachePolicy

// ShardedCache is a 64-way sharded front over a policy.CachePolicy engine
// (spec §4.6). It hides per-shard locking, routes keys to shards by hash,
// and aggregates per-shard statistics.
type ShardedCache struct {
	shards   [util.NumShards]*shard
	capacity int
}

// New constructs a ShardedCache with the given total capacity, partitioned
// across util.NumShards shards. newEngine is invoked once per shard with
// that shard's capacity.
//
// Capacity is split by floor division with the remainder absorbed by shard
// 0 (spec §4.6). When capacity is smaller than the shard count the floor is
// zero for most shards; since every engine panics on a zero capacity (spec
// §7), shards that would receive zero are bumped to 1 instead. This makes
// the effective total capacity a predictable upper bound — C when C ≥ 64,
// C + 63 otherwise (shard 0 gets C, every other shard 1) — rather than a
// hard ceiling, which matches
// the spec's own framing of per-shard capacity as "a predictable upper
// bound on total memory", not an exact partition.
func New(capacity int, newEngine EngineFactory) *ShardedCache {
	if capacity <= 0 {
		panic("cache: capacity must be > 0")
	}

	base := capacity / util.NumShards
	remainder := capacity % util.NumShards

	c := &ShardedCache{capacity: capacity}
	for i := 0; i < util.NumShards; i++ {
		shardCap := base
		if i == 0 {
			shardCap += remainder
		}
		if shardCap <= 0 {
			shardCap = 1
		}
		c.shards[i] = newShard(newEngine(shardCap))
	}
	return c
}

func (c *ShardedCache) shardFor(key string) *shard {
	return c.shards[util.ShardIndex(util.HashKey(key))]
}

// Get looks up key, returning its cloned value and whether it was present
// and live.
func (c *ShardedCache) Get(key string) (policy.CachedResponse, bool) {
	return c.shardFor(key).get(key)
}

// Put inserts or replaces key. The returned bool reports whether an
// existing entry was evicted to make room (it is false for an in-place
// replace of the same key, per the policies' "replace in place" rule).
func (c *ShardedCache) Put(key string, value policy.CachedResponse) bool {
	return c.shardFor(key).put(key, value)
}

// Remove deletes key if present.
func (c *ShardedCache) Remove(key string) (policy.CachedResponse, bool) {
	return c.shardFor(key).remove(key)
}

// Len sums resident entry counts across all shards. Momentarily
// inconsistent under concurrent writers is acceptable — shard counters are
// advisory (spec §4.6).
func (c *ShardedCache) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.stats().Size
	}
	return total
}

// Capacity returns the configured total capacity passed to New.
func (c *ShardedCache) Capacity() int { return c.capacity }

// Name returns the underlying engine's name (e.g. "SIEVE"), read from
// shard 0 — every shard runs the same engine kind.
func (c *ShardedCache) Name() string {
	return c.shards[0].stats().Name
}

// Stats aggregates hits/misses/evictions/size across all 64 shards.
func (c *ShardedCache) Stats() policy.Stats {
	agg := policy.Stats{Name: c.Name(), Capacity: c.capacity}
	for _, s := range c.shards {
		st := s.stats()
		agg.Hits += st.Hits
		agg.Misses += st.Misses
		agg.Evictions += st.Evictions
		agg.Size += st.Size
	}
	return agg
}

// Clear empties every shard. Locks are acquired in ascending shard index
// order to prevent deadlock against any other multi-shard caller (spec
// §4.6/§5).
func (c *ShardedCache) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
	}
	for _, s := range c.shards {
		s.engine.Clear()
		s.mu.Unlock()
	}
}
