// Package cache provides ShardedCache, a 64-way sharded front over a
// pluggable policy.CachePolicy engine (SIEVE, LRU, or FIFO).
//
// # Design
//
//   - Concurrency: the cache is split into a fixed 64 shards, each protected
//     by its own RWMutex. Unlike the teacher's auto-sized, GOMAXPROCS-scaled
//     shard count, the count here is pinned so the "no shard holds more than
//     len/64 + 3σ keys" distribution property has one constant to reason
//     about.
//
//   - Storage: each shard owns one policy.CachePolicy engine, itself backed
//     by an arena.Arena — no intrusive pointer list, no map[K]*node.
//
//   - Policies: SIEVE, LRU, and FIFO are interchangeable behind
//     policy.CachePolicy; ShardedCache is constructed with an engine
//     constructor, not a concrete type.
//
//   - Hit-path locking: SIEVE and FIFO hits take a shard's read lock via
//     policy.SharedHitter; only a lazily discovered expired entry escalates
//     to a write lock. LRU always promotes on hit, so it always takes the
//     write lock directly.
//
//   - TTL: entries carry their own deadline (policy.CachedResponse.TTL);
//     expiration is lazy, checked on Get and during eviction scans.
//
//   - Metrics: ShardedCache exposes Stats() (aggregated across shards); the
//     promexport package adapts that into a pull-based prometheus.Collector.
//
// # Basic usage
//
//	c := cache.New(10_000, func(capacity int) policy.CachePolicy {
//	    return sieve.New(capacity)
//	})
//	c.Put("a", policy.CachedResponse{
//	    Status: 200, Body: []byte("1"), InsertedAt: time.Now(), TTL: time.Minute,
//	})
//	if v, ok := c.Get("a"); ok {
//	    _ = v
//	}
//	c.Remove("a")
package cache
