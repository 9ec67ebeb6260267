// Package sieve implements the SIEVE cache eviction policy (NSDI '24).
//
// Ported from _examples/original_source/crates/colander-cache/src/sieve.rs,
// in the idiom of the teacher's policy/lru package: a Policy value
// constructed with a fixed capacity, holding an arena.Arena and a key→index
// map directly, instead of going through the teacher's generic Hooks
// facade — SIEVE's hand pointer and "retain in place" semantics don't map
// onto a shard-driven MRU/LRU hook surface cleanly, so the engine owns its
// list.
//
// Key insight: a roving "hand" walks from tail toward head to find eviction
// candidates. Visited nodes are retained in place (visited bit cleared);
// unvisited nodes are evicted. New entries always insert at head. Cache
// hits only flip an atomic visited bit — no list mutation — which is what
// lets cache.ShardedCache serve SIEVE hits under a shard's read lock.
package sieve

import (
	"time"

	"github.com/kclaka/colander/arena"
	"github.com/kclaka/colander/internal/util"
	"github.com/kclaka/colander/policy"
)

// Policy is a SIEVE cache engine for a fixed capacity. Not safe for
// concurrent use by itself; cache.ShardedCache supplies locking.
type Policy struct {
	arena *arena.Arena[policy.CachedResponse]
	keys  map[string]uint32
	hand  uint32
	cap   int

	// Padded to a cache line each: GetShared runs under a shared lock, so
	// several goroutines can bump hits and misses at once, and without
	// padding an update to one counter would invalidate the cache line
	// holding another (teacher's cache/shard.go pads its hot counters for
	// the same reason).
	hits      util.PaddedAtomicUint64
	misses    util.PaddedAtomicUint64
	evictions util.PaddedAtomicUint64
}

// New constructs a SIEVE engine with the given fixed capacity.
func New(capacity int) *Policy {
	if capacity <= 0 {
		panic("sieve: capacity must be > 0")
	}
	return &Policy{
		arena: arena.New[policy.CachedResponse](capacity),
		keys:  make(map[string]uint32, capacity),
		hand:  arena.NIL,
		cap:   capacity,
	}
}

// GetShared implements policy.SharedHitter: a cache hit only flips the
// atomic visited bit, so it is safe to run under a shard's read lock
// alongside other concurrent GetShared calls on the same shard.
func (p *Policy) GetShared(key string) (policy.CachedResponse, policy.LookupState) {
	index, ok := p.keys[key]
	if !ok {
		p.misses.Add(1)
		return policy.CachedResponse{}, policy.LookupMiss
	}

	node := p.arena.Get(index)
	if node.Value.IsExpired(time.Now()) {
		// Do not mutate here — the caller must escalate to Get under a
		// write lock to actually remove the stale entry.
		return policy.CachedResponse{}, policy.LookupExpired
	}

	node.Visited.Store(true)
	p.hits.Add(1)
	return node.Value, policy.LookupHit
}

// Get looks up key, removing it if expired. Unlike GetShared this assumes
// the caller holds a write lock — it is the only path that ever mutates
// the arena/key map on a read, so it is also the only path that counts a
// miss for an expired entry (GetShared never does, to avoid double
// counting when it hands off to Get).
func (p *Policy) Get(key string) (policy.CachedResponse, bool) {
	index, ok := p.keys[key]
	if !ok {
		p.misses.Add(1)
		return policy.CachedResponse{}, false
	}

	node := p.arena.Get(index)
	if node.Value.IsExpired(time.Now()) {
		p.evictHandTarget(index)
		delete(p.keys, key)
		p.arena.Remove(index)
		p.misses.Add(1)
		return policy.CachedResponse{}, false
	}

	node.Visited.Store(true)
	p.hits.Add(1)
	return node.Value, true
}

// Put inserts or replaces key. A pre-existing key is replaced in place and
// treated as a hit (visited bit set, no relinking, no eviction) — spec
// §4.2's "replaces value in place ... updates policy metadata as if it
// were a hit".
func (p *Policy) Put(key string, value policy.CachedResponse) bool {
	if index, ok := p.keys[key]; ok {
		node := p.arena.Get(index)
		node.Value = value
		node.Visited.Store(true)
		return false
	}

	evicted := false
	if p.arena.Len() >= p.cap {
		p.evictOne()
		evicted = true
	}

	index := p.arena.PushHead(key, value)
	p.keys[key] = index
	return evicted
}

// Remove deletes key if present, fixing up the hand if it pointed at the
// removed node (spec §9: the hand must never reference a freed slot).
func (p *Policy) Remove(key string) (policy.CachedResponse, bool) {
	index, ok := p.keys[key]
	if !ok {
		return policy.CachedResponse{}, false
	}
	p.evictHandTarget(index)
	delete(p.keys, key)
	return p.arena.Remove(index), true
}

func (p *Policy) Len() int      { return p.arena.Len() }
func (p *Policy) Capacity() int { return p.cap }
func (p *Policy) Name() string  { return "SIEVE" }

func (p *Policy) Stats() policy.Stats {
	return policy.Stats{
		Name:      p.Name(),
		Hits:      p.hits.Load(),
		Misses:    p.misses.Load(),
		Evictions: p.evictions.Load(),
		Size:      p.arena.Len(),
		Capacity:  p.cap,
	}
}

// Clear resets the engine to a freshly constructed state.
func (p *Policy) Clear() {
	p.arena.Clear()
	p.keys = make(map[string]uint32, p.cap)
	p.hand = arena.NIL
	p.hits.Store(0)
	p.misses.Store(0)
	p.evictions.Store(0)
}

// evictHandTarget advances the hand away from index before it is unlinked,
// so the hand never dangles on a freed slot (spec §9's ordering rule,
// generalized from eviction to the other removal paths: Remove and Get's
// removal of an expired entry).
func (p *Policy) evictHandTarget(index uint32) {
	if p.hand == index {
		p.hand = p.arena.Get(index).Prev
	}
}

// evictOne runs the SIEVE hand scan (spec §4.3): starting from hand (or
// tail if unset), clear visited bits and advance toward head, wrapping to
// tail, until an unvisited or expired node is found and evicted. Both
// branches count as an eviction — spec §8's "lazy expiry is not an
// eviction" rule applies only to Get discovering a stale entry on its own;
// here eviction is already underway because the engine is at capacity, and
// the expired node merely short-circuits the scan.
func (p *Policy) evictOne() {
	if p.arena.Len() == 0 {
		return
	}
	if p.hand == arena.NIL {
		p.hand = p.arena.Tail
	}

	now := time.Now()
	for {
		if p.hand == arena.NIL {
			p.hand = p.arena.Tail
		}
		if p.hand == arena.NIL {
			return // arena is empty
		}

		index := p.hand
		node := p.arena.Get(index)

		if node.Value.IsExpired(now) {
			p.hand = node.Prev
			delete(p.keys, node.Key)
			p.arena.Remove(index)
			p.evictions.Add(1)
			return
		}

		if node.Visited.Load() {
			node.Visited.Store(false)
			p.hand = node.Prev
			continue
		}

		p.hand = node.Prev
		delete(p.keys, node.Key)
		p.arena.Remove(index)
		p.evictions.Add(1)
		return
	}
}

var _ policy.CachePolicy = (*Policy)(nil)
var _ policy.SharedHitter = (*Policy)(nil)
