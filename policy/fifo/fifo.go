// Package fifo implements the baseline FIFO eviction policy: insertion
// order only, no promotion on access, used for comparison against SIEVE
// and LRU. Ported from
// _examples/original_source/crates/colander-cache/src/fifo.rs in the same
// direct-arena-ownership shape as policy/sieve and policy/lru.
package fifo

import (
	"time"

	"github.com/kclaka/colander/arena"
	"github.com/kclaka/colander/internal/util"
	"github.com/kclaka/colander/policy"
)

// Policy is a FIFO cache engine for a fixed capacity.
type Policy struct {
	arena *arena.Arena[policy.CachedResponse]
	keys  map[string]uint32
	cap   int

	hits      util.PaddedAtomicUint64
	misses    util.PaddedAtomicUint64
	evictions util.PaddedAtomicUint64
}

// New constructs a FIFO engine with the given fixed capacity.
func New(capacity int) *Policy {
	if capacity <= 0 {
		panic("fifo: capacity must be > 0")
	}
	return &Policy{
		arena: arena.New[policy.CachedResponse](capacity),
		keys:  make(map[string]uint32, capacity),
		cap:   capacity,
	}
}

// GetShared implements policy.SharedHitter: FIFO never mutates the list on
// a hit, so a read lock is sufficient for a live entry.
func (p *Policy) GetShared(key string) (policy.CachedResponse, policy.LookupState) {
	index, ok := p.keys[key]
	if !ok {
		p.misses.Add(1)
		return policy.CachedResponse{}, policy.LookupMiss
	}

	node := p.arena.Get(index)
	if node.Value.IsExpired(time.Now()) {
		return policy.CachedResponse{}, policy.LookupExpired
	}

	p.hits.Add(1)
	return node.Value, policy.LookupHit
}

// Get looks up key, removing it if expired. Assumed to run under a write
// lock; the only path that ever mutates state on a read.
func (p *Policy) Get(key string) (policy.CachedResponse, bool) {
	index, ok := p.keys[key]
	if !ok {
		p.misses.Add(1)
		return policy.CachedResponse{}, false
	}

	node := p.arena.Get(index)
	if node.Value.IsExpired(time.Now()) {
		delete(p.keys, key)
		p.arena.Remove(index)
		p.misses.Add(1)
		return policy.CachedResponse{}, false
	}

	p.hits.Add(1)
	return node.Value, true
}

// Put inserts or replaces key. A pre-existing key is replaced in place
// without relinking — insertion order is preserved, per spec §4.5: "does
// not relink". Otherwise, if at capacity, the tail (oldest) is evicted.
func (p *Policy) Put(key string, value policy.CachedResponse) bool {
	if index, ok := p.keys[key]; ok {
		p.arena.Get(index).Value = value
		return false
	}

	evicted := false
	if p.arena.Len() >= p.cap {
		if tail := p.arena.Get(p.arena.Tail); tail != nil {
			victimKey := tail.Key
			p.arena.Remove(p.arena.Tail)
			delete(p.keys, victimKey)
			p.evictions.Add(1)
			evicted = true
		}
	}

	index := p.arena.PushHead(key, value)
	p.keys[key] = index
	return evicted
}

// Remove deletes key if present.
func (p *Policy) Remove(key string) (policy.CachedResponse, bool) {
	index, ok := p.keys[key]
	if !ok {
		return policy.CachedResponse{}, false
	}
	delete(p.keys, key)
	return p.arena.Remove(index), true
}

func (p *Policy) Len() int      { return p.arena.Len() }
func (p *Policy) Capacity() int { return p.cap }
func (p *Policy) Name() string  { return "FIFO" }

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
	p.hits.Store(0)
	p.misses.Store(0)
	p.evictions.Store(0)
}

var _ policy.CachePolicy = (*Policy)(nil)
var _ policy.SharedHitter = (*Policy)(nil)
