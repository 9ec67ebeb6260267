// Package lru implements the classic move-to-front LRU eviction policy on
// top of the shared arena, mirroring the teacher's policy/lru package in
// name and in "promote on every access" semantics, but — like
// policy/sieve — owning its arena directly instead of going through the
// teacher's generic Hooks facade.
//
// Unlike SIEVE, every cache hit mutates the shared list (move-to-head),
// so cache.ShardedCache always takes a write lock for LRU's Get — this is
// the "scalability bottleneck SIEVE avoids" called out in spec §4.4 and
// §9. LRU therefore does not implement policy.SharedHitter.
package lru

import (
	"time"

	"github.com/kclaka/colander/arena"
	"github.com/kclaka/colander/internal/util"
	"github.com/kclaka/colander/policy"
)

// Policy is an LRU cache engine for a fixed capacity.
type Policy struct {
	arena *arena.Arena[policy.CachedResponse]
	keys  map[string]uint32
	cap   int

	hits      util.PaddedAtomicUint64
	misses    util.PaddedAtomicUint64
	evictions util.PaddedAtomicUint64
}

// New constructs an LRU engine with the given fixed capacity.
func New(capacity int) *Policy {
	if capacity <= 0 {
		panic("lru: capacity must be > 0")
	}
	return &Policy{
		arena: arena.New[policy.CachedResponse](capacity),
		keys:  make(map[string]uint32, capacity),
		cap:   capacity,
	}
}

// Get looks up key, removing it if expired, and otherwise promotes it to
// the head of the list. Always assumed to run under a write lock.
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
	p.arena.MoveToHead(index)
	return node.Value, true
}

// Put inserts or replaces key. A pre-existing key is replaced in place and
// moved to the head (an update counts as recent use), no eviction occurs.
// Otherwise, if at capacity, the current tail (least recently used) is
// evicted before the new entry is inserted at head.
func (p *Policy) Put(key string, value policy.CachedResponse) bool {
	if index, ok := p.keys[key]; ok {
		p.arena.Get(index).Value = value
		p.arena.MoveToHead(index)
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
func (p *Policy) Name() string  { return "LRU" }

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
